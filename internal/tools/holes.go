package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// HoleWizardTool places a standard wizard hole on a face.
type HoleWizardTool struct{ runner *Runner }

func NewHoleWizardTool(r *Runner) *HoleWizardTool { return &HoleWizardTool{runner: r} }

func (t *HoleWizardTool) Definition() mcp.Tool {
	return mcp.NewTool("hole_wizard",
		mcp.WithDescription(
			"Place a standard wizard hole on the face nearest the given point. "+
				"Any confirmation prompt the wizard raises is dismissed "+
				"automatically.",
		),
		mcp.WithString("hole_type",
			mcp.Description("One of: simple, counterbore, countersink, tap. Defaults to simple."),
		),
		mcp.WithString("standard",
			mcp.Description("One of: ansi_metric, ansi_inch, iso, din. Defaults to ansi_metric."),
		),
		mcp.WithString("size",
			mcp.Required(),
			mcp.Description("Standard hole size designation, e.g. M6 or 1/4."),
		),
		mcp.WithString("end_condition",
			mcp.Description("blind or through. Defaults to through."),
		),
		mcp.WithNumber("depth", mcp.Description("Hole depth in mm, for blind holes.")),
		mcp.WithNumber("face_x", mcp.Required(), mcp.Description("X of a point on the target face, in mm.")),
		mcp.WithNumber("face_y", mcp.Required(), mcp.Description("Y of a point on the target face, in mm.")),
		mcp.WithNumber("face_z", mcp.Required(), mcp.Description("Z of a point on the target face, in mm.")),
	)
}

func (t *HoleWizardTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	face := optPointMM(req, "face_x", "face_y", "face_z")
	if face == nil {
		return mcp.NewToolResultError("`face_x`, `face_y` and `face_z` are required"), nil
	}

	var holeType int
	switch v := req.GetString("hole_type", "simple"); v {
	case "simple":
		holeType = engine.HoleTypeSimple
	case "counterbore":
		holeType = engine.HoleTypeCounterbore
	case "countersink":
		holeType = engine.HoleTypeCountersink
	case "tap":
		holeType = engine.HoleTypeTap
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown hole_type %q", v)), nil
	}

	var standard int
	switch v := req.GetString("standard", "ansi_metric"); v {
	case "ansi_metric":
		standard = engine.HoleStandardAnsiMetric
	case "ansi_inch":
		standard = engine.HoleStandardAnsiInch
	case "iso":
		standard = engine.HoleStandardISO
	case "din":
		standard = engine.HoleStandardDIN
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown standard %q", v)), nil
	}

	var end int
	switch v := req.GetString("end_condition", "through"); v {
	case "through":
		end = engine.HoleEndThrough
	case "blind":
		end = engine.HoleEndBlind
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown end_condition %q", v)), nil
	}

	return t.runner.run(ctx, orchestrator.HoleWizard{
		Type:         holeType,
		Standard:     standard,
		Size:         req.GetString("size", ""),
		EndCondition: end,
		Depth:        mmArg(req, "depth", 0),
		Face:         *face,
	})
}
