package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// MirrorTool mirrors features across a plane or a planar face.
type MirrorTool struct{ runner *Runner }

func NewMirrorTool(r *Runner) *MirrorTool { return &MirrorTool{runner: r} }

func (t *MirrorTool) Definition() mcp.Tool {
	return mcp.NewTool("mirror",
		mcp.WithDescription(
			"Mirror features across a reference plane or a planar face. Pass "+
				"`plane` (Front, Top, Right, or a custom plane) or "+
				"`face_x`/`face_y`/`face_z` (mm) for a face pick. Feature names "+
				"come from list_features.",
		),
		mcp.WithString("plane", mcp.Description("Mirror plane name.")),
		mcp.WithNumber("face_x", mcp.Description("X of a point on the mirror face, in mm.")),
		mcp.WithNumber("face_y", mcp.Description("Y of a point on the mirror face, in mm.")),
		mcp.WithNumber("face_z", mcp.Description("Z of a point on the mirror face, in mm.")),
		mcp.WithArray("features",
			mcp.Required(),
			mcp.Description("Names of the features to mirror, e.g. [\"Boss-Extrude1\"]."),
			stringItems(),
		),
	)
}

func (t *MirrorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plane := req.GetString("plane", "")
	facePoint := optPointMM(req, "face_x", "face_y", "face_z")
	if plane == "" && facePoint == nil {
		return mcp.NewToolResultError("provide `plane` or a `face_x`/`face_y`/`face_z` pick point"), nil
	}
	return t.runner.run(ctx, orchestrator.Mirror{
		Plane:     plane,
		FacePoint: facePoint,
		Features:  stringList(req, "features"),
	})
}

// LinearPatternTool patterns features along one or two edge directions.
type LinearPatternTool struct{ runner *Runner }

func NewLinearPatternTool(r *Runner) *LinearPatternTool { return &LinearPatternTool{runner: r} }

func (t *LinearPatternTool) Definition() mcp.Tool {
	return mcp.NewTool("linear_pattern",
		mcp.WithDescription(
			"Pattern features along a direction given by an edge pick point. "+
				"Optionally pattern in a second direction with `dir2_*` and "+
				"`count2`/`spacing2`.",
		),
		mcp.WithNumber("dir_x", mcp.Required(), mcp.Description("X of a point on the direction edge, in mm.")),
		mcp.WithNumber("dir_y", mcp.Required(), mcp.Description("Y of a point on the direction edge, in mm.")),
		mcp.WithNumber("dir_z", mcp.Required(), mcp.Description("Z of a point on the direction edge, in mm.")),
		mcp.WithNumber("count", mcp.Required(), mcp.Description("Total instances along direction 1, including the seed.")),
		mcp.WithNumber("spacing", mcp.Required(), mcp.Description("Instance spacing along direction 1, in mm.")),
		mcp.WithBoolean("reverse", mcp.Description("Flip direction 1.")),
		mcp.WithNumber("dir2_x", mcp.Description("X of a point on the second direction edge, in mm.")),
		mcp.WithNumber("dir2_y", mcp.Description("Y of a point on the second direction edge, in mm.")),
		mcp.WithNumber("dir2_z", mcp.Description("Z of a point on the second direction edge, in mm.")),
		mcp.WithNumber("count2", mcp.Description("Total instances along direction 2.")),
		mcp.WithNumber("spacing2", mcp.Description("Instance spacing along direction 2, in mm.")),
		mcp.WithBoolean("reverse2", mcp.Description("Flip direction 2.")),
		mcp.WithArray("features",
			mcp.Required(),
			mcp.Description("Names of the seed features to pattern."),
			stringItems(),
		),
	)
}

func (t *LinearPatternTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir1 := optPointMM(req, "dir_x", "dir_y", "dir_z")
	if dir1 == nil {
		return mcp.NewToolResultError("`dir_x`, `dir_y` and `dir_z` are required"), nil
	}
	return t.runner.run(ctx, orchestrator.LinearPattern{
		Direction1: *dir1,
		Spacing1:   mmArg(req, "spacing", 0),
		Count1:     intArg(req, "count", 0),
		Reverse1:   boolArg(req, "reverse", false),
		Direction2: optPointMM(req, "dir2_x", "dir2_y", "dir2_z"),
		Spacing2:   mmArg(req, "spacing2", 0),
		Count2:     intArg(req, "count2", 0),
		Reverse2:   boolArg(req, "reverse2", false),
		Features:   stringList(req, "features"),
	})
}

// CircularPatternTool patterns features around an axis.
type CircularPatternTool struct{ runner *Runner }

func NewCircularPatternTool(r *Runner) *CircularPatternTool {
	return &CircularPatternTool{runner: r}
}

func (t *CircularPatternTool) Definition() mcp.Tool {
	return mcp.NewTool("circular_pattern",
		mcp.WithDescription(
			"Pattern features around an axis. Pass `axis` (a reference axis "+
				"name from ref_axis or list_features) or `axis_x`/`axis_y`/`axis_z` "+
				"(mm) to pick a circular edge as the axis.",
		),
		mcp.WithString("axis", mcp.Description("Reference axis name, e.g. Axis1.")),
		mcp.WithNumber("axis_x", mcp.Description("X of a point on the axis edge, in mm.")),
		mcp.WithNumber("axis_y", mcp.Description("Y of a point on the axis edge, in mm.")),
		mcp.WithNumber("axis_z", mcp.Description("Z of a point on the axis edge, in mm.")),
		mcp.WithNumber("count", mcp.Required(), mcp.Description("Total instances, including the seed.")),
		mcp.WithNumber("angle", mcp.Description("Total pattern angle in degrees. Defaults to 360.")),
		mcp.WithBoolean("equal_spacing", mcp.Description("Spread instances evenly over the angle. Defaults to true.")),
		mcp.WithArray("features",
			mcp.Required(),
			mcp.Description("Names of the seed features to pattern."),
			stringItems(),
		),
	)
}

func (t *CircularPatternTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	axis := req.GetString("axis", "")
	axisEdge := optPointMM(req, "axis_x", "axis_y", "axis_z")
	if axis == "" && axisEdge == nil {
		return mcp.NewToolResultError("provide `axis` or an `axis_x`/`axis_y`/`axis_z` pick point"), nil
	}
	return t.runner.run(ctx, orchestrator.CircularPattern{
		Axis:         axis,
		AxisEdge:     axisEdge,
		Count:        intArg(req, "count", 0),
		Angle:        degArg(req, "angle", 360),
		EqualSpacing: boolArg(req, "equal_spacing", true),
		Features:     stringList(req, "features"),
	})
}
