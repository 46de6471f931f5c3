package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// CreateSketchTool opens a sketch on a reference plane or a solid face.
type CreateSketchTool struct{ runner *Runner }

func NewCreateSketchTool(r *Runner) *CreateSketchTool { return &CreateSketchTool{runner: r} }

func (t *CreateSketchTool) Definition() mcp.Tool {
	return mcp.NewTool("create_sketch",
		mcp.WithDescription(
			"Open a new sketch on a reference plane or on a solid face. "+
				"Pass `plane` (Front, Top, Right, or a custom plane name) to sketch "+
				"on a plane, or `face_x`/`face_y`/`face_z` (mm) to sketch on the "+
				"face nearest that point. Creates a part document if none is open. "+
				"Starts a fresh shape-tracking context.",
		),
		mcp.WithString("plane",
			mcp.Description("Reference plane name. Defaults to Front."),
		),
		mcp.WithNumber("face_x", mcp.Description("X of a point on the target face, in mm.")),
		mcp.WithNumber("face_y", mcp.Description("Y of a point on the target face, in mm.")),
		mcp.WithNumber("face_z", mcp.Description("Z of a point on the target face, in mm.")),
	)
}

func (t *CreateSketchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.OpenSketch{
		Plane:     req.GetString("plane", ""),
		FacePoint: optPointMM(req, "face_x", "face_y", "face_z"),
	})
}

// positionArgs are the shared placement options of the draw tools.
func positionArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("center_x", mcp.Description("Absolute center X in mm. Use with center_y.")),
		mcp.WithNumber("center_y", mcp.Description("Absolute center Y in mm. Use with center_x.")),
		mcp.WithNumber("relative_x", mcp.Description("X offset in mm from the last shape's center.")),
		mcp.WithNumber("relative_y", mcp.Description("Y offset in mm from the last shape's center.")),
		mcp.WithNumber("spacing", mcp.Description("Gap in mm after the last shape's right edge. Places the new shape to its right.")),
	}
}

// SketchRectangleTool draws a rectangle in the active sketch.
type SketchRectangleTool struct{ runner *Runner }

func NewSketchRectangleTool(r *Runner) *SketchRectangleTool { return &SketchRectangleTool{runner: r} }

func (t *SketchRectangleTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Draw a rectangle in the active sketch. Give `width` and `height` " +
				"in mm, or `x1`/`y1`/`x2`/`y2` corners (corners contribute size only). " +
				"Placement: center_x+center_y (absolute) beats spacing beats " +
				"relative_x/relative_y beats the origin.",
		),
		mcp.WithNumber("width", mcp.Description("Width in mm.")),
		mcp.WithNumber("height", mcp.Description("Height in mm.")),
		mcp.WithNumber("x1", mcp.Description("First corner X in mm.")),
		mcp.WithNumber("y1", mcp.Description("First corner Y in mm.")),
		mcp.WithNumber("x2", mcp.Description("Opposite corner X in mm.")),
		mcp.WithNumber("y2", mcp.Description("Opposite corner Y in mm.")),
	}
	opts = append(opts, positionArgs()...)
	return mcp.NewTool("sketch_rectangle", opts...)
}

func (t *SketchRectangleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := orchestrator.DrawRectangle{
		Width:  mmArg(req, "width", 0),
		Height: mmArg(req, "height", 0),
		Hints:  positionHints(req),
	}
	args := req.GetArguments()
	if _, ok := args["x1"]; ok {
		cmd.Corners = &[4]float64{
			mmArg(req, "x1", 0), mmArg(req, "y1", 0),
			mmArg(req, "x2", 0), mmArg(req, "y2", 0),
		}
	}
	if cmd.Corners == nil && (cmd.Width <= 0 || cmd.Height <= 0) {
		return mcp.NewToolResultError("provide `width` and `height` in mm, or the four corner coordinates"), nil
	}
	return t.runner.run(ctx, cmd)
}

// SketchCircleTool draws a circle in the active sketch.
type SketchCircleTool struct{ runner *Runner }

func NewSketchCircleTool(r *Runner) *SketchCircleTool { return &SketchCircleTool{runner: r} }

func (t *SketchCircleTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Draw a circle in the active sketch. Give `radius` or `diameter` in mm. " +
				"Placement follows the same priority as sketch_rectangle.",
		),
		mcp.WithNumber("radius", mcp.Description("Radius in mm.")),
		mcp.WithNumber("diameter", mcp.Description("Diameter in mm. Ignored when radius is given.")),
	}
	opts = append(opts, positionArgs()...)
	return mcp.NewTool("sketch_circle", opts...)
}

func (t *SketchCircleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	radius := mmArg(req, "radius", 0)
	if radius <= 0 {
		radius = mmArg(req, "diameter", 0) / 2
	}
	if radius <= 0 {
		return mcp.NewToolResultError("provide `radius` or `diameter` in mm"), nil
	}
	return t.runner.run(ctx, orchestrator.DrawCircle{
		Radius: radius,
		Hints:  positionHints(req),
	})
}

// SketchLineTool draws a line segment in the active sketch.
type SketchLineTool struct{ runner *Runner }

func NewSketchLineTool(r *Runner) *SketchLineTool { return &SketchLineTool{runner: r} }

func (t *SketchLineTool) Definition() mcp.Tool {
	return mcp.NewTool("sketch_line",
		mcp.WithDescription("Draw a line segment in the active sketch, endpoints in mm."),
		mcp.WithNumber("x1", mcp.Required(), mcp.Description("Start X in mm.")),
		mcp.WithNumber("y1", mcp.Required(), mcp.Description("Start Y in mm.")),
		mcp.WithNumber("x2", mcp.Required(), mcp.Description("End X in mm.")),
		mcp.WithNumber("y2", mcp.Required(), mcp.Description("End Y in mm.")),
	)
}

func (t *SketchLineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.DrawLine{
		X1: mmArg(req, "x1", 0), Y1: mmArg(req, "y1", 0),
		X2: mmArg(req, "x2", 0), Y2: mmArg(req, "y2", 0),
	})
}

// SketchCenterlineTool draws a construction centerline, typically the
// revolve axis. Construction geometry is not shape-tracked.
type SketchCenterlineTool struct{ runner *Runner }

func NewSketchCenterlineTool(r *Runner) *SketchCenterlineTool {
	return &SketchCenterlineTool{runner: r}
}

func (t *SketchCenterlineTool) Definition() mcp.Tool {
	return mcp.NewTool("sketch_centerline",
		mcp.WithDescription(
			"Draw a construction centerline in the active sketch, endpoints in mm. "+
				"Required as the axis before revolve/cut_revolve. Not shape-tracked.",
		),
		mcp.WithNumber("x1", mcp.Required(), mcp.Description("Start X in mm.")),
		mcp.WithNumber("y1", mcp.Required(), mcp.Description("Start Y in mm.")),
		mcp.WithNumber("x2", mcp.Required(), mcp.Description("End X in mm.")),
		mcp.WithNumber("y2", mcp.Required(), mcp.Description("End Y in mm.")),
	)
}

func (t *SketchCenterlineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.DrawCenterline{
		X1: mmArg(req, "x1", 0), Y1: mmArg(req, "y1", 0),
		X2: mmArg(req, "x2", 0), Y2: mmArg(req, "y2", 0),
	})
}

// LastShapeInfoTool reports the most recently drawn tracked shape.
type LastShapeInfoTool struct{ runner *Runner }

func NewLastShapeInfoTool(r *Runner) *LastShapeInfoTool { return &LastShapeInfoTool{runner: r} }

func (t *LastShapeInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_last_shape_info",
		mcp.WithDescription(
			"Report the last shape drawn in the current sketch: kind, center, "+
				"bounds, and size in mm. Use it to verify placement before drawing "+
				"relative to it.",
		),
	)
}

func (t *LastShapeInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.LastShapeInfo{})
}

// ExitSketchTool finalizes the active sketch.
type ExitSketchTool struct{ runner *Runner }

func NewExitSketchTool(r *Runner) *ExitSketchTool { return &ExitSketchTool{runner: r} }

func (t *ExitSketchTool) Definition() mcp.Tool {
	return mcp.NewTool("exit_sketch",
		mcp.WithDescription(
			"Exit the active sketch without creating a feature. The sketch is "+
				"finalized and can be referenced by name later (sweep, loft).",
		),
	)
}

func (t *ExitSketchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.CloseSketch{})
}
