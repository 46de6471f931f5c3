package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// NewPartTool creates a fresh part document.
type NewPartTool struct{ runner *Runner }

func NewNewPartTool(r *Runner) *NewPartTool { return &NewPartTool{runner: r} }

func (t *NewPartTool) Definition() mcp.Tool {
	return mcp.NewTool("new_part",
		mcp.WithDescription(
			"Create a new empty part document and make it active. Resets all "+
				"session state (sketch numbering, shape tracking).",
		),
	)
}

func (t *NewPartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.NewPart{})
}

// ExtrudeTool extrudes the current sketch into a boss.
type ExtrudeTool struct{ runner *Runner }

func NewExtrudeTool(r *Runner) *ExtrudeTool { return &ExtrudeTool{runner: r} }

func (t *ExtrudeTool) Definition() mcp.Tool {
	return mcp.NewTool("extrude",
		mcp.WithDescription(
			"Extrude the current sketch into a solid boss. Finalizes the sketch "+
				"if it is still open. The profile must be closed.",
		),
		mcp.WithNumber("depth",
			mcp.Required(),
			mcp.Description("Extrusion depth in mm."),
		),
		mcp.WithBoolean("reverse", mcp.Description("Extrude in the opposite direction.")),
	)
}

func (t *ExtrudeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.Extrude{
		Depth:   mmArg(req, "depth", 0),
		Reverse: boolArg(req, "reverse", false),
	})
}

// CutExtrudeTool extrudes the current sketch as a material-removing cut.
type CutExtrudeTool struct{ runner *Runner }

func NewCutExtrudeTool(r *Runner) *CutExtrudeTool { return &CutExtrudeTool{runner: r} }

func (t *CutExtrudeTool) Definition() mcp.Tool {
	return mcp.NewTool("cut_extrude",
		mcp.WithDescription(
			"Cut material by extruding the current sketch through the body. "+
				"Finalizes the sketch if it is still open.",
		),
		mcp.WithNumber("depth",
			mcp.Required(),
			mcp.Description("Cut depth in mm."),
		),
		mcp.WithBoolean("reverse", mcp.Description("Cut in the opposite direction.")),
	)
}

func (t *CutExtrudeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.Extrude{
		Depth:   mmArg(req, "depth", 0),
		Reverse: boolArg(req, "reverse", false),
		Cut:     true,
	})
}

// RevolveTool revolves the current sketch around its centerline.
type RevolveTool struct{ runner *Runner }

func NewRevolveTool(r *Runner) *RevolveTool { return &RevolveTool{runner: r} }

func (t *RevolveTool) Definition() mcp.Tool {
	return mcp.NewTool("revolve",
		mcp.WithDescription(
			"Revolve the current sketch around its centerline into a solid. "+
				"Draw a sketch_centerline first; it becomes the revolve axis.",
		),
		mcp.WithNumber("angle", mcp.Description("Revolve angle in degrees. Defaults to 360.")),
		mcp.WithBoolean("reverse", mcp.Description("Revolve in the opposite direction.")),
	)
}

func (t *RevolveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.Revolve{
		Angle:   degArg(req, "angle", 360),
		Reverse: boolArg(req, "reverse", false),
	})
}

// CutRevolveTool revolves the current sketch as a cut.
type CutRevolveTool struct{ runner *Runner }

func NewCutRevolveTool(r *Runner) *CutRevolveTool { return &CutRevolveTool{runner: r} }

func (t *CutRevolveTool) Definition() mcp.Tool {
	return mcp.NewTool("cut_revolve",
		mcp.WithDescription(
			"Cut material by revolving the current sketch around its centerline.",
		),
		mcp.WithNumber("angle", mcp.Description("Revolve angle in degrees. Defaults to 360.")),
		mcp.WithBoolean("reverse", mcp.Description("Revolve in the opposite direction.")),
	)
}

func (t *CutRevolveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.Revolve{
		Angle:   degArg(req, "angle", 360),
		Reverse: boolArg(req, "reverse", false),
		Cut:     true,
	})
}
