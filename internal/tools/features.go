package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// SweepTool sweeps a profile sketch along a path sketch.
type SweepTool struct{ runner *Runner }

func NewSweepTool(r *Runner) *SweepTool { return &SweepTool{runner: r} }

func (t *SweepTool) Definition() mcp.Tool {
	return mcp.NewTool("sweep",
		mcp.WithDescription(
			"Sweep a closed profile sketch along a path sketch. Both sketches "+
				"must already be finalized (exit_sketch). The profile should sit "+
				"at the start of the path.",
		),
		mcp.WithString("profile_sketch",
			mcp.Required(),
			mcp.Description("Name of the profile sketch, e.g. Sketch1."),
		),
		mcp.WithString("path_sketch",
			mcp.Required(),
			mcp.Description("Name of the path sketch, e.g. Sketch2."),
		),
		mcp.WithBoolean("cut", mcp.Description("Remove material instead of adding it.")),
	)
}

func (t *SweepTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profile := req.GetString("profile_sketch", "")
	path := req.GetString("path_sketch", "")
	if profile == "" || path == "" {
		return mcp.NewToolResultError("both `profile_sketch` and `path_sketch` are required"), nil
	}
	return t.runner.run(ctx, orchestrator.Sweep{
		Profile: profile,
		Path:    path,
		Cut:     boolArg(req, "cut", false),
	})
}

// LoftTool lofts through two or more profile sketches.
type LoftTool struct{ runner *Runner }

func NewLoftTool(r *Runner) *LoftTool { return &LoftTool{runner: r} }

func (t *LoftTool) Definition() mcp.Tool {
	return mcp.NewTool("loft",
		mcp.WithDescription(
			"Loft a solid through two or more finalized profile sketches, in "+
				"the order given. Sketch the profiles on separate planes "+
				"(ref_plane offsets work well).",
		),
		mcp.WithArray("profiles",
			mcp.Required(),
			mcp.Description("Profile sketch names in loft order, e.g. [\"Sketch1\", \"Sketch2\"]."),
			stringItems(),
		),
		mcp.WithBoolean("cut", mcp.Description("Remove material instead of adding it.")),
	)
}

func (t *LoftTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.Loft{
		Profiles: stringList(req, "profiles"),
		Cut:      boolArg(req, "cut", false),
	})
}

// BoundaryBossTool builds a boundary feature from profiles and guides.
type BoundaryBossTool struct{ runner *Runner }

func NewBoundaryBossTool(r *Runner) *BoundaryBossTool { return &BoundaryBossTool{runner: r} }

func (t *BoundaryBossTool) Definition() mcp.Tool {
	return mcp.NewTool("boundary_boss",
		mcp.WithDescription(
			"Create a boundary boss through two or more profile sketches with "+
				"optional guide-curve sketches. Guides must touch every profile.",
		),
		mcp.WithArray("profiles",
			mcp.Required(),
			mcp.Description("Profile sketch names in order."),
			stringItems(),
		),
		mcp.WithArray("guides",
			mcp.Description("Optional guide-curve sketch names."),
			stringItems(),
		),
	)
}

func (t *BoundaryBossTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.BoundaryBoss{
		Profiles: stringList(req, "profiles"),
		Guides:   stringList(req, "guides"),
	})
}
