package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// ListFeaturesTool reports the feature history of the active document.
type ListFeaturesTool struct{ runner *Runner }

func NewListFeaturesTool(r *Runner) *ListFeaturesTool { return &ListFeaturesTool{runner: r} }

func (t *ListFeaturesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_features",
		mcp.WithDescription(
			"List the feature history of the active document, oldest first, "+
				"with each feature's name and type. Use it to find exact names "+
				"for mirror, patterns and sweep/loft, or to re-orient after a "+
				"restart.",
		),
	)
}

func (t *ListFeaturesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.ListFeatures{})
}
