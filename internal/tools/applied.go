package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// FilletTool rounds edges picked by model-space points.
type FilletTool struct{ runner *Runner }

func NewFilletTool(r *Runner) *FilletTool { return &FilletTool{runner: r} }

func (t *FilletTool) Definition() mcp.Tool {
	return mcp.NewTool("fillet",
		mcp.WithDescription(
			"Round one or more edges. Each edge is picked by the model-space "+
				"point nearest to it, in mm. Get edge coordinates from the body's "+
				"known geometry (e.g. a 50mm cube extruded from Front has vertical "+
				"edges at x=+-25, y=+-25).",
		),
		mcp.WithNumber("radius",
			mcp.Required(),
			mcp.Description("Fillet radius in mm."),
		),
		mcp.WithArray("edges",
			mcp.Required(),
			mcp.Description("Edge pick points as [x, y, z] mm triples."),
			pointItems(),
		),
	)
}

func (t *FilletTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.Fillet{
		Radius: mmArg(req, "radius", 0),
		Edges:  pointListMM(req, "edges"),
	})
}

// ChamferTool bevels edges picked by model-space points.
type ChamferTool struct{ runner *Runner }

func NewChamferTool(r *Runner) *ChamferTool { return &ChamferTool{runner: r} }

func (t *ChamferTool) Definition() mcp.Tool {
	return mcp.NewTool("chamfer",
		mcp.WithDescription(
			"Bevel one or more edges, picked like fillet edges. Default is an "+
				"equal-distance chamfer; pass `angle` for distance-angle or "+
				"`distance2` for two distances.",
		),
		mcp.WithNumber("distance",
			mcp.Required(),
			mcp.Description("Chamfer distance in mm."),
		),
		mcp.WithNumber("distance2", mcp.Description("Second distance in mm, for asymmetric chamfers.")),
		mcp.WithNumber("angle", mcp.Description("Chamfer angle in degrees, for distance-angle chamfers.")),
		mcp.WithArray("edges",
			mcp.Required(),
			mcp.Description("Edge pick points as [x, y, z] mm triples."),
			pointItems(),
		),
	)
}

func (t *ChamferTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	typ := 0 // equal distance
	if _, ok := args["angle"]; ok {
		typ = 1
	} else if _, ok := args["distance2"]; ok {
		typ = 2
	}
	return t.runner.run(ctx, orchestrator.Chamfer{
		Distance:  mmArg(req, "distance", 0),
		Distance2: mmArg(req, "distance2", 0),
		Angle:     degArg(req, "angle", 45),
		Type:      typ,
		Edges:     pointListMM(req, "edges"),
	})
}

// ShellTool hollows the body, removing picked faces.
type ShellTool struct{ runner *Runner }

func NewShellTool(r *Runner) *ShellTool { return &ShellTool{runner: r} }

func (t *ShellTool) Definition() mcp.Tool {
	return mcp.NewTool("shell",
		mcp.WithDescription(
			"Hollow the body to a constant wall thickness, removing the faces "+
				"picked by the given points (they become the openings).",
		),
		mcp.WithNumber("thickness",
			mcp.Required(),
			mcp.Description("Wall thickness in mm."),
		),
		mcp.WithBoolean("outward", mcp.Description("Thicken outward instead of inward.")),
		mcp.WithArray("faces",
			mcp.Required(),
			mcp.Description("Face pick points as [x, y, z] mm triples."),
			pointItems(),
		),
	)
}

func (t *ShellTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.Shell{
		Thickness: mmArg(req, "thickness", 0),
		Outward:   boolArg(req, "outward", false),
		Faces:     pointListMM(req, "faces"),
	})
}
