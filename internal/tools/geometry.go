package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// Geometry query tools. These read face, edge and vertex coordinates off
// the solid body so the agent can derive exact pick points for the
// point-addressed tools instead of estimating them.

// BodyInfoTool summarizes the solid body.
type BodyInfoTool struct{ runner *Runner }

func NewBodyInfoTool(r *Runner) *BodyInfoTool { return &BodyInfoTool{runner: r} }

func (t *BodyInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_body_info",
		mcp.WithDescription(
			"Get a quick overview of the part body: bounding box, overall "+
				"size, and face/edge/vertex counts. Use it to check model "+
				"state before querying individual faces or edges.",
		),
	)
}

func (t *BodyInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.BodyInfo{})
}

// FacesTool enumerates body faces.
type FacesTool struct{ runner *Runner }

func NewFacesTool(r *Runner) *FacesTool { return &FacesTool{runner: r} }

func (t *FacesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_faces",
		mcp.WithDescription(
			"List every face on the part body: surface type, area, "+
				"normal or axis, and a pick point usable with create_sketch, "+
				"fillet, shell, hole_wizard and the other face-addressed "+
				"tools. Filter by surface_type to narrow the list.",
		),
		mcp.WithString("surface_type",
			mcp.Description("Optional filter: plane, cylinder, cone, sphere, torus or spline."),
		),
	)
}

func (t *FacesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := orchestrator.ListFaces{}
	switch v := req.GetString("surface_type", ""); v {
	case "":
	case "plane":
		cmd.Surface = surfaceRef(engine.SurfacePlane)
	case "cylinder":
		cmd.Surface = surfaceRef(engine.SurfaceCylinder)
	case "cone":
		cmd.Surface = surfaceRef(engine.SurfaceCone)
	case "sphere":
		cmd.Surface = surfaceRef(engine.SurfaceSphere)
	case "torus":
		cmd.Surface = surfaceRef(engine.SurfaceTorus)
	case "spline":
		cmd.Surface = surfaceRef(engine.SurfaceSpline)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown surface_type %q", v)), nil
	}
	return t.runner.run(ctx, cmd)
}

func surfaceRef(t engine.SurfaceType) *engine.SurfaceType { return &t }

// EdgesTool enumerates body edges.
type EdgesTool struct{ runner *Runner }

func NewEdgesTool(r *Runner) *EdgesTool { return &EdgesTool{runner: r} }

func (t *EdgesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_edges",
		mcp.WithDescription(
			"List every edge on the part body: curve type, endpoints, "+
				"length, and a midpoint usable with fillet, chamfer, "+
				"linear_pattern directions and the other edge-addressed "+
				"tools. Filter by edge_type to narrow the list.",
		),
		mcp.WithString("edge_type",
			mcp.Description("Optional filter: line, circle, arc, ellipse or spline."),
		),
	)
}

func (t *EdgesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := orchestrator.ListEdges{}
	switch v := req.GetString("edge_type", ""); v {
	case "":
	case "line":
		cmd.Curve = curveRef(engine.CurveLine)
	case "circle":
		cmd.Curve = curveRef(engine.CurveCircle)
	case "arc":
		cmd.Curve = curveRef(engine.CurveArc)
	case "ellipse", "spline":
		cmd.Curve = curveRef(engine.CurveOther)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown edge_type %q", v)), nil
	}
	return t.runner.run(ctx, cmd)
}

func curveRef(t engine.CurveType) *engine.CurveType { return &t }

// FaceEdgesTool drills into one face and its bounding edges.
type FaceEdgesTool struct{ runner *Runner }

func NewFaceEdgesTool(r *Runner) *FaceEdgesTool { return &FaceEdgesTool{runner: r} }

func (t *FaceEdgesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_face_edges",
		mcp.WithDescription(
			"Get one face and its bounding edges: surface type, area, a "+
				"sample pick point, and each edge's endpoints and midpoint. "+
				"Pick the face by the nearest model-space point. Use it to "+
				"drill into a face found via get_faces.",
		),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("X of a point on the face, in mm.")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Y of a point on the face, in mm.")),
		mcp.WithNumber("z", mcp.Required(), mcp.Description("Z of a point on the face, in mm.")),
	)
}

func (t *FaceEdgesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pt := optPointMM(req, "x", "y", "z")
	if pt == nil {
		return mcp.NewToolResultError("`x`, `y` and `z` are required"), nil
	}
	return t.runner.run(ctx, orchestrator.FaceEdges{Point: *pt})
}

// VerticesTool lists body vertex coordinates.
type VerticesTool struct{ runner *Runner }

func NewVerticesTool(r *Runner) *VerticesTool { return &VerticesTool{runner: r} }

func (t *VerticesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_vertices",
		mcp.WithDescription(
			"List the unique corner coordinates of the part body in mm, "+
				"sorted. Use them as pick points for ref_axis vertices, "+
				"coordinate_system origins, and as references for other "+
				"pick-point math.",
		),
	)
}

func (t *VerticesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.runner.run(ctx, orchestrator.ListVertices{})
}
