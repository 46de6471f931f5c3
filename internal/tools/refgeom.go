package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/parametriclabs/swmcp/internal/orchestrator"
)

// RefPlaneTool creates an offset or angled reference plane.
type RefPlaneTool struct{ runner *Runner }

func NewRefPlaneTool(r *Runner) *RefPlaneTool { return &RefPlaneTool{runner: r} }

func (t *RefPlaneTool) Definition() mcp.Tool {
	return mcp.NewTool("ref_plane",
		mcp.WithDescription(
			"Create a reference plane from an existing plane. Pass `offset` "+
				"(mm) for a parallel plane, or `angle` (degrees) plus an "+
				"`edge_x`/`edge_y`/`edge_z` hinge edge for an angled plane. The "+
				"new plane's name (Plane1, Plane2, ...) is returned for use with "+
				"create_sketch and mirror.",
		),
		mcp.WithString("reference",
			mcp.Description("Base plane name. Defaults to Front."),
		),
		mcp.WithNumber("offset", mcp.Description("Offset distance in mm.")),
		mcp.WithNumber("angle", mcp.Description("Angle in degrees. Requires the hinge edge point.")),
		mcp.WithBoolean("reverse", mcp.Description("Flip the offset or angle direction.")),
		mcp.WithNumber("edge_x", mcp.Description("X of a point on the hinge edge, in mm.")),
		mcp.WithNumber("edge_y", mcp.Description("Y of a point on the hinge edge, in mm.")),
		mcp.WithNumber("edge_z", mcp.Description("Z of a point on the hinge edge, in mm.")),
	)
}

func (t *RefPlaneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reference := req.GetString("reference", "Front")
	args := req.GetArguments()
	if _, ok := args["angle"]; ok {
		return t.runner.run(ctx, orchestrator.RefPlaneAngle{
			Reference: reference,
			Angle:     degArg(req, "angle", 0),
			Reverse:   boolArg(req, "reverse", false),
			Edge:      optPointMM(req, "edge_x", "edge_y", "edge_z"),
		})
	}
	if _, ok := args["offset"]; !ok {
		return mcp.NewToolResultError("provide `offset` in mm or `angle` in degrees"), nil
	}
	return t.runner.run(ctx, orchestrator.RefPlaneOffset{
		Reference: reference,
		Offset:    mmArg(req, "offset", 0),
		Reverse:   boolArg(req, "reverse", false),
	})
}

// RefAxisTool creates a reference axis.
type RefAxisTool struct{ runner *Runner }

func NewRefAxisTool(r *Runner) *RefAxisTool { return &RefAxisTool{runner: r} }

func (t *RefAxisTool) Definition() mcp.Tool {
	return mcp.NewTool("ref_axis",
		mcp.WithDescription(
			"Create a reference axis for circular_pattern and revolved work. "+
				"Pick one form: two vertex points (`p1_*` and `p2_*`), a "+
				"cylindrical face (`face_*`), or a straight edge (`edge_*`). All "+
				"coordinates in mm. Returns the axis name (Axis1, Axis2, ...).",
		),
		mcp.WithNumber("p1_x", mcp.Description("First vertex X in mm.")),
		mcp.WithNumber("p1_y", mcp.Description("First vertex Y in mm.")),
		mcp.WithNumber("p1_z", mcp.Description("First vertex Z in mm.")),
		mcp.WithNumber("p2_x", mcp.Description("Second vertex X in mm.")),
		mcp.WithNumber("p2_y", mcp.Description("Second vertex Y in mm.")),
		mcp.WithNumber("p2_z", mcp.Description("Second vertex Z in mm.")),
		mcp.WithNumber("face_x", mcp.Description("X of a point on a cylindrical face, in mm.")),
		mcp.WithNumber("face_y", mcp.Description("Y of a point on a cylindrical face, in mm.")),
		mcp.WithNumber("face_z", mcp.Description("Z of a point on a cylindrical face, in mm.")),
		mcp.WithNumber("edge_x", mcp.Description("X of a point on a straight edge, in mm.")),
		mcp.WithNumber("edge_y", mcp.Description("Y of a point on a straight edge, in mm.")),
		mcp.WithNumber("edge_z", mcp.Description("Z of a point on a straight edge, in mm.")),
	)
}

func (t *RefAxisTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := orchestrator.RefAxis{
		Point1: optPointMM(req, "p1_x", "p1_y", "p1_z"),
		Point2: optPointMM(req, "p2_x", "p2_y", "p2_z"),
		Face:   optPointMM(req, "face_x", "face_y", "face_z"),
		Edge:   optPointMM(req, "edge_x", "edge_y", "edge_z"),
	}
	if (cmd.Point1 == nil || cmd.Point2 == nil) && cmd.Face == nil && cmd.Edge == nil {
		return mcp.NewToolResultError("provide two vertex points, a face point, or an edge point"), nil
	}
	return t.runner.run(ctx, cmd)
}

// RefPointTool creates a reference point.
type RefPointTool struct{ runner *Runner }

func NewRefPointTool(r *Runner) *RefPointTool { return &RefPointTool{runner: r} }

func (t *RefPointTool) Definition() mcp.Tool {
	return mcp.NewTool("ref_point",
		mcp.WithDescription(
			"Create a reference point. Pick one form: absolute coordinates "+
				"(`x`/`y`/`z`), the center of the arc nearest `edge_*`, a point "+
				"on that edge when `on_edge` is set, or the center of the face "+
				"nearest `face_*`. All coordinates in mm. Returns the point's "+
				"name (Point1, Point2, ...).",
		),
		mcp.WithNumber("x", mcp.Description("Absolute X in mm.")),
		mcp.WithNumber("y", mcp.Description("Absolute Y in mm.")),
		mcp.WithNumber("z", mcp.Description("Absolute Z in mm.")),
		mcp.WithNumber("edge_x", mcp.Description("X of a point on an arc or edge, in mm.")),
		mcp.WithNumber("edge_y", mcp.Description("Y of a point on an arc or edge, in mm.")),
		mcp.WithNumber("edge_z", mcp.Description("Z of a point on an arc or edge, in mm.")),
		mcp.WithBoolean("on_edge", mcp.Description("Place the point on the edge instead of at its arc center.")),
		mcp.WithNumber("face_x", mcp.Description("X of a point on a face, in mm.")),
		mcp.WithNumber("face_y", mcp.Description("Y of a point on a face, in mm.")),
		mcp.WithNumber("face_z", mcp.Description("Z of a point on a face, in mm.")),
	)
}

func (t *RefPointTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := orchestrator.RefPoint{
		At:     optPointMM(req, "x", "y", "z"),
		Edge:   optPointMM(req, "edge_x", "edge_y", "edge_z"),
		Face:   optPointMM(req, "face_x", "face_y", "face_z"),
		OnEdge: boolArg(req, "on_edge", false),
	}
	if cmd.At == nil && cmd.Edge == nil && cmd.Face == nil {
		return mcp.NewToolResultError("provide coordinates, an edge point, or a face point"), nil
	}
	return t.runner.run(ctx, cmd)
}

// CoordinateSystemTool creates a coordinate system at a vertex.
type CoordinateSystemTool struct{ runner *Runner }

func NewCoordinateSystemTool(r *Runner) *CoordinateSystemTool {
	return &CoordinateSystemTool{runner: r}
}

func (t *CoordinateSystemTool) Definition() mcp.Tool {
	return mcp.NewTool("coordinate_system",
		mcp.WithDescription(
			"Create a coordinate system at the model vertex nearest the "+
				"origin point, with optional X and Y axis directions taken "+
				"from the edges nearest `x_axis_*` and `y_axis_*`. All "+
				"coordinates in mm.",
		),
		mcp.WithNumber("origin_x", mcp.Required(), mcp.Description("X of the origin vertex, in mm.")),
		mcp.WithNumber("origin_y", mcp.Required(), mcp.Description("Y of the origin vertex, in mm.")),
		mcp.WithNumber("origin_z", mcp.Required(), mcp.Description("Z of the origin vertex, in mm.")),
		mcp.WithNumber("x_axis_x", mcp.Description("X of a point on the X-axis edge, in mm.")),
		mcp.WithNumber("x_axis_y", mcp.Description("Y of a point on the X-axis edge, in mm.")),
		mcp.WithNumber("x_axis_z", mcp.Description("Z of a point on the X-axis edge, in mm.")),
		mcp.WithNumber("y_axis_x", mcp.Description("X of a point on the Y-axis edge, in mm.")),
		mcp.WithNumber("y_axis_y", mcp.Description("Y of a point on the Y-axis edge, in mm.")),
		mcp.WithNumber("y_axis_z", mcp.Description("Z of a point on the Y-axis edge, in mm.")),
	)
}

func (t *CoordinateSystemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	origin := optPointMM(req, "origin_x", "origin_y", "origin_z")
	if origin == nil {
		return mcp.NewToolResultError("`origin_x`, `origin_y` and `origin_z` are required"), nil
	}
	return t.runner.run(ctx, orchestrator.CoordinateSystem{
		Origin:    *origin,
		XAxisEdge: optPointMM(req, "x_axis_x", "x_axis_y", "x_axis_z"),
		YAxisEdge: optPointMM(req, "y_axis_x", "y_axis_y", "y_axis_z"),
	})
}
