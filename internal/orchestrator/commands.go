package orchestrator

import (
	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/geom"
	"github.com/parametriclabs/swmcp/internal/sketch"
)

// Command is the closed set of operations the orchestrator executes. The
// tool layer builds commands from upstream argument maps, converting
// units at that boundary; everything below is meters and radians.
//
// The set is sealed: Execute matches exhaustively and an unhandled
// command type is a programmer error, not an upstream input error.
type Command interface {
	isCommand()
	// Name is the journal/log identifier of the command.
	Name() string
}

// NewPart creates a fresh part document and resets session state.
type NewPart struct{}

// OpenSketch opens a sketch on a named reference plane, or on the solid
// face nearest FacePoint when it is set.
type OpenSketch struct {
	Plane     string
	FacePoint *geom.Point3D
}

// DrawRectangle draws a rectangle in the active sketch. When Corners is
// set it supplies the size (the original corner form contributes extent
// only; position still follows the hints).
type DrawRectangle struct {
	Width   float64
	Height  float64
	Corners *[4]float64 // x1, y1, x2, y2
	Hints   sketch.PositionHints
}

// DrawCircle draws a circle in the active sketch.
type DrawCircle struct {
	Radius float64
	Hints  sketch.PositionHints
}

// DrawLine draws a tracked line segment in the active sketch.
type DrawLine struct {
	X1, Y1, X2, Y2 float64
}

// DrawCenterline draws a construction centerline. Construction-only:
// never recorded by the shape tracker.
type DrawCenterline struct {
	X1, Y1, X2, Y2 float64
}

// LastShapeInfo reports the most recently tracked shape.
type LastShapeInfo struct{}

// CloseSketch exits sketch edit mode and re-verifies the remembered
// sketch name against the feature history.
type CloseSketch struct{}

// Extrude extrudes the current sketch. Cut removes material instead of
// adding it.
type Extrude struct {
	Depth   float64
	Reverse bool
	Cut     bool
}

// Revolve revolves the current sketch around its centerline axis.
type Revolve struct {
	Angle   float64 // radians
	Reverse bool
	Cut     bool
}

// Sweep sweeps a profile sketch along a path sketch.
type Sweep struct {
	Profile string
	Path    string
	Cut     bool
}

// Loft blends two or more profile sketches in order.
type Loft struct {
	Profiles []string
	Cut      bool
}

// BoundaryBoss builds a boundary feature from direction-1 profiles and
// optional direction-2 guide curves.
type BoundaryBoss struct {
	Profiles []string
	Guides   []string
}

// Fillet rounds the edges nearest the given points.
type Fillet struct {
	Radius float64
	Edges  []geom.Point3D
}

// Chamfer bevels the edges nearest the given points.
type Chamfer struct {
	Distance  float64
	Distance2 float64
	Angle     float64 // radians
	Type      int
	Edges     []geom.Point3D
}

// Shell hollows the body, removing the faces nearest the given points.
type Shell struct {
	Thickness float64
	Outward   bool
	Faces     []geom.Point3D
}

// Mirror mirrors features across a named plane or a picked planar face.
type Mirror struct {
	Plane     string
	FacePoint *geom.Point3D
	Features  []string
}

// LinearPattern patterns seed features along one or two edge directions.
type LinearPattern struct {
	Direction1 geom.Point3D
	Spacing1   float64
	Count1     int
	Reverse1   bool
	Direction2 *geom.Point3D
	Spacing2   float64
	Count2     int
	Reverse2   bool
	Features   []string
}

// CircularPattern patterns seed features around a named axis or the axis
// edge nearest AxisEdge.
type CircularPattern struct {
	Axis         string
	AxisEdge     *geom.Point3D
	Count        int
	Angle        float64 // radians, total
	EqualSpacing bool
	Features     []string
}

// RefPlaneOffset creates a reference plane offset from a named plane.
type RefPlaneOffset struct {
	Reference string
	Offset    float64
	Reverse   bool
}

// RefPlaneAngle creates a reference plane at an angle to a named plane,
// hinged on the edge nearest Edge.
type RefPlaneAngle struct {
	Reference string
	Angle     float64 // radians
	Reverse   bool
	Edge      *geom.Point3D
}

// RefAxis creates a reference axis from two vertices, a cylindrical
// face, or an edge. Exactly one form is set.
type RefAxis struct {
	Point1 *geom.Point3D
	Point2 *geom.Point3D
	Face   *geom.Point3D
	Edge   *geom.Point3D
}

// RefPoint creates a reference point at absolute coordinates, at the
// center of the arc nearest Edge, at the center of the face nearest
// Face, or on the edge nearest Edge when OnEdge is set. Exactly one
// form is set.
type RefPoint struct {
	At     *geom.Point3D
	Edge   *geom.Point3D
	Face   *geom.Point3D
	OnEdge bool
}

// CoordinateSystem creates a coordinate system at the vertex nearest
// Origin, with optional axis directions taken from the edges nearest
// XAxisEdge and YAxisEdge.
type CoordinateSystem struct {
	Origin    geom.Point3D
	XAxisEdge *geom.Point3D
	YAxisEdge *geom.Point3D
}

// HoleWizard places a wizard hole on the face nearest Face. The engine
// call is dialog-prone; Execute runs it under the bounded dialog watcher.
type HoleWizard struct {
	Type         int
	Standard     int
	Size         string
	EndCondition int
	Depth        float64
	Face         geom.Point3D
}

// ListFeatures reports the feature history, oldest first. This is the
// recovery path after a process restart: the session can be rebuilt from
// introspection alone.
type ListFeatures struct{}

// BodyInfo summarizes the solid body: bounding box, face, edge and
// vertex counts.
type BodyInfo struct{}

// ListFaces enumerates body faces with pickable sample points, optionally
// filtered by surface type.
type ListFaces struct {
	Surface *engine.SurfaceType
}

// ListEdges enumerates body edges with pickable midpoints, optionally
// filtered by curve type.
type ListEdges struct {
	Curve *engine.CurveType
}

// FaceEdges reports the face nearest Point together with its bounding
// edges.
type FaceEdges struct {
	Point geom.Point3D
}

// ListVertices lists the body's unique vertex coordinates, sorted.
type ListVertices struct{}

func (NewPart) isCommand()          {}
func (OpenSketch) isCommand()       {}
func (DrawRectangle) isCommand()    {}
func (DrawCircle) isCommand()       {}
func (DrawLine) isCommand()         {}
func (DrawCenterline) isCommand()   {}
func (LastShapeInfo) isCommand()    {}
func (CloseSketch) isCommand()      {}
func (Extrude) isCommand()          {}
func (Revolve) isCommand()          {}
func (Sweep) isCommand()            {}
func (Loft) isCommand()             {}
func (BoundaryBoss) isCommand()     {}
func (Fillet) isCommand()           {}
func (Chamfer) isCommand()          {}
func (Shell) isCommand()            {}
func (Mirror) isCommand()           {}
func (LinearPattern) isCommand()    {}
func (CircularPattern) isCommand()  {}
func (RefPlaneOffset) isCommand()   {}
func (RefPlaneAngle) isCommand()    {}
func (RefAxis) isCommand()          {}
func (RefPoint) isCommand()         {}
func (CoordinateSystem) isCommand() {}
func (HoleWizard) isCommand()       {}
func (ListFeatures) isCommand()     {}
func (BodyInfo) isCommand()         {}
func (ListFaces) isCommand()        {}
func (ListEdges) isCommand()        {}
func (FaceEdges) isCommand()        {}
func (ListVertices) isCommand()     {}

func (NewPart) Name() string        { return "new_part" }
func (OpenSketch) Name() string     { return "create_sketch" }
func (DrawRectangle) Name() string  { return "sketch_rectangle" }
func (DrawCircle) Name() string     { return "sketch_circle" }
func (DrawLine) Name() string       { return "sketch_line" }
func (DrawCenterline) Name() string { return "sketch_centerline" }
func (LastShapeInfo) Name() string  { return "get_last_shape_info" }
func (CloseSketch) Name() string    { return "exit_sketch" }

func (c Extrude) Name() string {
	if c.Cut {
		return "cut_extrude"
	}
	return "extrude"
}

func (c Revolve) Name() string {
	if c.Cut {
		return "cut_revolve"
	}
	return "revolve"
}

func (c Sweep) Name() string {
	if c.Cut {
		return "cut_sweep"
	}
	return "sweep"
}

func (c Loft) Name() string {
	if c.Cut {
		return "cut_loft"
	}
	return "loft"
}

func (BoundaryBoss) Name() string     { return "boundary_boss" }
func (Fillet) Name() string           { return "fillet" }
func (Chamfer) Name() string          { return "chamfer" }
func (Shell) Name() string            { return "shell" }
func (Mirror) Name() string           { return "mirror" }
func (LinearPattern) Name() string    { return "linear_pattern" }
func (CircularPattern) Name() string  { return "circular_pattern" }
func (RefPlaneOffset) Name() string   { return "ref_plane" }
func (RefPlaneAngle) Name() string    { return "ref_plane" }
func (RefAxis) Name() string          { return "ref_axis" }
func (RefPoint) Name() string         { return "ref_point" }
func (CoordinateSystem) Name() string { return "coordinate_system" }
func (HoleWizard) Name() string       { return "hole_wizard" }
func (ListFeatures) Name() string     { return "list_features" }
func (BodyInfo) Name() string         { return "get_body_info" }
func (ListFaces) Name() string        { return "get_faces" }
func (ListEdges) Name() string        { return "get_edges" }
func (FaceEdges) Name() string        { return "get_face_edges" }
func (ListVertices) Name() string     { return "get_vertices" }
