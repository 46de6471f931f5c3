// Package engine defines the boundary to the external CAD application.
//
// The application is an opaque collaborator addressed by three primitives:
// select the nearest entity of a kind to a point, select an entity by name,
// and invoke a feature operation against the currently selected set.
// Selection calls report success per entity; feature calls return a handle
// or nil. The engine never exposes stable entity handles, so callers hold
// Locators (see internal/locator) rather than references.
//
// Concrete implementations: sldworks (COM automation against a live
// SolidWorks instance, Windows only) and enginetest (in-memory fake).
package engine

import (
	"errors"

	"github.com/parametriclabs/swmcp/internal/geom"
)

// EntityKind is the engine-side type tag used when picking entities.
// Values mirror the automation interface's selection type strings.
type EntityKind string

const (
	KindFace          EntityKind = "FACE"
	KindEdge          EntityKind = "EDGE"
	KindVertex        EntityKind = "VERTEX"
	KindSketchSegment EntityKind = "SKETCHSEGMENT"
	KindPlane         EntityKind = "DATUMPLANE"
	KindAxis          EntityKind = "AXIS"
	KindSketch        EntityKind = "SKETCH"
	KindBodyFeature   EntityKind = "BODYFEATURE"
	KindDimension     EntityKind = "DIMENSION"
)

// Mark is the numeric role tag attached to a selected entity. The engine
// passes it through to the feature call, which interprets it per operation
// (profile vs path, direction 1 vs 2, seed vs mirror plane).
type Mark int

// Mark conventions carried over from the automation interface.
const (
	MarkNone       Mark = 0
	MarkProfile    Mark = 1 // loft/boundary profiles, pattern direction 1, mirrored features
	MarkDirection2 Mark = 2 // pattern direction 2, boundary guide curves
	MarkPath       Mark = 4 // sweep path, pattern seed features, mirror plane
)

// ErrConnectionLost reports that the external application process is gone.
// It is the only fatal condition in the protocol; everything else is
// reported to the caller and the session continues.
var ErrConnectionLost = errors.New("engine: connection to external application lost")

// ErrNoDocument reports that no document is open in the external
// application. The orchestrator maps it to the NO_ACTIVE_DOCUMENT fault.
var ErrNoDocument = errors.New("engine: no active document")

// FeatureInfo is one entry of the ordered feature history, oldest first.
type FeatureInfo struct {
	Name     string
	TypeName string // engine type tag, e.g. "ProfileFeature" for sketches
}

// SurfaceType classifies the underlying surface of a body face.
type SurfaceType int

const (
	SurfaceUnknown SurfaceType = iota
	SurfacePlane
	SurfaceCylinder
	SurfaceCone
	SurfaceSphere
	SurfaceTorus
	SurfaceSpline
)

func (t SurfaceType) String() string {
	switch t {
	case SurfacePlane:
		return "Planar"
	case SurfaceCylinder:
		return "Cylindrical"
	case SurfaceCone:
		return "Conical"
	case SurfaceSphere:
		return "Spherical"
	case SurfaceTorus:
		return "Toroidal"
	case SurfaceSpline:
		return "BSpline"
	}
	return "Unknown"
}

// CurveType classifies the underlying curve of a body edge. Ellipses and
// splines report CurveOther.
type CurveType int

const (
	CurveOther CurveType = iota
	CurveLine
	CurveArc
	CurveCircle
)

func (t CurveType) String() string {
	switch t {
	case CurveLine:
		return "Line"
	case CurveArc:
		return "Arc"
	case CurveCircle:
		return "Circle"
	}
	return "Curve"
}

// FaceGeometry describes one face of the solid body. Sample is a point on
// the face usable as a SelectByPoint pick; upstream agents derive their
// pick points from it. Lengths are meters.
type FaceGeometry struct {
	Surface   SurfaceType
	Area      float64      // square meters
	Normal    geom.Point3D // planes: unit normal; cylinders and cones: axis direction
	Radius    float64      // cylinders and spheres; zero otherwise
	Sample    geom.Point3D
	EdgeCount int
}

// EdgeGeometry describes one edge of the solid body. Mid is a point on
// the edge usable as a SelectByPoint pick. Start and End are zero for
// closed edges.
type EdgeGeometry struct {
	Curve  CurveType
	Closed bool
	Start  geom.Point3D
	End    geom.Point3D
	Mid    geom.Point3D
	Length float64
}

// Handle is an opaque reference to a feature the engine just created.
// A nil Handle from BuildFeature means the engine rejected the operation.
type Handle interface {
	Name() string
}

// Engine is the connection-level surface of the external application.
type Engine interface {
	// Connect attaches to a running instance or launches one.
	Connect() error
	// ActiveDocument returns the current document, or ErrNoDocument.
	ActiveDocument() (Document, error)
	// NewPart creates and activates a new part document.
	NewPart() (Document, error)
}

// Document is the per-document automation surface. The ambient selection
// set lives here: it persists across calls until explicitly cleared.
type Document interface {
	// ClearSelection unconditionally empties the ambient selection set.
	ClearSelection() error

	// SelectByPoint picks the entity of the given kind nearest to pt,
	// within the engine's fixed tolerance, tagging it with mark.
	// With append false the pick replaces the selection set.
	// A miss returns (false, nil); only transport loss is an error.
	SelectByPoint(kind EntityKind, pt geom.Point3D, mark Mark, append bool) (bool, error)

	// SelectByName picks the named entity of the given kind from the
	// feature history. Exact, case-sensitive. A miss returns (false, nil).
	SelectByName(name string, kind EntityKind, mark Mark, append bool) (bool, error)

	// ToggleSketchEdit enters sketch edit mode on the selected plane or
	// face, or finalizes the sketch being edited. The engine exposes one
	// toggle for both directions.
	ToggleSketchEdit() error

	// Draw calls. Coordinates in meters on the active sketch plane.
	CreateCornerRectangle(x1, y1, x2, y2 float64) error
	CreateCircleByRadius(cx, cy, radius float64) error
	CreateLine(x1, y1, x2, y2 float64) error
	CreateCenterline(x1, y1, x2, y2 float64) error

	// BuildFeature invokes the feature operation described by spec against
	// the currently selected set. A nil Handle with a nil error means the
	// engine rejected the operation.
	BuildFeature(spec FeatureSpec) (Handle, error)

	// Features returns the feature history in creation order.
	Features() ([]FeatureInfo, error)

	// Geometry queries over the solid body. They read entity coordinates
	// so the agent can compute the pick points SelectByPoint needs; they
	// never modify the model. ok false from BodyBox means no solid body
	// exists yet, in which case the face and edge queries return empty.
	BodyBox() (min, max geom.Point3D, ok bool, err error)
	BodyFaces() ([]FaceGeometry, error)
	BodyEdges() ([]EdgeGeometry, error)

	// FaceAt returns the geometry of the face nearest pt together with
	// its bounding edges. ok false reports a miss. The ambient selection
	// set is left empty afterwards.
	FaceAt(pt geom.Point3D) (FaceGeometry, []EdgeGeometry, bool, error)

	// ZoomToFit reframes the view after a successful feature.
	ZoomToFit() error

	// DialogVisible reports whether a blocking modal prompt is up.
	// DismissDialog posts a dismiss action for it. Used only by the
	// orchestrator's bounded dialog watcher around dialog-prone calls.
	DialogVisible() bool
	DismissDialog() error
}

// FeatureOp names a feature operation. The parameter mapping onto the
// engine's native call is the adapter's concern; the orchestrator only
// assembles the selection set and fills the spec.
type FeatureOp int

const (
	OpExtrude FeatureOp = iota
	OpCutExtrude
	OpRevolve
	OpCutRevolve
	OpSweep
	OpCutSweep
	OpLoft
	OpCutLoft
	OpBoundaryBoss
	OpFillet
	OpChamfer
	OpShell
	OpMirror
	OpLinearPattern
	OpCircularPattern
	OpRefPlane
	OpRefAxis
	OpRefPoint
	OpCoordinateSystem
	OpHoleWizard
)

// String returns the operation name used in logs and the journal.
func (op FeatureOp) String() string {
	switch op {
	case OpExtrude:
		return "extrude"
	case OpCutExtrude:
		return "cut_extrude"
	case OpRevolve:
		return "revolve"
	case OpCutRevolve:
		return "cut_revolve"
	case OpSweep:
		return "sweep"
	case OpCutSweep:
		return "cut_sweep"
	case OpLoft:
		return "loft"
	case OpCutLoft:
		return "cut_loft"
	case OpBoundaryBoss:
		return "boundary_boss"
	case OpFillet:
		return "fillet"
	case OpChamfer:
		return "chamfer"
	case OpShell:
		return "shell"
	case OpMirror:
		return "mirror"
	case OpLinearPattern:
		return "linear_pattern"
	case OpCircularPattern:
		return "circular_pattern"
	case OpRefPlane:
		return "ref_plane"
	case OpRefAxis:
		return "ref_axis"
	case OpRefPoint:
		return "ref_point"
	case OpCoordinateSystem:
		return "coordinate_system"
	case OpHoleWizard:
		return "hole_wizard"
	}
	return "unknown"
}

// RefPlaneConstraint selects how a reference plane is constrained.
type RefPlaneConstraint int

const (
	RefPlaneOffset RefPlaneConstraint = iota
	RefPlaneAngle
)

// RefPointConstraint selects how a reference point is located. Except
// for RefPointCoordinates, the location comes from the selected entity.
type RefPointConstraint int

const (
	RefPointCoordinates RefPointConstraint = iota
	RefPointArcCenter
	RefPointFaceCenter
	RefPointOnEdge
)

// FeatureSpec carries the numeric parameters of a feature call. Lengths
// are meters, angles radians; conversion happened at the tool boundary.
// Only the fields relevant to Op are read by the adapter.
type FeatureSpec struct {
	Op FeatureOp

	Depth     float64
	Angle     float64
	Radius    float64
	Distance  float64
	Distance2 float64
	Thickness float64

	Reverse      bool
	Outward      bool
	EqualSpacing bool

	Count1   int
	Count2   int
	Spacing1 float64
	Spacing2 float64
	UseDir2  bool

	ChamferType int

	PlaneConstraint RefPlaneConstraint

	PointConstraint RefPointConstraint
	Point           geom.Point3D // RefPointCoordinates location

	HoleType         int
	HoleStandard     int
	HoleEndCondition int
	HoleSize         string
}
