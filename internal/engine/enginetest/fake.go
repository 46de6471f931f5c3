// Package enginetest provides an in-memory fake of the engine interfaces
// for exercising the selection protocol without a live CAD process.
//
// The fake is scripted: tests declare which entities exist (by kind and
// point, or by history name) and which feature calls the engine should
// reject. Every selection replay and feature call is recorded in order so
// tests can assert on the exact sequence the orchestrator produced.
package enginetest

import (
	"fmt"
	"math"
	"sync"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/geom"
)

// PointTolerance is the fake's nearest-entity pick tolerance in meters.
// Kept small and fixed, like the real engine's.
const PointTolerance = 0.001

// Selection is one recorded selection replay.
type Selection struct {
	Kind   engine.EntityKind
	Name   string // empty for point picks
	Point  geom.Point3D
	Mark   engine.Mark
	Append bool
}

// FeatureCall is one recorded BuildFeature invocation together with the
// selection set that was active when it ran.
type FeatureCall struct {
	Spec     engine.FeatureSpec
	Selected []Selection
}

// fakeHandle is the handle returned for accepted feature calls.
type fakeHandle struct{ name string }

func (h fakeHandle) Name() string { return h.name }

// Fake implements engine.Engine and engine.Document in one object, the
// way a single-document test session uses them.
type Fake struct {
	mu sync.Mutex

	// Scripted entity space.
	pointEntities map[engine.EntityKind][]geom.Point3D
	namedEntities map[string]engine.EntityKind
	history       []engine.FeatureInfo
	faces         []engine.FaceGeometry
	faceEdges     [][]engine.EdgeGeometry
	bodyEdges     []engine.EdgeGeometry
	boxMin        geom.Point3D
	boxMax        geom.Point3D
	hasBox        bool

	// Scripted behavior.
	RejectOps     map[engine.FeatureOp]bool // ops BuildFeature rejects
	FailDraw      bool                      // draw calls fail without side effects
	FailClear     bool                      // ClearSelection fails, leaving the set intact
	DialogAfter   int                       // BuildFeature calls before a dialog appears (0 = never)
	Disconnected  bool                      // every call returns ErrConnectionLost
	hasDocument   bool
	featureSerial map[string]int

	// Observed behavior.
	selected      []Selection // current ambient selection set
	SelectionLog  []Selection // every successful selection ever replayed
	ClearCount    int
	FeatureCalls  []FeatureCall
	DrawCalls     []string
	SketchToggles int
	Dismissals    int
	dialogUp      bool
	buildCount    int
}

// New returns a Fake with an open part document and the three standard
// reference planes in its history.
func New() *Fake {
	f := &Fake{
		pointEntities: make(map[engine.EntityKind][]geom.Point3D),
		namedEntities: make(map[string]engine.EntityKind),
		RejectOps:     make(map[engine.FeatureOp]bool),
		featureSerial: make(map[string]int),
		hasDocument:   true,
	}
	for _, plane := range []string{"Front Plane", "Top Plane", "Right Plane"} {
		f.AddNamed(plane, engine.KindPlane, "RefPlane")
	}
	return f
}

// NewEmpty returns a Fake with no open document.
func NewEmpty() *Fake {
	f := New()
	f.hasDocument = false
	return f
}

// AddEntity scripts a point-pickable entity of the given kind at pt.
func (f *Fake) AddEntity(kind engine.EntityKind, pt geom.Point3D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pointEntities[kind] = append(f.pointEntities[kind], pt)
}

// AddNamed scripts a name-pickable entity and appends it to the feature
// history with the given type tag.
func (f *Fake) AddNamed(name string, kind engine.EntityKind, typeName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.namedEntities[name] = kind
	f.history = append(f.history, engine.FeatureInfo{Name: name, TypeName: typeName})
}

// AddFace scripts a body face with its bounding edges. The face's sample
// point becomes point-pickable as a FACE, so the coordinates the queries
// report really resolve. Bounding edges serve FaceAt only; script the
// body-wide edge list with AddEdge.
func (f *Fake) AddFace(face engine.FaceGeometry, edges ...engine.EdgeGeometry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face.EdgeCount == 0 {
		face.EdgeCount = len(edges)
	}
	f.faces = append(f.faces, face)
	f.faceEdges = append(f.faceEdges, edges)
	f.pointEntities[engine.KindFace] = append(f.pointEntities[engine.KindFace], face.Sample)
}

// AddEdge scripts a body edge. Its midpoint becomes point-pickable as an
// EDGE, and the endpoints of open edges as VERTEX entities.
func (f *Fake) AddEdge(edge engine.EdgeGeometry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodyEdges = append(f.bodyEdges, edge)
	f.pointEntities[engine.KindEdge] = append(f.pointEntities[engine.KindEdge], edge.Mid)
	if !edge.Closed {
		f.pointEntities[engine.KindVertex] = append(f.pointEntities[engine.KindVertex], edge.Start, edge.End)
	}
}

// SetBodyBox scripts the solid body's bounding box.
func (f *Fake) SetBodyBox(min, max geom.Point3D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boxMin, f.boxMax, f.hasBox = min, max, true
}

// Selected returns a copy of the current ambient selection set.
func (f *Fake) Selected() []Selection {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Selection, len(f.selected))
	copy(out, f.selected)
	return out
}

// --- engine.Engine ---

func (f *Fake) Connect() error {
	if f.Disconnected {
		return engine.ErrConnectionLost
	}
	return nil
}

func (f *Fake) ActiveDocument() (engine.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return nil, engine.ErrConnectionLost
	}
	if !f.hasDocument {
		return nil, engine.ErrNoDocument
	}
	return f, nil
}

func (f *Fake) NewPart() (engine.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return nil, engine.ErrConnectionLost
	}
	f.hasDocument = true
	f.selected = nil
	f.history = nil
	f.faces = nil
	f.faceEdges = nil
	f.bodyEdges = nil
	f.hasBox = false
	f.namedEntities = make(map[string]engine.EntityKind)
	for _, plane := range []string{"Front Plane", "Top Plane", "Right Plane"} {
		f.namedEntities[plane] = engine.KindPlane
		f.history = append(f.history, engine.FeatureInfo{Name: plane, TypeName: "RefPlane"})
	}
	return f, nil
}

// --- engine.Document ---

func (f *Fake) ClearSelection() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return engine.ErrConnectionLost
	}
	if f.FailClear {
		return fmt.Errorf("enginetest: clear rejected by script")
	}
	f.selected = nil
	f.ClearCount++
	return nil
}

func (f *Fake) SelectByPoint(kind engine.EntityKind, pt geom.Point3D, mark engine.Mark, appendSel bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return false, engine.ErrConnectionLost
	}
	if !f.nearEntity(kind, pt) {
		return false, nil
	}
	f.record(Selection{Kind: kind, Point: pt, Mark: mark, Append: appendSel})
	return true, nil
}

func (f *Fake) SelectByName(name string, kind engine.EntityKind, mark engine.Mark, appendSel bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return false, engine.ErrConnectionLost
	}
	if f.namedEntities[name] != kind {
		return false, nil
	}
	f.record(Selection{Kind: kind, Name: name, Mark: mark, Append: appendSel})
	return true, nil
}

func (f *Fake) record(sel Selection) {
	if !sel.Append {
		f.selected = nil
	}
	f.selected = append(f.selected, sel)
	f.SelectionLog = append(f.SelectionLog, sel)
}

func (f *Fake) ToggleSketchEdit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return engine.ErrConnectionLost
	}
	f.SketchToggles++
	// Entering edit mode on an odd toggle creates the sketch's history
	// entry, the way the real engine names sketches as they are opened.
	if f.SketchToggles%2 == 1 {
		f.featureSerial["Sketch"]++
		name := fmt.Sprintf("Sketch%d", f.featureSerial["Sketch"])
		f.namedEntities[name] = engine.KindSketch
		f.history = append(f.history, engine.FeatureInfo{Name: name, TypeName: "ProfileFeature"})
	}
	return nil
}

func (f *Fake) draw(desc string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return engine.ErrConnectionLost
	}
	if f.FailDraw {
		return fmt.Errorf("enginetest: draw call rejected by script")
	}
	f.DrawCalls = append(f.DrawCalls, desc)
	return nil
}

func (f *Fake) CreateCornerRectangle(x1, y1, x2, y2 float64) error {
	return f.draw(fmt.Sprintf("rectangle(%.4f,%.4f,%.4f,%.4f)", x1, y1, x2, y2))
}

func (f *Fake) CreateCircleByRadius(cx, cy, radius float64) error {
	return f.draw(fmt.Sprintf("circle(%.4f,%.4f,r=%.4f)", cx, cy, radius))
}

func (f *Fake) CreateLine(x1, y1, x2, y2 float64) error {
	return f.draw(fmt.Sprintf("line(%.4f,%.4f,%.4f,%.4f)", x1, y1, x2, y2))
}

func (f *Fake) CreateCenterline(x1, y1, x2, y2 float64) error {
	return f.draw(fmt.Sprintf("centerline(%.4f,%.4f,%.4f,%.4f)", x1, y1, x2, y2))
}

func (f *Fake) BuildFeature(spec engine.FeatureSpec) (engine.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return nil, engine.ErrConnectionLost
	}
	f.buildCount++
	if f.DialogAfter > 0 && f.buildCount >= f.DialogAfter {
		f.dialogUp = true
	}
	selected := make([]Selection, len(f.selected))
	copy(selected, f.selected)
	f.FeatureCalls = append(f.FeatureCalls, FeatureCall{Spec: spec, Selected: selected})
	if f.RejectOps[spec.Op] {
		return nil, nil
	}
	base := featureBaseName(spec.Op)
	f.featureSerial[base]++
	name := fmt.Sprintf("%s%d", base, f.featureSerial[base])
	typeName, kind := base, engine.KindBodyFeature
	switch spec.Op {
	case engine.OpRefPlane:
		typeName, kind = "RefPlane", engine.KindPlane
	case engine.OpRefAxis:
		typeName, kind = "RefAxis", engine.KindAxis
	case engine.OpRefPoint:
		typeName = "RefPoint"
	case engine.OpCoordinateSystem:
		typeName = "CoordSys"
	}
	f.history = append(f.history, engine.FeatureInfo{Name: name, TypeName: typeName})
	f.namedEntities[name] = kind
	return fakeHandle{name: name}, nil
}

func (f *Fake) Features() ([]engine.FeatureInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return nil, engine.ErrConnectionLost
	}
	out := make([]engine.FeatureInfo, len(f.history))
	copy(out, f.history)
	return out, nil
}

func (f *Fake) BodyBox() (geom.Point3D, geom.Point3D, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return geom.Point3D{}, geom.Point3D{}, false, engine.ErrConnectionLost
	}
	return f.boxMin, f.boxMax, f.hasBox, nil
}

func (f *Fake) BodyFaces() ([]engine.FaceGeometry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return nil, engine.ErrConnectionLost
	}
	out := make([]engine.FaceGeometry, len(f.faces))
	copy(out, f.faces)
	return out, nil
}

func (f *Fake) BodyEdges() ([]engine.EdgeGeometry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return nil, engine.ErrConnectionLost
	}
	out := make([]engine.EdgeGeometry, len(f.bodyEdges))
	copy(out, f.bodyEdges)
	return out, nil
}

func (f *Fake) FaceAt(pt geom.Point3D) (engine.FaceGeometry, []engine.EdgeGeometry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Disconnected {
		return engine.FaceGeometry{}, nil, false, engine.ErrConnectionLost
	}
	for i, face := range f.faces {
		dx, dy, dz := face.Sample.X-pt.X, face.Sample.Y-pt.Y, face.Sample.Z-pt.Z
		if math.Sqrt(dx*dx+dy*dy+dz*dz) <= PointTolerance {
			edges := make([]engine.EdgeGeometry, len(f.faceEdges[i]))
			copy(edges, f.faceEdges[i])
			return face, edges, true, nil
		}
	}
	return engine.FaceGeometry{}, nil, false, nil
}

func (f *Fake) ZoomToFit() error { return nil }

func (f *Fake) DialogVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dialogUp
}

func (f *Fake) DismissDialog() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Dismissals++
	f.dialogUp = false
	return nil
}

func (f *Fake) nearEntity(kind engine.EntityKind, pt geom.Point3D) bool {
	for _, e := range f.pointEntities[kind] {
		dx, dy, dz := e.X-pt.X, e.Y-pt.Y, e.Z-pt.Z
		if math.Sqrt(dx*dx+dy*dy+dz*dz) <= PointTolerance {
			return true
		}
	}
	return false
}

// featureBaseName mirrors the engine's feature-tree naming per operation.
func featureBaseName(op engine.FeatureOp) string {
	switch op {
	case engine.OpExtrude:
		return "Boss-Extrude"
	case engine.OpCutExtrude:
		return "Cut-Extrude"
	case engine.OpRevolve:
		return "Revolve"
	case engine.OpCutRevolve:
		return "Cut-Revolve"
	case engine.OpSweep:
		return "Sweep"
	case engine.OpCutSweep:
		return "Cut-Sweep"
	case engine.OpLoft:
		return "Loft"
	case engine.OpCutLoft:
		return "Cut-Loft"
	case engine.OpBoundaryBoss:
		return "Boundary-Boss"
	case engine.OpFillet:
		return "Fillet"
	case engine.OpChamfer:
		return "Chamfer"
	case engine.OpShell:
		return "Shell"
	case engine.OpMirror:
		return "Mirror"
	case engine.OpLinearPattern:
		return "LPattern"
	case engine.OpCircularPattern:
		return "CirPattern"
	case engine.OpRefPlane:
		return "Plane"
	case engine.OpRefAxis:
		return "Axis"
	case engine.OpRefPoint:
		return "Point"
	case engine.OpCoordinateSystem:
		return "Coordinate System"
	case engine.OpHoleWizard:
		return "Hole"
	}
	return "Feature"
}
