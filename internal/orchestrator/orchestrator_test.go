package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/engine/enginetest"
	"github.com/parametriclabs/swmcp/internal/faults"
	"github.com/parametriclabs/swmcp/internal/geom"
	"github.com/parametriclabs/swmcp/internal/sketch"
)

func newTestSession(fake *enginetest.Fake) *Session {
	return NewSession(fake, Options{
		DialogTimeout: time.Second,
		DialogPoll:    time.Millisecond,
	})
}

// exec runs cmd and fails the test on any error.
func exec(t *testing.T, s *Session, cmd Command) Result {
	t.Helper()
	res, err := s.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("%s failed: %v", cmd.Name(), err)
	}
	return res
}

// execFault runs cmd and requires a recoverable fault with the given code.
func execFault(t *testing.T, s *Session, cmd Command, code faults.Code) *faults.Fault {
	t.Helper()
	_, err := s.Execute(context.Background(), cmd)
	var fault *faults.Fault
	if !errors.As(err, &fault) {
		t.Fatalf("%s should return a fault, got %v", cmd.Name(), err)
	}
	if fault.Code != code {
		t.Fatalf("%s fault code = %s, want %s", cmd.Name(), fault.Code, code)
	}
	return fault
}

// --- sketch lifecycle ---

func TestOpenSketchDefaultsToFrontPlane(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	res := exec(t, s, OpenSketch{})
	if !strings.Contains(res.Message, "Sketch1") {
		t.Errorf("message should name the new sketch: %s", res.Message)
	}
	if len(fake.SelectionLog) != 1 {
		t.Fatalf("selection log has %d entries, want 1", len(fake.SelectionLog))
	}
	sel := fake.SelectionLog[0]
	if sel.Name != "Front Plane" || sel.Kind != engine.KindPlane {
		t.Errorf("sketch plane pick = %+v, want Front Plane", sel)
	}
	if fake.SketchToggles != 1 {
		t.Errorf("SketchToggles = %d, want 1", fake.SketchToggles)
	}
}

func TestOpenSketchOnFace(t *testing.T) {
	fake := enginetest.New()
	pt := geom.Point3D{X: 0.025, Y: 0.025, Z: 0.05}
	fake.AddEntity(engine.KindFace, pt)
	s := newTestSession(fake)

	exec(t, s, OpenSketch{FacePoint: &pt})
	sel := fake.SelectionLog[0]
	if sel.Kind != engine.KindFace || sel.Point != pt {
		t.Errorf("face pick = %+v, want %v", sel, pt)
	}
}

func TestOpenSketchCreatesPartWhenNoneOpen(t *testing.T) {
	fake := enginetest.NewEmpty()
	s := newTestSession(fake)

	res := exec(t, s, OpenSketch{})
	if !strings.Contains(res.Message, "Created new part document") {
		t.Errorf("message should report the implicit part creation: %s", res.Message)
	}
}

func TestOpenSketchResetsTracker(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	exec(t, s, DrawRectangle{Width: 0.05, Height: 0.05})
	if res := exec(t, s, LastShapeInfo{}); !strings.Contains(res.Message, "rectangle") {
		t.Fatalf("shape should be tracked before the new sketch: %s", res.Message)
	}

	exec(t, s, OpenSketch{Plane: "Top"})
	res := exec(t, s, LastShapeInfo{})
	if !strings.Contains(res.Message, "No shapes tracked") {
		t.Errorf("a new sketch context must start with an empty tracker: %s", res.Message)
	}
}

func TestCloseSketchReverifiesName(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	res := exec(t, s, CloseSketch{})
	if res.Message != "Exited sketch 'Sketch1'" {
		t.Errorf("message = %q", res.Message)
	}
	if fake.SketchToggles != 2 {
		t.Errorf("SketchToggles = %d, want 2", fake.SketchToggles)
	}
}

func TestCloseSketchWithoutSketch(t *testing.T) {
	s := newTestSession(enginetest.New())
	execFault(t, s, CloseSketch{}, faults.CodeNoActiveDocument)
}

func TestNewPartResetsSessionState(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	exec(t, s, DrawCircle{Radius: 0.01})
	exec(t, s, NewPart{})

	if res := exec(t, s, LastShapeInfo{}); !strings.Contains(res.Message, "No shapes tracked") {
		t.Errorf("tracker should be empty after new_part: %s", res.Message)
	}
	execFault(t, s, DrawCircle{Radius: 0.01}, faults.CodeNoActiveDocument)
}

// --- drawing ---

func TestDrawWithoutSketchIsRecoverable(t *testing.T) {
	s := newTestSession(enginetest.New())
	fault := execFault(t, s, DrawRectangle{Width: 0.05, Height: 0.05}, faults.CodeNoActiveDocument)
	if !strings.Contains(fault.Message, "create_sketch") {
		t.Errorf("fault should steer toward create_sketch: %s", fault.Message)
	}
}

func TestDrawRectangleAtOrigin(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	exec(t, s, DrawRectangle{Width: 0.05, Height: 0.05})
	if len(fake.DrawCalls) != 1 {
		t.Fatalf("draw calls = %v", fake.DrawCalls)
	}
	if fake.DrawCalls[0] != "rectangle(-0.0250,-0.0250,0.0250,0.0250)" {
		t.Errorf("draw call = %s", fake.DrawCalls[0])
	}
}

func TestDrawRectangleSpacing(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	exec(t, s, DrawRectangle{Width: 0.05, Height: 0.05})

	spacing := 0.02
	exec(t, s, DrawRectangle{
		Width: 0.05, Height: 0.05,
		Hints: positionHintsWithSpacing(spacing),
	})
	// 25 + 20 + 25 = 70mm center, at the last shape's center Y.
	if fake.DrawCalls[1] != "rectangle(0.0450,-0.0250,0.0950,0.0250)" {
		t.Errorf("spaced draw call = %s", fake.DrawCalls[1])
	}
}

func TestDrawRectangleCornerFormSuppliesSizeOnly(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	// Corners 30mm apart, far from the origin. Only the extent carries
	// over; without hints the rectangle still lands on the origin.
	exec(t, s, DrawRectangle{Corners: &[4]float64{0.1, 0.1, 0.13, 0.12}})
	if fake.DrawCalls[0] != "rectangle(-0.0150,-0.0100,0.0150,0.0100)" {
		t.Errorf("corner-form draw call = %s", fake.DrawCalls[0])
	}
}

func TestDrawCircleAbsolute(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	cx, cy := 0.005, 0.009
	exec(t, s, DrawCircle{Radius: 0.01, Hints: hints(&cx, &cy, nil, nil, nil)})
	if fake.DrawCalls[0] != "circle(0.0050,0.0090,r=0.0100)" {
		t.Errorf("draw call = %s", fake.DrawCalls[0])
	}
}

func TestCenterlineIsNotTracked(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	exec(t, s, DrawCenterline{X1: 0, Y1: -0.05, X2: 0, Y2: 0.05})
	res := exec(t, s, LastShapeInfo{})
	if !strings.Contains(res.Message, "No shapes tracked") {
		t.Errorf("construction geometry must not be tracked: %s", res.Message)
	}
}

func TestDrawLineTracksExtent(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	exec(t, s, DrawLine{X1: 0.04, Y1: 0.01, X2: 0, Y2: 0.03})
	res := exec(t, s, LastShapeInfo{})
	if !strings.Contains(res.Message, "line") {
		t.Errorf("line should be tracked: %s", res.Message)
	}
	if !strings.Contains(res.Message, "(20.0, 20.0) mm") {
		t.Errorf("line center should be the extent midpoint: %s", res.Message)
	}
}

func TestFailedDrawDoesNotCorruptTracking(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	fake.FailDraw = true
	if _, err := s.Execute(context.Background(), DrawRectangle{Width: 0.05, Height: 0.05}); err == nil {
		t.Fatal("scripted draw failure should surface")
	}
	fake.FailDraw = false

	res := exec(t, s, LastShapeInfo{})
	if !strings.Contains(res.Message, "No shapes tracked") {
		t.Errorf("failed draw must not be recorded: %s", res.Message)
	}
}

// --- profile features ---

func TestExtrudeSelectsCurrentSketch(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	exec(t, s, DrawRectangle{Width: 0.05, Height: 0.05})
	res := exec(t, s, Extrude{Depth: 0.025})

	if res.Feature != "Boss-Extrude1" {
		t.Errorf("feature = %q, want Boss-Extrude1", res.Feature)
	}
	// The open sketch was finalized implicitly before the feature call.
	if fake.SketchToggles != 2 {
		t.Errorf("SketchToggles = %d, want 2", fake.SketchToggles)
	}
	if len(fake.FeatureCalls) != 1 {
		t.Fatalf("feature calls = %d, want 1", len(fake.FeatureCalls))
	}
	call := fake.FeatureCalls[0]
	if call.Spec.Op != engine.OpExtrude || call.Spec.Depth != 0.025 {
		t.Errorf("spec = %+v", call.Spec)
	}
	if len(call.Selected) != 1 || call.Selected[0].Name != "Sketch1" || call.Selected[0].Kind != engine.KindSketch {
		t.Errorf("active selection at feature time = %+v, want Sketch1", call.Selected)
	}

	// The session is idle again: drawing needs a fresh sketch.
	execFault(t, s, DrawCircle{Radius: 0.01}, faults.CodeNoActiveDocument)
}

func TestCutExtrudeOp(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	res := exec(t, s, Extrude{Depth: 0.01, Cut: true})
	if res.Feature != "Cut-Extrude1" {
		t.Errorf("feature = %q, want Cut-Extrude1", res.Feature)
	}
	if fake.FeatureCalls[0].Spec.Op != engine.OpCutExtrude {
		t.Errorf("op = %v, want cut extrude", fake.FeatureCalls[0].Spec.Op)
	}
}

func TestExtrudeRejectedIsRecoverable(t *testing.T) {
	fake := enginetest.New()
	fake.RejectOps[engine.OpExtrude] = true
	s := newTestSession(fake)

	exec(t, s, OpenSketch{})
	fault := execFault(t, s, Extrude{Depth: 0.01}, faults.CodeFeatureRejected)
	if !strings.Contains(fault.Message, "closed") {
		t.Errorf("rejection should hint at the closed-profile requirement: %s", fault.Message)
	}
}

func TestRevolveWithoutDocument(t *testing.T) {
	s := newTestSession(enginetest.NewEmpty())
	execFault(t, s, Revolve{Angle: 3.14}, faults.CodeNoActiveDocument)
}

func TestSweepMarks(t *testing.T) {
	fake := enginetest.New()
	fake.AddNamed("Sketch1", engine.KindSketch, "ProfileFeature")
	fake.AddNamed("Sketch2", engine.KindSketch, "ProfileFeature")
	s := newTestSession(fake)

	res := exec(t, s, Sweep{Profile: "Sketch1", Path: "Sketch2"})
	if res.Feature != "Sweep1" {
		t.Errorf("feature = %q, want Sweep1", res.Feature)
	}
	log := fake.SelectionLog
	if len(log) != 2 {
		t.Fatalf("selection log = %+v", log)
	}
	if log[0].Name != "Sketch1" || log[0].Mark != engine.MarkProfile || log[0].Append {
		t.Errorf("profile pick = %+v", log[0])
	}
	if log[1].Name != "Sketch2" || log[1].Mark != engine.MarkPath || !log[1].Append {
		t.Errorf("path pick = %+v", log[1])
	}
}

func TestLoftNeedsTwoProfiles(t *testing.T) {
	s := newTestSession(enginetest.New())
	execFault(t, s, Loft{Profiles: []string{"Sketch1"}}, faults.CodeInsufficientSelection)
}

func TestLoftProfileOrder(t *testing.T) {
	fake := enginetest.New()
	for _, n := range []string{"Sketch1", "Sketch2", "Sketch3"} {
		fake.AddNamed(n, engine.KindSketch, "ProfileFeature")
	}
	s := newTestSession(fake)

	exec(t, s, Loft{Profiles: []string{"Sketch3", "Sketch1", "Sketch2"}})
	log := fake.SelectionLog
	want := []string{"Sketch3", "Sketch1", "Sketch2"}
	if len(log) != len(want) {
		t.Fatalf("selection log = %+v", log)
	}
	for i, name := range want {
		if log[i].Name != name {
			t.Errorf("profile %d = %q, want %q (order is meaning)", i, log[i].Name, name)
		}
		if log[i].Mark != engine.MarkProfile {
			t.Errorf("profile %d mark = %d, want %d", i, log[i].Mark, engine.MarkProfile)
		}
	}
}

func TestBoundaryBossGuideMarks(t *testing.T) {
	fake := enginetest.New()
	for _, n := range []string{"Sketch1", "Sketch2", "Guide1"} {
		fake.AddNamed(n, engine.KindSketch, "ProfileFeature")
	}
	s := newTestSession(fake)

	exec(t, s, BoundaryBoss{Profiles: []string{"Sketch1", "Sketch2"}, Guides: []string{"Guide1"}})
	log := fake.SelectionLog
	if len(log) != 3 {
		t.Fatalf("selection log = %+v", log)
	}
	if log[2].Name != "Guide1" || log[2].Mark != engine.MarkDirection2 || !log[2].Append {
		t.Errorf("guide pick = %+v", log[2])
	}
}

// --- applied features ---

func TestFilletMissClearsSelection(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	fault := execFault(t, s, Fillet{
		Radius: 0.002,
		Edges:  []geom.Point3D{{X: 0.1, Y: 0.1, Z: 0.1}},
	}, faults.CodeLocatorNotFound)
	if !strings.Contains(fault.Message, "EDGE") {
		t.Errorf("fault should name the missed kind: %s", fault.Message)
	}
	if got := fake.Selected(); len(got) != 0 {
		t.Errorf("engine selection should be cleared after the miss: %v", got)
	}
	if len(fake.FeatureCalls) != 0 {
		t.Error("no feature call may follow a failed selection")
	}
}

func TestFilletEdgeMarks(t *testing.T) {
	fake := enginetest.New()
	e1 := geom.Point3D{X: 0.025, Y: 0.025, Z: 0}
	e2 := geom.Point3D{X: -0.025, Y: 0.025, Z: 0}
	fake.AddEntity(engine.KindEdge, e1)
	fake.AddEntity(engine.KindEdge, e2)
	s := newTestSession(fake)

	res := exec(t, s, Fillet{Radius: 0.002, Edges: []geom.Point3D{e1, e2}})
	if res.Feature != "Fillet1" {
		t.Errorf("feature = %q, want Fillet1", res.Feature)
	}
	for i, sel := range fake.SelectionLog {
		if sel.Mark != engine.MarkProfile {
			t.Errorf("edge %d mark = %d, want %d", i, sel.Mark, engine.MarkProfile)
		}
	}
}

func TestFilletNeedsEdges(t *testing.T) {
	s := newTestSession(enginetest.New())
	execFault(t, s, Fillet{Radius: 0.002}, faults.CodeInsufficientSelection)
}

func TestShellSpec(t *testing.T) {
	fake := enginetest.New()
	face := geom.Point3D{X: 0, Y: 0, Z: 0.05}
	fake.AddEntity(engine.KindFace, face)
	s := newTestSession(fake)

	exec(t, s, Shell{Thickness: 0.002, Outward: true, Faces: []geom.Point3D{face}})
	spec := fake.FeatureCalls[0].Spec
	if spec.Op != engine.OpShell || spec.Thickness != 0.002 || !spec.Outward {
		t.Errorf("spec = %+v", spec)
	}
}

// --- patterns and mirror ---

func TestMirrorMarks(t *testing.T) {
	fake := enginetest.New()
	fake.AddNamed("Boss-Extrude1", engine.KindBodyFeature, "Boss-Extrude")
	s := newTestSession(fake)

	exec(t, s, Mirror{Plane: "Front", Features: []string{"Boss-Extrude1"}})
	log := fake.SelectionLog
	if len(log) != 2 {
		t.Fatalf("selection log = %+v", log)
	}
	if log[0].Name != "Front Plane" || log[0].Mark != engine.MarkPath {
		t.Errorf("mirror plane pick = %+v", log[0])
	}
	if log[1].Name != "Boss-Extrude1" || log[1].Mark != engine.MarkProfile || !log[1].Append {
		t.Errorf("mirrored feature pick = %+v", log[1])
	}
}

func TestMirrorNeedsFeatures(t *testing.T) {
	s := newTestSession(enginetest.New())
	execFault(t, s, Mirror{Plane: "Front"}, faults.CodeInsufficientSelection)
}

func TestLinearPatternTwoDirections(t *testing.T) {
	fake := enginetest.New()
	d1 := geom.Point3D{X: 0.05, Y: 0, Z: 0}
	d2 := geom.Point3D{X: 0, Y: 0.05, Z: 0}
	fake.AddEntity(engine.KindEdge, d1)
	fake.AddEntity(engine.KindEdge, d2)
	fake.AddNamed("Cut-Extrude1", engine.KindBodyFeature, "Cut-Extrude")
	s := newTestSession(fake)

	exec(t, s, LinearPattern{
		Direction1: d1, Count1: 4, Spacing1: 0.015,
		Direction2: &d2, Count2: 3, Spacing2: 0.02,
		Features: []string{"Cut-Extrude1"},
	})
	log := fake.SelectionLog
	if len(log) != 3 {
		t.Fatalf("selection log = %+v", log)
	}
	if log[0].Mark != engine.MarkProfile || log[1].Mark != engine.MarkDirection2 || log[2].Mark != engine.MarkPath {
		t.Errorf("marks = %d, %d, %d; want 1, 2, 4", log[0].Mark, log[1].Mark, log[2].Mark)
	}
	spec := fake.FeatureCalls[0].Spec
	if !spec.UseDir2 || spec.Count1 != 4 || spec.Count2 != 3 {
		t.Errorf("spec = %+v", spec)
	}
}

func TestLinearPatternIgnoresDegenerateDirection2(t *testing.T) {
	fake := enginetest.New()
	d1 := geom.Point3D{X: 0.05, Y: 0, Z: 0}
	d2 := geom.Point3D{X: 0, Y: 0.05, Z: 0}
	fake.AddEntity(engine.KindEdge, d1)
	fake.AddEntity(engine.KindEdge, d2)
	fake.AddNamed("Cut-Extrude1", engine.KindBodyFeature, "Cut-Extrude")
	s := newTestSession(fake)

	// Count2 of 1 means no second direction even when an edge is given.
	exec(t, s, LinearPattern{
		Direction1: d1, Count1: 4, Spacing1: 0.015,
		Direction2: &d2, Count2: 1,
		Features: []string{"Cut-Extrude1"},
	})
	if len(fake.SelectionLog) != 2 {
		t.Fatalf("selection log = %+v", fake.SelectionLog)
	}
	if fake.FeatureCalls[0].Spec.UseDir2 {
		t.Error("UseDir2 should be false for a single-instance second direction")
	}
}

func TestCircularPatternByAxisName(t *testing.T) {
	fake := enginetest.New()
	fake.AddNamed("Axis1", engine.KindAxis, "RefAxis")
	fake.AddNamed("Boss-Extrude1", engine.KindBodyFeature, "Boss-Extrude")
	s := newTestSession(fake)

	exec(t, s, CircularPattern{
		Axis: "Axis1", Count: 6, Angle: 6.28, EqualSpacing: true,
		Features: []string{"Boss-Extrude1"},
	})
	log := fake.SelectionLog
	if log[0].Name != "Axis1" || log[0].Kind != engine.KindAxis || log[0].Mark != engine.MarkProfile {
		t.Errorf("axis pick = %+v", log[0])
	}
	if log[1].Mark != engine.MarkPath {
		t.Errorf("seed pick = %+v", log[1])
	}
	spec := fake.FeatureCalls[0].Spec
	if spec.Count1 != 6 || !spec.EqualSpacing {
		t.Errorf("spec = %+v", spec)
	}
}

func TestCircularPatternUnknownAxisListsCandidates(t *testing.T) {
	fake := enginetest.New()
	fake.AddNamed("Axis1", engine.KindAxis, "RefAxis")
	fake.AddNamed("Boss-Extrude1", engine.KindBodyFeature, "Boss-Extrude")
	s := newTestSession(fake)

	fault := execFault(t, s, CircularPattern{
		Axis: "Axis9", Count: 6,
		Features: []string{"Boss-Extrude1"},
	}, faults.CodeLocatorNotFound)
	if len(fault.Available) != 1 || fault.Available[0] != "Axis1" {
		t.Errorf("available axes = %v, want [Axis1]", fault.Available)
	}
}

// --- reference geometry ---

func TestRefPlaneOffset(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	res := exec(t, s, RefPlaneOffset{Reference: "Top", Offset: 0.03})
	if res.Feature != "Plane1" {
		t.Errorf("feature = %q, want Plane1", res.Feature)
	}
	spec := fake.FeatureCalls[0].Spec
	if spec.PlaneConstraint != engine.RefPlaneOffset || spec.Distance != 0.03 {
		t.Errorf("spec = %+v", spec)
	}
	// The new plane joins the history and is selectable by name.
	fault := execFault(t, s, RefPlaneOffset{Reference: "Nope"}, faults.CodeLocatorNotFound)
	found := false
	for _, name := range fault.Available {
		if name == "Plane1" {
			found = true
		}
	}
	if !found {
		t.Errorf("created plane should appear among candidates: %v", fault.Available)
	}
}

func TestRefPlaneAngleRequiresEdge(t *testing.T) {
	s := newTestSession(enginetest.New())
	execFault(t, s, RefPlaneAngle{Reference: "Front", Angle: 0.5}, faults.CodeInsufficientSelection)
}

func TestRefAxisForms(t *testing.T) {
	fake := enginetest.New()
	v1 := geom.Point3D{X: 0, Y: 0, Z: 0}
	v2 := geom.Point3D{X: 0, Y: 0, Z: 0.05}
	fake.AddEntity(engine.KindVertex, v1)
	fake.AddEntity(engine.KindVertex, v2)
	s := newTestSession(fake)

	res := exec(t, s, RefAxis{Point1: &v1, Point2: &v2})
	if res.Feature != "Axis1" {
		t.Errorf("feature = %q, want Axis1", res.Feature)
	}
	if len(fake.SelectionLog) != 2 {
		t.Fatalf("selection log = %+v", fake.SelectionLog)
	}

	execFault(t, s, RefAxis{}, faults.CodeInsufficientSelection)
}

// --- holes and dialogs ---

func TestHoleWizardSpec(t *testing.T) {
	fake := enginetest.New()
	face := geom.Point3D{X: 0.01, Y: 0.01, Z: 0.05}
	fake.AddEntity(engine.KindFace, face)
	s := newTestSession(fake)

	res := exec(t, s, HoleWizard{
		Type:         engine.HoleTypeCounterbore,
		Standard:     engine.HoleStandardAnsiMetric,
		Size:         "M6",
		EndCondition: engine.HoleEndThrough,
		Face:         face,
	})
	if res.Feature != "Hole1" {
		t.Errorf("feature = %q, want Hole1", res.Feature)
	}
	spec := fake.FeatureCalls[0].Spec
	if spec.HoleType != engine.HoleTypeCounterbore || spec.HoleSize != "M6" {
		t.Errorf("spec = %+v", spec)
	}
}

func TestWatchDialogsDismissesOnce(t *testing.T) {
	fake := enginetest.New()
	fake.DialogAfter = 1
	// Raise the scripted prompt.
	if _, err := fake.BuildFeature(engine.FeatureSpec{Op: engine.OpExtrude}); err != nil {
		t.Fatalf("BuildFeature: %v", err)
	}
	if !fake.DialogVisible() {
		t.Fatal("scripted dialog should be up")
	}

	s := newTestSession(fake)
	w := s.watchDialogs(context.Background(), fake)
	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not finish after dismissing the dialog")
	}
	w.stop()

	if fake.Dismissals != 1 {
		t.Errorf("Dismissals = %d, want exactly 1", fake.Dismissals)
	}
	if fake.DialogVisible() {
		t.Error("dialog should be down")
	}
}

func TestWatchDialogsTimesOut(t *testing.T) {
	fake := enginetest.New()
	s := NewSession(fake, Options{DialogTimeout: 20 * time.Millisecond, DialogPoll: time.Millisecond})

	w := s.watchDialogs(context.Background(), fake)
	select {
	case <-w.done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not exit on timeout")
	}
	w.stop()
	if fake.Dismissals != 0 {
		t.Errorf("Dismissals = %d, want 0", fake.Dismissals)
	}
}

func TestWatchDialogsStopJoins(t *testing.T) {
	fake := enginetest.New()
	s := NewSession(fake, Options{DialogTimeout: time.Hour, DialogPoll: time.Millisecond})

	w := s.watchDialogs(context.Background(), fake)
	done := make(chan struct{})
	go func() {
		w.stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not join the watcher")
	}
}

// --- introspection and fatal errors ---

func TestListFeatures(t *testing.T) {
	fake := enginetest.New()
	s := newTestSession(fake)

	res := exec(t, s, ListFeatures{})
	if !strings.Contains(res.Message, "3 features:") {
		t.Errorf("header missing: %s", res.Message)
	}
	if !strings.Contains(res.Message, "1. Front Plane [RefPlane]") {
		t.Errorf("entries missing: %s", res.Message)
	}
}

func TestListFeaturesWithoutDocument(t *testing.T) {
	s := newTestSession(enginetest.NewEmpty())
	execFault(t, s, ListFeatures{}, faults.CodeNoActiveDocument)
}

func TestConnectionLossIsFatal(t *testing.T) {
	fake := enginetest.New()
	fake.Disconnected = true
	s := newTestSession(fake)

	_, err := s.Execute(context.Background(), Extrude{Depth: 0.01})
	if !errors.Is(err, engine.ErrConnectionLost) {
		t.Fatalf("err = %v, want connection loss", err)
	}
	var fault *faults.Fault
	if errors.As(err, &fault) {
		t.Error("connection loss must not be reported as a recoverable fault")
	}
}

// --- test helpers ---

func hints(cx, cy, rx, ry, spacing *float64) (h sketch.PositionHints) {
	h.CenterX, h.CenterY = cx, cy
	h.RelativeX, h.RelativeY = rx, ry
	h.Spacing = spacing
	return h
}

func positionHintsWithSpacing(v float64) sketch.PositionHints {
	return sketch.PositionHints{Spacing: &v}
}
