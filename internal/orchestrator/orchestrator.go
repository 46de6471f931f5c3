// Package orchestrator executes commands against the external CAD engine,
// owning the session state the engine does not expose: which sketch is
// active, what was drawn into it, and what identity the next feature call
// should target.
//
// A Session is single-goroutine: the transport serializes commands, and
// the engine's ambient selection set would race under concurrent use.
package orchestrator

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/faults"
	"github.com/parametriclabs/swmcp/internal/geom"
	"github.com/parametriclabs/swmcp/internal/identity"
	"github.com/parametriclabs/swmcp/internal/locator"
	"github.com/parametriclabs/swmcp/internal/selection"
	"github.com/parametriclabs/swmcp/internal/sketch"
)

type state int

const (
	stateIdle state = iota
	stateSketchOpen
)

// Options configures a Session. Zero values get sensible defaults.
type Options struct {
	Log *zap.Logger

	// DialogTimeout bounds the dialog watcher around dialog-prone engine
	// calls; DialogPoll is its probe interval.
	DialogTimeout time.Duration
	DialogPoll    time.Duration
}

// Session is the stateful command executor for one engine connection.
type Session struct {
	eng engine.Engine
	log *zap.Logger

	tracker  *sketch.Tracker
	ident    identity.State
	resolver *identity.Resolver
	state    state

	dialogTimeout time.Duration
	dialogPoll    time.Duration
}

// Result is the successful outcome of a command: a message for the
// upstream agent and, when a feature was created, its history name.
type Result struct {
	Message string
	Feature string
}

// NewSession returns an idle session over eng.
func NewSession(eng engine.Engine, opts Options) *Session {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.DialogTimeout <= 0 {
		opts.DialogTimeout = 10 * time.Second
	}
	if opts.DialogPoll <= 0 {
		opts.DialogPoll = 250 * time.Millisecond
	}
	s := &Session{
		eng:           eng,
		log:           opts.Log,
		tracker:       sketch.NewTracker(),
		dialogTimeout: opts.DialogTimeout,
		dialogPoll:    opts.DialogPoll,
	}
	s.resolver = identity.NewResolver(&s.ident)
	return s
}

// Execute runs one command to completion. Recoverable faults come back as
// *faults.Fault; any other error is fatal for the session.
func (s *Session) Execute(ctx context.Context, cmd Command) (Result, error) {
	start := time.Now()
	res, err := s.execute(ctx, cmd)
	if err != nil {
		s.log.Warn("command failed",
			zap.String("command", cmd.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return Result{}, err
	}
	s.log.Info("command ok",
		zap.String("command", cmd.Name()),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("feature", res.Feature))
	return res, nil
}

func (s *Session) execute(ctx context.Context, cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case NewPart:
		return s.newPart()
	case OpenSketch:
		return s.openSketch(c)
	case DrawRectangle:
		return s.drawRectangle(c)
	case DrawCircle:
		return s.drawCircle(c)
	case DrawLine:
		return s.drawLine(c)
	case DrawCenterline:
		return s.drawCenterline(c)
	case LastShapeInfo:
		return s.lastShapeInfo()
	case CloseSketch:
		return s.closeSketch()
	case Extrude:
		return s.extrude(c)
	case Revolve:
		return s.revolve(c)
	case Sweep:
		return s.sweep(c)
	case Loft:
		return s.loft(c)
	case BoundaryBoss:
		return s.boundaryBoss(c)
	case Fillet:
		return s.fillet(c)
	case Chamfer:
		return s.chamfer(c)
	case Shell:
		return s.shell(c)
	case Mirror:
		return s.mirror(c)
	case LinearPattern:
		return s.linearPattern(c)
	case CircularPattern:
		return s.circularPattern(c)
	case RefPlaneOffset:
		return s.refPlaneOffset(c)
	case RefPlaneAngle:
		return s.refPlaneAngle(c)
	case RefAxis:
		return s.refAxis(c)
	case RefPoint:
		return s.refPoint(c)
	case CoordinateSystem:
		return s.coordinateSystem(c)
	case HoleWizard:
		return s.holeWizard(ctx, c)
	case ListFeatures:
		return s.listFeatures()
	case BodyInfo:
		return s.bodyInfo()
	case ListFaces:
		return s.listFaces(c)
	case ListEdges:
		return s.listEdges(c)
	case FaceEdges:
		return s.faceEdges(c)
	case ListVertices:
		return s.listVertices()
	}
	return Result{}, fmt.Errorf("orchestrator: unhandled command %T", cmd)
}

// activeDoc returns the open document or the NO_ACTIVE_DOCUMENT fault.
func (s *Session) activeDoc() (engine.Document, error) {
	doc, err := s.eng.ActiveDocument()
	if err == engine.ErrNoDocument {
		return nil, faults.NoDocument("no active document, create a part first")
	}
	return doc, err
}

// ensureDoc returns the open document, creating a part when none is open.
// Creating a part is a new-document transition: identity and tracking
// state reset with it.
func (s *Session) ensureDoc() (engine.Document, bool, error) {
	doc, err := s.eng.ActiveDocument()
	if err == nil {
		return doc, false, nil
	}
	if err != engine.ErrNoDocument {
		return nil, false, err
	}
	doc, err = s.eng.NewPart()
	if err != nil {
		return nil, false, err
	}
	s.resetDocumentState()
	return doc, true, nil
}

// sketchDoc returns the document while a session-opened sketch is active.
func (s *Session) sketchDoc() (engine.Document, error) {
	if s.state != stateSketchOpen {
		return nil, faults.NoDocument("no active sketch, call create_sketch first")
	}
	return s.activeDoc()
}

func (s *Session) resetDocumentState() {
	s.ident.ResetDocument()
	s.tracker.Reset()
	s.state = stateIdle
}

// exitSketchIfOpen finalizes the active sketch before a feature call that
// consumes it, then re-verifies the remembered name against the history.
func (s *Session) exitSketchIfOpen(doc engine.Document) error {
	if s.state != stateSketchOpen {
		return nil
	}
	if err := doc.ToggleSketchEdit(); err != nil {
		return err
	}
	s.state = stateIdle
	s.resolver.Reverify(doc)
	return nil
}

func (s *Session) newSelection(doc engine.Document) *selection.Session {
	return selection.New(doc, s.log)
}

// finishFeature maps the engine's answer to the protocol's: nil handle
// becomes FEATURE_REJECTED with an operation-specific hint, success
// reframes the view and reports the created feature's name.
func (s *Session) finishFeature(doc engine.Document, op string, h engine.Handle, hint string) (Result, error) {
	if h == nil {
		return Result{}, faults.Rejected(op, hint)
	}
	if err := doc.ZoomToFit(); err != nil {
		return Result{}, err
	}
	return Result{
		Message: fmt.Sprintf("Created %s '%s'", op, h.Name()),
		Feature: h.Name(),
	}, nil
}

// --- document and sketch lifecycle ---

func (s *Session) newPart() (Result, error) {
	if _, err := s.eng.NewPart(); err != nil {
		return Result{}, err
	}
	s.resetDocumentState()
	return Result{Message: "Created new part document"}, nil
}

func (s *Session) openSketch(c OpenSketch) (Result, error) {
	doc, created, err := s.ensureDoc()
	if err != nil {
		return Result{}, err
	}

	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	var loc locator.Locator
	if c.FacePoint != nil {
		loc = locator.ByPoint(engine.KindFace, *c.FacePoint)
	} else {
		plane := c.Plane
		if plane == "" {
			plane = "Front Plane"
		}
		loc = locator.ByName(engine.KindPlane, plane)
	}
	if err := sel.Add(loc, engine.MarkNone, false); err != nil {
		return Result{}, err
	}
	if err := doc.ToggleSketchEdit(); err != nil {
		return Result{}, err
	}

	// New sketch context: the tracker resets here and only here.
	name := s.ident.NextOrdinalName()
	s.ident.Remembered = name
	s.tracker.Reset()
	s.state = stateSketchOpen

	msg := fmt.Sprintf("Opened sketch '%s' on %s", name, loc.String())
	if created {
		msg = "Created new part document. " + msg
	}
	return Result{Message: msg}, nil
}

func (s *Session) closeSketch() (Result, error) {
	doc, err := s.sketchDoc()
	if err != nil {
		return Result{}, err
	}
	if err := doc.ToggleSketchEdit(); err != nil {
		return Result{}, err
	}
	s.state = stateIdle
	name := s.resolver.Reverify(doc)
	return Result{Message: fmt.Sprintf("Exited sketch '%s'", name)}, nil
}

// --- drawing ---

func (s *Session) drawRectangle(c DrawRectangle) (Result, error) {
	doc, err := s.sketchDoc()
	if err != nil {
		return Result{}, err
	}
	w, h := c.Width, c.Height
	if c.Corners != nil {
		// The corner form supplies the extent only; placement still goes
		// through the position hints like every other draw.
		w = math.Abs(c.Corners[2] - c.Corners[0])
		h = math.Abs(c.Corners[3] - c.Corners[1])
	}
	cx, cy := s.tracker.DerivePosition(c.Hints, w, h)
	if err := doc.CreateCornerRectangle(cx-w/2, cy-h/2, cx+w/2, cy+h/2); err != nil {
		return Result{}, err
	}
	s.tracker.Record(sketch.Record{
		Kind:   sketch.KindRectangle,
		Center: geom.Point2D{X: cx, Y: cy},
		BBox:   geom.BoxAround(cx, cy, w, h),
		Width:  w,
		Height: h,
	})
	return Result{Message: fmt.Sprintf("Drew %.1fmm x %.1fmm rectangle at (%.1f, %.1f) mm",
		geom.ToMM(w), geom.ToMM(h), geom.ToMM(cx), geom.ToMM(cy))}, nil
}

func (s *Session) drawCircle(c DrawCircle) (Result, error) {
	doc, err := s.sketchDoc()
	if err != nil {
		return Result{}, err
	}
	d := 2 * c.Radius
	cx, cy := s.tracker.DerivePosition(c.Hints, d, d)
	if err := doc.CreateCircleByRadius(cx, cy, c.Radius); err != nil {
		return Result{}, err
	}
	s.tracker.Record(sketch.Record{
		Kind:   sketch.KindCircle,
		Center: geom.Point2D{X: cx, Y: cy},
		BBox:   geom.BoxAround(cx, cy, d, d),
		Radius: c.Radius,
	})
	return Result{Message: fmt.Sprintf("Drew circle r=%.1fmm at (%.1f, %.1f) mm",
		geom.ToMM(c.Radius), geom.ToMM(cx), geom.ToMM(cy))}, nil
}

func (s *Session) drawLine(c DrawLine) (Result, error) {
	doc, err := s.sketchDoc()
	if err != nil {
		return Result{}, err
	}
	if err := doc.CreateLine(c.X1, c.Y1, c.X2, c.Y2); err != nil {
		return Result{}, err
	}
	bb := geom.BBox{
		Left:   math.Min(c.X1, c.X2),
		Right:  math.Max(c.X1, c.X2),
		Bottom: math.Min(c.Y1, c.Y2),
		Top:    math.Max(c.Y1, c.Y2),
	}
	s.tracker.Record(sketch.Record{
		Kind:   sketch.KindLine,
		Center: geom.Point2D{X: bb.Center().X, Y: bb.Center().Y},
		BBox:   bb,
		Width:  bb.Width(),
		Height: bb.Height(),
	})
	return Result{Message: fmt.Sprintf("Drew line (%.1f, %.1f) to (%.1f, %.1f) mm",
		geom.ToMM(c.X1), geom.ToMM(c.Y1), geom.ToMM(c.X2), geom.ToMM(c.Y2))}, nil
}

func (s *Session) drawCenterline(c DrawCenterline) (Result, error) {
	doc, err := s.sketchDoc()
	if err != nil {
		return Result{}, err
	}
	// Construction geometry: deliberately not tracked.
	if err := doc.CreateCenterline(c.X1, c.Y1, c.X2, c.Y2); err != nil {
		return Result{}, err
	}
	return Result{Message: fmt.Sprintf("Drew centerline (%.1f, %.1f) to (%.1f, %.1f) mm",
		geom.ToMM(c.X1), geom.ToMM(c.Y1), geom.ToMM(c.X2), geom.ToMM(c.Y2))}, nil
}

func (s *Session) lastShapeInfo() (Result, error) {
	desc, ok := s.tracker.Describe()
	if !ok {
		return Result{Message: "No shapes tracked in the current sketch"}, nil
	}
	return Result{Message: desc}, nil
}

// --- profile features ---

// selectCurrentSketch finalizes the active sketch if needed and selects
// the sketch the session believes is current.
func (s *Session) selectCurrentSketch(doc engine.Document, sel *selection.Session) error {
	if err := s.exitSketchIfOpen(doc); err != nil {
		return err
	}
	if err := sel.Clear(); err != nil {
		return err
	}
	name := s.resolver.CurrentSketchName(doc)
	return sel.Add(locator.ByName(engine.KindSketch, name), engine.MarkNone, false)
}

func (s *Session) extrude(c Extrude) (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := s.selectCurrentSketch(doc, sel); err != nil {
		return Result{}, err
	}
	op := engine.OpExtrude
	if c.Cut {
		op = engine.OpCutExtrude
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op, Depth: c.Depth, Reverse: c.Reverse})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "check that the sketch profile is closed")
}

func (s *Session) revolve(c Revolve) (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := s.selectCurrentSketch(doc, sel); err != nil {
		return Result{}, err
	}
	op := engine.OpRevolve
	if c.Cut {
		op = engine.OpCutRevolve
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op, Angle: c.Angle, Reverse: c.Reverse})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "the sketch needs a centerline to revolve around")
}

func (s *Session) sweep(c Sweep) (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	if err := s.exitSketchIfOpen(doc); err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := sel.Add(locator.ByName(engine.KindSketch, c.Profile), engine.MarkProfile, false); err != nil {
		return Result{}, err
	}
	if err := sel.Add(locator.ByName(engine.KindSketch, c.Path), engine.MarkPath, true); err != nil {
		return Result{}, err
	}
	op := engine.OpSweep
	if c.Cut {
		op = engine.OpCutSweep
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "the profile must intersect the path start")
}

func (s *Session) loft(c Loft) (Result, error) {
	op := engine.OpLoft
	if c.Cut {
		op = engine.OpCutLoft
	}
	if len(c.Profiles) < 2 {
		return Result{}, faults.Insufficient(op.String(), len(c.Profiles), 2)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	if err := s.exitSketchIfOpen(doc); err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	// Profile order is meaning: the engine lofts through them as added.
	if err := sel.AddAll(sketchLocators(c.Profiles), engine.MarkProfile, false); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "profiles may be too far apart or self-intersecting")
}

func (s *Session) boundaryBoss(c BoundaryBoss) (Result, error) {
	op := engine.OpBoundaryBoss
	if len(c.Profiles) < 2 {
		return Result{}, faults.Insufficient(op.String(), len(c.Profiles), 2)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	if err := s.exitSketchIfOpen(doc); err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := sel.AddAll(sketchLocators(c.Profiles), engine.MarkProfile, false); err != nil {
		return Result{}, err
	}
	if err := sel.AddAll(sketchLocators(c.Guides), engine.MarkDirection2, true); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "guide curves must touch every profile")
}

func sketchLocators(names []string) []locator.Locator {
	locs := make([]locator.Locator, len(names))
	for i, n := range names {
		locs[i] = locator.ByName(engine.KindSketch, n)
	}
	return locs
}

func featureLocators(names []string) []locator.Locator {
	locs := make([]locator.Locator, len(names))
	for i, n := range names {
		locs[i] = locator.ByName(engine.KindBodyFeature, n)
	}
	return locs
}

// --- applied features ---

func (s *Session) selectPoints(sel *selection.Session, kind engine.EntityKind, pts []geom.Point3D, mark engine.Mark, appendFirst bool) error {
	locs := make([]locator.Locator, len(pts))
	for i, p := range pts {
		locs[i] = locator.ByPoint(kind, p)
	}
	return sel.AddAll(locs, mark, appendFirst)
}

func (s *Session) fillet(c Fillet) (Result, error) {
	op := engine.OpFillet
	if len(c.Edges) < 1 {
		return Result{}, faults.Insufficient(op.String(), 0, 1)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := s.selectPoints(sel, engine.KindEdge, c.Edges, engine.MarkProfile, false); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op, Radius: c.Radius})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "the radius may be too large for the selected edges")
}

func (s *Session) chamfer(c Chamfer) (Result, error) {
	op := engine.OpChamfer
	if len(c.Edges) < 1 {
		return Result{}, faults.Insufficient(op.String(), 0, 1)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := s.selectPoints(sel, engine.KindEdge, c.Edges, engine.MarkNone, false); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{
		Op:          op,
		Distance:    c.Distance,
		Distance2:   c.Distance2,
		Angle:       c.Angle,
		ChamferType: c.Type,
	})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "the distance may be too large for the selected edges")
}

func (s *Session) shell(c Shell) (Result, error) {
	op := engine.OpShell
	if len(c.Faces) < 1 {
		return Result{}, faults.Insufficient(op.String(), 0, 1)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := s.selectPoints(sel, engine.KindFace, c.Faces, engine.MarkNone, false); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op, Thickness: c.Thickness, Outward: c.Outward})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "the wall thickness may exceed the body's smallest dimension")
}

// --- patterns and mirror ---

func (s *Session) mirror(c Mirror) (Result, error) {
	op := engine.OpMirror
	if len(c.Features) < 1 {
		return Result{}, faults.Insufficient(op.String(), 0, 1)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	var planeLoc locator.Locator
	if c.FacePoint != nil {
		planeLoc = locator.ByPoint(engine.KindFace, *c.FacePoint)
	} else {
		planeLoc = locator.ByName(engine.KindPlane, c.Plane)
	}
	if err := sel.Add(planeLoc, engine.MarkPath, false); err != nil {
		return Result{}, err
	}
	if err := sel.AddAll(featureLocators(c.Features), engine.MarkProfile, true); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "mirrored features must not intersect the mirror plane")
}

func (s *Session) linearPattern(c LinearPattern) (Result, error) {
	op := engine.OpLinearPattern
	if len(c.Features) < 1 {
		return Result{}, faults.Insufficient(op.String(), 0, 1)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := sel.Add(locator.ByPoint(engine.KindEdge, c.Direction1), engine.MarkProfile, false); err != nil {
		return Result{}, err
	}
	useDir2 := c.Direction2 != nil && c.Count2 > 1
	if useDir2 {
		if err := sel.Add(locator.ByPoint(engine.KindEdge, *c.Direction2), engine.MarkDirection2, true); err != nil {
			return Result{}, err
		}
	}
	if err := sel.AddAll(featureLocators(c.Features), engine.MarkPath, true); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{
		Op:       op,
		Count1:   c.Count1,
		Spacing1: c.Spacing1,
		Reverse:  c.Reverse1,
		Count2:   c.Count2,
		Spacing2: c.Spacing2,
		UseDir2:  useDir2,
	})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "pattern instances may run off the body")
}

func (s *Session) circularPattern(c CircularPattern) (Result, error) {
	op := engine.OpCircularPattern
	if len(c.Features) < 1 {
		return Result{}, faults.Insufficient(op.String(), 0, 1)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	var axisLoc locator.Locator
	if c.AxisEdge != nil {
		axisLoc = locator.ByPoint(engine.KindEdge, *c.AxisEdge)
	} else {
		axisLoc = locator.ByName(engine.KindAxis, c.Axis)
	}
	if err := sel.Add(axisLoc, engine.MarkProfile, false); err != nil {
		return Result{}, err
	}
	if err := sel.AddAll(featureLocators(c.Features), engine.MarkPath, true); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{
		Op:           op,
		Count1:       c.Count,
		Angle:        c.Angle,
		EqualSpacing: c.EqualSpacing,
	})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "pattern instances may overlap")
}

// --- reference geometry ---

func (s *Session) refPlaneOffset(c RefPlaneOffset) (Result, error) {
	op := engine.OpRefPlane
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := sel.Add(locator.ByName(engine.KindPlane, c.Reference), engine.MarkNone, false); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{
		Op:              op,
		PlaneConstraint: engine.RefPlaneOffset,
		Distance:        c.Offset,
		Reverse:         c.Reverse,
	})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "")
}

func (s *Session) refPlaneAngle(c RefPlaneAngle) (Result, error) {
	op := engine.OpRefPlane
	if c.Edge == nil {
		return Result{}, faults.Insufficient(op.String(), 1, 2)
	}
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := sel.Add(locator.ByName(engine.KindPlane, c.Reference), engine.MarkNone, false); err != nil {
		return Result{}, err
	}
	if err := sel.Add(locator.ByPoint(engine.KindEdge, *c.Edge), engine.MarkNone, true); err != nil {
		return Result{}, err
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{
		Op:              op,
		PlaneConstraint: engine.RefPlaneAngle,
		Angle:           c.Angle,
		Reverse:         c.Reverse,
	})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "the hinge edge must lie in the reference plane")
}

func (s *Session) refAxis(c RefAxis) (Result, error) {
	op := engine.OpRefAxis
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	switch {
	case c.Point1 != nil && c.Point2 != nil:
		if err := sel.Add(locator.ByPoint(engine.KindVertex, *c.Point1), engine.MarkNone, false); err != nil {
			return Result{}, err
		}
		if err := sel.Add(locator.ByPoint(engine.KindVertex, *c.Point2), engine.MarkNone, true); err != nil {
			return Result{}, err
		}
	case c.Face != nil:
		if err := sel.Add(locator.ByPoint(engine.KindFace, *c.Face), engine.MarkNone, false); err != nil {
			return Result{}, err
		}
	case c.Edge != nil:
		if err := sel.Add(locator.ByPoint(engine.KindEdge, *c.Edge), engine.MarkNone, false); err != nil {
			return Result{}, err
		}
	default:
		return Result{}, faults.Insufficient(op.String(), 0, 1)
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "a cylindrical face or a straight edge is required")
}

func (s *Session) refPoint(c RefPoint) (Result, error) {
	op := engine.OpRefPoint
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	spec := engine.FeatureSpec{Op: op}
	switch {
	case c.At != nil:
		// Absolute coordinates need no selection.
		spec.PointConstraint = engine.RefPointCoordinates
		spec.Point = *c.At
	case c.Face != nil:
		if err := sel.Add(locator.ByPoint(engine.KindFace, *c.Face), engine.MarkNone, false); err != nil {
			return Result{}, err
		}
		spec.PointConstraint = engine.RefPointFaceCenter
	case c.Edge != nil:
		if err := sel.Add(locator.ByPoint(engine.KindEdge, *c.Edge), engine.MarkNone, false); err != nil {
			return Result{}, err
		}
		spec.PointConstraint = engine.RefPointArcCenter
		if c.OnEdge {
			spec.PointConstraint = engine.RefPointOnEdge
		}
	default:
		return Result{}, faults.Insufficient(op.String(), 0, 1)
	}
	h, err := doc.BuildFeature(spec)
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "arc centers need a circular edge")
}

func (s *Session) coordinateSystem(c CoordinateSystem) (Result, error) {
	op := engine.OpCoordinateSystem
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := sel.Add(locator.ByPoint(engine.KindVertex, c.Origin), engine.MarkNone, false); err != nil {
		return Result{}, err
	}
	if c.XAxisEdge != nil {
		if err := sel.Add(locator.ByPoint(engine.KindEdge, *c.XAxisEdge), engine.MarkProfile, true); err != nil {
			return Result{}, err
		}
	}
	if c.YAxisEdge != nil {
		if err := sel.Add(locator.ByPoint(engine.KindEdge, *c.YAxisEdge), engine.MarkDirection2, true); err != nil {
			return Result{}, err
		}
	}
	h, err := doc.BuildFeature(engine.FeatureSpec{Op: op})
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "the origin must land on a model vertex")
}

// --- holes ---

func (s *Session) holeWizard(ctx context.Context, c HoleWizard) (Result, error) {
	op := engine.OpHoleWizard
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	sel := s.newSelection(doc)
	if err := sel.Clear(); err != nil {
		return Result{}, err
	}
	if err := sel.Add(locator.ByPoint(engine.KindFace, c.Face), engine.MarkNone, false); err != nil {
		return Result{}, err
	}

	// The wizard call can raise a modal prompt that blocks the automation
	// thread. The watcher dismisses it at most once; it is cancelled and
	// joined before the result is interpreted.
	w := s.watchDialogs(ctx, doc)
	h, err := doc.BuildFeature(engine.FeatureSpec{
		Op:               op,
		Depth:            c.Depth,
		HoleType:         c.Type,
		HoleStandard:     c.Standard,
		HoleEndCondition: c.EndCondition,
		HoleSize:         c.Size,
	})
	w.stop()
	if err != nil {
		return Result{}, err
	}
	return s.finishFeature(doc, op.String(), h, "the face may be too small for the hole size")
}

// --- introspection ---

func (s *Session) listFeatures() (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	features, err := doc.Features()
	if err != nil {
		return Result{}, err
	}
	if len(features) == 0 {
		return Result{Message: "Feature tree is empty"}, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d features:\n", len(features))
	for i, f := range features {
		fmt.Fprintf(&b, "%3d. %s [%s]\n", i+1, f.Name, f.TypeName)
	}
	return Result{Message: strings.TrimRight(b.String(), "\n")}, nil
}
