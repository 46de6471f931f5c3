//go:build windows

package sldworks

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/geom"
)

// document wraps one ModelDoc2 with its automation sub-objects.
type document struct {
	model     *ole.IDispatch
	extension *ole.IDispatch
	sketchMgr *ole.IDispatch
	featMgr   *ole.IDispatch
}

func newDocument(model *ole.IDispatch) (*document, error) {
	d := &document{model: model}
	for _, sub := range []struct {
		name string
		dst  **ole.IDispatch
	}{
		{"Extension", &d.extension},
		{"SketchManager", &d.sketchMgr},
		{"FeatureManager", &d.featMgr},
	} {
		v, err := oleutil.GetProperty(model, sub.name)
		if err != nil {
			return nil, fmt.Errorf("sldworks: get %s: %w", sub.name, err)
		}
		*sub.dst = v.ToIDispatch()
	}
	return d, nil
}

// selectionType maps an entity kind onto the SelectByID2 type string.
func selectionType(kind engine.EntityKind) string {
	if kind == engine.KindPlane {
		// Reference planes select under "PLANE", not their history tag.
		return "PLANE"
	}
	return string(kind)
}

func (d *document) ClearSelection() error {
	_, err := oleutil.CallMethod(d.model, "ClearSelection2", true)
	if err != nil {
		return fmt.Errorf("sldworks: ClearSelection2: %w", err)
	}
	return nil
}

func (d *document) SelectByPoint(kind engine.EntityKind, pt geom.Point3D, mark engine.Mark, append bool) (bool, error) {
	return d.selectByID("", kind, pt, mark, append)
}

func (d *document) SelectByName(name string, kind engine.EntityKind, mark engine.Mark, append bool) (bool, error) {
	return d.selectByID(name, kind, geom.Point3D{}, mark, append)
}

func (d *document) selectByID(name string, kind engine.EntityKind, pt geom.Point3D, mark engine.Mark, append bool) (bool, error) {
	v, err := oleutil.CallMethod(d.extension, "SelectByID2",
		name, selectionType(kind), pt.X, pt.Y, pt.Z, append, int(mark), nil, 0)
	if err != nil {
		return false, fmt.Errorf("sldworks: SelectByID2: %w", err)
	}
	ok, _ := v.Value().(bool)
	return ok, nil
}

func (d *document) ToggleSketchEdit() error {
	_, err := oleutil.CallMethod(d.sketchMgr, "InsertSketch", true)
	if err != nil {
		return fmt.Errorf("sldworks: InsertSketch: %w", err)
	}
	return nil
}

func (d *document) CreateCornerRectangle(x1, y1, x2, y2 float64) error {
	return d.draw("CreateCornerRectangle", x1, y1, 0.0, x2, y2, 0.0)
}

func (d *document) CreateCircleByRadius(cx, cy, radius float64) error {
	return d.draw("CreateCircleByRadius", cx, cy, 0.0, radius)
}

func (d *document) CreateLine(x1, y1, x2, y2 float64) error {
	return d.draw("CreateLine", x1, y1, 0.0, x2, y2, 0.0)
}

func (d *document) CreateCenterline(x1, y1, x2, y2 float64) error {
	return d.draw("CreateCenterLine", x1, y1, 0.0, x2, y2, 0.0)
}

// draw invokes a SketchManager creation method. These return the created
// segment, or nothing when the call is rejected; a nil result with no
// active sketch is surfaced by the feature call that follows, so only the
// transport error matters here.
func (d *document) draw(method string, args ...interface{}) error {
	_, err := oleutil.CallMethod(d.sketchMgr, method, args...)
	if err != nil {
		return fmt.Errorf("sldworks: %s: %w", method, err)
	}
	return nil
}

func (d *document) Features() ([]engine.FeatureInfo, error) {
	v, err := oleutil.CallMethod(d.model, "FirstFeature")
	if err != nil {
		return nil, fmt.Errorf("sldworks: FirstFeature: %w", err)
	}
	var out []engine.FeatureInfo
	feat := v.ToIDispatch()
	for feat != nil {
		name, err := oleutil.GetProperty(feat, "Name")
		if err != nil {
			return nil, fmt.Errorf("sldworks: feature Name: %w", err)
		}
		typeName, err := oleutil.CallMethod(feat, "GetTypeName2")
		if err != nil {
			return nil, fmt.Errorf("sldworks: GetTypeName2: %w", err)
		}
		out = append(out, engine.FeatureInfo{
			Name:     name.ToString(),
			TypeName: typeName.ToString(),
		})
		next, err := oleutil.CallMethod(feat, "GetNextFeature")
		if err != nil {
			return nil, fmt.Errorf("sldworks: GetNextFeature: %w", err)
		}
		feat = next.ToIDispatch()
	}
	return out, nil
}

func (d *document) ZoomToFit() error {
	_, err := oleutil.CallMethod(d.model, "ViewZoomtofit2")
	if err != nil {
		return fmt.Errorf("sldworks: ViewZoomtofit2: %w", err)
	}
	return nil
}

// featureHandle adapts a created Feature dispatch.
type featureHandle struct{ name string }

func (h featureHandle) Name() string { return h.name }

func (d *document) BuildFeature(spec engine.FeatureSpec) (engine.Handle, error) {
	v, err := d.callFeature(spec)
	if err != nil {
		return nil, err
	}
	feat := v.ToIDispatch()
	if feat == nil {
		return nil, nil
	}
	name, err := oleutil.GetProperty(feat, "Name")
	if err != nil {
		return nil, fmt.Errorf("sldworks: created feature Name: %w", err)
	}
	return featureHandle{name: name.ToString()}, nil
}

// End-condition constants from swconst (swEndConditions_e).
const (
	swEndCondBlind          = 0
	swEndCondThroughAll     = 1
	swEndCondMidPlane       = 6
	swStartSketchPlane      = 0
	swThinWallOneDirection  = 0
	swChamferEqualDistance  = 1
	swChamferAngleDistance  = 2
	swChamferDistanceDist   = 3
	swPatternSpacingControl = 0
)

func (d *document) callFeature(spec engine.FeatureSpec) (*ole.VARIANT, error) {
	fm := d.featMgr
	switch spec.Op {
	case engine.OpExtrude:
		return oleutil.CallMethod(fm, "FeatureExtrusion2",
			true, spec.Reverse, false,
			swEndCondBlind, swEndCondBlind, spec.Depth, 0.0,
			false, false, false, false, 0.0, 0.0,
			false, false, false, false, true, true, true,
			swStartSketchPlane, 0.0, false)
	case engine.OpCutExtrude:
		return oleutil.CallMethod(fm, "FeatureCut4",
			true, false, spec.Reverse,
			swEndCondBlind, swEndCondBlind, spec.Depth, 0.0,
			false, false, false, false, 0.0, 0.0,
			false, false, false, false, false, true, true, true, true, false,
			swStartSketchPlane, 0.0, false, false)
	case engine.OpRevolve:
		return oleutil.CallMethod(fm, "FeatureRevolve2",
			true, true, spec.Reverse, false, false, false,
			swEndCondBlind, swEndCondBlind, spec.Angle, 0.0,
			false, false, 0.0, 0.0,
			swThinWallOneDirection, 0.0, 0.0, true, true, true)
	case engine.OpCutRevolve:
		return oleutil.CallMethod(fm, "FeatureRevolveCut2",
			true, spec.Reverse, false,
			swEndCondBlind, swEndCondBlind, spec.Angle, 0.0,
			false, false, 0.0, 0.0,
			swThinWallOneDirection, 0.0, 0.0, true, true, true)
	case engine.OpSweep:
		return oleutil.CallMethod(fm, "InsertProtrusionSwept4",
			false, false, 0, false, false, 0, 0, false, 0, 0,
			0, 0, true, true, true, 0, true, true, true, false)
	case engine.OpCutSweep:
		return oleutil.CallMethod(fm, "InsertCutSwept5",
			false, false, 0, false, false, 0, 0, false, 0, 0,
			0, 0, true, true, true, 0, true, true, true, false, false)
	case engine.OpLoft:
		return oleutil.CallMethod(fm, "InsertProtrusionBlend2",
			false, true, false, 1.0, 0, 0, 1.0, 1.0, true, true, false,
			0.0, 0.0, 0.0, true, true, true, 0, 0, false)
	case engine.OpCutLoft:
		return oleutil.CallMethod(fm, "InsertCutBlend2",
			false, true, false, 1.0, 0, 0, 1.0, 1.0, true, true,
			0.0, 0.0, 0.0, true, true, false)
	case engine.OpBoundaryBoss:
		return oleutil.CallMethod(fm, "InsertNetBlend2",
			2, 2, 0, false, 0.0, false, true, 2, 0, false, 0.0,
			false, true, 0, 0, true, true, true, true)
	case engine.OpFillet:
		return oleutil.CallMethod(fm, "FeatureFillet3",
			195, spec.Radius, 0.0, 0.0, 0, 0, 0,
			nil, nil, nil, nil, nil, nil, nil)
	case engine.OpChamfer:
		chamferType := swChamferEqualDistance
		switch spec.ChamferType {
		case 1:
			chamferType = swChamferAngleDistance
		case 2:
			chamferType = swChamferDistanceDist
		}
		return oleutil.CallMethod(fm, "InsertFeatureChamfer",
			4, chamferType, spec.Distance, spec.Angle, spec.Distance2,
			0.0, 0.0, 0.0)
	case engine.OpShell:
		return oleutil.CallMethod(fm, "InsertFeatureShell",
			spec.Thickness, spec.Outward)
	case engine.OpMirror:
		return oleutil.CallMethod(fm, "InsertMirrorFeature2",
			false, false, false, false, 0)
	case engine.OpLinearPattern:
		return oleutil.CallMethod(fm, "FeatureLinearPattern4",
			spec.Count1, spec.Spacing1, spec.Count2, spec.Spacing2,
			spec.Reverse, spec.UseDir2, "NULL", "NULL",
			false, false, "NULL", "NULL", false, false, false, false,
			false, false, true, true, false, false, 0, 0)
	case engine.OpCircularPattern:
		return oleutil.CallMethod(fm, "FeatureCircularPattern5",
			spec.Count1, spec.Angle, spec.EqualSpacing, "NULL",
			false, true, false, false)
	case engine.OpRefPlane:
		if spec.PlaneConstraint == engine.RefPlaneAngle {
			return oleutil.CallMethod(fm, "InsertRefPlane",
				16, spec.Angle, 0, 0.0, 0, 0.0) // angle constraint on first ref
		}
		first := 8 // offset distance constraint
		if spec.Reverse {
			first |= 256 // flip offset direction
		}
		return oleutil.CallMethod(fm, "InsertRefPlane",
			first, spec.Distance, 0, 0.0, 0, 0.0)
	case engine.OpRefAxis:
		return oleutil.CallMethod(fm, "InsertAxis2", true)
	case engine.OpRefPoint:
		// swRefPointType_e: 0 along curve, 1 on face, 3 center, 4 coordinates.
		switch spec.PointConstraint {
		case engine.RefPointArcCenter:
			return oleutil.CallMethod(fm, "InsertReferencePoint", 3, 0, 0.0, 0.0, 0.0)
		case engine.RefPointFaceCenter:
			return oleutil.CallMethod(fm, "InsertReferencePoint", 1, 0, 0.0, 0.0, 0.0)
		case engine.RefPointOnEdge:
			return oleutil.CallMethod(fm, "InsertReferencePoint", 0, 0, 0.0, 0.0, 0.0)
		}
		return oleutil.CallMethod(fm, "InsertReferencePoint",
			4, 0, spec.Point.X, spec.Point.Y, spec.Point.Z)
	case engine.OpCoordinateSystem:
		return oleutil.CallMethod(fm, "InsertCoordinateSystem",
			false, false, false, false, false)
	case engine.OpHoleWizard:
		end := swEndCondThroughAll
		if spec.HoleEndCondition == engine.HoleEndBlind {
			end = swEndCondBlind
		}
		return oleutil.CallMethod(fm, "HoleWizard5",
			spec.HoleType, spec.HoleStandard, 0, spec.HoleSize, end,
			0.0, spec.Depth, -1.0, -1.0, 0.0, 0.0, 0.0, 0.0, 0.0,
			0.0, 0.0, 0.0, 0.0, "", false, true, true, true, true, false)
	}
	return nil, fmt.Errorf("sldworks: unsupported feature op %v", spec.Op)
}
