package sketch

import (
	"math"
	"strings"
	"testing"

	"github.com/parametriclabs/swmcp/internal/geom"
)

func f(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func recordRect(t *Tracker, cx, cy, w, h float64) {
	t.Record(Record{
		Kind:   KindRectangle,
		Center: geom.Point2D{X: cx, Y: cy},
		BBox:   geom.BoxAround(cx, cy, w, h),
		Width:  w,
		Height: h,
	})
}

func TestDerivePositionDefaultsToOrigin(t *testing.T) {
	tr := NewTracker()
	x, y := tr.DerivePosition(PositionHints{}, 0.05, 0.05)
	if x != 0 || y != 0 {
		t.Errorf("empty hints = (%v, %v), want origin", x, y)
	}
}

func TestDerivePositionAbsolute(t *testing.T) {
	tr := NewTracker()
	x, y := tr.DerivePosition(PositionHints{CenterX: f(0.005), CenterY: f(0.009)}, 0.05, 0.05)
	if !almostEqual(x, 0.005) || !almostEqual(y, 0.009) {
		t.Errorf("absolute = (%v, %v), want (0.005, 0.009)", x, y)
	}
}

func TestDerivePositionSpacing(t *testing.T) {
	tr := NewTracker()
	recordRect(tr, 0, 0, 0.05, 0.05)

	// 20mm gap after the 50mm rectangle's right edge, new shape 50mm wide:
	// center lands at 25 + 20 + 25 = 70mm, at the last shape's center Y.
	x, y := tr.DerivePosition(PositionHints{Spacing: f(0.02)}, 0.05, 0.05)
	if !almostEqual(x, 0.07) {
		t.Errorf("spacing x = %v, want 0.07", x)
	}
	if !almostEqual(y, 0) {
		t.Errorf("spacing y = %v, want 0", y)
	}
}

func TestDerivePositionAbsoluteBeatsSpacing(t *testing.T) {
	tr := NewTracker()
	recordRect(tr, 0, 0, 0.05, 0.05)

	h := PositionHints{CenterX: f(0.005), CenterY: f(0.009), Spacing: f(0.02)}
	x, y := tr.DerivePosition(h, 0.05, 0.05)
	if !almostEqual(x, 0.005) || !almostEqual(y, 0.009) {
		t.Errorf("absolute+spacing = (%v, %v), want absolute (0.005, 0.009)", x, y)
	}
}

func TestDerivePositionSpacingBeatsRelative(t *testing.T) {
	tr := NewTracker()
	recordRect(tr, 0, 0, 0.05, 0.05)

	h := PositionHints{Spacing: f(0.02), RelativeX: f(0.1), RelativeY: f(0.1)}
	x, y := tr.DerivePosition(h, 0.05, 0.05)
	if !almostEqual(x, 0.07) || !almostEqual(y, 0) {
		t.Errorf("spacing+relative = (%v, %v), want spacing (0.07, 0)", x, y)
	}
}

func TestDerivePositionRelative(t *testing.T) {
	tr := NewTracker()
	recordRect(tr, 0.01, 0.02, 0.05, 0.05)

	x, y := tr.DerivePosition(PositionHints{RelativeX: f(0.03)}, 0.05, 0.05)
	if !almostEqual(x, 0.04) || !almostEqual(y, 0.02) {
		t.Errorf("relative x only = (%v, %v), want (0.04, 0.02)", x, y)
	}

	x, y = tr.DerivePosition(PositionHints{RelativeX: f(-0.01), RelativeY: f(0.005)}, 0.05, 0.05)
	if !almostEqual(x, 0) || !almostEqual(y, 0.025) {
		t.Errorf("relative both = (%v, %v), want (0, 0.025)", x, y)
	}
}

func TestDerivePositionHalfAbsoluteIgnored(t *testing.T) {
	// CenterX without CenterY does not count as absolute; with no last
	// shape the position falls through to the origin.
	tr := NewTracker()
	x, y := tr.DerivePosition(PositionHints{CenterX: f(0.005)}, 0.05, 0.05)
	if x != 0 || y != 0 {
		t.Errorf("half absolute = (%v, %v), want origin", x, y)
	}
}

func TestDerivePositionSpacingWithoutLastShape(t *testing.T) {
	tr := NewTracker()
	x, y := tr.DerivePosition(PositionHints{Spacing: f(0.02)}, 0.05, 0.05)
	if x != 0 || y != 0 {
		t.Errorf("spacing without last shape = (%v, %v), want origin", x, y)
	}
}

func TestResetClearsLastShape(t *testing.T) {
	tr := NewTracker()
	recordRect(tr, 0, 0, 0.05, 0.05)
	if tr.Len() != 1 || tr.LastShape() == nil {
		t.Fatalf("tracker should have one shape before reset")
	}
	tr.Reset()
	if tr.Len() != 0 {
		t.Errorf("Len() after reset = %d, want 0", tr.Len())
	}
	if tr.LastShape() != nil {
		t.Errorf("LastShape() after reset should be nil")
	}
}

func TestDescribe(t *testing.T) {
	tr := NewTracker()
	if _, ok := tr.Describe(); ok {
		t.Fatal("Describe on empty tracker should report not ok")
	}

	tr.Record(Record{
		Kind:   KindCircle,
		Center: geom.Point2D{X: 0.01, Y: 0.02},
		BBox:   geom.BoxAround(0.01, 0.02, 0.03, 0.03),
		Radius: 0.015,
	})
	desc, ok := tr.Describe()
	if !ok {
		t.Fatal("Describe should report ok after a record")
	}
	if !strings.Contains(desc, "circle") {
		t.Errorf("description should name the kind: %s", desc)
	}
	if !strings.Contains(desc, "(10.0, 20.0) mm") {
		t.Errorf("description should report the center in mm: %s", desc)
	}
	if !strings.Contains(desc, "Radius: 15.0mm") {
		t.Errorf("description should report the radius in mm: %s", desc)
	}
}
