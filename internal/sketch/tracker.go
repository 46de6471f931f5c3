// Package sketch tracks the 2D entities created in the current sketch
// session so later commands can be positioned relative to earlier ones.
//
// The tracker is the session's local memory of what the sketch contains,
// not a cache of engine ground truth. It is reset exactly when a new
// sketch context is opened (new sketch on a plane or face, or a new part)
// and never mid-sketch.
package sketch

import (
	"fmt"

	"github.com/parametriclabs/swmcp/internal/geom"
)

// Kind tags a tracked shape.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindLine      Kind = "line"
)

// Record describes one tracked 2D entity: its anchor center, bounding
// extent, and kind-specific size fields. All lengths in meters.
type Record struct {
	Kind   Kind
	Center geom.Point2D
	BBox   geom.BBox

	// Kind-specific fields.
	Width  float64 // rectangle, line extent
	Height float64
	Radius float64 // circle
}

// Tracker records every tracked entity of the current sketch session in
// creation order, plus the most recent one. Construction-only entities
// (centerlines, points, text) are deliberately never recorded.
type Tracker struct {
	shapes []Record
	last   *Record
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker { return &Tracker{} }

// Record appends r and makes it the new last shape. Call it only after
// the corresponding draw call succeeded — a failed draw must not corrupt
// tracking state.
func (t *Tracker) Record(r Record) *Record {
	t.shapes = append(t.shapes, r)
	t.last = &t.shapes[len(t.shapes)-1]
	return t.last
}

// LastShape returns the most recently recorded shape, or nil.
func (t *Tracker) LastShape() *Record { return t.last }

// Len returns the number of tracked shapes.
func (t *Tracker) Len() int { return len(t.shapes) }

// Reset empties the shape list and clears the last shape. Called exactly
// on new-sketch-context transitions.
func (t *Tracker) Reset() {
	t.shapes = nil
	t.last = nil
}

// PositionHints carries the caller's positioning arguments, already
// converted to meters. Nil means the argument was absent.
type PositionHints struct {
	CenterX   *float64
	CenterY   *float64
	RelativeX *float64
	RelativeY *float64
	Spacing   *float64
}

// DerivePosition computes the center for a new shape of the given width
// and height. The priority order is a hard contract, not a heuristic —
// callers may legally supply several hints at once and the first matching
// rule wins regardless of the others:
//
//  1. both centerX and centerY supplied: returned verbatim (absolute).
//  2. spacing supplied and a last shape exists: placed after the last
//     shape's right edge, at its center height (horizontal only).
//  3. relativeX or relativeY supplied and a last shape exists: offset
//     from the last shape's center.
//  4. otherwise: the origin.
func (t *Tracker) DerivePosition(h PositionHints, width, height float64) (x, y float64) {
	if h.CenterX != nil && h.CenterY != nil {
		return *h.CenterX, *h.CenterY
	}
	if h.Spacing != nil && t.last != nil {
		x = t.last.BBox.Right + *h.Spacing + width/2
		return x, t.last.Center.Y
	}
	if (h.RelativeX != nil || h.RelativeY != nil) && t.last != nil {
		x, y = t.last.Center.X, t.last.Center.Y
		if h.RelativeX != nil {
			x += *h.RelativeX
		}
		if h.RelativeY != nil {
			y += *h.RelativeY
		}
		return x, y
	}
	return 0, 0
}

// Describe formats the last shape for the upstream agent, in millimeters.
// Returns false when nothing has been tracked yet.
func (t *Tracker) Describe() (string, bool) {
	if t.last == nil {
		return "", false
	}
	r := t.last
	out := fmt.Sprintf("Last shape: %s\n  Center: (%.1f, %.1f) mm\n  Bounds: X=[%.1f, %.1f], Y=[%.1f, %.1f] mm\n",
		r.Kind,
		geom.ToMM(r.Center.X), geom.ToMM(r.Center.Y),
		geom.ToMM(r.BBox.Left), geom.ToMM(r.BBox.Right),
		geom.ToMM(r.BBox.Bottom), geom.ToMM(r.BBox.Top))
	switch r.Kind {
	case KindRectangle:
		out += fmt.Sprintf("  Size: %.1fmm x %.1fmm", geom.ToMM(r.Width), geom.ToMM(r.Height))
	case KindCircle:
		out += fmt.Sprintf("  Radius: %.1fmm", geom.ToMM(r.Radius))
	case KindLine:
		out += fmt.Sprintf("  Extent: %.1fmm x %.1fmm", geom.ToMM(r.Width), geom.ToMM(r.Height))
	}
	return out, true
}
