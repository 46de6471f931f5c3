// Package geom holds the small value types shared across the selection
// protocol: points and bounding boxes in the canonical internal unit
// (meters), plus the two boundary conversions.
//
// Length arguments arrive from the upstream agent in millimeters and angle
// arguments in degrees. Both are converted exactly once, at the tool
// boundary, via MM and Radians. Everything below that boundary works in
// meters and radians.
package geom

import "math"

// Point2D is a sketch-plane coordinate in meters.
type Point2D struct {
	X float64
	Y float64
}

// Point3D is a model-space coordinate in meters.
type Point3D struct {
	X float64
	Y float64
	Z float64
}

// BBox is an axis-aligned 2D extent in meters.
type BBox struct {
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
}

// Center returns the midpoint of the box.
func (b BBox) Center() Point2D {
	return Point2D{X: (b.Left + b.Right) / 2, Y: (b.Bottom + b.Top) / 2}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.Top - b.Bottom }

// BoxAround builds the bounding box for a shape centered at (cx, cy)
// with the given total width and height.
func BoxAround(cx, cy, width, height float64) BBox {
	return BBox{
		Left:   cx - width/2,
		Right:  cx + width/2,
		Bottom: cy - height/2,
		Top:    cy + height/2,
	}
}

// MM converts a millimeter length to meters.
func MM(v float64) float64 { return v / 1000.0 }

// ToMM converts a meter length back to millimeters for display.
func ToMM(v float64) float64 { return v * 1000.0 }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180.0 }

// PointMM builds a Point3D from millimeter coordinates.
func PointMM(x, y, z float64) Point3D {
	return Point3D{X: MM(x), Y: MM(y), Z: MM(z)}
}
