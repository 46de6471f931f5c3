//go:build windows

package sldworks

import (
	"fmt"
	"math"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/geom"
)

// Binding note: body-level getters (GetFaces, GetEdges, GetBodyBox) bind
// as methods, while most face/edge/vertex getters (GetSurface, GetArea,
// GetUVBounds, GetEdges on a face, GetStartVertex, GetPoint,
// GetCurveParams2, GetCurve, Identity) bind as properties. Late binding
// fails on the wrong form, so the split here is load-bearing.

// Surface identity constants from ISurface::Identity.
const (
	swSurfacePlane    = 4001
	swSurfaceCylinder = 4002
	swSurfaceCone     = 4003
	swSurfaceSphere   = 4004
	swSurfaceTorus    = 4005
	swSurfaceBSpline  = 4006
)

func surfaceType(identity int) engine.SurfaceType {
	switch identity {
	case swSurfacePlane:
		return engine.SurfacePlane
	case swSurfaceCylinder:
		return engine.SurfaceCylinder
	case swSurfaceCone:
		return engine.SurfaceCone
	case swSurfaceSphere:
		return engine.SurfaceSphere
	case swSurfaceTorus:
		return engine.SurfaceTorus
	case swSurfaceBSpline:
		return engine.SurfaceSpline
	}
	return engine.SurfaceUnknown
}

// bodies returns the document's solid bodies after a rebuild, so the
// reported geometry reflects the latest feature.
func (d *document) bodies() ([]*ole.IDispatch, error) {
	if _, err := oleutil.CallMethod(d.model, "ForceRebuild3", true); err != nil {
		return nil, fmt.Errorf("sldworks: ForceRebuild3: %w", err)
	}
	// 0 = swSolidBody
	v, err := oleutil.CallMethod(d.model, "GetBodies2", 0, true)
	if err != nil {
		return nil, fmt.Errorf("sldworks: GetBodies2: %w", err)
	}
	return dispatchItems(v), nil
}

func (d *document) BodyBox() (geom.Point3D, geom.Point3D, bool, error) {
	bodies, err := d.bodies()
	if err != nil {
		return geom.Point3D{}, geom.Point3D{}, false, err
	}
	min := geom.Point3D{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := geom.Point3D{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	found := false
	for _, body := range bodies {
		v, err := oleutil.CallMethod(body, "GetBodyBox")
		if err != nil {
			continue
		}
		box := floatItems(v)
		if len(box) < 6 {
			continue
		}
		min.X, min.Y, min.Z = math.Min(min.X, box[0]), math.Min(min.Y, box[1]), math.Min(min.Z, box[2])
		max.X, max.Y, max.Z = math.Max(max.X, box[3]), math.Max(max.Y, box[4]), math.Max(max.Z, box[5])
		found = true
	}
	if !found {
		return geom.Point3D{}, geom.Point3D{}, false, nil
	}
	return min, max, true, nil
}

func (d *document) BodyFaces() ([]engine.FaceGeometry, error) {
	bodies, err := d.bodies()
	if err != nil {
		return nil, err
	}
	var out []engine.FaceGeometry
	for _, body := range bodies {
		v, err := oleutil.CallMethod(body, "GetFaces")
		if err != nil {
			return nil, fmt.Errorf("sldworks: GetFaces: %w", err)
		}
		for _, face := range dispatchItems(v) {
			out = append(out, faceGeometry(face))
		}
	}
	return out, nil
}

func (d *document) BodyEdges() ([]engine.EdgeGeometry, error) {
	bodies, err := d.bodies()
	if err != nil {
		return nil, err
	}
	var out []engine.EdgeGeometry
	for _, body := range bodies {
		v, err := oleutil.CallMethod(body, "GetEdges")
		if err != nil {
			return nil, fmt.Errorf("sldworks: GetEdges: %w", err)
		}
		for _, edge := range dispatchItems(v) {
			out = append(out, edgeGeometry(edge))
		}
	}
	return out, nil
}

func (d *document) FaceAt(pt geom.Point3D) (engine.FaceGeometry, []engine.EdgeGeometry, bool, error) {
	if err := d.ClearSelection(); err != nil {
		return engine.FaceGeometry{}, nil, false, err
	}
	ok, err := d.SelectByPoint(engine.KindFace, pt, engine.MarkNone, false)
	if err != nil || !ok {
		return engine.FaceGeometry{}, nil, false, err
	}
	selMgr, err := oleutil.GetProperty(d.model, "SelectionManager")
	if err != nil {
		return engine.FaceGeometry{}, nil, false, fmt.Errorf("sldworks: SelectionManager: %w", err)
	}
	v, err := oleutil.CallMethod(selMgr.ToIDispatch(), "GetSelectedObject6", 1, -1)
	if err != nil {
		return engine.FaceGeometry{}, nil, false, fmt.Errorf("sldworks: GetSelectedObject6: %w", err)
	}
	face := v.ToIDispatch()
	if face == nil {
		return engine.FaceGeometry{}, nil, false, nil
	}
	g := faceGeometry(face)
	var edges []engine.EdgeGeometry
	for _, edge := range propDispatchItems(face, "GetEdges") {
		edges = append(edges, edgeGeometry(edge))
	}
	if err := d.ClearSelection(); err != nil {
		return engine.FaceGeometry{}, nil, false, err
	}
	return g, edges, true, nil
}

func faceGeometry(face *ole.IDispatch) engine.FaceGeometry {
	g := engine.FaceGeometry{Surface: engine.SurfaceUnknown}
	if a, ok := propFloat(face, "GetArea"); ok {
		g.Area = a
	}
	if n, ok := propInt(face, "GetEdgeCount"); ok {
		g.EdgeCount = n
	}
	surf := propDispatch(face, "GetSurface")
	if surf != nil {
		if id, ok := propInt(surf, "Identity"); ok {
			g.Surface = surfaceType(id)
		}
		switch g.Surface {
		case engine.SurfacePlane:
			if p := propFloats(surf, "PlaneParams"); len(p) >= 3 {
				g.Normal = geom.Point3D{X: p[0], Y: p[1], Z: p[2]}
			}
		case engine.SurfaceCylinder, engine.SurfaceCone:
			if p := propFloats(surf, "CylinderParams"); len(p) >= 7 {
				g.Normal = geom.Point3D{X: p[3], Y: p[4], Z: p[5]}
				g.Radius = p[6]
			}
		case engine.SurfaceSphere:
			if p := propFloats(surf, "SphereParams"); len(p) >= 4 {
				g.Radius = p[3]
			}
		}
	}
	g.Sample = faceSample(face, surf)
	return g
}

// faceSample evaluates the surface at its UV midpoint, the most reliable
// on-face pick point. Falls back to the edge-vertex centroid when the
// surface cannot be evaluated.
func faceSample(face, surf *ole.IDispatch) geom.Point3D {
	if surf != nil {
		if uv := propFloats(face, "GetUVBounds"); len(uv) >= 4 {
			uMid := (uv[0] + uv[1]) / 2
			vMid := (uv[2] + uv[3]) / 2
			if v, err := oleutil.CallMethod(surf, "Evaluate", uMid, vMid, 0, 0); err == nil {
				if p := floatItems(v); len(p) >= 3 {
					return geom.Point3D{X: p[0], Y: p[1], Z: p[2]}
				}
			}
		}
	}
	return faceCentroid(face)
}

func faceCentroid(face *ole.IDispatch) geom.Point3D {
	var sum geom.Point3D
	n := 0
	for _, edge := range propDispatchItems(face, "GetEdges") {
		for _, name := range []string{"GetStartVertex", "GetEndVertex"} {
			vert := propDispatch(edge, name)
			if vert == nil {
				continue
			}
			p := vertexPoint(vert)
			sum.X, sum.Y, sum.Z = sum.X+p.X, sum.Y+p.Y, sum.Z+p.Z
			n++
		}
	}
	if n == 0 {
		return geom.Point3D{}
	}
	return geom.Point3D{X: sum.X / float64(n), Y: sum.Y / float64(n), Z: sum.Z / float64(n)}
}

func edgeGeometry(edge *ole.IDispatch) engine.EdgeGeometry {
	g := engine.EdgeGeometry{}
	g.Length = edgeLength(edge)

	start := propDispatch(edge, "GetStartVertex")
	end := propDispatch(edge, "GetEndVertex")
	if start == nil || end == nil {
		// No endpoints means a closed edge.
		g.Closed = true
		g.Curve = engine.CurveCircle
		g.Mid = closedEdgeMid(edge)
		return g
	}

	g.Start = vertexPoint(start)
	g.End = vertexPoint(end)
	mid := geom.Point3D{
		X: (g.Start.X + g.End.X) / 2,
		Y: (g.Start.Y + g.End.Y) / 2,
		Z: (g.Start.Z + g.End.Z) / 2,
	}
	// Snap the chord midpoint back onto the edge for curved edges.
	if v, err := oleutil.CallMethod(edge, "GetClosestPointOn", mid.X, mid.Y, mid.Z); err == nil {
		if p := floatItems(v); len(p) >= 3 {
			mid = geom.Point3D{X: p[0], Y: p[1], Z: p[2]}
		}
	}
	g.Mid = mid

	chord := math.Sqrt(sq(g.End.X-g.Start.X) + sq(g.End.Y-g.Start.Y) + sq(g.End.Z-g.Start.Z))
	if g.Length > 0 && chord > 0 && math.Abs(g.Length-chord)/chord >= 1e-6 {
		g.Curve = engine.CurveArc
	} else {
		g.Curve = engine.CurveLine
	}
	return g
}

func edgeLength(edge *ole.IDispatch) float64 {
	params := propFloats(edge, "GetCurveParams2")
	if len(params) < 8 {
		return 0
	}
	curve := propDispatch(edge, "GetCurve")
	if curve == nil {
		return 0
	}
	v, err := oleutil.CallMethod(curve, "GetLength2", params[6], params[7])
	if err != nil {
		return 0
	}
	if l, ok := v.Value().(float64); ok {
		return l
	}
	return 0
}

func closedEdgeMid(edge *ole.IDispatch) geom.Point3D {
	params := propFloats(edge, "GetCurveParams2")
	if len(params) >= 8 {
		if curve := propDispatch(edge, "GetCurve"); curve != nil {
			tMid := (params[6] + params[7]) / 2
			if v, err := oleutil.CallMethod(curve, "Evaluate2", tMid, 0); err == nil {
				if p := floatItems(v); len(p) >= 3 {
					return geom.Point3D{X: p[0], Y: p[1], Z: p[2]}
				}
			}
		}
	}
	if len(params) >= 3 {
		return geom.Point3D{X: params[0], Y: params[1], Z: params[2]}
	}
	return geom.Point3D{}
}

func vertexPoint(vert *ole.IDispatch) geom.Point3D {
	if p := propFloats(vert, "GetPoint"); len(p) >= 3 {
		return geom.Point3D{X: p[0], Y: p[1], Z: p[2]}
	}
	return geom.Point3D{}
}

func sq(v float64) float64 { return v * v }

// --- variant plumbing ---

func dispatchItems(v *ole.VARIANT) []*ole.IDispatch {
	if v == nil {
		return nil
	}
	arr := v.ToArray()
	if arr == nil {
		return nil
	}
	var out []*ole.IDispatch
	for _, item := range arr.ToValueArray() {
		if d, ok := item.(*ole.IDispatch); ok && d != nil {
			out = append(out, d)
		}
	}
	return out
}

func floatItems(v *ole.VARIANT) []float64 {
	if v == nil {
		return nil
	}
	arr := v.ToArray()
	if arr == nil {
		return nil
	}
	var out []float64
	for _, item := range arr.ToValueArray() {
		switch n := item.(type) {
		case float64:
			out = append(out, n)
		case float32:
			out = append(out, float64(n))
		}
	}
	return out
}

func propDispatch(obj *ole.IDispatch, name string) *ole.IDispatch {
	v, err := oleutil.GetProperty(obj, name)
	if err != nil {
		return nil
	}
	return v.ToIDispatch()
}

func propDispatchItems(obj *ole.IDispatch, name string) []*ole.IDispatch {
	v, err := oleutil.GetProperty(obj, name)
	if err != nil {
		return nil
	}
	return dispatchItems(v)
}

func propFloats(obj *ole.IDispatch, name string) []float64 {
	v, err := oleutil.GetProperty(obj, name)
	if err != nil {
		return nil
	}
	return floatItems(v)
}

func propFloat(obj *ole.IDispatch, name string) (float64, bool) {
	v, err := oleutil.GetProperty(obj, name)
	if err != nil {
		return 0, false
	}
	switch n := v.Value().(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func propInt(obj *ole.IDispatch, name string) (int, bool) {
	v, err := oleutil.GetProperty(obj, name)
	if err != nil {
		return 0, false
	}
	switch n := v.Value().(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int16:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
