package orchestrator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/faults"
	"github.com/parametriclabs/swmcp/internal/geom"
)

// Geometry queries read entity coordinates off the solid body so the
// agent can compute pick points instead of guessing them. Everything is
// reported in millimeters; face sample points and edge midpoints are
// valid SelectByPoint inputs as printed.

func (s *Session) bodyInfo() (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	min, max, ok, err := doc.BodyBox()
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Message: "No solid body in the active document, create a feature first"}, nil
	}
	faces, err := doc.BodyFaces()
	if err != nil {
		return Result{}, err
	}
	edges, err := doc.BodyEdges()
	if err != nil {
		return Result{}, err
	}
	verts := uniqueVertices(edges)

	var b strings.Builder
	fmt.Fprintf(&b, "Body: %d faces, %d edges, %d vertices\n", len(faces), len(edges), len(verts))
	fmt.Fprintf(&b, "Bounding box: (%.2f, %.2f, %.2f) to (%.2f, %.2f, %.2f) mm\n",
		geom.ToMM(min.X), geom.ToMM(min.Y), geom.ToMM(min.Z),
		geom.ToMM(max.X), geom.ToMM(max.Y), geom.ToMM(max.Z))
	fmt.Fprintf(&b, "Size: %.2f x %.2f x %.2f mm",
		geom.ToMM(max.X-min.X), geom.ToMM(max.Y-min.Y), geom.ToMM(max.Z-min.Z))
	return Result{Message: b.String()}, nil
}

func (s *Session) listFaces(c ListFaces) (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	faces, err := doc.BodyFaces()
	if err != nil {
		return Result{}, err
	}
	if c.Surface != nil {
		kept := faces[:0]
		for _, f := range faces {
			if f.Surface == *c.Surface {
				kept = append(kept, f)
			}
		}
		faces = kept
	}
	if len(faces) == 0 {
		if c.Surface != nil {
			return Result{Message: fmt.Sprintf("No %s faces found", *c.Surface)}, nil
		}
		return Result{Message: "No faces found"}, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d faces:\n", len(faces))
	for i, f := range faces {
		fmt.Fprintf(&b, "%3d. %s face | area=%.2f mm^2%s | point=(%.2f, %.2f, %.2f) mm | edges=%d\n",
			i+1, f.Surface, f.Area*1e6, surfaceDetail(f),
			geom.ToMM(f.Sample.X), geom.ToMM(f.Sample.Y), geom.ToMM(f.Sample.Z), f.EdgeCount)
	}
	return Result{Message: strings.TrimRight(b.String(), "\n")}, nil
}

func (s *Session) listEdges(c ListEdges) (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	edges, err := doc.BodyEdges()
	if err != nil {
		return Result{}, err
	}
	if c.Curve != nil {
		kept := edges[:0]
		for _, e := range edges {
			if e.Curve == *c.Curve {
				kept = append(kept, e)
			}
		}
		edges = kept
	}
	if len(edges) == 0 {
		if c.Curve != nil {
			return Result{Message: fmt.Sprintf("No %s edges found", *c.Curve)}, nil
		}
		return Result{Message: "No edges found"}, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d edges:\n", len(edges))
	for i, e := range edges {
		fmt.Fprintf(&b, "%3d. %s\n", i+1, edgeLine(e))
	}
	return Result{Message: strings.TrimRight(b.String(), "\n")}, nil
}

func (s *Session) faceEdges(c FaceEdges) (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	face, edges, ok, err := doc.FaceAt(c.Point)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, faults.NotFoundAtPoint(engine.KindFace, c.Point)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s face at (%.1f, %.1f, %.1f) mm:\n",
		face.Surface, geom.ToMM(c.Point.X), geom.ToMM(c.Point.Y), geom.ToMM(c.Point.Z))
	fmt.Fprintf(&b, "  Area: %.2f mm^2\n", face.Area*1e6)
	if detail := surfaceDetail(face); detail != "" {
		fmt.Fprintf(&b, "  %s\n", strings.TrimPrefix(detail, " | "))
	}
	fmt.Fprintf(&b, "  Sample point: (%.2f, %.2f, %.2f) mm\n",
		geom.ToMM(face.Sample.X), geom.ToMM(face.Sample.Y), geom.ToMM(face.Sample.Z))
	fmt.Fprintf(&b, "  Edges (%d):", len(edges))
	for i, e := range edges {
		fmt.Fprintf(&b, "\n  %3d. %s", i+1, edgeLine(e))
	}
	return Result{Message: b.String()}, nil
}

func (s *Session) listVertices() (Result, error) {
	doc, err := s.activeDoc()
	if err != nil {
		return Result{}, err
	}
	edges, err := doc.BodyEdges()
	if err != nil {
		return Result{}, err
	}
	verts := uniqueVertices(edges)
	if len(verts) == 0 {
		return Result{Message: "No vertices found (the body may only have closed edges)"}, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d vertices:\n", len(verts))
	for i, v := range verts {
		fmt.Fprintf(&b, "%3d. (%.2f, %.2f, %.2f) mm\n",
			i+1, geom.ToMM(v.X), geom.ToMM(v.Y), geom.ToMM(v.Z))
	}
	return Result{Message: strings.TrimRight(b.String(), "\n")}, nil
}

// surfaceDetail renders the type-specific part of a face line: the normal
// for planes, axis and radius for cylinders, radius for spheres.
func surfaceDetail(f engine.FaceGeometry) string {
	switch f.Surface {
	case engine.SurfacePlane:
		return fmt.Sprintf(" | normal=(%.2f, %.2f, %.2f)", f.Normal.X, f.Normal.Y, f.Normal.Z)
	case engine.SurfaceCylinder:
		return fmt.Sprintf(" | axis=(%.2f, %.2f, %.2f) radius=%.2fmm",
			f.Normal.X, f.Normal.Y, f.Normal.Z, geom.ToMM(f.Radius))
	case engine.SurfaceSphere:
		return fmt.Sprintf(" | radius=%.2fmm", geom.ToMM(f.Radius))
	}
	return ""
}

func edgeLine(e engine.EdgeGeometry) string {
	mid := fmt.Sprintf("mid=(%.2f, %.2f, %.2f) mm",
		geom.ToMM(e.Mid.X), geom.ToMM(e.Mid.Y), geom.ToMM(e.Mid.Z))
	if e.Closed {
		return fmt.Sprintf("%s | closed | %s | length=%.2fmm", e.Curve, mid, geom.ToMM(e.Length))
	}
	return fmt.Sprintf("%s | (%.2f, %.2f, %.2f) to (%.2f, %.2f, %.2f) | %s | length=%.2fmm",
		e.Curve,
		geom.ToMM(e.Start.X), geom.ToMM(e.Start.Y), geom.ToMM(e.Start.Z),
		geom.ToMM(e.End.X), geom.ToMM(e.End.Y), geom.ToMM(e.End.Z),
		mid, geom.ToMM(e.Length))
}

// vertexTolerance is the coincidence threshold for deduplicating edge
// endpoints into vertices, in meters.
const vertexTolerance = 1e-7

// uniqueVertices collects the endpoints of open edges, deduplicated by
// proximity and sorted by coordinates.
func uniqueVertices(edges []engine.EdgeGeometry) []geom.Point3D {
	var verts []geom.Point3D
	add := func(p geom.Point3D) {
		for _, v := range verts {
			if math.Abs(v.X-p.X) < vertexTolerance &&
				math.Abs(v.Y-p.Y) < vertexTolerance &&
				math.Abs(v.Z-p.Z) < vertexTolerance {
				return
			}
		}
		verts = append(verts, p)
	}
	for _, e := range edges {
		if e.Closed {
			continue
		}
		add(e.Start)
		add(e.End)
	}
	sort.Slice(verts, func(i, j int) bool {
		if verts[i].X != verts[j].X {
			return verts[i].X < verts[j].X
		}
		if verts[i].Y != verts[j].Y {
			return verts[i].Y < verts[j].Y
		}
		return verts[i].Z < verts[j].Z
	})
	return verts
}
