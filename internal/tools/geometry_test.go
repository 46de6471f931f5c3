package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/geom"
)

func TestFacesTool_Handle_UnknownSurfaceType(t *testing.T) {
	_, r := setup(t)
	result, err := NewFacesTool(r).Handle(context.Background(), callReq(map[string]interface{}{
		"surface_type": "donut",
	}))
	if err != nil {
		t.Fatalf("Handle returned fatal error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("unknown surface_type should be an error result")
	}
	if !strings.Contains(getResultText(result), `"donut"`) {
		t.Errorf("error should quote the bad value: %s", getResultText(result))
	}
}

func TestFacesTool_Handle_FilterAndUnits(t *testing.T) {
	fake, r := setup(t)
	fake.AddFace(engine.FaceGeometry{Surface: engine.SurfacePlane, Sample: geom.Point3D{Y: 0.05}})
	fake.AddFace(engine.FaceGeometry{
		Surface: engine.SurfaceCylinder, Radius: 0.005, Sample: geom.Point3D{X: 0.005},
	})

	result, err := NewFacesTool(r).Handle(context.Background(), callReq(map[string]interface{}{
		"surface_type": "cylinder",
	}))
	if err != nil {
		t.Fatalf("Handle returned fatal error: %v", err)
	}
	text := getResultText(result)
	if !strings.Contains(text, "1 faces:") || strings.Contains(text, "Planar") {
		t.Errorf("filter not applied: %s", text)
	}
	if !strings.Contains(text, "point=(5.00, 0.00, 0.00) mm") {
		t.Errorf("pick point should be in mm: %s", text)
	}
}

func TestEdgesTool_Handle_UnknownEdgeType(t *testing.T) {
	_, r := setup(t)
	result, err := NewEdgesTool(r).Handle(context.Background(), callReq(map[string]interface{}{
		"edge_type": "helix",
	}))
	if err != nil {
		t.Fatalf("Handle returned fatal error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("unknown edge_type should be an error result")
	}
}

func TestFaceEdgesTool_Handle_RequiresPoint(t *testing.T) {
	_, r := setup(t)
	result, err := NewFaceEdgesTool(r).Handle(context.Background(), callReq(map[string]interface{}{
		"x": 10.0, "y": 20.0,
	}))
	if err != nil {
		t.Fatalf("Handle returned fatal error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("a partial point should be an error result")
	}
}

func TestBodyInfoTool_Handle_ConvertsMillimeters(t *testing.T) {
	fake, r := setup(t)
	fake.SetBodyBox(geom.Point3D{}, geom.Point3D{X: 0.08, Y: 0.04, Z: 0.02})

	result, err := NewBodyInfoTool(r).Handle(context.Background(), callReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle returned fatal error: %v", err)
	}
	if !strings.Contains(getResultText(result), "Size: 80.00 x 40.00 x 20.00 mm") {
		t.Errorf("box should be reported in mm: %s", getResultText(result))
	}
}

func TestRefPointTool_Handle_RequiresAForm(t *testing.T) {
	_, r := setup(t)
	result, err := NewRefPointTool(r).Handle(context.Background(), callReq(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("Handle returned fatal error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("ref_point with no arguments should be an error result")
	}
}

func TestRefPointTool_Handle_Coordinates(t *testing.T) {
	fake, r := setup(t)
	result, err := NewRefPointTool(r).Handle(context.Background(), callReq(map[string]interface{}{
		"x": 10.0, "y": 20.0, "z": 30.0,
	}))
	if err != nil {
		t.Fatalf("Handle returned fatal error: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("ref_point errored: %s", getResultText(result))
	}
	spec := fake.FeatureCalls[0].Spec
	if spec.PointConstraint != engine.RefPointCoordinates {
		t.Errorf("PointConstraint = %v, want coordinates", spec.PointConstraint)
	}
	if spec.Point.X != 0.01 || spec.Point.Y != 0.02 || spec.Point.Z != 0.03 {
		t.Errorf("coordinates not converted to meters: %v", spec.Point)
	}
}

func TestCoordinateSystemTool_Handle_RequiresOrigin(t *testing.T) {
	_, r := setup(t)
	result, err := NewCoordinateSystemTool(r).Handle(context.Background(), callReq(map[string]interface{}{
		"origin_x": 1.0,
	}))
	if err != nil {
		t.Fatalf("Handle returned fatal error: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("a partial origin should be an error result")
	}
}
