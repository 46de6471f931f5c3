// Package server wires the MCP server: engine session, journal, and the
// full tool surface. This is the composition root; no modeling logic
// lives here, only wiring.
package server

import (
	"go.uber.org/zap"

	"github.com/mark3labs/mcp-go/server"

	"github.com/parametriclabs/swmcp/internal/config"
	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/journal"
	"github.com/parametriclabs/swmcp/internal/orchestrator"
	"github.com/parametriclabs/swmcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every tool registered against a fresh
// session over eng.
//
// The returned cleanup function closes the journal and must be called on
// shutdown. It is always non-nil and safe to call even when the journal
// failed to open.
func New(cfg config.Config, eng engine.Engine, log *zap.Logger) (*server.MCPServer, func(), error) {
	session := orchestrator.NewSession(eng, orchestrator.Options{
		Log:           log,
		DialogTimeout: cfg.Engine.DialogTimeoutDuration(),
		DialogPoll:    cfg.Engine.DialogPollDuration(),
	})

	// The journal is optional: if it cannot open we log and run without
	// it rather than refusing to serve.
	cleanup := func() {}
	var jnl *journal.Journal
	if cfg.Journal.Enabled {
		var err error
		jnl, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Warn("journal disabled", zap.Error(err))
			jnl = nil
		} else {
			log.Info("journal open",
				zap.String("path", cfg.Journal.Path),
				zap.String("run", jnl.Run()))
			cleanup = func() {
				if err := jnl.Close(); err != nil {
					log.Warn("journal close", zap.Error(err))
				}
			}
		}
	}

	s := server.NewMCPServer(
		"swmcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	runner := tools.NewRunner(session, jnl, log)

	// --- Document and sketch lifecycle ---

	newPart := tools.NewNewPartTool(runner)
	s.AddTool(newPart.Definition(), newPart.Handle)

	createSketch := tools.NewCreateSketchTool(runner)
	s.AddTool(createSketch.Definition(), createSketch.Handle)

	exitSketch := tools.NewExitSketchTool(runner)
	s.AddTool(exitSketch.Definition(), exitSketch.Handle)

	// --- Drawing ---

	rectangle := tools.NewSketchRectangleTool(runner)
	s.AddTool(rectangle.Definition(), rectangle.Handle)

	circle := tools.NewSketchCircleTool(runner)
	s.AddTool(circle.Definition(), circle.Handle)

	line := tools.NewSketchLineTool(runner)
	s.AddTool(line.Definition(), line.Handle)

	centerline := tools.NewSketchCenterlineTool(runner)
	s.AddTool(centerline.Definition(), centerline.Handle)

	lastShape := tools.NewLastShapeInfoTool(runner)
	s.AddTool(lastShape.Definition(), lastShape.Handle)

	// --- Profile features ---

	extrude := tools.NewExtrudeTool(runner)
	s.AddTool(extrude.Definition(), extrude.Handle)

	cutExtrude := tools.NewCutExtrudeTool(runner)
	s.AddTool(cutExtrude.Definition(), cutExtrude.Handle)

	revolve := tools.NewRevolveTool(runner)
	s.AddTool(revolve.Definition(), revolve.Handle)

	cutRevolve := tools.NewCutRevolveTool(runner)
	s.AddTool(cutRevolve.Definition(), cutRevolve.Handle)

	sweep := tools.NewSweepTool(runner)
	s.AddTool(sweep.Definition(), sweep.Handle)

	loft := tools.NewLoftTool(runner)
	s.AddTool(loft.Definition(), loft.Handle)

	boundary := tools.NewBoundaryBossTool(runner)
	s.AddTool(boundary.Definition(), boundary.Handle)

	// --- Applied features ---

	fillet := tools.NewFilletTool(runner)
	s.AddTool(fillet.Definition(), fillet.Handle)

	chamfer := tools.NewChamferTool(runner)
	s.AddTool(chamfer.Definition(), chamfer.Handle)

	shell := tools.NewShellTool(runner)
	s.AddTool(shell.Definition(), shell.Handle)

	// --- Patterns and mirror ---

	mirror := tools.NewMirrorTool(runner)
	s.AddTool(mirror.Definition(), mirror.Handle)

	linear := tools.NewLinearPatternTool(runner)
	s.AddTool(linear.Definition(), linear.Handle)

	circular := tools.NewCircularPatternTool(runner)
	s.AddTool(circular.Definition(), circular.Handle)

	// --- Reference geometry ---

	refPlane := tools.NewRefPlaneTool(runner)
	s.AddTool(refPlane.Definition(), refPlane.Handle)

	refAxis := tools.NewRefAxisTool(runner)
	s.AddTool(refAxis.Definition(), refAxis.Handle)

	refPoint := tools.NewRefPointTool(runner)
	s.AddTool(refPoint.Definition(), refPoint.Handle)

	coordSys := tools.NewCoordinateSystemTool(runner)
	s.AddTool(coordSys.Definition(), coordSys.Handle)

	// --- Holes ---

	holeWizard := tools.NewHoleWizardTool(runner)
	s.AddTool(holeWizard.Definition(), holeWizard.Handle)

	// --- Introspection ---

	listFeatures := tools.NewListFeaturesTool(runner)
	s.AddTool(listFeatures.Definition(), listFeatures.Handle)

	bodyInfo := tools.NewBodyInfoTool(runner)
	s.AddTool(bodyInfo.Definition(), bodyInfo.Handle)

	faces := tools.NewFacesTool(runner)
	s.AddTool(faces.Definition(), faces.Handle)

	edges := tools.NewEdgesTool(runner)
	s.AddTool(edges.Definition(), edges.Handle)

	faceEdges := tools.NewFaceEdgesTool(runner)
	s.AddTool(faceEdges.Definition(), faceEdges.Handle)

	vertices := tools.NewVerticesTool(runner)
	s.AddTool(vertices.Definition(), vertices.Handle)

	return s, cleanup, nil
}

// serverInstructions tells the AI how to drive the CAD session effectively.
func serverInstructions() string {
	return `You are driving a live SolidWorks session through modeling tools.

## Core workflow
1. create_sketch on a plane (Front, Top, Right) or on a face of the body
2. Draw with sketch_rectangle / sketch_circle / sketch_line (all units mm)
3. Turn the sketch into a solid: extrude, revolve (needs a sketch_centerline
   first), or exit_sketch and combine later with sweep / loft / boundary_boss
4. Refine with fillet, chamfer, shell, hole_wizard
5. Multiply with mirror, linear_pattern, circular_pattern

## Placement of sketched shapes
Draw tools place shapes by a strict priority:
center_x + center_y (absolute) > spacing (after the last shape's right
edge) > relative_x / relative_y (offset from the last shape's center) >
origin. The "last shape" memory resets every time a sketch is opened.
Use get_last_shape_info to verify where something landed before placing
relative to it.

## Picking 3D entities
Faces and edges are picked by the nearest model-space point in mm, not by
name. Read exact pick points off the model: get_faces reports a pick point
per face, get_edges a midpoint per edge, get_vertices the corner
coordinates, and get_face_edges drills into one face. Planes, sketches,
axes and features are referenced by name; list_features shows the exact
names.

## Errors
Tool errors are recoverable: the session keeps running. A LOCATOR_NOT_FOUND
error means your pick point or name was wrong - re-derive it (the error
lists available names when possible) and call the tool again. Never repeat
the identical failing call.

## Units
All lengths in millimeters, all angles in degrees.`
}
