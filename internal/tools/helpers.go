// Package tools implements the MCP tool surface of the server.
//
// Each tool is a struct with its dependencies injected via constructor,
// a Definition() returning the mcp.Tool schema, and a Handle() processing
// the call. Tools are thin: they parse arguments, convert units exactly
// once (millimeters to meters, degrees to radians), build a command, and
// hand it to the shared Runner. All modeling semantics live below, in the
// orchestrator.
package tools

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/parametriclabs/swmcp/internal/faults"
	"github.com/parametriclabs/swmcp/internal/geom"
	"github.com/parametriclabs/swmcp/internal/journal"
	"github.com/parametriclabs/swmcp/internal/orchestrator"
	"github.com/parametriclabs/swmcp/internal/sketch"
)

// Runner executes commands for every tool, applying the shared error
// contract: recoverable faults become tool error results the upstream
// agent can react to, anything else terminates the request as a protocol
// error. Every command lands in the journal either way.
type Runner struct {
	session *orchestrator.Session
	journal *journal.Journal
	log     *zap.Logger
}

// NewRunner creates a Runner. journal may be nil.
func NewRunner(session *orchestrator.Session, jnl *journal.Journal, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{session: session, journal: jnl, log: log}
}

func (r *Runner) run(ctx context.Context, cmd orchestrator.Command) (*mcp.CallToolResult, error) {
	start := time.Now()
	res, err := r.session.Execute(ctx, cmd)
	elapsed := time.Since(start)
	if err != nil {
		var fault *faults.Fault
		if errors.As(err, &fault) {
			r.record(cmd.Name(), string(fault.Code), elapsed, fault.Message)
			return mcp.NewToolResultError(fault.Error()), nil
		}
		r.record(cmd.Name(), "fatal", elapsed, err.Error())
		return nil, err
	}
	r.record(cmd.Name(), "ok", elapsed, res.Feature)
	return mcp.NewToolResultText(res.Message), nil
}

func (r *Runner) record(command, outcome string, elapsed time.Duration, detail string) {
	if err := r.journal.Record(command, outcome, elapsed, detail); err != nil {
		r.log.Warn("journal write failed", zap.String("command", command), zap.Error(err))
	}
}

// floatArg extracts a number argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64).
func floatArg(req mcp.CallToolRequest, key string, defaultVal float64) float64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return v
}

// boolArg extracts a boolean argument.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// intArg extracts an integer argument.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// mmArg extracts a millimeter length and converts it to meters.
func mmArg(req mcp.CallToolRequest, key string, defaultMM float64) float64 {
	return geom.MM(floatArg(req, key, defaultMM))
}

// degArg extracts a degree angle and converts it to radians.
func degArg(req mcp.CallToolRequest, key string, defaultDeg float64) float64 {
	return geom.Radians(floatArg(req, key, defaultDeg))
}

// optMM extracts an optional millimeter length. Nil means absent.
func optMM(req mcp.CallToolRequest, key string) *float64 {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return nil
	}
	m := geom.MM(v)
	return &m
}

// positionHints reads the shared placement arguments of the draw tools.
func positionHints(req mcp.CallToolRequest) sketch.PositionHints {
	return sketch.PositionHints{
		CenterX:   optMM(req, "center_x"),
		CenterY:   optMM(req, "center_y"),
		RelativeX: optMM(req, "relative_x"),
		RelativeY: optMM(req, "relative_y"),
		Spacing:   optMM(req, "spacing"),
	}
}

// optPointMM reads an optional model-space point from three millimeter
// arguments. All three must be present.
func optPointMM(req mcp.CallToolRequest, xKey, yKey, zKey string) *geom.Point3D {
	args := req.GetArguments()
	x, okX := args[xKey].(float64)
	y, okY := args[yKey].(float64)
	z, okZ := args[zKey].(float64)
	if !okX || !okY || !okZ {
		return nil
	}
	p := geom.PointMM(x, y, z)
	return &p
}

// stringList extracts an array-of-strings argument.
func stringList(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// pointListMM extracts an array of [x, y, z] millimeter triples.
// Malformed elements are skipped rather than failing the whole call; the
// orchestrator's minimum-count validation catches an empty result.
func pointListMM(req mcp.CallToolRequest, key string) []geom.Point3D {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	out := make([]geom.Point3D, 0, len(raw))
	for _, v := range raw {
		triple, ok := v.([]any)
		if !ok || len(triple) != 3 {
			continue
		}
		x, okX := triple[0].(float64)
		y, okY := triple[1].(float64)
		z, okZ := triple[2].(float64)
		if !okX || !okY || !okZ {
			continue
		}
		out = append(out, geom.PointMM(x, y, z))
	}
	return out
}

// pointItems is the JSON schema for an array of [x, y, z] triples.
func pointItems() mcp.PropertyOption {
	return mcp.Items(map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "number"},
		"minItems": 3,
		"maxItems": 3,
	})
}

func stringItems() mcp.PropertyOption {
	return mcp.Items(map[string]any{"type": "string"})
}
