//go:build windows

// Package sldworks drives a live SolidWorks instance over COM automation.
//
// It implements the engine interfaces against the SldWorks type library
// via late-bound IDispatch calls. All calls must come from the goroutine
// that connected: the COM apartment is single-threaded, matching the
// serialized command flow above it.
package sldworks

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/parametriclabs/swmcp/internal/engine"
)

// Config controls how the engine attaches to SolidWorks.
type Config struct {
	// ProgID of the application, normally SldWorks.Application.
	ProgID string
	// PartTemplates are glob patterns tried in order when creating a new
	// part; the first match wins.
	PartTemplates []string
	// ConnectTimeout bounds attach-or-launch plus the readiness poll.
	ConnectTimeout time.Duration
}

// Engine is the live SolidWorks connection.
type Engine struct {
	cfg Config
	app *ole.IDispatch
}

// New returns an unconnected engine. Call Connect before use.
func New(cfg Config) *Engine {
	if cfg.ProgID == "" {
		cfg.ProgID = "SldWorks.Application"
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 60 * time.Second
	}
	return &Engine{cfg: cfg}
}

// Connect attaches to a running SolidWorks instance, launching one if
// none is running, and waits until the application answers automation
// calls. SolidWorks takes a while to become responsive after launch, so
// readiness is polled rather than assumed.
func (e *Engine) Connect() error {
	// S_FALSE (already initialized) surfaces as an error from go-ole;
	// either way the apartment is usable afterwards.
	_ = ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)

	unknown, err := oleutil.GetActiveObject(e.cfg.ProgID)
	if err != nil {
		unknown, err = oleutil.CreateObject(e.cfg.ProgID)
		if err != nil {
			return fmt.Errorf("sldworks: launch %s: %w", e.cfg.ProgID, err)
		}
	}
	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("sldworks: query IDispatch: %w", err)
	}
	e.app = app

	deadline := time.Now().Add(e.cfg.ConnectTimeout)
	for {
		if _, err := oleutil.PutProperty(e.app, "Visible", true); err == nil {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("sldworks: application not responding after %s", e.cfg.ConnectTimeout)
		}
		time.Sleep(time.Second)
	}
	// Suppress application-level prompts where the API allows it; the
	// dialog watcher handles the rest.
	_, _ = oleutil.PutProperty(e.app, "UserControlBackground", true)
	return nil
}

// ActiveDocument returns the document in the foreground.
func (e *Engine) ActiveDocument() (engine.Document, error) {
	v, err := oleutil.GetProperty(e.app, "ActiveDoc")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrConnectionLost, err)
	}
	model := v.ToIDispatch()
	if model == nil {
		return nil, engine.ErrNoDocument
	}
	return newDocument(model)
}

// NewPart creates a part document from the first template glob that
// matches an existing file.
func (e *Engine) NewPart() (engine.Document, error) {
	template, err := e.partTemplate()
	if err != nil {
		return nil, err
	}
	v, err := oleutil.CallMethod(e.app, "NewDocument", template, 0, 0.0, 0.0)
	if err != nil {
		return nil, fmt.Errorf("sldworks: NewDocument: %w", err)
	}
	model := v.ToIDispatch()
	if model == nil {
		return nil, fmt.Errorf("sldworks: NewDocument returned no document (template %s)", template)
	}
	return newDocument(model)
}

func (e *Engine) partTemplate() (string, error) {
	for _, pattern := range e.cfg.PartTemplates {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		if len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("sldworks: no part template found (tried %v)", e.cfg.PartTemplates)
}
