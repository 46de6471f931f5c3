//go:build windows

package main

import (
	"github.com/parametriclabs/swmcp/internal/config"
	"github.com/parametriclabs/swmcp/internal/engine"
	"github.com/parametriclabs/swmcp/internal/engine/sldworks"
)

func newEngine(cfg config.EngineConfig) (engine.Engine, error) {
	return sldworks.New(sldworks.Config{
		ProgID:         cfg.ProgID,
		PartTemplates:  cfg.PartTemplates,
		ConnectTimeout: cfg.ConnectTimeoutDuration(),
	}), nil
}
