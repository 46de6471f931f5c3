//go:build !windows

package main

import (
	"errors"

	"github.com/parametriclabs/swmcp/internal/config"
	"github.com/parametriclabs/swmcp/internal/engine"
)

func newEngine(cfg config.EngineConfig) (engine.Engine, error) {
	return nil, errors.New("the SolidWorks engine requires a Windows host")
}
