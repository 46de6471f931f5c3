// swmcp: SolidWorks MCP server
//
// Exposes a live SolidWorks session to AI agents over MCP (stdio
// transport): sketching, feature creation, patterns, reference geometry
// and feature-tree introspection.
//
// Usage:
//
//	swmcp serve [-config swmcp.yaml]   # Start MCP server (stdio transport)
//	swmcp version
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/parametriclabs/swmcp/internal/config"
	"github.com/parametriclabs/swmcp/internal/logging"
	swserver "github.com/parametriclabs/swmcp/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("swmcp v%s\n", swserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "swmcp.yaml", "path to the YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Everything logs to stderr: stdout is the MCP transport.
	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	eng, err := newEngine(cfg.Engine)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	if err := eng.Connect(); err != nil {
		return fmt.Errorf("connecting to SolidWorks: %w", err)
	}

	s, cleanup, err := swserver.New(cfg, eng, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	log.Info("serving", zap.String("version", swserver.Version))
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `swmcp v%s - SolidWorks MCP Server

Usage:
  swmcp serve [-config swmcp.yaml]   Start the MCP server (stdio transport)
  swmcp version                      Print the version

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "solidworks": {
        "command": "swmcp",
        "args": ["serve"]
      }
    }
  }

Requires a Windows host with SolidWorks installed.
`, swserver.Version)
}
