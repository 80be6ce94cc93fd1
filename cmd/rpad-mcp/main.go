package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/rpad/internal/config"
	"github.com/ironsheep/rpad/internal/logger"
	"github.com/ironsheep/rpad/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("rpad-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("rpad-mcp - MCP server for image border normalization")
			fmt.Println()
			fmt.Println("Usage: rpad-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  RPAD_PADDING=30         Default padding for image_normalize_border")
			fmt.Println("  RPAD_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  RPAD_LOG_FORMAT=json    Structured log output")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.WithError(err).Fatal("invalid logging configuration")
	}

	logger.WithField("version", Version).
		WithField("commit", GitCommit).
		Debug("rpad-mcp starting")

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
