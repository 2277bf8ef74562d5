package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/plate-locator/internal/config"
	"github.com/ironsheep/plate-locator/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := os.Getenv("PLATE_CONFIG")

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("plate-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("plate-mcp - MCP server for licence plate detection")
			fmt.Println()
			fmt.Println("Usage: plate-mcp [options] [config.yaml]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug    Enable debug logging\n", config.LogLevelEnv)
			fmt.Println("  PLATE_CONFIG=path          Config file, if none is given as argument")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		default:
			configPath = os.Args[1]
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "plate-mcp: %v\n", err)
		os.Exit(1)
	}

	// Logger writes to stderr (stdout is for MCP protocol)
	logger := cfg.Logger()
	logger.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("plate MCP server starting")

	server.Version = Version
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create server")
	}
	if err := srv.Run(); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
