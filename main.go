package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/justinmccuistion/orca-ai-mcp/pkg/config"
)

func main() {
	// stdout carries the MCP data channel, so every diagnostic goes to stderr.
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env")
	}

	adapter := NewAdapter()

	if _, err := config.Resolve(); err != nil {
		log.Warn("Orca is not configured, only the context tool is available",
			"hint", "set ORCA_API_TOKEN or create "+config.FileName)
	}

	if err := adapter.Serve(); err != nil {
		log.Fatal("Server error", "error", err)
	}
}
