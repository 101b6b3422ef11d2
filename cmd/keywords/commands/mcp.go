// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to match keywords via stdio tools
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/matcher"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the keyword matcher as an MCP (Model Context Protocol) server over
stdio, exposing match_keywords, list_taxonomy and get_usage tools.

The index file is watched; an offline rebuild is picked up live.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  keywords mcp

  # Configure in the host's MCP config:
  # {
  #   "mcpServers": {
  #     "keywords": {
  #       "command": "keywords",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if !cfg.EmbeddingConfigured() && !quiet {
		log.Println("Warning: no embedding credential set - running in lexical-only mode")
	}

	recorder, closeRecorder := openRecorder(cfg)
	defer closeRecorder()

	cache := index.NewCache(cfg.IndexPath, cfg.EmbeddingConfigured())
	m, err := matcher.New(cfg, cache, recorder)
	if err != nil {
		return fmt.Errorf("initializing matcher: %w", err)
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Hot-reload the index when an offline build replaces it
	if _, err := index.Watch(ctx, cfg.IndexPath, cache); err != nil {
		log.Printf("Warning: index watching unavailable: %v", err)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Description Keyword Matcher",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, m, cache, recorder)

	if !quiet {
		log.Println("Keyword matcher MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
