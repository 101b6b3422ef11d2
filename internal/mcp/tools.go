// ABOUTME: MCP tool definitions and registration for the keyword matcher
// ABOUTME: Defines JSON schemas for the match, taxonomy and usage tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/matcher"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/usage"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, m *matcher.Matcher, cache *index.Cache, recorder usage.Recorder) *Handlers {
	handlers := &Handlers{
		matcher:  m,
		cache:    cache,
		recorder: recorder,
	}

	// 1. match_keywords - Match a description against the taxonomy
	server.AddTool(mcp.Tool{
		Name:        "match_keywords",
		Description: "Match a free-text description against the keyword taxonomy. Returns a validated, ordered keyword list.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Free-text description to match",
				},
				"refine": map[string]interface{}{
					"type":        "boolean",
					"description": "Refine the shortlist with a generation provider (default: false)",
					"default":     false,
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Requested keyword count for direct matching (clamped to configured bounds)",
				},
				"provider": map[string]interface{}{
					"type":        "string",
					"description": "Pin the generation provider for refinement (openai, groq, gemini)",
				},
			},
			Required: []string{"description"},
		},
	}, handlers.MatchKeywords)

	// 2. list_taxonomy - List the allowed keywords with their paths
	server.AddTool(mcp.Tool{
		Name:        "list_taxonomy",
		Description: "List every allowed taxonomy keyword with its hierarchical path.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListTaxonomy)

	// 3. get_usage - Provider usage counters for billing display
	server.AddTool(mcp.Tool{
		Name:        "get_usage",
		Description: "Get recorded generation-provider usage counters (calls, failures, tokens).",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetUsage)

	return handlers
}
