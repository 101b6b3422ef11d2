// ABOUTME: MCP tool handler implementations for the keyword matcher server
// ABOUTME: Bridges tool calls onto the matcher, index cache and usage recorder
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/matcher"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/usage"
)

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	matcher  *matcher.Matcher
	cache    *index.Cache
	recorder usage.Recorder
}

// MatchKeywords handles the match_keywords tool.
func (h *Handlers) MatchKeywords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError("description argument is required and must be a string"), nil
	}

	req := models.MatchRequest{
		Description: description,
		Refine:      request.GetBool("refine", false),
		Count:       request.GetInt("count", 0),
		Provider:    request.GetString("provider", ""),
	}

	result, err := h.matcher.Match(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("matching failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListTaxonomy handles the list_taxonomy tool.
func (h *Handlers) ListTaxonomy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, err := h.cache.Get()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading keyword index failed: %v", err)), nil
	}

	type entry struct {
		Keyword string   `json:"keyword"`
		Path    []string `json:"path"`
	}
	entries := make([]entry, len(idx.Keywords))
	for i, e := range idx.Keywords {
		entries[i] = entry{Keyword: e.Keyword, Path: e.Path}
	}

	response := map[string]interface{}{
		"keywords":        entries,
		"count":           len(entries),
		"embedding_model": idx.EmbeddingModel,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetUsage handles the get_usage tool.
func (h *Handlers) GetUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snapshot := h.recorder.Snapshot()

	responseJSON, err := json.Marshal(snapshot)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
