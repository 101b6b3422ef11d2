// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Exercises the tools end to end over a lexical-only matcher
package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/matcher"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/taxonomy"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/usage"
)

func testHandlers(t *testing.T) *Handlers {
	t.Helper()

	source := func() ([]taxonomy.Entry, error) {
		return []taxonomy.Entry{
			{Keyword: "fitness", Path: []string{"Health", "Fitness"}},
			{Keyword: "yoga", Path: []string{"Health", "Yoga"}},
		}, nil
	}
	cache := index.NewCacheWithSource(filepath.Join(t.TempDir(), "keyword_index.json"), false, source)

	cfg := &config.Config{
		ShortlistSize:  10,
		MinKeywords:    1,
		MaxKeywords:    5,
		DirectCountMin: 1,
		DirectCountMax: 10,
		Timeout:        time.Second,
	}
	recorder := usage.NewCounter()
	m := matcher.NewWithClients(cfg, cache, nil, nil, recorder)

	return &Handlers{matcher: m, cache: cache, recorder: recorder}
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func TestMatchKeywords(t *testing.T) {
	h := testHandlers(t)

	result, err := h.MatchKeywords(context.Background(), callRequest(map[string]interface{}{
		"description": "my yoga and fitness journey",
	}))
	if err != nil {
		t.Fatalf("MatchKeywords error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var match models.MatchResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &match); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if match.Method != models.MethodLexical {
		t.Errorf("Method = %s, want lexical", match.Method)
	}
	if len(match.Keywords) != 2 {
		t.Errorf("Keywords = %v, want fitness and yoga", match.Keywords)
	}
}

func TestMatchKeywords_MissingDescription(t *testing.T) {
	h := testHandlers(t)

	result, err := h.MatchKeywords(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("MatchKeywords error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected a tool error for a missing description")
	}
}

func TestMatchKeywords_MatcherFailure(t *testing.T) {
	h := testHandlers(t)

	result, err := h.MatchKeywords(context.Background(), callRequest(map[string]interface{}{
		"description": "anything",
		"refine":      true,
	}))
	if err != nil {
		t.Fatalf("MatchKeywords error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected a tool error when refinement has no provider")
	}
	if !strings.Contains(resultText(t, result), "matching failed") {
		t.Errorf("error text = %q, want a matching failure", resultText(t, result))
	}
}

func TestListTaxonomy(t *testing.T) {
	h := testHandlers(t)

	result, err := h.ListTaxonomy(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("ListTaxonomy error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var response struct {
		Keywords []struct {
			Keyword string   `json:"keyword"`
			Path    []string `json:"path"`
		} `json:"keywords"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &response); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if response.Count != 2 || len(response.Keywords) != 2 {
		t.Errorf("count = %d with %d keywords, want 2", response.Count, len(response.Keywords))
	}
	if response.Keywords[0].Keyword != "fitness" {
		t.Errorf("first keyword = %q, want fitness", response.Keywords[0].Keyword)
	}
}

func TestGetUsage(t *testing.T) {
	h := testHandlers(t)
	h.recorder.Record(usage.Observation{Provider: "openai", Model: "gpt-4o-mini", PromptTokens: 10, Success: true})

	result, err := h.GetUsage(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("GetUsage error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var snap usage.Snapshot
	if err := json.Unmarshal([]byte(resultText(t, result)), &snap); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if snap.TotalCalls != 1 || snap.TotalPromptTokens != 10 {
		t.Errorf("snapshot = %+v, want the recorded observation", snap)
	}
}
