// ABOUTME: Request and result types for the matching pipeline
// ABOUTME: Defines MatchRequest, MatchResult and the method enum
package models

// Method identifies which pipeline branch produced a result.
type Method string

const (
	// MethodLexical means no embedding provider was available and the
	// result came from lexical keyword scoring.
	MethodLexical Method = "lexical"
	// MethodDirect means the result is a truncation of the similarity
	// shortlist (including the under-validation fallback).
	MethodDirect Method = "direct"
	// MethodLLM means a generation provider refined the shortlist and
	// its validated output was returned.
	MethodLLM Method = "llm"
)

// MatchRequest describes one matching call. Not persisted.
type MatchRequest struct {
	// Description is the free text to match against the taxonomy.
	Description string `json:"description"`
	// Refine requests LLM refinement of the shortlist.
	Refine bool `json:"refine,omitempty"`
	// Count is the caller-requested keyword count for direct matching.
	// Zero means use the configured default; values are clamped to the
	// configured bounds.
	Count int `json:"count,omitempty"`
	// Provider optionally pins the generation provider for refinement.
	Provider string `json:"provider,omitempty"`
}

// MatchResult is the validated outcome of a matching call.
type MatchResult struct {
	Keywords       []string `json:"keywords"`
	Method         Method   `json:"method"`
	ShortlistSize  int      `json:"shortlist_size"`
	ValidatedCount int      `json:"validated_count"`
	Provider       string   `json:"provider,omitempty"`
	Model          string   `json:"model,omitempty"`
}
