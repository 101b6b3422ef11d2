// ABOUTME: Provider-agnostic embedding and generation capabilities
// ABOUTME: Defines the Embedder/Generator contracts and credential resolution
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
)

// Provider identifies an upstream AI provider.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderGemini Provider = "gemini"
)

// OpenAI-compatible endpoints for the non-OpenAI providers.
const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

var (
	// ErrEmbeddingProvider wraps failures of the embedding capability.
	ErrEmbeddingProvider = errors.New("embedding provider request failed")
	// ErrGenerationProvider wraps failures of the generation capability.
	ErrGenerationProvider = errors.New("generation provider request failed")
)

// RateLimitError is a distinguished generation/embedding failure carrying
// retry-hint metadata when the provider supplies it.
type RateLimitError struct {
	Provider   Provider
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s rate limited, retry after %s: %v", e.Provider, e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("%s rate limited: %v", e.Provider, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// GenerationResult is the raw output of one generation call plus token
// accounting for usage recording.
type GenerationResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Embedder turns text into embedding vectors. Batch output preserves
// input order.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	Provider() Provider
	EmbeddingModel() string
}

// Generator produces one-shot, non-streaming completions.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (*GenerationResult, error)
	Provider() Provider
	ChatModel() string
}

// ResolveEmbedder builds the embedding client from configuration: the
// explicitly selected provider if set, else the first provider with a
// credential. Returns (nil, nil) when no embedding credential exists,
// which puts the matcher in lexical-only mode.
func ResolveEmbedder(cfg *config.Config) (Embedder, error) {
	provider := Provider(cfg.EmbeddingProvider)
	if provider == "" {
		switch {
		case cfg.OpenAIKey != "":
			provider = ProviderOpenAI
		case cfg.GeminiKey != "":
			provider = ProviderGemini
		default:
			return nil, nil
		}
	}

	cc := ClientConfig{
		Provider:       provider,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	}
	switch provider {
	case ProviderOpenAI:
		cc.APIKey = cfg.OpenAIKey
		cc.ChatModel = cfg.OpenAIModel
	case ProviderGemini:
		cc.APIKey = cfg.GeminiKey
		cc.BaseURL = geminiBaseURL
		cc.ChatModel = cfg.GeminiModel
		// The configured default embedding model is OpenAI's; swap in
		// Gemini's unless the operator chose one explicitly.
		if cc.EmbeddingModel == "text-embedding-3-small" {
			cc.EmbeddingModel = "text-embedding-004"
		}
	default:
		return nil, fmt.Errorf("provider %q cannot serve embeddings", provider)
	}
	if cc.APIKey == "" {
		return nil, fmt.Errorf("embedding provider %q selected but its API key is not set", provider)
	}
	return NewClient(cc)
}

// ResolveGenerators builds the ordered generation fallback chain from
// configuration. With an explicit provider the chain has one element;
// otherwise every provider with a credential joins in openai > groq >
// gemini order. An empty chain means refinement is unavailable.
func ResolveGenerators(cfg *config.Config) ([]Generator, error) {
	type candidate struct {
		provider Provider
		key      string
		baseURL  string
		model    string
	}
	candidates := []candidate{
		{ProviderOpenAI, cfg.OpenAIKey, "", cfg.OpenAIModel},
		{ProviderGroq, cfg.GroqKey, groqBaseURL, cfg.GroqModel},
		{ProviderGemini, cfg.GeminiKey, geminiBaseURL, cfg.GeminiModel},
	}

	explicit := Provider(cfg.GenerationProvider)
	var generators []Generator
	for _, c := range candidates {
		if explicit != "" && c.provider != explicit {
			continue
		}
		if c.key == "" {
			if explicit != "" {
				return nil, fmt.Errorf("generation provider %q selected but its API key is not set", explicit)
			}
			continue
		}
		client, err := NewClient(ClientConfig{
			Provider:   c.provider,
			APIKey:     c.key,
			BaseURL:    c.baseURL,
			ChatModel:  c.model,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			return nil, err
		}
		generators = append(generators, client)
	}
	return generators, nil
}
