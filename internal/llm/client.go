// ABOUTME: OpenAI-compatible client serving OpenAI, Groq and Gemini endpoints
// ABOUTME: Implements Embedder and Generator with retry and rate-limit surfacing
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/util"
)

// ClientConfig holds configuration for one provider client.
type ClientConfig struct {
	Provider       Provider
	APIKey         string
	BaseURL        string // empty for api.openai.com
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Client talks to one OpenAI-compatible endpoint. Groq and Gemini both
// expose such endpoints, so a single client covers all three providers.
type Client struct {
	api        *openai.Client
	provider   Provider
	chatModel  string
	embedModel string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a provider client from the given configuration.
func NewClient(cc ClientConfig) (*Client, error) {
	if cc.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", cc.Provider)
	}
	apiCfg := openai.DefaultConfig(cc.APIKey)
	if cc.BaseURL != "" {
		apiCfg.BaseURL = cc.BaseURL
	}
	timeout := cc.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retryDelay := cc.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}

	return &Client{
		api:        openai.NewClientWithConfig(apiCfg),
		provider:   cc.Provider,
		chatModel:  cc.ChatModel,
		embedModel: cc.EmbeddingModel,
		timeout:    timeout,
		maxRetries: cc.MaxRetries,
		retryDelay: retryDelay,
	}, nil
}

func (c *Client) Provider() Provider { return c.provider }

func (c *Client) ChatModel() string { return c.chatModel }

func (c *Client) EmbeddingModel() string { return c.embedModel }

// Embed returns the embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds texts in one request. The returned vectors are in
// input order regardless of the order the provider responds in.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: openai.EmbeddingModel(c.embedModel),
		})
		cancel()

		if err != nil {
			if rle := c.rateLimited(err, ErrEmbeddingProvider); rle != nil {
				return nil, rle
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrEmbeddingProvider, ctx.Err())
			}
			lastErr = err
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
			continue
		}

		vecs := make([][]float64, len(texts))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(texts) {
				return nil, fmt.Errorf("%w: embedding index %d out of range", ErrEmbeddingProvider, d.Index)
			}
			vecs[d.Index] = toFloat64(d.Embedding)
		}
		for i, v := range vecs {
			if v == nil {
				return nil, fmt.Errorf("%w: no embedding returned for input %d", ErrEmbeddingProvider, i)
			}
		}
		return vecs, nil
	}

	return nil, fmt.Errorf("%w: after %d attempts: %v", ErrEmbeddingProvider, c.maxRetries+1, lastErr)
}

// Generate runs one non-streaming chat completion. Temperature is fixed
// low to keep keyword selection determinism-leaning.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (*GenerationResult, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: 0.2,
		})
		cancel()

		if err != nil {
			if rle := c.rateLimited(err, ErrGenerationProvider); rle != nil {
				return nil, rle
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrGenerationProvider, ctx.Err())
			}
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("no completion choices returned")
			continue
		}

		return &GenerationResult{
			Text:             resp.Choices[0].Message.Content,
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		}, nil
	}

	return nil, fmt.Errorf("%w: after %d attempts: %v", ErrGenerationProvider, c.maxRetries+1, lastErr)
}

// rateLimited maps HTTP 429 responses onto RateLimitError so callers can
// distinguish quota exhaustion from other provider failures. Retrying
// locally would only burn more quota.
func (c *Client) rateLimited(err error, sentinel error) *RateLimitError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			Provider:   c.provider,
			RetryAfter: parseRetryAfter(apiErr.Message),
			Err:        fmt.Errorf("%w: %v", sentinel, err),
		}
	}
	return nil
}

// Providers like Groq put the retry hint in the message text, e.g.
// "Rate limit reached ... Please try again in 7.66s."
var retryAfterPattern = regexp.MustCompile(`try again in ([0-9]+(?:\.[0-9]+)?(?:ms|s|m))`)

func parseRetryAfter(message string) time.Duration {
	m := retryAfterPattern.FindStringSubmatch(message)
	if m == nil {
		return 0
	}
	d, err := time.ParseDuration(m[1])
	if err != nil {
		return 0
	}
	return d
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
