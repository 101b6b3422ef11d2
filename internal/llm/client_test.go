// ABOUTME: Tests for the OpenAI-compatible provider client
// ABOUTME: Covers construction defaults, retry-after parsing and 429 mapping
package llm

import (
	"errors"
	"net/http"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cc      ClientConfig
		wantErr bool
	}{
		{
			name:    "missing api key",
			cc:      ClientConfig{Provider: ProviderOpenAI},
			wantErr: true,
		},
		{
			name: "valid config",
			cc:   ClientConfig{Provider: ProviderOpenAI, APIKey: "sk-test", ChatModel: "gpt-4o-mini"},
		},
		{
			name: "custom base url",
			cc:   ClientConfig{Provider: ProviderGroq, APIKey: "gsk-test", BaseURL: groqBaseURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cc)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient error: %v", err)
			}
			if client.Provider() != tt.cc.Provider {
				t.Errorf("Provider() = %s, want %s", client.Provider(), tt.cc.Provider)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(ClientConfig{Provider: ProviderOpenAI, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if client.timeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", client.timeout)
	}
	if client.retryDelay != 2*time.Second {
		t.Errorf("default retry delay = %v, want 2s", client.retryDelay)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    time.Duration
	}{
		{
			name:    "seconds with fraction",
			message: "Rate limit reached for model. Please try again in 7.66s.",
			want:    7660 * time.Millisecond,
		},
		{
			name:    "whole seconds",
			message: "Please try again in 20s.",
			want:    20 * time.Second,
		},
		{
			name:    "milliseconds",
			message: "Please try again in 450ms.",
			want:    450 * time.Millisecond,
		},
		{
			name:    "minutes",
			message: "Please try again in 2m.",
			want:    2 * time.Minute,
		},
		{
			name:    "no hint",
			message: "Rate limit reached.",
			want:    0,
		},
		{
			name:    "empty message",
			message: "",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRetryAfter(tt.message); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestRateLimited(t *testing.T) {
	client, err := NewClient(ClientConfig{Provider: ProviderGroq, APIKey: "gsk-test"})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	apiErr := &openai.APIError{
		HTTPStatusCode: http.StatusTooManyRequests,
		Message:        "Rate limit reached. Please try again in 3s.",
	}

	rle := client.rateLimited(apiErr, ErrGenerationProvider)
	if rle == nil {
		t.Fatal("expected a RateLimitError for HTTP 429")
	}
	if rle.Provider != ProviderGroq {
		t.Errorf("Provider = %s, want groq", rle.Provider)
	}
	if rle.RetryAfter != 3*time.Second {
		t.Errorf("RetryAfter = %v, want 3s", rle.RetryAfter)
	}
	if !errors.Is(rle, ErrGenerationProvider) {
		t.Error("RateLimitError should unwrap to the capability sentinel")
	}

	serverErr := &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}
	if got := client.rateLimited(serverErr, ErrGenerationProvider); got != nil {
		t.Errorf("HTTP 500 should not map to RateLimitError, got %v", got)
	}
	if got := client.rateLimited(errors.New("dial tcp: timeout"), ErrGenerationProvider); got != nil {
		t.Errorf("transport error should not map to RateLimitError, got %v", got)
	}
}

func TestToFloat64(t *testing.T) {
	got := toFloat64([]float32{0.5, -1, 0})
	want := []float64{0.5, -1, 0}
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %v, want %v", i, got[i], want[i])
		}
	}
}
