// ABOUTME: Usage accounting for provider calls, injectable for testing
// ABOUTME: Defines the Recorder contract and an in-memory counter
package usage

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Observation records one generation call, success or failure.
type Observation struct {
	ID               string    `json:"id"`
	Provider         string    `json:"provider"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	Success          bool      `json:"success"`
	At               time.Time `json:"at"`
}

// ProviderUsage aggregates observations for one provider/model pair.
type ProviderUsage struct {
	Calls            int `json:"calls"`
	Failures         int `json:"failures"`
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Snapshot is a point-in-time view of recorded usage.
type Snapshot struct {
	TotalCalls            int                      `json:"total_calls"`
	TotalFailures         int                      `json:"total_failures"`
	TotalPromptTokens     int                      `json:"total_prompt_tokens"`
	TotalCompletionTokens int                      `json:"total_completion_tokens"`
	ByProvider            map[string]ProviderUsage `json:"by_provider"`
}

// Recorder is the usage-counter collaborator shared across concurrent
// requests. Implementations must make Record safe for concurrent use.
type Recorder interface {
	Record(obs Observation)
	Snapshot() Snapshot
}

// Counter is the in-memory Recorder. One instance is shared for the
// process lifetime; tests substitute their own scoped instance.
type Counter struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewCounter creates an empty in-memory usage counter.
func NewCounter() *Counter {
	return &Counter{snap: Snapshot{ByProvider: make(map[string]ProviderUsage)}}
}

func (c *Counter) Record(obs Observation) {
	normalize(&obs)
	c.mu.Lock()
	defer c.mu.Unlock()
	apply(&c.snap, obs)
}

func (c *Counter) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.snap)
}

func normalize(obs *Observation) {
	if obs.ID == "" {
		obs.ID = uuid.NewString()
	}
	if obs.At.IsZero() {
		obs.At = time.Now()
	}
}

func apply(s *Snapshot, obs Observation) {
	s.TotalCalls++
	s.TotalPromptTokens += obs.PromptTokens
	s.TotalCompletionTokens += obs.CompletionTokens
	if !obs.Success {
		s.TotalFailures++
	}

	key := obs.Provider
	if obs.Model != "" {
		key = obs.Provider + "/" + obs.Model
	}
	pu := s.ByProvider[key]
	pu.Calls++
	pu.PromptTokens += obs.PromptTokens
	pu.CompletionTokens += obs.CompletionTokens
	if !obs.Success {
		pu.Failures++
	}
	s.ByProvider[key] = pu
}

func clone(s Snapshot) Snapshot {
	out := s
	out.ByProvider = make(map[string]ProviderUsage, len(s.ByProvider))
	for k, v := range s.ByProvider {
		out.ByProvider[k] = v
	}
	return out
}
