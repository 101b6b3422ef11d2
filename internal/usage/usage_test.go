// ABOUTME: Tests for the in-memory usage counter
// ABOUTME: Verifies aggregation, failure counting and snapshot isolation
package usage

import (
	"sync"
	"testing"
)

func TestCounter_Record(t *testing.T) {
	c := NewCounter()

	c.Record(Observation{Provider: "openai", Model: "gpt-4o-mini", PromptTokens: 100, CompletionTokens: 20, Success: true})
	c.Record(Observation{Provider: "openai", Model: "gpt-4o-mini", PromptTokens: 50, CompletionTokens: 10, Success: false})
	c.Record(Observation{Provider: "groq", Model: "llama-3.3-70b-versatile", PromptTokens: 30, CompletionTokens: 5, Success: true})

	snap := c.Snapshot()

	if snap.TotalCalls != 3 {
		t.Errorf("TotalCalls = %d, want 3", snap.TotalCalls)
	}
	if snap.TotalFailures != 1 {
		t.Errorf("TotalFailures = %d, want 1", snap.TotalFailures)
	}
	if snap.TotalPromptTokens != 180 {
		t.Errorf("TotalPromptTokens = %d, want 180", snap.TotalPromptTokens)
	}
	if snap.TotalCompletionTokens != 35 {
		t.Errorf("TotalCompletionTokens = %d, want 35", snap.TotalCompletionTokens)
	}

	oa := snap.ByProvider["openai/gpt-4o-mini"]
	if oa.Calls != 2 || oa.Failures != 1 || oa.PromptTokens != 150 {
		t.Errorf("openai usage = %+v, want 2 calls, 1 failure, 150 prompt tokens", oa)
	}
	gq := snap.ByProvider["groq/llama-3.3-70b-versatile"]
	if gq.Calls != 1 || gq.Failures != 0 {
		t.Errorf("groq usage = %+v, want 1 successful call", gq)
	}
}

func TestCounter_SnapshotIsolated(t *testing.T) {
	c := NewCounter()
	c.Record(Observation{Provider: "openai", Success: true})

	snap := c.Snapshot()
	snap.ByProvider["openai"] = ProviderUsage{Calls: 99}

	if got := c.Snapshot().ByProvider["openai"].Calls; got != 1 {
		t.Errorf("mutating a snapshot leaked into the counter: calls = %d, want 1", got)
	}
}

func TestCounter_ConcurrentRecord(t *testing.T) {
	c := NewCounter()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Record(Observation{Provider: "openai", PromptTokens: 1, Success: true})
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.TotalCalls != 50 || snap.TotalPromptTokens != 50 {
		t.Errorf("snapshot = %+v, want 50 calls and 50 prompt tokens", snap)
	}
}

func TestNormalize(t *testing.T) {
	obs := Observation{Provider: "openai"}
	normalize(&obs)

	if obs.ID == "" {
		t.Error("normalize should assign an ID")
	}
	if obs.At.IsZero() {
		t.Error("normalize should assign a timestamp")
	}

	preserved := obs
	normalize(&preserved)
	if preserved.ID != obs.ID || !preserved.At.Equal(obs.At) {
		t.Error("normalize must not overwrite an existing ID or timestamp")
	}
}
