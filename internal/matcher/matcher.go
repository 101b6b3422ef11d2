// ABOUTME: Matching orchestrator composing shortlisting, refinement and validation
// ABOUTME: Embeds input, ranks the index, optionally refines, applies fallback policy
package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/config"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/index"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/llm"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/similarity"
	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/usage"
)

var (
	// ErrInvalidInput means the request carried no usable description.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoProviderAvailable means no credential can serve the requested mode.
	ErrNoProviderAvailable = errors.New("no provider available")
)

// Matcher runs the matching pipeline. All methods are safe for
// concurrent use: the index is read through an immutable cache and the
// usage recorder serializes its own writes.
type Matcher struct {
	cfg        *config.Config
	cache      *index.Cache
	embedder   llm.Embedder // nil in lexical-only mode
	generators []llm.Generator
	usage      usage.Recorder
}

// New wires a Matcher from configuration, resolving provider clients by
// credential availability.
func New(cfg *config.Config, cache *index.Cache, recorder usage.Recorder) (*Matcher, error) {
	embedder, err := llm.ResolveEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	generators, err := llm.ResolveGenerators(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClients(cfg, cache, embedder, generators, recorder), nil
}

// NewWithClients wires a Matcher with explicit collaborators. Tests use
// it to substitute fake providers and a scoped usage recorder.
func NewWithClients(cfg *config.Config, cache *index.Cache, embedder llm.Embedder, generators []llm.Generator, recorder usage.Recorder) *Matcher {
	if recorder == nil {
		recorder = usage.NewCounter()
	}
	return &Matcher{
		cfg:        cfg,
		cache:      cache,
		embedder:   embedder,
		generators: generators,
		usage:      recorder,
	}
}

// Match runs the full pipeline for one request.
func (m *Matcher) Match(ctx context.Context, req models.MatchRequest) (*models.MatchResult, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	idx, err := m.cache.Get()
	if err != nil {
		return nil, err
	}
	allowed := idx.AllowedSet()

	// Resolve the generation provider up front so a misconfigured
	// refinement request fails before any embedding spend.
	var generator llm.Generator
	if req.Refine {
		generator, err = m.selectGenerator(req.Provider)
		if err != nil {
			return nil, err
		}
	}

	// Degraded mode: no embedding capability at all.
	if m.embedder == nil {
		if req.Refine {
			return nil, fmt.Errorf("%w: refinement requires an embedding provider for shortlisting", ErrNoProviderAvailable)
		}
		return m.lexicalResult(description, idx, req.Count), nil
	}

	vector, err := m.embedder.Embed(ctx, description)
	if err != nil {
		return nil, err
	}

	shortlist, err := similarity.TopSimilar(vector, idx, m.cfg.ShortlistSize)
	if err != nil {
		return nil, err
	}

	if !req.Refine {
		return m.directResult(shortlist, allowed, req.Count), nil
	}
	return m.refineResult(ctx, description, generator, shortlist, allowed)
}

// selectGenerator returns the generation provider for a refinement call:
// the explicitly requested one, else the head of the availability chain.
func (m *Matcher) selectGenerator(explicit string) (llm.Generator, error) {
	if explicit != "" {
		for _, g := range m.generators {
			if string(g.Provider()) == explicit {
				return g, nil
			}
		}
		return nil, fmt.Errorf("%w: generation provider %q is not configured", ErrNoProviderAvailable, explicit)
	}
	if len(m.generators) == 0 {
		return nil, fmt.Errorf("%w: no generation credential configured", ErrNoProviderAvailable)
	}
	return m.generators[0], nil
}

// lexicalResult serves the no-AI branch: rank by lexical heuristic and
// truncate to the clamped count.
func (m *Matcher) lexicalResult(description string, idx *models.KeywordIndex, count int) *models.MatchResult {
	ranked := rankLexical(description, idx.Keywords)

	limit := m.clampCount(count)
	if limit > len(ranked) {
		limit = len(ranked)
	}
	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = ranked[i].entry.Keyword
	}

	return &models.MatchResult{
		Keywords:       keywords,
		Method:         models.MethodLexical,
		ShortlistSize:  len(ranked),
		ValidatedCount: len(keywords),
	}
}

// directResult truncates the shortlist to the clamped count and re-checks
// it against the allowed set. The shortlist is drawn from the index, so
// the re-check is defensive.
func (m *Matcher) directResult(shortlist []models.KeywordEntry, allowed map[string]struct{}, count int) *models.MatchResult {
	limit := m.clampCount(count)
	if limit > len(shortlist) {
		limit = len(shortlist)
	}
	candidates := make([]string, limit)
	for i := 0; i < limit; i++ {
		candidates[i] = shortlist[i].Keyword
	}
	keywords := ValidateKeywords(candidates, allowed)

	return &models.MatchResult{
		Keywords:       keywords,
		Method:         models.MethodDirect,
		ShortlistSize:  len(shortlist),
		ValidatedCount: len(keywords),
	}
}

// refineResult asks the generation provider to select from the shortlist
// and validates its answer. A validated count below the configured
// minimum is a content-quality failure: the provider's output is
// discarded for the top of the shortlist. Transport failures surface.
func (m *Matcher) refineResult(ctx context.Context, description string, generator llm.Generator, shortlist []models.KeywordEntry, allowed map[string]struct{}) (*models.MatchResult, error) {
	system, user := refinementPrompts(description, shortlist, m.cfg.MinKeywords, m.cfg.MaxKeywords)

	result, err := generator.Generate(ctx, system, user)

	obs := usage.Observation{
		Provider: string(generator.Provider()),
		Model:    generator.ChatModel(),
		Success:  err == nil,
	}
	if result != nil {
		obs.PromptTokens = result.PromptTokens
		obs.CompletionTokens = result.CompletionTokens
	}
	m.usage.Record(obs)

	if err != nil {
		return nil, err
	}

	candidates := ExtractKeywords(result.Text)
	validated := ValidateKeywords(candidates, allowed)
	validatedCount := len(validated)

	if validatedCount < m.cfg.MinKeywords {
		// Under-validation fallback: substitute the top of the shortlist
		// so the answer stays taxonomy-conformant and appropriately sized.
		limit := m.cfg.MaxKeywords
		if limit > len(shortlist) {
			limit = len(shortlist)
		}
		candidates = make([]string, limit)
		for i := 0; i < limit; i++ {
			candidates[i] = shortlist[i].Keyword
		}
		keywords := ValidateKeywords(candidates, allowed)
		return &models.MatchResult{
			Keywords:       keywords,
			Method:         models.MethodDirect,
			ShortlistSize:  len(shortlist),
			ValidatedCount: validatedCount,
			Provider:       string(generator.Provider()),
			Model:          generator.ChatModel(),
		}, nil
	}

	if len(validated) > m.cfg.MaxKeywords {
		validated = validated[:m.cfg.MaxKeywords]
	}
	return &models.MatchResult{
		Keywords:       validated,
		Method:         models.MethodLLM,
		ShortlistSize:  len(shortlist),
		ValidatedCount: validatedCount,
		Provider:       string(generator.Provider()),
		Model:          generator.ChatModel(),
	}, nil
}

// clampCount applies the configured bounds to a caller-specified count.
// Zero means "use the configured maximum".
func (m *Matcher) clampCount(count int) int {
	if count == 0 {
		count = m.cfg.MaxKeywords
	}
	if count < m.cfg.DirectCountMin {
		count = m.cfg.DirectCountMin
	}
	if count > m.cfg.DirectCountMax {
		count = m.cfg.DirectCountMax
	}
	return count
}
