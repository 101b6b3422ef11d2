// ABOUTME: Lexical keyword ranking for operation without any AI credential
// ABOUTME: Scores exact substring matches above partial token overlap
package matcher

import (
	"sort"
	"strings"
	"unicode"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
)

// Substring matches rank strictly above any token-overlap score, which
// stays in (0, 1].
const substringScore = 2.0

type lexicalScore struct {
	entry models.KeywordEntry
	score float64
}

// rankLexical scores every index entry against the description using a
// purely lexical heuristic: an exact substring match of the keyword beats
// partial token overlap. Zero-scoring entries are dropped. Ties break by
// lexical order of the keyword for determinism.
func rankLexical(description string, entries []models.KeywordEntry) []lexicalScore {
	descLower := strings.ToLower(description)
	descTokens := make(map[string]struct{})
	for _, tok := range tokenize(descLower) {
		descTokens[tok] = struct{}{}
	}

	ranked := make([]lexicalScore, 0, len(entries))
	for _, e := range entries {
		kwLower := strings.ToLower(e.Keyword)

		var score float64
		if strings.Contains(descLower, kwLower) {
			score = substringScore
		} else if kwTokens := tokenize(kwLower); len(kwTokens) > 0 {
			matched := 0
			for _, tok := range kwTokens {
				if _, ok := descTokens[tok]; ok {
					matched++
				}
			}
			score = float64(matched) / float64(len(kwTokens))
		}

		if score > 0 {
			ranked = append(ranked, lexicalScore{entry: e, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].entry.Keyword < ranked[j].entry.Keyword
	})
	return ranked
}

// tokenize splits text into lowercase alphanumeric runs longer than two
// characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			tokens = append(tokens, strings.ToLower(f))
		}
	}
	return tokens
}
