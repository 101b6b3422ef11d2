// ABOUTME: Best-effort keyword extraction from generation-provider output
// ABOUTME: Ordered parser chain: JSON array, keywords record, raw splitting
package matcher

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractKeywords parses the semi-structured text a generation provider
// returns into a candidate keyword list. Strategies are tried in fixed
// priority order and the function never fails: unrecognizable input
// yields an empty list, leaving the too-few-keywords decision to the
// caller's fallback policy.
func ExtractKeywords(response string) []string {
	text := stripCodeFence(strings.TrimSpace(response))

	var root interface{}
	if err := json.Unmarshal([]byte(text), &root); err == nil {
		switch v := root.(type) {
		case []interface{}:
			return stringifyList(v)
		case map[string]interface{}:
			if list, ok := v["keywords"].([]interface{}); ok {
				return stringifyList(list)
			}
		}
		// Parsed but not a recognizable shape
		return []string{}
	}

	return splitRaw(text)
}

// stringifyList projects a decoded JSON list onto trimmed strings,
// dropping elements that trim to nothing.
func stringifyList(list []interface{}) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		switch v := item.(type) {
		case string:
			s = v
		default:
			s = fmt.Sprintf("%v", v)
		}
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitRaw handles plain-text responses by splitting on commas and
// newlines. Segments that open structured syntax are fragments of a JSON
// parse that should have succeeded above; including them would inject
// garbage tokens.
func splitRaw(text string) []string {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		s := strings.TrimSpace(seg)
		if s == "" {
			continue
		}
		if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
			continue
		}
		out = append(out, s)
	}
	return out
}

// stripCodeFence unwraps ```json ... ``` blocks that providers wrap JSON
// in despite being asked for bare output.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := text
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		return text
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
