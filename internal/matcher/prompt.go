// ABOUTME: Closed-world refinement prompt construction
// ABOUTME: Instructs the generation provider to choose only from the shortlist
package matcher

import (
	"fmt"
	"strings"

	"github.com/arhamhameed97/Description-Keyword-Matcher/internal/models"
)

// refinementPrompts builds the system and user prompts for the
// refinement call. The provider is told to pick exclusively from the
// shortlist; the validator enforces it regardless.
func refinementPrompts(description string, shortlist []models.KeywordEntry, minCount, maxCount int) (system, user string) {
	system = fmt.Sprintf(`You are a keyword selection assistant. You will be given a description and a fixed list of allowed keywords.

Select the %d to %d keywords from the allowed list that best describe the description.

Rules:
- Choose ONLY keywords that appear in the allowed list, copied exactly.
- Never invent, merge, or reword keywords.
- Order keywords from most to least relevant.

Return ONLY a JSON array of strings. No additional text.`, minCount, maxCount)

	var b strings.Builder
	b.WriteString("Description:\n")
	b.WriteString(description)
	b.WriteString("\n\nAllowed keywords:\n")
	for _, e := range shortlist {
		if len(e.Path) > 1 {
			fmt.Fprintf(&b, "- %s (%s)\n", e.Keyword, strings.Join(e.Path[:len(e.Path)-1], " > "))
		} else {
			fmt.Fprintf(&b, "- %s\n", e.Keyword)
		}
	}
	return system, b.String()
}
