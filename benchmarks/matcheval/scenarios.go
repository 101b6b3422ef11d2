// ABOUTME: Benchmark scenario definitions for keyword matching quality
// ABOUTME: Each scenario pairs a description with ground-truth keyword expectations
package matcheval

// Scenario is one benchmark case: a description plus the keywords the
// matcher must (and must not) return for it.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Count       int // 0 means the configured default

	// Ground truth
	Expected  []string // keywords that MUST appear in the result
	Forbidden []string // keywords that MUST NOT appear in the result
}

// DefaultScenarios returns the built-in scenario set. The descriptions
// are written against the embedded taxonomy and score deterministically
// in lexical mode, so the suite runs without any provider credential.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{
			ID:          "food-travel",
			Name:        "Food and travel blog",
			Description: "A travel blog about cooking and baking on the road",
			Count:       5,
			Expected:    []string{"travel", "cooking", "baking"},
			Forbidden:   []string{"cryptocurrency", "devops"},
		},
		{
			ID:          "ml-podcast",
			Name:        "Machine learning podcast",
			Description: "Weekly podcast on machine learning and data science",
			Expected:    []string{"machine learning", "data science", "science"},
			Forbidden:   []string{"yoga", "real estate"},
		},
		{
			ID:          "wellness-retreat",
			Name:        "Wellness retreat",
			Description: "Yoga and meditation retreats for mental health",
			Expected:    []string{"yoga", "meditation", "mental health"},
			Forbidden:   []string{"stock market"},
		},
		{
			ID:          "market-analysis",
			Name:        "Market analysis newsletter",
			Description: "Daily stock market analysis and investing tips",
			Expected:    []string{"stock market", "investing"},
			Forbidden:   []string{"gardening", "parenting"},
		},
		{
			ID:          "design-portfolio",
			Name:        "Design portfolio",
			Description: "Portfolio of graphic design, illustration and photography work",
			Expected:    []string{"graphic design", "illustration", "photography"},
			Forbidden:   []string{"accounting"},
		},
	}
}
