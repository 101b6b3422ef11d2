// ABOUTME: Closed-world validation of candidate keywords
// ABOUTME: Filters candidates against the taxonomy's allowed set
package matcher

// ValidateKeywords filters candidates to those present in allowed,
// preserving candidate order. Total: absence from the allowed set is an
// expected outcome of generation-provider noise, not an error.
func ValidateKeywords(candidates []string, allowed map[string]struct{}) []string {
	valid := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := allowed[c]; ok {
			valid = append(valid, c)
		}
	}
	return valid
}
