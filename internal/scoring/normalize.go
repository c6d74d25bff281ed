package scoring

import (
	"strings"

	"github.com/eduviet/exam-service/internal/models"
)

// NormalizeToken canonicalizes one raw answer token for comparison: trims
// whitespace, keeps only the text before the first period (so "B. Hanoi"
// and "b." both become "B") and upper-cases the result. Idempotent.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if i := strings.Index(token, "."); i >= 0 {
		token = token[:i]
	}
	return strings.ToUpper(strings.TrimSpace(token))
}

// NormalizeSet canonicalizes an answer into a token set. List answers are
// normalized elementwise with empties dropped and duplicates collapsed; a
// scalar answer becomes a singleton set, or the empty set if it normalizes
// to nothing.
func NormalizeSet(answer models.Answer) map[string]struct{} {
	set := make(map[string]struct{})
	for _, v := range answer.Values() {
		if token := NormalizeToken(v); token != "" {
			set[token] = struct{}{}
		}
	}
	return set
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func symmetricDifference(a, b map[string]struct{}) int {
	diff := 0
	for k := range a {
		if _, ok := b[k]; !ok {
			diff++
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			diff++
		}
	}
	return diff
}
