// Package domain defines the breach lookup result and how provider answers
// combine into a single verdict.
package domain

// Result is the answer of one breach provider. Found is meaningful only when
// Available is true.
type Result struct {
	Available bool
	Found     bool
}

// Combine merges provider results. The identifier counts as leaked when any
// available provider found it. When no provider was available the verdict is
// unknown and ErrProvidersUnavailable is returned instead of "not leaked".
func Combine(results []Result) (bool, error) {
	available, found := false, false
	for _, result := range results {
		if !result.Available {
			continue
		}
		available = true
		found = found || result.Found
	}
	if !available {
		return false, ErrProvidersUnavailable
	}
	return found, nil
}
