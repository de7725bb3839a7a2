package catalog

import "strings"

// Dedupe collapses candidates that represent the same real-world item. The
// key is the lowercased, trimmed title plus provider; the first occurrence
// wins, so the caller's ordering decides which duplicate survives. Single
// O(n) pass, idempotent.
func Dedupe(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		key := dedupeKey(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}

	return out
}

func dedupeKey(c Candidate) string {
	title := strings.ToLower(strings.TrimSpace(c.Title))
	provider := strings.ToLower(strings.TrimSpace(c.Provider))
	return title + "|" + provider
}
