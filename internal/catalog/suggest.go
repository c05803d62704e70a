package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// Suggest returns up to limit ids closest to id by edit distance, nearest
// first with ties broken by id. Candidates further away than half the
// query's length are dropped.
func Suggest(id string, ids []string, limit int) []string {
	if limit <= 0 || len(ids) == 0 {
		return nil
	}

	query := strings.ToUpper(strings.TrimSpace(id))
	cutoff := max(len(query)/2, 1)

	type candidate struct {
		id       string
		distance int
	}
	candidates := make([]candidate, 0, len(ids))
	for _, known := range ids {
		d := levenshtein.ComputeDistance(query, known)
		if d > cutoff {
			continue
		}
		candidates = append(candidates, candidate{id: known, distance: d})
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		return cmp.Or(cmp.Compare(a.distance, b.distance), cmp.Compare(a.id, b.id))
	})

	out := make([]string, 0, min(limit, len(candidates)))
	for _, c := range candidates[:min(limit, len(candidates))] {
		out = append(out, c.id)
	}
	return out
}
