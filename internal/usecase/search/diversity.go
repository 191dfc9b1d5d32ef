package search

import (
	"sort"

	"github.com/strustar/Road-Assistant/internal/domain/document"
)

// yearQuota is the number of guaranteed inclusions per distinct year.
// Cross-year comparison questions need every represented year in the
// context, even when a year's best candidate scores low in absolute terms.
const yearQuota = 2

// SelectDiverse assembles the final ranked list from a re-scored pool.
// Every distinct year contributes its top candidates (up to yearQuota)
// unconditionally; remaining slots are filled from the pool in score order.
// The output is strictly score-descending and contains no duplicate ids.
//
// When distinct_years*quota exceeds topK the result legitimately exceeds
// topK: the diversity guarantee takes precedence over the exact count.
func SelectDiverse(pool []document.Candidate, topK int) []document.Candidate {
	byYear := make(map[string][]document.Candidate)
	for _, cand := range pool {
		key := cand.Meta().YearKey()
		byYear[key] = append(byYear[key], cand)
	}

	years := make([]string, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	final := make([]document.Candidate, 0, topK)
	selected := make(map[string]struct{})

	for _, year := range years {
		group := byYear[year]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Score() > group[j].Score()
		})
		taken := 0
		for _, cand := range group {
			if taken == yearQuota {
				break
			}
			if _, ok := selected[cand.ID()]; ok {
				continue
			}
			final = append(final, cand)
			selected[cand.ID()] = struct{}{}
			taken++
		}
	}

	ranked := make([]document.Candidate, len(pool))
	copy(ranked, pool)
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})

	for _, cand := range ranked {
		if len(final) >= topK {
			break
		}
		if _, ok := selected[cand.ID()]; ok {
			continue
		}
		final = append(final, cand)
		selected[cand.ID()] = struct{}{}
	}

	// The quota pass left the list in year-then-score order; the consumer
	// receives strictly score-descending output.
	sort.Slice(final, func(i, j int) bool {
		return final[i].Score() > final[j].Score()
	})

	return final
}
