package search

import (
	"regexp"
	"strconv"

	"github.com/strustar/Road-Assistant/internal/domain/search/query"
)

var (
	// yearPattern covers publication years 2000-2039.
	yearPattern = regexp.MustCompile(`20[0-3]\d`)
	// deptPattern matches department names like 설계처, 구조물처.
	deptPattern = regexp.MustCompile(`[가-힣]+처`)
)

// ExtractConstraints scans the raw query for an embedded year and department
// name and fills the corresponding filters. Only the first match of each
// pattern is used, and caller-supplied filters are never overwritten.
func ExtractConstraints(rawQuery string, filters query.Filters) query.Filters {
	if _, ok := filters.Year(); !ok {
		if match := yearPattern.FindString(rawQuery); match != "" {
			year, err := strconv.Atoi(match)
			if err == nil {
				filters = filters.WithYear(year)
			}
		}
	}

	if _, ok := filters.Dept(); !ok {
		if match := deptPattern.FindString(rawQuery); match != "" {
			filters = filters.WithDept(match)
		}
	}

	return filters
}
