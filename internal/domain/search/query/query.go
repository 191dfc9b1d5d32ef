// Package query holds the validated search query value type.
package query

import "fmt"

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in bytes.
	MaxQueryLength = 4096
	DefaultTopK    = 10
	MaxTopK        = 100

	// overFetchFactor and minFetchK size the wide-retrieval candidate pool:
	// every namespace is queried for max(topK*overFetchFactor, minFetchK)
	// records so the re-ranker and diversity selector have enough raw
	// material to work with.
	overFetchFactor = 5
	minFetchK       = 50
)

// Filters restricts retrieval by publication year and owning department.
// Absent fields mean unconstrained. Caller-supplied values always take
// precedence over auto-extracted ones.
type Filters struct {
	year *int
	dept string
}

// NewFilters creates caller-supplied filters. year <= 0 means no year filter.
func NewFilters(year int, dept string) Filters {
	f := Filters{dept: dept}
	if year > 0 {
		y := year
		f.year = &y
	}
	return f
}

// Year returns the year constraint, if set.
func (f Filters) Year() (int, bool) {
	if f.year == nil {
		return 0, false
	}
	return *f.year, true
}

// Dept returns the department constraint, if set.
func (f Filters) Dept() (string, bool) { return f.dept, f.dept != "" }

// WithYear returns a copy with the year set. It does not overwrite an
// existing constraint.
func (f Filters) WithYear(year int) Filters {
	if f.year != nil {
		return f
	}
	y := year
	f.year = &y
	return f
}

// WithDept returns a copy with the department set. It does not overwrite an
// existing constraint.
func (f Filters) WithDept(dept string) Filters {
	if f.dept != "" {
		return f
	}
	f.dept = dept
	return f
}

// IsEmpty reports whether no constraint is set.
func (f Filters) IsEmpty() bool { return f.year == nil && f.dept == "" }

// Query is a validated search request.
type Query struct {
	text              string
	topK              int
	namespaces        []string
	filters           Filters
	keywordExtraction bool
}

// New validates and normalizes search parameters.
// Defaults: topK=10, keyword extraction on. An empty namespace list means
// "discover all namespaces from the store".
func New(text string, topK int, namespaces []string, filters Filters, keywordExtraction bool) (Query, error) {
	if text == "" {
		return Query{}, fmt.Errorf("query text is required")
	}
	if len(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("query too long (max %d bytes)", MaxQueryLength)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	return Query{
		text:              text,
		topK:              topK,
		namespaces:        namespaces,
		filters:           filters,
		keywordExtraction: keywordExtraction,
	}, nil
}

// Text returns the raw query text.
func (q *Query) Text() string { return q.text }

// TopK returns the target final result count.
func (q *Query) TopK() int { return q.topK }

// FetchK returns the per-namespace over-fetch count: max(topK*5, 50).
func (q *Query) FetchK() int {
	fetchK := q.topK * overFetchFactor
	if fetchK < minFetchK {
		fetchK = minFetchK
	}
	return fetchK
}

// Namespaces returns the namespaces to search; empty means discover all.
func (q *Query) Namespaces() []string { return q.namespaces }

// Filters returns the caller-supplied filter constraints.
func (q *Query) Filters() Filters { return q.filters }

// KeywordExtraction reports whether stopword stripping should be applied
// before embedding.
func (q *Query) KeywordExtraction() bool { return q.keywordExtraction }
