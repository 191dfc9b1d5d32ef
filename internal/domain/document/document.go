// Package document holds the candidate document value type flowing through a
// single ranking pass. Candidates are per-query ephemeral: built by the
// retriever, rescored by the re-ranker, consumed by the selector.
package document

// Display fallbacks for absent metadata fields.
const (
	FallbackValue = "N/A"
	FallbackTitle = "제목 없음"
	// UnknownYear groups candidates whose stored metadata carries no year.
	UnknownYear = "Unknown"
)

// Metadata holds the stored document fields. All fields are optional.
type Metadata struct {
	Code     string
	Date     string
	Title    string
	Dept     string
	Year     string
	Category string
	Text     string
}

// DisplayCode returns the document code or a fallback.
func (m Metadata) DisplayCode() string { return orFallback(m.Code, FallbackValue) }

// DisplayDate returns the document date or a fallback.
func (m Metadata) DisplayDate() string { return orFallback(m.Date, FallbackValue) }

// DisplayTitle returns the document title or a fallback.
func (m Metadata) DisplayTitle() string { return orFallback(m.Title, FallbackTitle) }

// DisplayDept returns the owning department or a fallback.
func (m Metadata) DisplayDept() string { return orFallback(m.Dept, FallbackValue) }

// DisplayYear returns the publication year or a fallback.
func (m Metadata) DisplayYear() string { return orFallback(m.Year, FallbackValue) }

// DisplayCategory returns the document category or a fallback.
func (m Metadata) DisplayCategory() string { return orFallback(m.Category, FallbackValue) }

// YearKey returns the grouping key for the diversity quota. Candidates
// without a year form their own group rather than being dropped.
func (m Metadata) YearKey() string { return orFallback(m.Year, UnknownYear) }

func orFallback(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Candidate is one retrieved record with its relevance score. The score
// starts as vector similarity (0-1) and only grows under lexical boosting,
// so it has no upper bound after re-ranking.
type Candidate struct {
	id             string
	score          float64
	namespace      string
	meta           Metadata
	keywordMatches int
}

// New creates a candidate as returned by the vector index.
func New(id string, score float64, namespace string, meta Metadata) Candidate {
	return Candidate{id: id, score: score, namespace: namespace, meta: meta}
}

// ID returns the opaque record identifier, stable across queries.
func (c Candidate) ID() string { return c.id }

// Score returns the current relevance score.
func (c Candidate) Score() float64 { return c.score }

// Namespace returns the source partition the record was retrieved from.
func (c Candidate) Namespace() string { return c.namespace }

// Meta returns the stored metadata.
func (c Candidate) Meta() Metadata { return c.meta }

// KeywordMatches reports the lexical boost magnitude as int(boost*10).
// Informational only; never consumed by ranking.
func (c Candidate) KeywordMatches() int { return c.keywordMatches }

// Boosted returns a copy with the score raised by boost. Boost must be
// non-negative: re-ranking never lowers a score.
func (c Candidate) Boosted(boost float64) Candidate {
	c.score += boost
	c.keywordMatches = int(boost * 10)
	return c
}
