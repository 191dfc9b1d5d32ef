package search

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/strustar/Road-Assistant/internal/domain/document"
)

// Lexical boost weights. A phrase hit is worth 6x a single-word hit:
// phrase coherence is a much stronger relevance signal than bag-of-words
// overlap.
const (
	wordBoost   = 0.05
	phraseBoost = 0.3
	signalBoost = 0.05
)

// signalTerms correlate with the document sections most likely to contain
// the authoritative answer (개선안/적용 기준/검토결과 and tables). They score
// regardless of query content.
var signalTerms = []string{"개선", "적용", "검토", "결과", "표"}

// wordCharset keeps word characters and Hangul when splitting the query into
// comparison words.
var wordCharset = regexp.MustCompile(`[^\w\s가-힣]`)

// Rerank returns a copy of the pool with each candidate's score raised by
// its lexical overlap with the raw (non-keyword-extracted) query. The title
// is doubled in the comparison text to bias matches toward title hits.
// Rerank never lowers a score and never drops a candidate.
func Rerank(pool []document.Candidate, rawQuery string) []document.Candidate {
	words := queryWords(rawQuery)

	reranked := make([]document.Candidate, len(pool))
	for i, cand := range pool {
		meta := cand.Meta()
		comparison := meta.Title + meta.Title + " " + meta.Text
		reranked[i] = cand.Boosted(lexicalBoost(words, comparison))
	}
	return reranked
}

// queryWords splits the raw query into comparison words of at least two
// runes. The list is deliberately not deduplicated: a repeated query word
// compounds its boost.
func queryWords(rawQuery string) []string {
	cleaned := wordCharset.ReplaceAllString(rawQuery, " ")

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) >= 2 {
			words = append(words, w)
		}
	}
	return words
}

// lexicalBoost computes the score bonus for one comparison text.
func lexicalBoost(words []string, comparison string) float64 {
	var boost float64

	for _, w := range words {
		if strings.Contains(comparison, w) {
			boost += wordBoost
		}
	}

	for i := 0; i+1 < len(words); i++ {
		phrase := words[i] + " " + words[i+1]
		if strings.Contains(comparison, phrase) {
			boost += phraseBoost
		}
	}

	for _, term := range signalTerms {
		if strings.Contains(comparison, term) {
			boost += signalBoost
		}
	}

	return boost
}
