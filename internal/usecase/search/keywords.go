package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Symbols meaningful to guideline queries survive cleaning: section paths
// (1-1, 3.2), ratios, ranges, arrows, parenthesized revisions, percentages.
var (
	queryCharset    = regexp.MustCompile(`[^0-9A-Za-z가-힣\s\-./~→()%]`)
	multiWhitespace = regexp.MustCompile(`\s{2,}`)
)

// stopwords are Korean grammatical particles and generic interrogatives that
// add no retrieval signal.
var stopwords = map[string]struct{}{
	"은": {}, "는": {}, "이": {}, "가": {}, "을": {}, "를": {}, "의": {}, "에": {},
	"에서": {}, "로": {}, "으로": {}, "와": {}, "과": {}, "도": {}, "만": {},
	"까지": {}, "부터": {}, "마다": {}, "처럼": {}, "같이": {},
	"어떤": {}, "무엇": {}, "어떻게": {}, "왜": {}, "언제": {}, "어디": {}, "누가": {}, "뭐": {},
	"알려줘": {}, "알려주세요": {}, "설명해줘": {}, "설명해주세요": {}, "뭐야": {}, "뭔가요": {},
	"하는": {}, "되는": {}, "있는": {}, "없는": {}, "해야": {}, "할": {}, "한": {}, "된": {}, "인": {},
	"그": {}, "저": {}, "것": {}, "수": {}, "등": {}, "및": {}, "또는": {}, "그리고": {},
	"대해": {}, "관해": {}, "관한": {}, "대한": {}, "무슨": {},
}

// ExtractKeywords strips stopwords and noise characters from a raw query to
// produce a search string optimized for embedding relevance. If fewer than
// two content tokens survive, the original query is returned unchanged so
// short queries are never filtered into emptiness.
func ExtractKeywords(rawQuery string) string {
	cleaned := queryCharset.ReplaceAllString(rawQuery, " ")
	cleaned = strings.TrimSpace(multiWhitespace.ReplaceAllString(cleaned, " "))

	var keywords []string
	for _, token := range strings.Fields(cleaned) {
		if _, stop := stopwords[token]; stop {
			continue
		}
		if utf8.RuneCountInString(token) <= 1 {
			continue
		}
		keywords = append(keywords, token)
	}

	if len(keywords) < 2 {
		return rawQuery
	}
	return strings.Join(keywords, " ")
}
