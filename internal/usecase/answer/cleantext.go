package answer

import (
	"regexp"
	"strings"
)

// Stored chunks carry HTML remnants from the original document conversion.
var (
	brTag  = regexp.MustCompile(`(?i)<br\s*/?>`)
	supTag = regexp.MustCompile(`<sup>(.*?)</sup>`)
	subTag = regexp.MustCompile(`<sub>(.*?)</sub>`)

	excessNewlines = regexp.MustCompile(`\n{3,}`)

	htmlEntities = strings.NewReplacer(
		"&nbsp;", " ",
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
		"&ndash;", "–",
		"&mdash;", "—",
	)
)

// CleanText converts HTML remnants in a stored chunk to plain text:
// line breaks become newlines, superscripts become ^(x), subscripts
// become _(x), entities are decoded, and runs of three or more
// newlines collapse to two.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = brTag.ReplaceAllString(text, "\n")
	text = supTag.ReplaceAllString(text, "^($1)")
	text = subTag.ReplaceAllString(text, "_($1)")
	text = htmlEntities.Replace(text)
	text = excessNewlines.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
