package answer

import (
	"fmt"
	"strings"

	"github.com/strustar/Road-Assistant/internal/domain/document"
)

const contextRule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// BuildContext renders the top maxChunks documents as the RAG context block
// for the prompt. Each document keeps its rank, similarity score, and full
// metadata so the model can cite sources.
func BuildContext(docs []document.Candidate, maxChunks int) string {
	if maxChunks > 0 && len(docs) > maxChunks {
		docs = docs[:maxChunks]
	}

	parts := make([]string, 0, len(docs))
	for i, doc := range docs {
		meta := doc.Meta()
		parts = append(parts, fmt.Sprintf(
			"%s\n📄 [문서 %d] 유사도: %.4f\n%s\n"+
				"• 코드: %s\n"+
				"• 날짜: %s\n"+
				"• 부서: %s\n"+
				"• 연도: %s\n"+
				"• 제목: %s\n"+
				"• 분류: %s\n"+
				"\n[본문 내용]\n%s\n",
			contextRule, i+1, doc.Score(), contextRule,
			meta.DisplayCode(),
			meta.DisplayDate(),
			meta.DisplayDept(),
			meta.DisplayYear(),
			meta.DisplayTitle(),
			meta.DisplayCategory(),
			CleanText(meta.Text),
		))
	}

	return strings.Join(parts, "\n\n")
}
