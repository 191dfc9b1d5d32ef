package answer

import (
	"strings"
	"testing"

	"github.com/strustar/Road-Assistant/internal/domain/document"
)

func TestBuildContext_FormatsMetadata(t *testing.T) {
	docs := []document.Candidate{
		document.New("a", 0.8765, "ns", document.Metadata{
			Code:     "DOC-001",
			Date:     "2024-03-01",
			Title:    "드론라이다 통합측량",
			Dept:     "설계처",
			Year:     "2024",
			Category: "측량",
			Text:     "점밀도 기준<br>400pts 이상",
		}),
	}

	got := BuildContext(docs, 10)

	for _, want := range []string{
		"[문서 1] 유사도: 0.8765",
		"• 코드: DOC-001",
		"• 날짜: 2024-03-01",
		"• 부서: 설계처",
		"• 연도: 2024",
		"• 제목: 드론라이다 통합측량",
		"• 분류: 측량",
		"[본문 내용]\n점밀도 기준\n400pts 이상",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q:\n%s", want, got)
		}
	}
}

func TestBuildContext_AppliesFallbacks(t *testing.T) {
	docs := []document.Candidate{
		document.New("a", 0.5, "", document.Metadata{Text: "본문"}),
	}

	got := BuildContext(docs, 10)

	if !strings.Contains(got, "• 제목: "+document.FallbackTitle) {
		t.Errorf("missing title fallback:\n%s", got)
	}
	if !strings.Contains(got, "• 코드: "+document.FallbackValue) {
		t.Errorf("missing code fallback:\n%s", got)
	}
}

func TestBuildContext_CapsAtMaxChunks(t *testing.T) {
	docs := make([]document.Candidate, 5)
	for i := range docs {
		docs[i] = document.New("a", 0.5, "", document.Metadata{Text: "본문"})
	}

	got := BuildContext(docs, 3)

	if strings.Count(got, "[문서 ") != 3 {
		t.Errorf("expected 3 document blocks:\n%s", got)
	}
	if strings.Contains(got, "[문서 4]") {
		t.Error("document beyond maxChunks included")
	}
}

func TestBuildContext_Empty(t *testing.T) {
	if got := BuildContext(nil, 10); got != "" {
		t.Errorf("expected empty context, got %q", got)
	}
}
