package search

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/strustar/Road-Assistant/internal/domain"
	"github.com/strustar/Road-Assistant/internal/domain/document"
	"github.com/strustar/Road-Assistant/internal/domain/search/query"
)

// --- Mocks ---

type indexCall struct {
	namespace string
	topK      int
	filters   query.Filters
}

type mockIndex struct {
	candidates map[string][]document.Candidate // keyed by namespace
	failing    map[string]error
	stats      domain.IndexStats
	statsErr   error
	calls      []indexCall
}

func (m *mockIndex) Query(
	_ context.Context, namespace string,
	_ []float32, topK int, filters query.Filters,
) ([]document.Candidate, error) {
	m.calls = append(m.calls, indexCall{namespace: namespace, topK: topK, filters: filters})
	if err, ok := m.failing[namespace]; ok {
		return nil, err
	}
	return m.candidates[namespace], nil
}

func (m *mockIndex) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.statsErr
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
	lastIn string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.called = true
	m.lastIn = text
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func makeQuery(t *testing.T, text string, topK int, namespaces []string) query.Query {
	t.Helper()
	q, err := query.New(text, topK, namespaces, query.Filters{}, true)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

// --- Tests ---

func TestSearch_FetchKFormula(t *testing.T) {
	for topK := 1; topK <= 100; topK++ {
		index := &mockIndex{}
		embed := &mockEmbedder{vec: []float32{0.1}}
		svc := New(index, embed, zap.NewNop())

		q := makeQuery(t, "배수성 포장 기준", topK, []string{"ns"})
		if _, err := svc.Search(context.Background(), q); err != nil {
			t.Fatalf("topK=%d: unexpected error: %v", topK, err)
		}

		want := topK * 5
		if want < 50 {
			want = 50
		}
		if got := index.calls[0].topK; got != want {
			t.Fatalf("topK=%d: fetch count = %d, want %d", topK, got, want)
		}
	}
}

func TestSearch_FetchKKnownValues(t *testing.T) {
	tests := []struct{ topK, want int }{
		{10, 50},
		{20, 100},
	}
	for _, tt := range tests {
		index := &mockIndex{}
		embed := &mockEmbedder{vec: []float32{0.1}}
		svc := New(index, embed, zap.NewNop())

		q := makeQuery(t, "포장 기준", tt.topK, []string{"ns"})
		if _, err := svc.Search(context.Background(), q); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := index.calls[0].topK; got != tt.want {
			t.Errorf("topK=%d: fetch count = %d, want %d", tt.topK, got, tt.want)
		}
	}
}

func TestSearch_EmbeddingFailureIsFatal(t *testing.T) {
	index := &mockIndex{
		candidates: map[string][]document.Candidate{
			"ns": {document.New("a", 0.9, "ns", document.Metadata{})},
		},
	}
	embed := &mockEmbedder{err: domain.ErrEmbeddingProvider}
	svc := New(index, embed, zap.NewNop())

	q := makeQuery(t, "포장 기준", 10, []string{"ns"})
	_, err := svc.Search(context.Background(), q)
	if err == nil {
		t.Fatal("expected fatal error, got nil")
	}
	if !errors.Is(err, domain.ErrEmbeddingProvider) {
		t.Errorf("error does not wrap ErrEmbeddingProvider: %v", err)
	}
	if len(index.calls) != 0 {
		t.Error("index must not be queried after embedding failure")
	}
}

func TestSearch_PartitionFailureIsTolerated(t *testing.T) {
	index := &mockIndex{
		candidates: map[string][]document.Candidate{
			"good": {document.New("a", 0.9, "good", document.Metadata{Year: "2024"})},
		},
		failing: map[string]error{"bad": errors.New("connection refused")},
	}
	embed := &mockEmbedder{vec: []float32{0.1}}
	svc := New(index, embed, zap.NewNop())

	q := makeQuery(t, "포장 기준", 10, []string{"good", "bad"})
	result, err := svc.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("partition failure must not abort the search: %v", err)
	}

	if len(result.Documents) != 1 {
		t.Fatalf("expected 1 document from the healthy namespace, got %d", len(result.Documents))
	}
	failed := result.FailedNamespaces()
	if len(failed) != 1 || failed[0] != "bad" {
		t.Errorf("FailedNamespaces = %v, want [bad]", failed)
	}
}

func TestSearch_DiscoversNamespacesFromStats(t *testing.T) {
	index := &mockIndex{
		stats: domain.IndexStats{
			Namespaces:   map[string]int{"ns-a": 10, "ns-b": 20},
			TotalVectors: 30,
		},
	}
	embed := &mockEmbedder{vec: []float32{0.1}}
	svc := New(index, embed, zap.NewNop())

	q := makeQuery(t, "포장 기준", 10, nil)
	if _, err := svc.Search(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(index.calls) != 2 {
		t.Fatalf("expected 2 namespace queries, got %d", len(index.calls))
	}
	// Discovery order is sorted for reproducibility.
	if index.calls[0].namespace != "ns-a" || index.calls[1].namespace != "ns-b" {
		t.Errorf("namespaces queried in order %q, %q; want ns-a, ns-b",
			index.calls[0].namespace, index.calls[1].namespace)
	}
}

func TestSearch_DiscoveryFailureFallsBackToDefault(t *testing.T) {
	index := &mockIndex{statsErr: errors.New("stats unavailable")}
	embed := &mockEmbedder{vec: []float32{0.1}}
	svc := New(index, embed, zap.NewNop())

	q := makeQuery(t, "포장 기준", 10, nil)
	if _, err := svc.Search(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(index.calls) != 1 || index.calls[0].namespace != "" {
		t.Errorf("expected single default-namespace query, got %+v", index.calls)
	}
}

func TestSearch_AutoExtractedFiltersReachIndex(t *testing.T) {
	index := &mockIndex{}
	embed := &mockEmbedder{vec: []float32{0.1}}
	svc := New(index, embed, zap.NewNop())

	q := makeQuery(t, "2024년 설계처 라이다 기준", 10, []string{"ns"})
	result, err := svc.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := index.calls[0].filters
	if year, _ := sent.Year(); year != 2024 {
		t.Errorf("index received year %d, want 2024", year)
	}
	if dept, _ := sent.Dept(); dept != "설계처" {
		t.Errorf("index received dept %q, want 설계처", dept)
	}
	if year, _ := result.Filters.Year(); year != 2024 {
		t.Errorf("result filters year = %d, want 2024", year)
	}
}

func TestSearch_KeywordExtractionAppliedToEmbeddingInput(t *testing.T) {
	index := &mockIndex{}
	embed := &mockEmbedder{vec: []float32{0.1}}
	svc := New(index, embed, zap.NewNop())

	q := makeQuery(t, "교량 점검시설 설치기준을 알려줘", 10, []string{"ns"})
	if _, err := svc.Search(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if embed.lastIn == q.Text() {
		t.Error("expected keyword-extracted text to be embedded, got raw query")
	}
}

// End-to-end ranking fixture: the 2024 document with matching phrase text
// outranks the 2017 document without overlap, and the diversity quota still
// carries the 2017 document into the result.
func TestSearch_EndToEndRanking(t *testing.T) {
	doc2024 := document.New("doc-2024", 0.5, "ns", document.Metadata{
		Title: "드론라이다 통합측량 확대방안",
		Text:  "라이다 점밀도 기준 최소 400pts 이상",
		Year:  "2024",
	})
	doc2017 := document.New("doc-2017", 0.6, "ns", document.Metadata{
		Title: "측량 업무처리 요령",
		Text:  "일반 측량 정확도 규정만 존재",
		Year:  "2017",
	})

	index := &mockIndex{
		candidates: map[string][]document.Candidate{
			"ns": {doc2017, doc2024},
		},
	}
	embed := &mockEmbedder{vec: []float32{0.1}}
	svc := New(index, embed, zap.NewNop())

	q := makeQuery(t, "2024년 라이다 점밀도 기준", 5, []string{"ns"})
	result, err := svc.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Documents) != 2 {
		t.Fatalf("expected both documents in result, got %d", len(result.Documents))
	}
	if result.Documents[0].ID() != "doc-2024" {
		t.Errorf("boosted 2024 doc must rank first, got %s", result.Documents[0].ID())
	}
	if result.Documents[0].Score() <= result.Documents[1].Score() {
		t.Errorf("2024 doc score %f must exceed 2017 doc score %f",
			result.Documents[0].Score(), result.Documents[1].Score())
	}
	if result.BoostedCount() < 1 {
		t.Error("expected at least one keyword-boosted document")
	}
}

func TestSearch_EmptyPoolYieldsEmptyResultNotError(t *testing.T) {
	index := &mockIndex{}
	embed := &mockEmbedder{vec: []float32{0.1}}
	svc := New(index, embed, zap.NewNop())

	q := makeQuery(t, "존재하지 않는 주제", 10, []string{"ns"})
	result, err := svc.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if len(result.Documents) != 0 {
		t.Errorf("expected empty result, got %d documents", len(result.Documents))
	}
}
