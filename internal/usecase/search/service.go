// Package search implements the retrieval ranking pipeline: constraint and
// keyword extraction, wide retrieval across namespaces, lexical re-ranking,
// and the per-year diversity quota.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/strustar/Road-Assistant/internal/domain/document"
	"github.com/strustar/Road-Assistant/internal/domain/search/query"
	"github.com/strustar/Road-Assistant/internal/metrics"
)

// Service runs the full ranking pipeline for one query at a time. Each run
// builds its own candidate pool; no state is shared across queries.
type Service struct {
	index  VectorIndex
	embed  Embedder
	logger *zap.Logger
}

// New creates a search service.
func New(index VectorIndex, embed Embedder, logger *zap.Logger) *Service {
	return &Service{index: index, embed: embed, logger: logger}
}

// PartitionResult is the explicit outcome of one namespace query: either
// candidates or a failure reason. A failed namespace never aborts the
// overall search.
type PartitionResult struct {
	Namespace  string
	Candidates []document.Candidate
	Err        error
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Documents is the final ranked list, strictly score-descending.
	Documents []document.Candidate
	// Partitions reports the per-namespace retrieval outcomes.
	Partitions []PartitionResult
	// Filters are the effective constraints after auto-extraction.
	Filters query.Filters
	// Elapsed is the wall time of the full pipeline run.
	Elapsed time.Duration
}

// FailedNamespaces lists the namespaces that errored during retrieval.
func (r Result) FailedNamespaces() []string {
	var failed []string
	for _, p := range r.Partitions {
		if p.Err != nil {
			failed = append(failed, p.Namespace)
		}
	}
	return failed
}

// BoostedCount reports how many final documents received a lexical boost.
func (r Result) BoostedCount() int {
	n := 0
	for _, doc := range r.Documents {
		if doc.KeywordMatches() > 0 {
			n++
		}
	}
	return n
}

// Search executes the ranking pipeline: extract constraints and keywords,
// embed, over-fetch from every namespace, re-rank lexically, and apply the
// diversity quota. An embedding failure is fatal; namespace failures are
// tolerated and reported in the result.
func (s *Service) Search(ctx context.Context, q query.Query) (Result, error) {
	start := time.Now()

	filters := ExtractConstraints(q.Text(), q.Filters())
	if year, ok := filters.Year(); ok {
		s.logger.Debug("year filter active", zap.Int("year", year))
	}
	if dept, ok := filters.Dept(); ok {
		s.logger.Debug("dept filter active", zap.String("dept", dept))
	}

	searchText := q.Text()
	if q.KeywordExtraction() {
		searchText = ExtractKeywords(q.Text())
	}

	embResult, err := s.embed.Embed(ctx, searchText)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("vectorize query: %w", err)
	}

	namespaces := q.Namespaces()
	if len(namespaces) == 0 {
		namespaces = s.discoverNamespaces(ctx)
	}

	var pool []document.Candidate
	partitions := make([]PartitionResult, 0, len(namespaces))
	for _, ns := range namespaces {
		cands, qErr := s.index.Query(ctx, ns, embResult.Embedding, q.FetchK(), filters)
		if qErr != nil {
			metrics.SearchPartitionFailuresTotal.Inc()
			s.logger.Warn("namespace query failed, skipping",
				zap.String("namespace", ns), zap.Error(qErr))
			partitions = append(partitions, PartitionResult{Namespace: ns, Err: qErr})
			continue
		}
		partitions = append(partitions, PartitionResult{Namespace: ns, Candidates: cands})
		pool = append(pool, cands...)
	}
	metrics.SearchCandidatesRetrieved.Observe(float64(len(pool)))

	pool = Rerank(pool, q.Text())
	final := SelectDiverse(pool, q.TopK())

	elapsed := time.Since(start)
	metrics.SearchDuration.Observe(elapsed.Seconds())
	if len(final) == 0 {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchesTotal.WithLabelValues("success").Inc()
	}

	s.logger.Info("search completed",
		zap.Int("pool", len(pool)),
		zap.Int("results", len(final)),
		zap.Int("namespaces", len(namespaces)),
		zap.Duration("elapsed", elapsed),
	)

	return Result{
		Documents:  final,
		Partitions: partitions,
		Filters:    filters,
		Elapsed:    elapsed,
	}, nil
}

// discoverNamespaces lists all namespaces from the index stats, falling back
// to the default namespace when the stats call fails.
func (s *Service) discoverNamespaces(ctx context.Context) []string {
	stats, err := s.index.Stats(ctx)
	if err != nil || len(stats.Namespaces) == 0 {
		if err != nil {
			s.logger.Warn("namespace discovery failed, using default", zap.Error(err))
		}
		return []string{""}
	}

	namespaces := make([]string, 0, len(stats.Namespaces))
	for ns := range stats.Namespaces {
		namespaces = append(namespaces, ns)
	}
	// Map iteration order is random; a stable order keeps runs reproducible.
	sort.Strings(namespaces)
	return namespaces
}
