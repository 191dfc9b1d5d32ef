package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roadassist",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roadassist",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roadassist",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roadassist",
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roadassist",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// Search pipeline metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roadassist",
			Name:      "searches_total",
			Help:      "Total number of search pipeline runs",
		},
		[]string{"status"}, // "success" / "error" / "empty"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "roadassist",
			Name:      "search_duration_seconds",
			Help:      "Full search pipeline duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SearchPartitionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roadassist",
			Name:      "search_partition_failures_total",
			Help:      "Namespace queries that failed and were skipped",
		},
	)

	SearchCandidatesRetrieved = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "roadassist",
			Name:      "search_candidates_retrieved",
			Help:      "Size of the raw candidate pool before re-ranking",
			Buckets:   []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

// Completion metrics.
var (
	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roadassist",
			Name:      "completion_requests_total",
			Help:      "Total number of chat completion streams",
		},
		[]string{"model", "status"},
	)

	CompletionStreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roadassist",
			Name:      "completion_stream_duration_seconds",
			Help:      "Chat completion stream duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)
)

var registered bool

// Register registers all pipeline metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingErrorsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchPartitionFailuresTotal)
	prometheus.MustRegister(SearchCandidatesRetrieved)
	prometheus.MustRegister(CompletionRequestsTotal)
	prometheus.MustRegister(CompletionStreamDuration)
	registered = true
}
