package search

import (
	"context"

	"github.com/strustar/Road-Assistant/internal/domain"
	"github.com/strustar/Road-Assistant/internal/domain/document"
	"github.com/strustar/Road-Assistant/internal/domain/search/query"
)

// VectorIndex is the storage contract for wide retrieval.
type VectorIndex interface {
	// Query runs a similarity search within one namespace.
	Query(
		ctx context.Context, namespace string,
		vector []float32, topK int, filters query.Filters,
	) ([]document.Candidate, error)

	// Stats describes the index contents, used for namespace discovery.
	Stats(ctx context.Context) (domain.IndexStats, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
