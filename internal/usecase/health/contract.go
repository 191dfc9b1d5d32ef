package health

import "context"

// CachePinger checks embedding-cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexChecker checks vector index availability.
type IndexChecker interface {
	HealthCheck(ctx context.Context) error
}
