package domain

// IndexStats describes the vector index contents, as reported by the store's
// describe_index_stats endpoint.
type IndexStats struct {
	// Namespaces maps namespace identifier to its vector count.
	// The default namespace is keyed by the empty string.
	Namespaces map[string]int
	// TotalVectors is the vector count across all namespaces.
	TotalVectors int
}
