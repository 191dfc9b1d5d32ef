package domain

import "errors"

var (
	// ErrEmbeddingProvider signals an embedding provider failure.
	// Fatal for the current query; no retry.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrCompletionProvider signals a chat completion provider failure.
	ErrCompletionProvider = errors.New("completion provider error")
	// ErrIndexProvider signals a vector index transport failure.
	ErrIndexProvider = errors.New("vector index provider error")
	// ErrSessionNotFound signals a missing conversation session.
	ErrSessionNotFound = errors.New("session not found")
)
