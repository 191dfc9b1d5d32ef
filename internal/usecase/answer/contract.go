package answer

import (
	"context"

	"github.com/strustar/Road-Assistant/internal/domain/search/query"
	"github.com/strustar/Road-Assistant/internal/usecase/search"
)

// Searcher runs the retrieval ranking pipeline.
type Searcher interface {
	Search(ctx context.Context, q query.Query) (search.Result, error)
}

// Stream yields completion text fragments. Recv returns io.EOF when the
// model is done.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Completer opens a streaming chat completion for a prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (Stream, error)
}
