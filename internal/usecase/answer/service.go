// Package answer turns ranked search results into a streamed, grounded
// answer: it renders the context block, prompts the model, and records the
// finished turn on the conversation.
package answer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/strustar/Road-Assistant/internal/domain/search/query"
	"github.com/strustar/Road-Assistant/internal/session"
	"github.com/strustar/Road-Assistant/internal/usecase/search"
)

// EmptyResultMessage is delivered verbatim when retrieval finds nothing;
// no model call is made in that case.
const EmptyResultMessage = "검색 결과가 없습니다. 다른 질문을 시도해주세요."

// DefaultMaxContextChunks caps how many ranked documents enter the prompt.
const DefaultMaxContextChunks = 10

// Service answers questions over the guideline corpus.
type Service struct {
	search    Searcher
	complete  Completer
	maxChunks int
	logger    *zap.Logger
}

// New creates an answer service. maxChunks <= 0 selects the default.
func New(searcher Searcher, completer Completer, maxChunks int, logger *zap.Logger) *Service {
	if maxChunks <= 0 {
		maxChunks = DefaultMaxContextChunks
	}
	return &Service{search: searcher, complete: completer, maxChunks: maxChunks, logger: logger}
}

// Outcome is one finished question/answer exchange plus the retrieval
// details behind it.
type Outcome struct {
	Turn   session.Turn
	Search search.Result
}

// Ask runs retrieval, streams the model answer through deliver fragment by
// fragment, and appends the finished turn to conv. When retrieval comes back
// empty the fixed no-result message is delivered instead of calling the
// model. A failure mid-stream records the turn with an empty answer; a
// failure delivering to the caller keeps what was already sent.
func (s *Service) Ask(
	ctx context.Context,
	conv *session.Conversation,
	q query.Query,
	deliver func(fragment string) error,
) (Outcome, error) {
	result, err := s.search.Search(ctx, q)
	if err != nil {
		return Outcome{}, err
	}

	if len(result.Documents) == 0 {
		if err := deliver(EmptyResultMessage); err != nil {
			return Outcome{Search: result}, fmt.Errorf("deliver answer: %w", err)
		}
		turn := s.record(conv, q.Text(), EmptyResultMessage, result)
		return Outcome{Turn: turn, Search: result}, nil
	}

	contextBlock := BuildContext(result.Documents, s.maxChunks)
	stream, err := s.complete.Complete(ctx, systemPrompt, userPrompt(q.Text(), contextBlock))
	if err != nil {
		return Outcome{Search: result}, fmt.Errorf("open completion stream: %w", err)
	}
	defer stream.Close()

	var answer strings.Builder
	for {
		fragment, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			s.logger.Warn("completion stream interrupted",
				zap.Int("received_bytes", answer.Len()), zap.Error(recvErr))
			// The turn is recorded with an empty answer: a half-generated
			// answer must not look like a completed one in the history.
			turn := s.record(conv, q.Text(), "", result)
			return Outcome{Turn: turn, Search: result},
				fmt.Errorf("completion stream: %w", recvErr)
		}
		if fragment == "" {
			continue
		}
		answer.WriteString(fragment)
		if err := deliver(fragment); err != nil {
			turn := s.record(conv, q.Text(), answer.String(), result)
			return Outcome{Turn: turn, Search: result},
				fmt.Errorf("deliver answer: %w", err)
		}
	}

	turn := s.record(conv, q.Text(), answer.String(), result)
	s.logger.Info("answer completed",
		zap.String("session", conv.ID()),
		zap.Int("sources", len(result.Documents)),
		zap.Int("answer_bytes", len(turn.Answer)),
	)
	return Outcome{Turn: turn, Search: result}, nil
}

func (s *Service) record(
	conv *session.Conversation, question, answer string, result search.Result,
) session.Turn {
	turn := session.Turn{
		Question: question,
		Answer:   answer,
		Sources:  result.Documents,
		AskedAt:  time.Now(),
	}
	conv.Append(turn)
	return turn
}
