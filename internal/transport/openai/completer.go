package openai

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/strustar/Road-Assistant/internal/domain"
	"github.com/strustar/Road-Assistant/internal/metrics"
	"github.com/strustar/Road-Assistant/internal/usecase/answer"
)

// Deterministic decoding: fixed seed, minimal temperature, tight nucleus.
// The same question over the same corpus should yield the same answer.
const (
	defaultTopP = 0.1
	defaultSeed = 12345
)

// Completer streams chat completions from the OpenAI API.
type Completer struct {
	client *openai.Client
	model  string
	topP   float32
	seed   int
	logger *zap.Logger
}

// CompleterConfig holds the completion provider settings.
type CompleterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	TopP    float32
	Seed    int
	Logger  *zap.Logger
}

// NewCompleter creates a streaming chat completion provider.
func NewCompleter(cfg *CompleterConfig) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	topP := cfg.TopP
	if topP <= 0 {
		topP = defaultTopP
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	return &Completer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		topP:   topP,
		seed:   seed,
		logger: cfg.Logger,
	}
}

// Complete opens a completion stream for the prompt pair.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (answer.Stream, error) {
	seed := c.seed
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		// Temperature 0.0 marshals as absent (omitempty), which the API
		// treats as the 1.0 default. The smallest positive float32 survives
		// marshaling and is effectively zero.
		Temperature: math.SmallestNonzeroFloat32,
		TopP:        c.topP,
		Seed:        &seed,
		Stream:      true,
	}

	start := time.Now()
	stream, err := c.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return nil, fmt.Errorf("open completion stream: %v: %w", err, domain.ErrCompletionProvider)
	}
	metrics.CompletionRequestsTotal.WithLabelValues(c.model, "success").Inc()

	return &completionStream{stream: stream, model: c.model, start: start}, nil
}

// completionStream adapts go-openai's stream to the answer.Stream contract.
type completionStream struct {
	stream *openai.ChatCompletionStream
	model  string
	start  time.Time
}

// Recv returns the next text fragment, or io.EOF when the model is done.
// Chunks without content (role headers, finish markers) yield an empty
// fragment rather than being skipped here; the caller ignores empties.
func (s *completionStream) Recv() (string, error) {
	resp, err := s.stream.Recv()
	if err == io.EOF {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("completion stream recv: %v: %w", err, domain.ErrCompletionProvider)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

// Close releases the stream and records its duration.
func (s *completionStream) Close() error {
	metrics.CompletionStreamDuration.WithLabelValues(s.model).Observe(time.Since(s.start).Seconds())
	return s.stream.Close()
}
