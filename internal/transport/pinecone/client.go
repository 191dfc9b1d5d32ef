// Package pinecone is a minimal REST client for a Pinecone serverless index,
// covering the two calls the pipeline needs: vector query and index stats.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/strustar/Road-Assistant/internal/domain"
	"github.com/strustar/Road-Assistant/internal/domain/document"
	"github.com/strustar/Road-Assistant/internal/domain/search/query"
)

const defaultTimeout = 30 * time.Second

// Client talks to one Pinecone index over its data-plane REST API.
type Client struct {
	host   string
	apiKey string
	http   *http.Client
	logger *zap.Logger
}

// Config holds the index connection settings.
type Config struct {
	// Host is the index endpoint, e.g. https://my-index-abc123.svc.us-east-1.pinecone.io.
	Host    string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// New creates a Pinecone index client.
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		host:   cfg.Host,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
		logger: cfg.Logger,
	}
}

type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	IncludeMetadata bool           `json:"includeMetadata"`
	Namespace       string         `json:"namespace,omitempty"`
	Filter          map[string]any `json:"filter,omitempty"`
}

type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

// Query implements the pipeline's VectorIndex contract against one namespace.
func (c *Client) Query(
	ctx context.Context, namespace string,
	vector []float32, topK int, filters query.Filters,
) ([]document.Candidate, error) {
	req := queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
		Namespace:       namespace,
		Filter:          encodeFilters(filters),
	}

	var resp queryResponse
	if err := c.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}

	candidates := make([]document.Candidate, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		candidates = append(candidates, document.New(
			match.ID, match.Score, namespace, parseMetadata(match.Metadata),
		))
	}
	return candidates, nil
}

type statsResponse struct {
	Namespaces map[string]struct {
		VectorCount int `json:"vectorCount"`
	} `json:"namespaces"`
	TotalVectorCount int `json:"totalVectorCount"`
}

// Stats returns per-namespace vector counts.
func (c *Client) Stats(ctx context.Context) (domain.IndexStats, error) {
	var resp statsResponse
	if err := c.post(ctx, "/describe_index_stats", struct{}{}, &resp); err != nil {
		return domain.IndexStats{}, err
	}

	namespaces := make(map[string]int, len(resp.Namespaces))
	for ns, info := range resp.Namespaces {
		namespaces[ns] = info.VectorCount
	}
	return domain.IndexStats{
		Namespaces:   namespaces,
		TotalVectors: resp.TotalVectorCount,
	}, nil
}

// HealthCheck verifies the index is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.Stats(ctx)
	return err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("index request %s: %v: %w", path, err, domain.ErrIndexProvider)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("index API error %d on %s: %s: %w",
			resp.StatusCode, path, string(detail), domain.ErrIndexProvider)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %v: %w", path, err, domain.ErrIndexProvider)
	}
	return nil
}

// encodeFilters renders the metadata filter as flat equality matches, which
// Pinecone treats as implicit $eq.
func encodeFilters(filters query.Filters) map[string]any {
	if filters.IsEmpty() {
		return nil
	}
	out := make(map[string]any, 2)
	if year, ok := filters.Year(); ok {
		out["year"] = year
	}
	if dept, ok := filters.Dept(); ok {
		out["dept"] = dept
	}
	return out
}

// parseMetadata maps the stored metadata fields. Year is stored as a number
// in some ingestion batches and a string in others.
func parseMetadata(raw map[string]any) document.Metadata {
	return document.Metadata{
		Code:     metaString(raw["code"]),
		Date:     metaString(raw["date"]),
		Title:    metaString(raw["title"]),
		Dept:     metaString(raw["dept"]),
		Year:     metaString(raw["year"]),
		Category: metaString(raw["category"]),
		Text:     metaString(raw["text"]),
	}
}

func metaString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatInt(int64(value), 10)
	default:
		return ""
	}
}
