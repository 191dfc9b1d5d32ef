// Package chi exposes the question-answering pipeline over HTTP: search and
// chat endpoints, session management, and the corpus catalog.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/strustar/Road-Assistant/internal/domain"
	"github.com/strustar/Road-Assistant/internal/domain/document"
	"github.com/strustar/Road-Assistant/internal/domain/search/query"
	logpkg "github.com/strustar/Road-Assistant/internal/logger"
	"github.com/strustar/Road-Assistant/internal/session"
	answeruc "github.com/strustar/Road-Assistant/internal/usecase/answer"
	cataloguc "github.com/strustar/Road-Assistant/internal/usecase/catalog"
	healthuc "github.com/strustar/Road-Assistant/internal/usecase/health"
	searchuc "github.com/strustar/Road-Assistant/internal/usecase/search"
)

// Error codes returned to API clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeSessionNotFound  = "session_not_found"
	codeProviderError    = "provider_error"
	codeInternalError    = "internal_error"
	codeUnauthorized     = "unauthorized"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers over the use case services. Handlers log
// through the request-scoped logger installed by the wide-event middleware.
type Server struct {
	search        *searchuc.Service
	answer        *answeruc.Service
	catalog       *cataloguc.Service
	sessions      *session.Store
	health        *healthuc.Service
	defaultTopK   int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. defaultTopK <= 0 selects the query
// package default.
func NewServer(
	search *searchuc.Service,
	answer *answeruc.Service,
	catalog *cataloguc.Service,
	sessions *session.Store,
	health *healthuc.Service,
	defaultTopK int,
) *Server {
	s := &Server{
		search:      search,
		answer:      answer,
		catalog:     catalog,
		sessions:    sessions,
		health:      health,
		defaultTopK: defaultTopK,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, codeSessionNotFound),
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrCompletionProvider, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrIndexProvider, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/namespaces", s.ListNamespaces)
	r.Get("/examples", s.ListExamples)

	r.Post("/sessions", s.CreateSession)
	r.Get("/sessions/{id}", s.GetSession)
	r.Post("/sessions/{id}/reset", s.ResetSession)
	r.Delete("/sessions/{id}", s.DeleteSession)

	r.Post("/search", s.Search)
	r.Post("/chat", s.Chat)
}

// --- DTOs ---

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchRequest struct {
	Query             string   `json:"query"`
	TopK              int      `json:"top_k,omitempty"`
	Namespaces        []string `json:"namespaces,omitempty"`
	Year              int      `json:"year,omitempty"`
	Dept              string   `json:"dept,omitempty"`
	KeywordExtraction *bool    `json:"keyword_extraction,omitempty"`
}

type documentMetadata struct {
	Code     string `json:"code"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Dept     string `json:"dept"`
	Year     string `json:"year"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

type searchResultItem struct {
	ID               string           `json:"id"`
	Score            float64          `json:"score"`
	Namespace        string           `json:"namespace"`
	DisplayNamespace string           `json:"display_namespace"`
	KeywordMatches   int              `json:"keyword_matches"`
	Metadata         documentMetadata `json:"metadata"`
}

type appliedFilters struct {
	Year *int   `json:"year,omitempty"`
	Dept string `json:"dept,omitempty"`
}

type searchResponse struct {
	Results          []searchResultItem `json:"results"`
	Filters          appliedFilters     `json:"filters"`
	FailedNamespaces []string           `json:"failed_namespaces,omitempty"`
	BoostedCount     int                `json:"boosted_count"`
	ElapsedMS        int64              `json:"elapsed_ms"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	searchRequest
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type sessionTurn struct {
	Question string             `json:"question"`
	Answer   string             `json:"answer"`
	Sources  []searchResultItem `json:"sources"`
	AskedAt  string             `json:"asked_at"`
}

type sessionHistoryResponse struct {
	SessionID string        `json:"session_id"`
	Turns     []sessionTurn `json:"turns"`
}

// --- Handlers ---

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	result, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.searchResponseFrom(result))
}

// Chat handles POST /chat as a server-sent event stream: first the ranked
// sources, then the answer fragment by fragment, then a closing done event.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "session_id is required")
		return
	}

	conv, err := s.sessions.Get(req.SessionID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	q, ok := s.buildQuery(w, req.searchRequest)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		writeError(w, http.StatusInternalServerError, codeInternalError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	stream := &sseWriter{w: w, flusher: flusher}

	outcome, err := s.answer.Ask(r.Context(), conv, q, func(fragment string) error {
		return stream.event("delta", fragment)
	})
	if err != nil {
		// Headers are already sent; report the failure in-stream.
		logpkg.FromContext(r.Context()).Warn("chat stream failed",
			zap.String("session", req.SessionID), zap.Error(err))
		_ = stream.event("error", safeDomainMessage(err))
		return
	}

	_ = stream.eventJSON("sources", s.resultItemsFrom(outcome.Search.Documents))
	_ = stream.eventJSON("done", map[string]any{
		"session_id":        req.SessionID,
		"boosted_count":     outcome.Search.BoostedCount(),
		"failed_namespaces": outcome.Search.FailedNamespaces(),
		"elapsed_ms":        outcome.Search.Elapsed.Milliseconds(),
	})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	conv := s.sessions.Create()
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: conv.ID()})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	conv, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	turns := conv.Turns()
	out := make([]sessionTurn, len(turns))
	for i, turn := range turns {
		out[i] = sessionTurn{
			Question: turn.Question,
			Answer:   turn.Answer,
			Sources:  s.resultItemsFrom(turn.Sources),
			AskedAt:  turn.AskedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	writeJSON(w, http.StatusOK, sessionHistoryResponse{SessionID: conv.ID(), Turns: out})
}

// ResetSession handles POST /sessions/{id}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Reset(chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListNamespaces handles GET /namespaces.
func (s *Server) ListNamespaces(w http.ResponseWriter, r *http.Request) {
	listing, err := s.catalog.Namespaces(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// ListExamples handles GET /examples.
func (s *Server) ListExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"examples": cataloguc.Examples()})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Helpers ---

func (s *Server) decodeQuery(w http.ResponseWriter, r *http.Request) (query.Query, bool) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return query.Query{}, false
	}
	return s.buildQuery(w, req)
}

func (s *Server) buildQuery(w http.ResponseWriter, req searchRequest) (query.Query, bool) {
	keywordExtraction := true
	if req.KeywordExtraction != nil {
		keywordExtraction = *req.KeywordExtraction
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}

	q, err := query.New(
		req.Query, topK, req.Namespaces,
		query.NewFilters(req.Year, req.Dept), keywordExtraction,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return query.Query{}, false
	}
	return q, true
}

func (s *Server) searchResponseFrom(result searchuc.Result) searchResponse {
	resp := searchResponse{
		Results:          s.resultItemsFrom(result.Documents),
		FailedNamespaces: result.FailedNamespaces(),
		BoostedCount:     result.BoostedCount(),
		ElapsedMS:        result.Elapsed.Milliseconds(),
	}
	if year, ok := result.Filters.Year(); ok {
		resp.Filters.Year = &year
	}
	if dept, ok := result.Filters.Dept(); ok {
		resp.Filters.Dept = dept
	}
	return resp
}

func (s *Server) resultItemsFrom(docs []document.Candidate) []searchResultItem {
	items := make([]searchResultItem, len(docs))
	for i, doc := range docs {
		meta := doc.Meta()
		items[i] = searchResultItem{
			ID:               doc.ID(),
			Score:            doc.Score(),
			Namespace:        doc.Namespace(),
			DisplayNamespace: s.catalog.DisplayName(doc.Namespace()),
			KeywordMatches:   doc.KeywordMatches(),
			Metadata: documentMetadata{
				Code:     meta.DisplayCode(),
				Date:     meta.DisplayDate(),
				Title:    meta.DisplayTitle(),
				Dept:     meta.DisplayDept(),
				Year:     meta.DisplayYear(),
				Category: meta.DisplayCategory(),
				Text:     answeruc.CleanText(meta.Text),
			},
		}
	}
	return items
}

// sseWriter serializes server-sent events onto the response.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func (s *sseWriter) event(name, data string) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.raw(name, payload)
}

func (s *sseWriter) eventJSON(name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.raw(name, payload)
}

func (s *sseWriter) raw(name string, payload []byte) error {
	if _, err := s.w.Write([]byte("event: " + name + "\ndata: ")); err != nil {
		return err
	}
	if _, err := s.w.Write(payload); err != nil {
		return err
	}
	if _, err := s.w.Write([]byte("\n\n")); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSessionNotFound,
		domain.ErrEmbeddingProvider,
		domain.ErrCompletionProvider,
		domain.ErrIndexProvider,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContext(r.Context())
	logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
