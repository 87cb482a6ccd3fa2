// Package chi exposes the HTTP API: the chat endpoint, the diagnostic
// probe, health and Prometheus metrics.
package chi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/safemap-cloud/askmap/internal/domain"
	chatuc "github.com/safemap-cloud/askmap/internal/usecase/chat"
	"github.com/safemap-cloud/askmap/internal/version"
)

// ChatService runs the answering pipeline for one question.
type ChatService interface {
	Ask(ctx context.Context, question string, topK int) chatuc.Result
}

// DiagService probes the document collections.
type DiagService interface {
	Peek(ctx context.Context) domain.DiagReport
}

// ChatRequest is the POST /v1/chat body.
type ChatRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"topK,omitempty"`
	Debug    bool   `json:"debug,omitempty"`
}

// ChatResponse is the POST /v1/chat body on success. Sources are omitted
// for terminal states; Info is present only when debug traces are enabled.
type ChatResponse struct {
	Answer  string             `json:"answer"`
	Sources []domain.SourceRef `json:"sources,omitempty"`
	Info    *domain.Trace      `json:"info,omitempty"`
}

// DiagResponse is the POST /v1/diag body.
type DiagResponse struct {
	OK   bool              `json:"ok"`
	Info domain.DiagReport `json:"info"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	codeBadRequest    = "bad_request"
	codeInternalError = "internal_error"
)

// Server wires the use case services into HTTP handlers.
type Server struct {
	chat   ChatService
	diag   DiagService
	logger *zap.Logger
	debug  bool
}

// NewServer creates an HTTP API server. The chat response carries the
// pipeline trace when the request asks for it or when server-wide debug
// is enabled; otherwise it is withheld because it may contain raw
// upstream error strings.
func NewServer(chat ChatService, diag DiagService, logger *zap.Logger, debug bool) *Server {
	return &Server{chat: chat, diag: diag, logger: logger, debug: debug}
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/chat", s.Chat)
	r.Post("/v1/diag", s.Diag)
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
}

// Chat handles POST /v1/chat. Pipeline failures are already folded into
// fixed answers by the use case, so every well-formed request gets 200.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res := s.chat.Ask(r.Context(), req.Question, req.TopK)

	resp := ChatResponse{
		Answer:  res.Answer.Text,
		Sources: res.Answer.Sources,
	}
	if s.debug || req.Debug {
		resp.Info = res.Trace
	}

	writeJSON(w, http.StatusOK, resp)
}

// Diag handles POST /v1/diag.
func (s *Server) Diag(w http.ResponseWriter, r *http.Request) {
	report := s.diag.Peek(r.Context())

	writeJSON(w, http.StatusOK, DiagResponse{OK: true, Info: report})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
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
