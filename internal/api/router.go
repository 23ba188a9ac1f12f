// Package api exposes the assistant service over HTTP. This layer is
// transport plumbing only: validation of empty inputs and JSON shuttling.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/bengali-knowledge-assistant/internal/assistant"
	"github.com/bengali-knowledge-assistant/internal/jsonx"
)

type learnRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the HTTP route table around the service.
func NewRouter(svc *assistant.Service, logger *zap.Logger) *mux.Router {
	h := &handler{svc: svc, logger: logger.Named("api")}

	r := mux.NewRouter()
	r.Use(h.logging)

	r.HandleFunc("/api/learn", h.learn).Methods(http.MethodPost)
	r.HandleFunc("/api/ask", h.ask).Methods(http.MethodPost)
	r.HandleFunc("/api/knowledge", h.list).Methods(http.MethodGet)
	r.HandleFunc("/api/knowledge", h.clear).Methods(http.MethodDelete)
	r.HandleFunc("/api/knowledge/{id}", h.delete).Methods(http.MethodDelete)
	r.HandleFunc("/api/stats", h.stats).Methods(http.MethodGet)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	return r
}

type handler struct {
	svc    *assistant.Service
	logger *zap.Logger
}

func (h *handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (h *handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := jsonx.DecodeFrom(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// The service itself accepts anything; rejecting blank teachings is the
	// transport layer's job.
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}

	h.svc.LearnFromText(r.Context(), req.Title, req.Content)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := jsonx.DecodeFrom(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer := h.svc.GenerateResponse(r.Context(), req.Question)
	writeJSON(w, http.StatusOK, askResponse{Answer: answer})
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetKnowledgeBase(r.Context()))
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.svc.DeleteKnowledge(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) clear(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearKnowledgeBase(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		assistant.Stats
		Cache interface{} `json:"cache"`
	}{
		Stats: h.svc.GetKnowledgeStats(r.Context()),
		Cache: h.svc.CacheStats(),
	})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	jsonx.EncodeTo(w, v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
