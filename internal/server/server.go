package server

import (
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"hyperassist/internal/core"
	"hyperassist/internal/logger"
	"hyperassist/pkg"
)

// Server is the thin HTTP layer in front of the personalization pipeline.
// It carries no decision logic: decode, validate the caller contract,
// execute, encode.
type Server struct {
	pipeline core.Pipeline
	addr     string
}

// New creates a server around a pipeline.
func New(pipeline core.Pipeline, config pkg.ServerConfig) *Server {
	return &Server{
		pipeline: pipeline,
		addr:     config.Addr,
	}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/healthz", s.handleHealth)
	return corsMiddleware(mux)
}

// ListenAndServe blocks serving HTTP until the listener fails.
func (s *Server) ListenAndServe() error {
	logger.Info().Str("addr", s.addr).Msg("hyperassist listening")
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return httpServer.ListenAndServe()
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var req pkg.ChatRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}

	// customer_id is an opaque key and must be non-empty; the core does not
	// re-validate caller-supplied shapes.
	if req.CustomerID == "" {
		http.Error(w, "customer_id is required", http.StatusBadRequest)
		return
	}

	result, err := s.pipeline.Execute(r.Context(), core.PipelineInput{
		Message:    req.Message,
		CustomerID: req.CustomerID,
		Location:   req.Location,
	})
	if err != nil {
		logger.Error().Err(err).Str("customer_id", req.CustomerID).Msg("pipeline execution failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Str("customer_id", req.CustomerID).
		Str("intent", result.Intent).
		Int("documents", len(result.Documents)).
		Int64("processing_ms", result.ProcessingTime).
		Msg("chat handled")

	writeJSON(w, http.StatusOK, pkg.ChatResponse{Reply: result.Reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// corsMiddleware allows all origins, methods and headers.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}