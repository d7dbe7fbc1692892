package server

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/y3s-labs/povo/core"
	"github.com/y3s-labs/povo/logging"
	"github.com/y3s-labs/povo/orchestrator"
)

// Options configure the HTTP server.
type Options struct {
	AllowedOrigin string
	RateRPS       float64
	RateBurst     int
	Logger        logging.Logger
}

// Server wires the orchestrator to an HTTP surface. Each chat request loads
// the session, runs one turn, and persists the returned session before
// replying; the engine's atomic-session guarantee makes the save safe.
type Server struct {
	router   *chi.Mux
	orch     *orchestrator.Orchestrator
	sessions core.SessionStore
	logger   logging.Logger
	limiters *limiterPool
}

// ChatRequest is the POST /api/chat payload. SessionID may be empty on the
// first message of a conversation; the server mints one and returns it.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
}

// ChatResponse is the POST /api/chat reply payload.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Intent    string `json:"intent"`
	Reply     string `json:"reply"`
}

// New constructs the server and its route table.
func New(orch *orchestrator.Orchestrator, sessions core.SessionStore, optFns ...func(o *Options)) *Server {
	opts := Options{
		AllowedOrigin: "*",
		RateRPS:       5,
		RateBurst:     10,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		router:   chi.NewRouter(),
		orch:     orch,
		sessions: sessions,
		logger:   opts.Logger,
		limiters: newLimiterPool(opts.RateRPS, opts.RateBurst),
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{opts.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))
	s.router.Use(s.rateLimit)

	s.router.Post("/api/chat", s.handleChat)
	s.router.Get("/healthz", handleHealthz)
	s.router.Handle("/metrics", promhttp.Handler())

	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}
		if !s.limiters.Allow(key) {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = core.NewID()
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	sess, err := s.sessions.Load(req.SessionID)
	if err != nil {
		s.logger.Error("session load failed", "session_id", req.SessionID, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
		return
	}

	result, err := s.orch.RunTurn(r.Context(), req.Text, sess, core.NewUser(req.UserID))
	if err != nil {
		// only caller contract violations reach here
		s.logger.Error("turn rejected", "session_id", req.SessionID, "error", err.Error())
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.sessions.Save(result.Session); err != nil {
		s.logger.Error("session save failed", "session_id", req.SessionID, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "session unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		SessionID: result.Session.ID,
		Intent:    result.Intent,
		Reply:     result.Reply.Text,
	})
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
