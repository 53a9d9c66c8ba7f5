package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/rs/cors"

	"github.com/arborhq/arbor/pkg/coaching"
	"github.com/arborhq/arbor/pkg/store"
)

// Server exposes the coaching pipeline and its stores over a JSON API.
type Server struct {
	logger *log.Logger
	store  *store.Store
	engine *coaching.Engine
}

func NewServer(logger *log.Logger, st *store.Store, engine *coaching.Engine) *Server {
	return &Server{
		logger: logger,
		store:  st,
		engine: engine,
	}
}

// Handler builds the routed handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(s.requestLogger)

	router.Route("/api", func(r chi.Router) {
		r.Post("/subjects", s.createSubject)
		r.Put("/preferences", s.updatePreferences)
		r.Post("/conversations", s.createConversation)
		r.Get("/conversations/{id}/messages", s.listMessages)
		r.Post("/conversations/{id}/messages", s.sendMessage)
		r.Get("/conversations/{id}/suggestions", s.listSavedSuggestions)
		r.Post("/conversations/{id}/suggestions", s.saveSuggestion)
	})

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
