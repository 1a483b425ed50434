// Package chi serves chat rendering over HTTP using the chi router.
package chi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes caps the size of a submitted source text.
const maxBodyBytes = 1 << 20

// Server is the HTTP render service. Every render endpoint takes the raw
// reply text as the request body and answers with the rendered document.
type Server struct {
	router chi.Router
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(log *slog.Logger) *Server {
	s := &Server{log: log}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/v1/render", s.handleRender)
	r.Post("/v1/render/html", s.handleRenderHTML)
	r.Post("/v1/render/text", s.handleRenderText)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
