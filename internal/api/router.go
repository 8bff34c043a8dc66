package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/mathtutor/internal/auth"
)

// NewRouter assembles the HTTP routes. Drill, chat, answer, stats, and
// account routes require a bearer token; health, subjects, and the auth
// endpoints are public.
func NewRouter(h *Handlers, tokens *auth.Service, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/api/subjects", h.Subjects)
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.Middleware)
		pr.Post("/api/drill", h.NewDrill)
		pr.Post("/api/chat", h.Chat)
		pr.Post("/api/answer", h.Answer)
		pr.Get("/api/stats", h.Stats)
		pr.Post("/api/session/end", h.EndSession)
		pr.Put("/api/user/language", h.SetLanguage)
	})

	return r
}
