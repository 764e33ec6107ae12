package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"reelpress/internal/logging"
)

// NewRouter assembles the HTTP boundary: webhook intake, task status and
// listing, result download, and a liveness probe.
func NewRouter(handlers *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Post("/webhook", handlers.Webhook)
	r.Get("/status/{taskID}", handlers.Status)
	r.Get("/download/{taskID}", handlers.Download)
	r.Get("/tasks", handlers.Tasks)
	r.Get("/healthz", handlers.Health)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logging.NewComponentLogger(logger, "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", ww.Status()),
				logging.Duration("elapsed", time.Since(start)))
		})
	}
}
