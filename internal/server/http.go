package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/docquiz/docquiz/internal/config"
	"github.com/docquiz/docquiz/internal/docparse"
	"github.com/docquiz/docquiz/internal/document"
	"github.com/docquiz/docquiz/internal/quiz"
	"github.com/docquiz/docquiz/internal/user"
)

// Handlers collects the per-domain HTTP handler sets the server mounts.
type Handlers struct {
	Users     *user.HTTPHandlers
	Documents *document.HTTPHandlers
	Quiz      *quiz.HTTPHandlers
	Parse     *docparse.HTTPHandler
}

// NewHTTPServer wires all routes (health, metrics, API) for the service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ready":true}`))
	})

	// User endpoints
	mux.HandleFunc("POST /users", h.Users.Create)
	mux.HandleFunc("GET /users/{id}", h.Users.Get)
	mux.HandleFunc("GET /users/{id}/scores", h.Users.GetScores)
	mux.HandleFunc("PUT /users/{id}/scores", h.Users.ReplaceScores)

	// Document endpoints
	mux.HandleFunc("POST /documents", h.Documents.Create)
	mux.HandleFunc("GET /documents", h.Documents.List)
	mux.HandleFunc("GET /documents/{id}", h.Documents.Get)
	mux.HandleFunc("PUT /documents/{id}/scores", h.Documents.UpdateScores)
	mux.HandleFunc("PUT /documents/{id}/questions", h.Documents.UpdateQuestions)
	mux.HandleFunc("DELETE /documents/{id}", h.Documents.Delete)

	// Quiz pipeline endpoints
	mux.HandleFunc("POST /quiz/topics", h.Quiz.Topics)
	mux.HandleFunc("POST /quiz/generate", h.Quiz.Generate)
	mux.HandleFunc("POST /quiz/submit", h.Quiz.Submit)

	// File parsing
	mux.HandleFunc("POST /parse_file", h.Parse.ParseFile)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: corsMiddleware(cfg.CORS, mux),
	}
}

// corsMiddleware applies configured CORS headers and answers preflights.
func corsMiddleware(cfg config.CORS, next http.Handler) http.Handler {
	allowedOrigins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	allowAll := false
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowedOrigins[origin] = struct{}{}
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			_, ok := allowedOrigins[origin]
			if allowAll || ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			w.Header().Set("Access-Control-Max-Age", maxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redisClient.Ping(ctx).Err()
}
