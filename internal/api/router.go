package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/kanhadewangan/trpc-blog/internal/config"
	"github.com/kanhadewangan/trpc-blog/internal/metrics"
	"github.com/kanhadewangan/trpc-blog/internal/middleware"
	"github.com/kanhadewangan/trpc-blog/internal/rpc"
)

func NewRouter(cfg config.Config, reg *rpc.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	srv := &rpcServer{reg: reg}
	r.Route("/rpc", func(r chi.Router) {
		r.Post("/", srv.handleBatch)
		r.Get("/{procedure}", srv.handleQuery)
		r.Post("/{procedure}", srv.handleMutation)
	})

	return r
}
