package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kanhadewangan/trpc-blog/internal/api"
	"github.com/kanhadewangan/trpc-blog/internal/config"
	"github.com/kanhadewangan/trpc-blog/internal/db"
	"github.com/kanhadewangan/trpc-blog/internal/logger"
	"github.com/kanhadewangan/trpc-blog/internal/metrics"
	"github.com/kanhadewangan/trpc-blog/internal/repository/postgres"
	"github.com/kanhadewangan/trpc-blog/internal/services"
	"github.com/kanhadewangan/trpc-blog/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	userSvc := services.NewUserService(repos.Users, repos.AuditLogs, wp)
	postSvc := services.NewPostService(repos.Posts, repos.Users, repos.Categories, repos.AuditLogs, wp)
	categorySvc := services.NewCategoryService(repos.Categories, repos.AuditLogs, wp)

	metrics.Init()
	reg := api.NewRegistry(userSvc, postSvc, categorySvc)
	r := api.NewRouter(cfg, reg)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
