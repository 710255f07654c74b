package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/kanhadewangan/trpc-blog/internal/models"
	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
	"github.com/kanhadewangan/trpc-blog/internal/worker"
)

// recordAudit enqueues an audit row for a successful mutation. Best effort:
// the write happens off the request path and a failure is only logged.
func recordAudit(wp *worker.Pool, logs repo.AuditLogs, entityType string, entityID int64, action string, details map[string]any) {
	if wp == nil || logs == nil {
		return
	}
	wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := logs.Create(ctx, models.AuditLog{
			EntityType: entityType,
			EntityID:   entityID,
			Action:     action,
			Details:    details,
		})
		if err != nil {
			slog.Warn("audit write", "entity", entityType, "id", entityID, "err", err)
		}
	})
}
