package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Repositories {
	return repo.Repositories{
		Users:      &usersRepo{pool},
		Posts:      &postsRepo{pool},
		Categories: &categoriesRepo{pool},
		AuditLogs:  &auditLogsRepo{pool},
	}
}
