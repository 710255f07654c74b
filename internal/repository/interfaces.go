package repository

import (
	"context"

	"github.com/kanhadewangan/trpc-blog/internal/models"
)

// Each method is one atomic statement against the store; uniqueness races
// are arbitrated by column constraints and surface as models.ErrConflict.
type Users interface {
	Create(ctx context.Context, name, email, passwordHash string, age int) (int64, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type Posts interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	GetByID(ctx context.Context, id int64) (models.Post, error)
	ListRecent(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Post, error)
	Update(ctx context.Context, id int64, title, content *string, isPublished *bool) (models.Post, error)
	Delete(ctx context.Context, id int64) (models.Post, error)
	Tag(ctx context.Context, postID, categoryID int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type Categories interface {
	Create(ctx context.Context, c models.Category) (models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Repositories bundles one implementation of every store interface.
type Repositories struct {
	Users      Users
	Posts      Posts
	Categories Categories
	AuditLogs  AuditLogs
}
