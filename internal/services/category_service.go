package services

import (
	"context"

	"github.com/kanhadewangan/trpc-blog/internal/models"
	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
	"github.com/kanhadewangan/trpc-blog/internal/worker"
)

type CategoryService struct {
	categories repo.Categories
	logs       repo.AuditLogs
	wp         *worker.Pool
}

func NewCategoryService(categories repo.Categories, logs repo.AuditLogs, wp *worker.Pool) *CategoryService {
	return &CategoryService{categories: categories, logs: logs, wp: wp}
}

// Create inserts a category with both timestamps set. Name and slug are
// unique; either collision surfaces as models.ErrConflict.
func (s *CategoryService) Create(ctx context.Context, name, slug string, description *string) (models.Category, error) {
	c, err := s.categories.Create(ctx, models.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
	})
	if err != nil {
		return models.Category{}, err
	}
	recordAudit(s.wp, s.logs, "category", c.ID, "created", map[string]any{"slug": c.Slug})
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}
