package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kanhadewangan/trpc-blog/internal/models"
	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
	"github.com/kanhadewangan/trpc-blog/internal/worker"
)

type PostService struct {
	posts      repo.Posts
	users      repo.Users
	categories repo.Categories
	logs       repo.AuditLogs
	wp         *worker.Pool
}

func NewPostService(posts repo.Posts, users repo.Users, categories repo.Categories, logs repo.AuditLogs, wp *worker.Pool) *PostService {
	return &PostService{posts: posts, users: users, categories: categories, logs: logs, wp: wp}
}

// Create derives the slug from the title and inserts the post unpublished.
// The author must exist; the FK constraint backs this check up against a
// concurrent user delete.
func (s *PostService) Create(ctx context.Context, title, content string, authorID int64) (models.Post, error) {
	exists, err := s.users.Exists(ctx, authorID)
	if err != nil {
		return models.Post{}, err
	}
	if !exists {
		return models.Post{}, fmt.Errorf("author %d: %w", authorID, models.ErrNotFound)
	}
	p, err := s.posts.Create(ctx, models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		Slug:     models.Slugify(title),
	})
	if err != nil {
		return models.Post{}, err
	}
	recordAudit(s.wp, s.logs, "post", p.ID, "created", map[string]any{"slug": p.Slug})
	return p, nil
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListRecent(ctx)
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

func (s *PostService) ListByCategory(ctx context.Context, categoryID int64) ([]models.Post, error) {
	return s.posts.ListByCategory(ctx, categoryID)
}

// Get returns zero or one posts; an absent id is an empty result.
func (s *PostService) Get(ctx context.Context, id int64) ([]models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return []models.Post{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []models.Post{p}, nil
}

// Update applies only the supplied fields; nil means leave unchanged.
func (s *PostService) Update(ctx context.Context, id int64, title, content *string, isPublished *bool) (models.Post, error) {
	p, err := s.posts.Update(ctx, id, title, content, isPublished)
	if err != nil {
		return models.Post{}, err
	}
	recordAudit(s.wp, s.logs, "post", p.ID, "updated", nil)
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) (models.Post, error) {
	p, err := s.posts.Delete(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	recordAudit(s.wp, s.logs, "post", p.ID, "deleted", map[string]any{"slug": p.Slug})
	return p, nil
}

// Tag writes the post↔category association. Both referents must exist; a
// repeated pair surfaces as models.ErrConflict from the composite key.
func (s *PostService) Tag(ctx context.Context, postID, categoryID int64) (models.PostCategory, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return models.PostCategory{}, err
	}
	if !exists {
		return models.PostCategory{}, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}
	exists, err = s.categories.Exists(ctx, categoryID)
	if err != nil {
		return models.PostCategory{}, err
	}
	if !exists {
		return models.PostCategory{}, fmt.Errorf("category %d: %w", categoryID, models.ErrNotFound)
	}
	if err := s.posts.Tag(ctx, postID, categoryID); err != nil {
		return models.PostCategory{}, err
	}
	recordAudit(s.wp, s.logs, "post", postID, "tagged", map[string]any{"categoryId": categoryID})
	return models.PostCategory{PostID: postID, CategoryID: categoryID}, nil
}
