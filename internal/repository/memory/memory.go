// Package memory implements the repository interfaces on plain maps. It
// mirrors the relational constraints (unique email/slug/name, referential
// integrity, the fixed recent-posts ceiling) so services can be exercised
// without a running Postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kanhadewangan/trpc-blog/internal/models"
	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
)

const listRecentLimit = 5

type Store struct {
	mu         sync.Mutex
	userSeq    int64
	postSeq    int64
	catSeq     int64
	auditSeq   int64
	users      map[int64]models.User
	posts      map[int64]models.Post
	categories map[int64]models.Category
	tags       map[models.PostCategory]struct{}
	audits     []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		users:      map[int64]models.User{},
		posts:      map[int64]models.Post{},
		categories: map[int64]models.Category{},
		tags:       map[models.PostCategory]struct{}{},
	}
}

// Repositories returns the interface bundle backed by this store.
func (s *Store) Repositories() repo.Repositories {
	return repo.Repositories{
		Users:      &usersRepo{s},
		Posts:      &postsRepo{s},
		Categories: &categoriesRepo{s},
		AuditLogs:  &auditLogsRepo{s},
	}
}

// AuditEntries copies out the recorded audit rows, oldest first.
func (s *Store) AuditEntries() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditLog, len(s.audits))
	copy(out, s.audits)
	return out
}

// ---------------- users ----------------

type usersRepo struct{ s *Store }

func (r *usersRepo) Create(_ context.Context, name, email, passwordHash string, age int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return 0, fmt.Errorf("users_email_key: %w", models.ErrConflict)
		}
	}
	r.s.userSeq++
	u := models.User{ID: r.s.userSeq, Name: name, Email: email, PasswordHash: passwordHash, Age: age}
	r.s.users[u.ID] = u
	return u.ID, nil
}

func (r *usersRepo) GetByID(_ context.Context, id int64) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (r *usersRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

// ---------------- posts ----------------

type postsRepo struct{ s *Store }

func (r *postsRepo) Create(_ context.Context, p models.Post) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.posts {
		if existing.Slug == p.Slug {
			return models.Post{}, fmt.Errorf("posts_slug_key: %w", models.ErrConflict)
		}
	}
	if _, ok := r.s.users[p.AuthorID]; !ok {
		return models.Post{}, fmt.Errorf("posts_author_id_fkey: %w", models.ErrNotFound)
	}
	r.s.postSeq++
	p.ID = r.s.postSeq
	p.IsPublished = false
	r.s.posts[p.ID] = p
	return p, nil
}

func (r *postsRepo) GetByID(_ context.Context, id int64) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return models.Post{}, models.ErrNotFound
	}
	return p, nil
}

func (r *postsRepo) ListRecent(_ context.Context) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.allPostsLocked()
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > listRecentLimit {
		out = out[:listRecentLimit]
	}
	return out, nil
}

func (r *postsRepo) ListByAuthor(_ context.Context, authorID int64) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.allPostsLocked() {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *postsRepo) ListByCategory(_ context.Context, categoryID int64) ([]models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.allPostsLocked() {
		if _, ok := r.s.tags[models.PostCategory{PostID: p.ID, CategoryID: categoryID}]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *postsRepo) Update(_ context.Context, id int64, title, content *string, isPublished *bool) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return models.Post{}, models.ErrNotFound
	}
	if title != nil {
		p.Title = *title
	}
	if content != nil {
		p.Content = *content
	}
	if isPublished != nil {
		p.IsPublished = *isPublished
	}
	r.s.posts[id] = p
	return p, nil
}

func (r *postsRepo) Delete(_ context.Context, id int64) (models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return models.Post{}, models.ErrNotFound
	}
	delete(r.s.posts, id)
	for tag := range r.s.tags {
		if tag.PostID == id {
			delete(r.s.tags, tag)
		}
	}
	return p, nil
}

func (r *postsRepo) Tag(_ context.Context, postID, categoryID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[postID]; !ok {
		return fmt.Errorf("post_categories_post_id_fkey: %w", models.ErrNotFound)
	}
	if _, ok := r.s.categories[categoryID]; !ok {
		return fmt.Errorf("post_categories_category_id_fkey: %w", models.ErrNotFound)
	}
	key := models.PostCategory{PostID: postID, CategoryID: categoryID}
	if _, ok := r.s.tags[key]; ok {
		return fmt.Errorf("post_categories_pkey: %w", models.ErrConflict)
	}
	r.s.tags[key] = struct{}{}
	return nil
}

func (r *postsRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.posts[id]
	return ok, nil
}

func (r *postsRepo) allPostsLocked() []models.Post {
	out := make([]models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---------------- categories ----------------

type categoriesRepo struct{ s *Store }

func (r *categoriesRepo) Create(_ context.Context, c models.Category) (models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return models.Category{}, fmt.Errorf("categories_name_key: %w", models.ErrConflict)
		}
		if existing.Slug == c.Slug {
			return models.Category{}, fmt.Errorf("categories_slug_key: %w", models.ErrConflict)
		}
	}
	r.s.catSeq++
	c.ID = r.s.catSeq
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.categories[c.ID] = c
	return c, nil
}

func (r *categoriesRepo) List(_ context.Context) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *categoriesRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.categories[id]
	return ok, nil
}

// ---------------- audit logs ----------------

type auditLogsRepo struct{ s *Store }

func (r *auditLogsRepo) Create(_ context.Context, l models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.auditSeq++
	l.ID = r.s.auditSeq
	l.CreatedAt = time.Now()
	r.s.audits = append(r.s.audits, l)
	return nil
}
