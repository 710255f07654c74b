package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kanhadewangan/trpc-blog/internal/models"
	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
)

// listRecentLimit is a deliberate fixed ceiling on listPosts, not a page
// parameter. Callers needing more get a paginated variant someday.
const listRecentLimit = 5

const postCols = `id, title, content, author_id, slug, is_published`

type postsRepo struct{ pool *pgxpool.Pool }

func NewPosts(pool *pgxpool.Pool) repo.Posts {
	return &postsRepo{pool: pool}
}

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts(title, content, author_id, slug, is_published)
		 VALUES($1,$2,$3,$4,FALSE)
		 RETURNING `+postCols,
		p.Title, p.Content, p.AuthorID, p.Slug,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Slug, &p.IsPublished)
	return p, translateErr(err)
}

func (r *postsRepo) GetByID(ctx context.Context, id int64) (models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		`SELECT `+postCols+` FROM posts WHERE id=$1`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Slug, &p.IsPublished)
	return p, translateErr(err)
}

func (r *postsRepo) ListRecent(ctx context.Context) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postCols+` FROM posts ORDER BY id DESC LIMIT $1`, listRecentLimit)
	if err != nil {
		return nil, translateErr(err)
	}
	return scanPosts(rows)
}

func (r *postsRepo) ListByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+postCols+` FROM posts WHERE author_id=$1 ORDER BY id`, authorID)
	if err != nil {
		return nil, translateErr(err)
	}
	return scanPosts(rows)
}

func (r *postsRepo) ListByCategory(ctx context.Context, categoryID int64) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.title, p.content, p.author_id, p.slug, p.is_published
		   FROM posts p
		   JOIN post_categories pc ON pc.post_id = p.id
		  WHERE pc.category_id=$1
		  ORDER BY p.id`, categoryID)
	if err != nil {
		return nil, translateErr(err)
	}
	return scanPosts(rows)
}

// Update touches only the supplied fields; nil pointers leave the column as
// it was. The slug is fixed at creation and never recomputed here.
func (r *postsRepo) Update(ctx context.Context, id int64, title, content *string, isPublished *bool) (models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		`UPDATE posts
		    SET title        = COALESCE($2, title),
		        content      = COALESCE($3, content),
		        is_published = COALESCE($4, is_published)
		  WHERE id=$1
		  RETURNING `+postCols,
		id, title, content, isPublished,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Slug, &p.IsPublished)
	return p, translateErr(err)
}

func (r *postsRepo) Delete(ctx context.Context, id int64) (models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		`DELETE FROM posts WHERE id=$1 RETURNING `+postCols, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Slug, &p.IsPublished)
	return p, translateErr(err)
}

func (r *postsRepo) Tag(ctx context.Context, postID, categoryID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO post_categories(post_id, category_id) VALUES($1,$2)`,
		postID, categoryID)
	return translateErr(err)
}

func (r *postsRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id=$1)`, id).Scan(&exists)
	return exists, translateErr(err)
}

func scanPosts(rows pgx.Rows) ([]models.Post, error) {
	defer rows.Close()
	out := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Slug, &p.IsPublished); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, p)
	}
	return out, translateErr(rows.Err())
}
