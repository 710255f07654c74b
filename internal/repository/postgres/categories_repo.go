package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kanhadewangan/trpc-blog/internal/models"
	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
)

type categoriesRepo struct{ pool *pgxpool.Pool }

func NewCategories(pool *pgxpool.Pool) repo.Categories {
	return &categoriesRepo{pool: pool}
}

func (r *categoriesRepo) Create(ctx context.Context, c models.Category) (models.Category, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories(name, slug, description, created_at, updated_at)
		 VALUES($1,$2,$3,now(),now())
		 RETURNING id, name, slug, description, created_at, updated_at`,
		c.Name, c.Slug, c.Description,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	return c, translateErr(err)
}

func (r *categoriesRepo) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, description, created_at, updated_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, translateErr(err)
		}
		out = append(out, c)
	}
	return out, translateErr(rows.Err())
}

func (r *categoriesRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id=$1)`, id).Scan(&exists)
	return exists, translateErr(err)
}
