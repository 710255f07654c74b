package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kanhadewangan/trpc-blog/internal/models"
	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repo.Users {
	return &usersRepo{pool: pool}
}

func (r *usersRepo) Create(ctx context.Context, name, email, passwordHash string, age int) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, age) VALUES($1,$2,$3,$4) RETURNING id`,
		name, email, passwordHash, age,
	).Scan(&id)
	return id, translateErr(err)
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, age FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age)
	return u, translateErr(err)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, age FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age)
	return u, translateErr(err)
}

func (r *usersRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, id).Scan(&exists)
	return exists, translateErr(err)
}
