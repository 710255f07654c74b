package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kanhadewangan/trpc-blog/internal/models"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translateErr converts driver faults into domain sentinels so services and
// the RPC layer never see pgconn internals. Anything unrecognized passes
// through and ends up as an INTERNAL envelope.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, models.ErrConflict)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, models.ErrNotFound)
		}
	}
	return err
}
