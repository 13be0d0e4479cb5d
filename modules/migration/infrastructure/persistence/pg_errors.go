package persistence

import (
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
)

func mapPgError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		return errors.Wrap(domain.ErrDuplicate, pgErr.ConstraintName)
	case "23503": // foreign_key_violation
		return fmt.Errorf("missing parent (%s): %w", pgErr.ConstraintName, err)
	case "23502": // not_null_violation
		return fmt.Errorf("column %s is required: %w", pgErr.ColumnName, err)
	case "22001": // string_data_right_truncation
		return fmt.Errorf("value too long for %s: %w", pgErr.ColumnName, err)
	default:
		return fmt.Errorf("database error (%s): %w", pgErr.Code, err)
	}
}
