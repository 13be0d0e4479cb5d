// Package legacy reads the legacy MySQL schemas. It never writes.
package legacy

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const (
	connectTimeout   = 10 * time.Second
	defaultChunkSize = 500
)

var errStop = errors.New("stop iteration")

// Open connects to the legacy server. Queries are schema qualified, so the
// default database only matters for unqualified statements.
func Open(ctx context.Context, cfg *mysql.Config) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("connect legacy db %s@%s: %w", cfg.User, cfg.Addr, err)
	}
	return db, nil
}

// Source streams legacy tables in bounded chunks. A positive row limit caps
// the records delivered per query, which is how smoke runs stay small.
type Source struct {
	db        *sqlx.DB
	chunkSize int
	rowLimit  int
}

func NewSource(db *sqlx.DB, chunkSize, rowLimit int) *Source {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Source{db: db.Unsafe(), chunkSize: chunkSize, rowLimit: rowLimit}
}

func (s *Source) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Source) RowLimit() int {
	return s.rowLimit
}

// Each runs query chunk by chunk and calls fn for every row in order. The
// query must carry a deterministic ORDER BY and no LIMIT of its own.
func Each[T any](ctx context.Context, s *Source, query string, fn func(T) error) error {
	return each(ctx, s, query, s.rowLimit, fn)
}

func each[T any](ctx context.Context, s *Source, query string, limit int, fn func(T) error) error {
	seen := 0
	for offset := 0; ; offset += s.chunkSize {
		size := s.chunkSize
		if limit > 0 && limit-seen < size {
			size = limit - seen
		}
		if size <= 0 {
			return nil
		}

		chunk, err := fetch[T](ctx, s, query, size, offset)
		if err != nil {
			return err
		}
		for _, row := range chunk {
			if err := fn(row); err != nil {
				return err
			}
			seen++
		}
		if len(chunk) < size {
			return nil
		}
	}
}

func fetch[T any](ctx context.Context, s *Source, query string, size, offset int) ([]T, error) {
	var out []T
	q := fmt.Sprintf("%s LIMIT %d OFFSET %d", query, size, offset)
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("legacy query: %w", err)
	}
	return out, nil
}

// All collects every row of query. Use for small lookup tables only.
func All[T any](ctx context.Context, s *Source, query string) ([]T, error) {
	var out []T
	err := each(ctx, s, query, 0, func(row T) error {
		out = append(out, row)
		return nil
	})
	return out, err
}

// GroupBy streams rows and hands consecutive rows sharing a group key to fn
// as one group. query must be ordered by the grouping columns. The row
// limit applies to groups, not rows.
func GroupBy[T any](ctx context.Context, s *Source, query string, key func(T) string, fn func(key string, rows []T) error) error {
	var (
		cur    string
		group  []T
		groups int
	)
	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		if s.rowLimit > 0 && groups >= s.rowLimit {
			return errStop
		}
		groups++
		g := group
		group = nil
		return fn(cur, g)
	}

	err := each(ctx, s, query, 0, func(row T) error {
		k := key(row)
		if len(group) > 0 && k != cur {
			if err := flush(); err != nil {
				return err
			}
		}
		cur = k
		group = append(group, row)
		return nil
	})
	if err == nil {
		err = flush()
	}
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}
