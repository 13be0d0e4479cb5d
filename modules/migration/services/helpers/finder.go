package helpers

import (
	"context"
	"strings"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
)

// Finder is the find-or-create cycle shared by the concrete helpers. Values
// are the key fields of Table in order.
type Finder struct {
	Deps
	Kind  entity.Kind
	Table identity.Table
	// Create persists the entity for key; values are trimmed.
	Create func(ctx context.Context, key string, values []string) (string, error)
}

// FindOrCreate returns "" with a nil error only when every value is blank.
// Any other failure is returned, never swallowed.
func (f *Finder) FindOrCreate(ctx context.Context, values ...string) (string, error) {
	trimmed := make([]string, len(values))
	blank := true
	for i, v := range values {
		trimmed[i] = strings.TrimSpace(v)
		if trimmed[i] != "" {
			blank = false
		}
	}
	if blank {
		return "", nil
	}
	key, err := f.Table.Key(trimmed...)
	if err != nil {
		return "", err
	}
	id, _, err := Ensure(ctx, f.Deps, f.Kind, key, func(ctx context.Context) (string, error) {
		return f.Create(ctx, key, trimmed)
	})
	return id, err
}
