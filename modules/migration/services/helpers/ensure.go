// Package helpers resolves shared sub-entities (tags, authors, artists) that
// many importers reference, creating each at most once per canonical key.
package helpers

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/tracker"
)

// ErrInconsistent means a create reported a duplicate but the follow-up
// lookup found nothing.
var ErrInconsistent = errors.New("inconsistent state")

// Deps is what every resolver needs from the running import.
type Deps struct {
	Tracker  *tracker.Tracker
	Strategy domain.Strategy
	// DryRun registers placeholders instead of calling Create*.
	DryRun bool
}

// Ensure returns the id stored under (kind, key), calling create when the
// entity is neither tracked nor persisted. created reports whether this call
// made it (or, in dry-run, would have). A failed create is followed by one
// more lookup so a concurrent or earlier writer's row is picked up.
func Ensure(ctx context.Context, d Deps, kind entity.Kind, key string, create func(context.Context) (string, error)) (string, bool, error) {
	if id, ok := d.Tracker.Lookup(kind, key); ok {
		return id, false, nil
	}

	id, found, err := d.Strategy.FindByCanonicalKey(ctx, kind, key)
	if err != nil {
		return "", false, errors.Wrapf(err, "find %s %s", kind, key)
	}
	if found {
		d.Tracker.Register(kind, key, id)
		return id, false, nil
	}

	if d.DryRun {
		id = tracker.Placeholder(key)
		d.Tracker.Register(kind, key, id)
		return id, true, nil
	}

	id, createErr := create(ctx)
	if createErr == nil {
		d.Tracker.Register(kind, key, id)
		return id, true, nil
	}

	id, found, err = d.Strategy.FindByCanonicalKey(ctx, kind, key)
	if err != nil {
		return "", false, errors.Wrapf(err, "re-find %s %s", kind, key)
	}
	if found {
		d.Tracker.Register(kind, key, id)
		return id, false, nil
	}
	if errors.Is(createErr, domain.ErrDuplicate) {
		return "", false, fmt.Errorf("%s %s: duplicate reported but not found: %w", kind, key, ErrInconsistent)
	}
	return "", false, errors.Wrapf(createErr, "create %s %s", kind, key)
}
