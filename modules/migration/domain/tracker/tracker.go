// Package tracker holds the run-scoped map from canonical key to target id.
package tracker

import (
	"sort"
	"strings"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
)

// PlaceholderPrefix marks ids registered by dry-run and sample runs.
const PlaceholderPrefix = "dry-run:"

type slot struct {
	kind entity.Kind
	key  string
}

// Tracker is an in-memory cache of entities known to exist in the target
// store. It is created by the orchestrator for one run and handed to every
// importer. Lookups never perform I/O. Not safe for concurrent writers.
type Tracker struct {
	ids   map[slot]string
	order []slot
}

func New() *Tracker {
	return &Tracker{ids: map[slot]string{}}
}

func (t *Tracker) Lookup(kind entity.Kind, key string) (string, bool) {
	id, ok := t.ids[slot{kind, key}]
	return id, ok
}

// Register records id for (kind, key). The first registration wins; later
// calls for the same slot are ignored so a tracked entity never changes.
func (t *Tracker) Register(kind entity.Kind, key, id string) {
	s := slot{kind, key}
	if _, ok := t.ids[s]; ok {
		return
	}
	t.ids[s] = id
	t.order = append(t.order, s)
}

// AllForKind returns the tracked entities of kind in registration order.
func (t *Tracker) AllForKind(kind entity.Kind) []entity.Tracked {
	var out []entity.Tracked
	for _, s := range t.order {
		if s.kind == kind {
			out = append(out, entity.Tracked{Kind: kind, Key: s.key, ID: t.ids[s]})
		}
	}
	return out
}

// Count returns the number of tracked entities per kind.
func (t *Tracker) Count() map[entity.Kind]int {
	out := map[entity.Kind]int{}
	for s := range t.ids {
		out[s.kind]++
	}
	return out
}

func (t *Tracker) Len() int {
	return len(t.ids)
}

// Kinds returns the kinds present, sorted.
func (t *Tracker) Kinds() []entity.Kind {
	counts := t.Count()
	out := make([]entity.Kind, 0, len(counts))
	for k := range counts {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func Placeholder(key string) string {
	return PlaceholderPrefix + key
}

func IsPlaceholder(id string) bool {
	return strings.HasPrefix(id, PlaceholderPrefix)
}
