// Package importers holds one importer per legacy entity family, the
// deferred linker and the cleanup step, and the ordered registry that the
// orchestrator runs.
package importers

import (
	"context"
	"fmt"
	"strings"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

// mustResolve resolves a dependency produced by an earlier importer.
func mustResolve(ctx context.Context, b *importer.Base, kind entity.Kind, key string) (string, error) {
	id, ok, err := b.Resolve(ctx, kind, key)
	if err != nil {
		return "", fmt.Errorf("lookup %s %s: %w", kind, key, err)
	}
	if !ok {
		return "", fmt.Errorf("missing %s %s", kind, key)
	}
	return id, nil
}

// optionalRef resolves a dependency and returns nil when it is absent.
func optionalRef(ctx context.Context, b *importer.Base, kind entity.Kind, key string) (*string, error) {
	id, ok, err := b.Resolve(ctx, kind, key)
	if err != nil || !ok {
		return nil, err
	}
	return &id, nil
}

// projectRefs are the three entities one legacy project becomes.
type projectRefs struct {
	context    string
	collection string
	project    string
}

func resolveProject(ctx context.Context, b *importer.Base, key string) (projectRefs, error) {
	var r projectRefs
	var err error
	if r.context, err = mustResolve(ctx, b, entity.KindContext, key); err != nil {
		return r, err
	}
	if r.collection, err = mustResolve(ctx, b, entity.KindCollection, key); err != nil {
		return r, err
	}
	r.project, err = mustResolve(ctx, b, entity.KindProject, key)
	return r, err
}

// defaultContext resolves the context untargeted translations use.
func defaultContext(ctx context.Context, b *importer.Base) (string, error) {
	return mustResolve(ctx, b, entity.KindContext, identity.DefaultContextKey)
}

// translationKey derives the key of the translation of parent in lang.
func translationKey(parent, lang string, suffix ...string) string {
	parts := append([]string{parent, strings.TrimSpace(lang)}, suffix...)
	return strings.Join(parts, ":")
}

// pick returns the row in the default language, falling back to the first.
// ok is false when the fallback was used.
func pick[T any](b *importer.Base, rows []T, lang func(T) string) (T, bool) {
	want := b.Deps().Options.DefaultLanguage
	for _, r := range rows {
		if code, err := b.Deps().Codes.Language(lang(r)); err == nil && code == want {
			return r, true
		}
	}
	return rows[0], false
}

func str(p *string) string { return legacy.Str(p) }

func ptr(s string) *string { return legacy.Ptr(s) }
