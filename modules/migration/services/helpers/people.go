package helpers

import (
	"context"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

// AuthorHelper resolves text authors, copy editors and translators by name.
type AuthorHelper struct {
	finder Finder
}

func NewAuthorHelper(d Deps) *AuthorHelper {
	return &AuthorHelper{finder: Finder{
		Deps:  d,
		Kind:  entity.KindAuthor,
		Table: identity.Authors,
		Create: func(ctx context.Context, key string, v []string) (string, error) {
			return d.Strategy.CreateAuthor(ctx, entity.Author{
				Name:                  v[0],
				InternalName:          v[0],
				BackwardCompatibility: key,
			})
		},
	}}
}

func (h *AuthorHelper) FindOrCreate(ctx context.Context, name string) (string, error) {
	return h.finder.FindOrCreate(ctx, transform.Inline(name))
}

// Ref is FindOrCreate returning nil for a blank name.
func (h *AuthorHelper) Ref(ctx context.Context, name string) (*string, error) {
	id, err := h.FindOrCreate(ctx, name)
	if err != nil || id == "" {
		return nil, err
	}
	return &id, nil
}

// ArtistDetails are the biography columns carried on the first row that
// names an artist.
type ArtistDetails struct {
	PlaceOfBirth     string
	PlaceOfDeath     string
	DateOfBirth      string
	DateOfDeath      string
	PeriodOfActivity string
}

type ArtistHelper struct {
	deps Deps
}

func NewArtistHelper(d Deps) *ArtistHelper {
	return &ArtistHelper{deps: d}
}

// FindOrCreate resolves one artist. details only apply when the artist is
// created by this call.
func (h *ArtistHelper) FindOrCreate(ctx context.Context, name string, details ArtistDetails) (string, error) {
	f := Finder{
		Deps:  h.deps,
		Kind:  entity.KindArtist,
		Table: identity.Artists,
		Create: func(ctx context.Context, key string, v []string) (string, error) {
			return h.deps.Strategy.CreateArtist(ctx, entity.Artist{
				Name:                  v[0],
				InternalName:          v[0],
				PlaceOfBirth:          optional(details.PlaceOfBirth),
				PlaceOfDeath:          optional(details.PlaceOfDeath),
				DateOfBirth:           optional(details.DateOfBirth),
				DateOfDeath:           optional(details.DateOfDeath),
				PeriodOfActivity:      optional(details.PeriodOfActivity),
				BackwardCompatibility: key,
			})
		},
	}
	return f.FindOrCreate(ctx, transform.Inline(name))
}

// FindOrCreateList resolves the ';'-separated artist field. Biography
// details are only attached when the field names a single artist.
func (h *ArtistHelper) FindOrCreateList(ctx context.Context, raw string, details ArtistDetails) ([]string, error) {
	names := transform.SplitList(raw, ";")
	if len(names) > 1 {
		details = ArtistDetails{}
	}
	var ids []string
	for _, n := range names {
		id, err := h.FindOrCreate(ctx, n, details)
		if err != nil {
			return ids, err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func optional(s string) *string {
	s = transform.Inline(s)
	if s == "" {
		return nil
	}
	return &s
}
