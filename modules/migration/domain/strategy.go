package domain

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
)

var (
	// ErrDuplicate is returned by Create* when the canonical key is already
	// stored. Callers re-run the lookup once before treating it as a failure.
	ErrDuplicate = errors.New("duplicate canonical key")
	ErrNotFound  = errors.New("not found")
)

// Strategy is the persistence backend every importer writes through.
// Create* return the id of the new entity.
type Strategy interface {
	FindByCanonicalKey(ctx context.Context, kind entity.Kind, key string) (string, bool, error)

	CreateLanguage(ctx context.Context, rec entity.Language) (string, error)
	CreateLanguageTranslation(ctx context.Context, rec entity.LanguageTranslation) (string, error)
	CreateCountry(ctx context.Context, rec entity.Country) (string, error)
	CreateCountryTranslation(ctx context.Context, rec entity.CountryTranslation) (string, error)
	CreateContext(ctx context.Context, rec entity.Context) (string, error)
	CreateCollection(ctx context.Context, rec entity.Collection) (string, error)
	CreateCollectionTranslation(ctx context.Context, rec entity.CollectionTranslation) (string, error)
	CreateProject(ctx context.Context, rec entity.Project) (string, error)
	CreatePartner(ctx context.Context, rec entity.Partner) (string, error)
	CreatePartnerTranslation(ctx context.Context, rec entity.PartnerTranslation) (string, error)
	CreateItem(ctx context.Context, rec entity.Item) (string, error)
	CreateItemTranslation(ctx context.Context, rec entity.ItemTranslation) (string, error)
	CreateTag(ctx context.Context, rec entity.Tag) (string, error)
	CreateAuthor(ctx context.Context, rec entity.Author) (string, error)
	CreateArtist(ctx context.Context, rec entity.Artist) (string, error)
	CreateItemImage(ctx context.Context, rec entity.Image) (string, error)
	CreatePartnerImage(ctx context.Context, rec entity.Image) (string, error)
	CreateGlossary(ctx context.Context, rec entity.Glossary) (string, error)
	CreateGlossaryTranslation(ctx context.Context, rec entity.GlossaryTranslation) (string, error)
	CreateGlossarySpelling(ctx context.Context, rec entity.GlossarySpelling) (string, error)

	// Attach links children to parent; already-attached pairs are ignored.
	Attach(ctx context.Context, parentID string, childIDs []string, rel entity.Relation) error
	UpdatePartnerMonumentItem(ctx context.Context, partnerID, itemID string) error

	CountCollectionItems(ctx context.Context, collectionID string) (int, error)
	Delete(ctx context.Context, kind entity.Kind, id string) error
}

// Snapshotter is implemented by strategies that can list every stored
// canonical key of a kind, used to warm the tracker at run start.
type Snapshotter interface {
	Snapshot(ctx context.Context, kind entity.Kind) ([]entity.Tracked, error)
}

// Pinger is implemented by strategies that can check their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}
