package helpers

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

// Tag categories produced from object and monument fields.
const (
	TagMaterial = "material"
	TagDynasty  = "dynasty"
	TagKeyword  = "keyword"
)

// TagHelper resolves language-scoped tags. The key uses the lower-cased
// name; the description keeps the original spelling.
type TagHelper struct {
	deps Deps
	fold cases.Caser
}

func NewTagHelper(d Deps) *TagHelper {
	return &TagHelper{deps: d, fold: cases.Lower(language.Und)}
}

// FindOrCreate resolves one tag.
func (h *TagHelper) FindOrCreate(ctx context.Context, category, languageID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	f := Finder{
		Deps:  h.deps,
		Kind:  entity.KindTag,
		Table: identity.Tags,
		Create: func(ctx context.Context, key string, v []string) (string, error) {
			return h.deps.Strategy.CreateTag(ctx, entity.Tag{
				InternalName:          v[2],
				Category:              v[0],
				LanguageID:            v[1],
				Description:           &name,
				BackwardCompatibility: key,
			})
		},
	}
	return f.FindOrCreate(ctx, category, languageID, h.fold.String(name))
}

// FindOrCreateList splits raw with transform.SplitTags and resolves each
// tag. Ids are de-duplicated; the first error stops the list.
func (h *TagHelper) FindOrCreateList(ctx context.Context, category, languageID, raw string) ([]string, error) {
	var ids []string
	seen := map[string]bool{}
	for _, name := range transform.SplitTags(raw) {
		id, err := h.FindOrCreate(ctx, category, languageID, name)
		if err != nil {
			return ids, err
		}
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
