package importers

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/samples"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/helpers"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

var (
	errMissingName = errors.New("no name in any language")
	errMissingPath = errors.New("picture without path")
)

// ObjectImporter creates one item per museum object. The legacy table holds
// one row per language; each row becomes a translation.
type ObjectImporter struct{ importer.Base }

func NewObjectImporter(d *importer.Deps) importer.Importer {
	return &ObjectImporter{importer.NewBase("object", d)}
}

func objectGroup(o legacy.Object) string {
	return strings.Join([]string{o.ProjectID, o.Country, o.MuseumID, o.Number}, "\x00")
}

func (i *ObjectImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	epm, _, err := i.Resolve(ctx, entity.KindContext, identity.EPMContextKey)
	if err != nil {
		return i.Finish(res, err)
	}

	err = legacy.GroupBy(ctx, d.Source, legacy.QueryObjects, objectGroup, func(_ string, rows []legacy.Object) error {
		i.importObject(ctx, res, rows, epm)
		return nil
	})
	return i.Finish(res, err)
}

func (i *ObjectImporter) importObject(ctx context.Context, res *importer.Result, rows []legacy.Object, epmContext string) {
	d := i.Deps()
	first := rows[0]
	key, err := identity.Objects.Key(first.ProjectID, first.Country, first.MuseumID, first.Number)
	if err != nil {
		i.Fail(res, "", err)
		return
	}

	main, isDefault := pick(&i.Base, rows, func(o legacy.Object) string { return o.Lang })
	name := transform.Inline(str(main.Name))
	if name == "" {
		i.Fail(res, key, errMissingName)
		i.Collect("object", main, samples.ReasonEdge, "missing_name", main.Lang)
		return
	}
	if !isDefault {
		i.WarnSample(res, "object", main, "no_default_language", "%s: no %s row, named from %s", key, d.Options.DefaultLanguage, main.Lang)
	}

	project, err := resolveProject(ctx, &i.Base, identity.Projects.MustKey(first.ProjectID))
	if err != nil {
		i.Fail(res, key, err)
		return
	}
	partner, err := mustResolve(ctx, &i.Base, entity.KindPartner, identity.Museums.MustKey(first.MuseumID, first.Country))
	if err != nil {
		i.Fail(res, key, err)
		return
	}
	country, err := d.Codes.Country(first.Country)
	if err != nil {
		i.Fail(res, key, err)
		return
	}

	rec := entity.Item{
		Type:                  entity.ItemObject,
		InternalName:          name,
		BackwardCompatibility: key,
		CollectionID:          &project.collection,
		PartnerID:             &partner,
		CountryID:             &country,
		ProjectID:             &project.project,
		OwnerReference:        ptr(str(first.InventoryID)),
		MwnfReference:         ptr(str(first.WorkingNumber)),
	}
	itemID, outcome := i.Process(ctx, res, importer.Row{
		Kind: entity.KindItem, Key: key, Describe: name, Record: rec, Sample: main, Language: main.Lang,
		Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateItem(ctx, rec) },
	})
	if outcome == importer.Failed {
		return
	}

	for _, row := range rows {
		i.translate(ctx, res, key, itemID, project.context, epmContext, row)
	}
	attachTags(ctx, &i.Base, res, key, itemID, main.Lang, map[string]string{
		helpers.TagMaterial: str(main.Materials),
		helpers.TagDynasty:  str(main.Dynasty),
		helpers.TagKeyword:  str(main.Keywords),
	})
	attachArtists(ctx, &i.Base, res, key, itemID, str(main.Artist), helpers.ArtistDetails{
		PlaceOfBirth:     str(main.BirthPlace),
		PlaceOfDeath:     str(main.DeathPlace),
		DateOfBirth:      str(main.BirthDate),
		DateOfDeath:      str(main.DeathDate),
		PeriodOfActivity: str(main.PeriodActivity),
	})
}

func (i *ObjectImporter) translate(ctx context.Context, res *importer.Result, itemKey, itemID, projectContext, epmContext string, row legacy.Object) {
	d := i.Deps()
	lang, err := d.Codes.Language(row.Lang)
	if err != nil {
		i.WarnSample(res, "object", row, "unknown_language", "%s: %v", itemKey, err)
		return
	}
	name := transform.Inline(str(row.Name))
	if name == "" {
		i.Warn(res, "%s:%s: translation without name, skipped", itemKey, row.Lang)
		return
	}
	people, err := resolveAuthors(ctx, &i.Base, str(row.PreparedBy), str(row.CopyEditedBy), str(row.TranslationBy), str(row.TranslationCopyEditedBy))
	if err != nil {
		i.Warn(res, "%s:%s: %v", itemKey, row.Lang, err)
	}

	altName := shortText(&i.Base, res, itemKey, row.Lang, "alternate_name", transform.Inline(str(row.Name2)))
	typ := shortText(&i.Base, res, itemKey, row.Lang, "type", transform.Inline(str(row.TypeOf)))

	for _, v := range transform.Descriptions(row.ProjectID, str(row.Description), str(row.Description2), epmContext != "") {
		contextID, trKey := projectContext, translationKey(itemKey, row.Lang)
		if v.EPM {
			contextID, trKey = epmContext, translationKey(itemKey, row.Lang, "epm")
		}
		tr := entity.ItemTranslation{
			ItemID:                  itemID,
			LanguageID:              lang,
			ContextID:               contextID,
			Name:                    name,
			Description:             v.Text,
			AlternateName:           altName,
			Type:                    typ,
			Holder:                  ptr(transform.Inline(str(row.HoldingMuseum))),
			Owner:                   ptr(transform.Inline(str(row.CurrentOwner))),
			InitialOwner:            ptr(transform.Inline(str(row.OriginalOwner))),
			Dates:                   ptr(transform.Inline(str(row.DateDescription))),
			Location:                ptr(transform.Join(", ", str(row.Location), str(row.Province))),
			Dimensions:              ptr(transform.HTMLToText(str(row.Dimensions))),
			PlaceOfProduction:       ptr(transform.Inline(str(row.ProductionPlace))),
			MethodForDatation:       ptr(transform.HTMLToText(str(row.DatationMethod))),
			MethodForProvenance:     ptr(transform.HTMLToText(str(row.ProvenanceMethod))),
			Obtention:               ptr(transform.HTMLToText(str(row.ObtentionMethod))),
			Bibliography:            ptr(transform.HTMLToText(str(row.Bibliography))),
			AuthorID:                people.author,
			TextCopyEditorID:        people.copyEditor,
			TranslatorID:            people.translator,
			TranslationCopyEditorID: people.translationCopyEditor,
			Extra: transform.Extra(map[string]string{
				"workshop":     str(row.Workshop),
				"copyright":    str(row.Copyright),
				"binding_desc": str(row.BindingDesc),
			}),
			BackwardCompatibility: trKey,
		}
		_, _, err := i.Ensure(ctx, entity.KindItemTranslation, trKey, tr, func(ctx context.Context) (string, error) {
			return d.Strategy.CreateItemTranslation(ctx, tr)
		})
		if err != nil {
			i.Warn(res, "%s: %v", trKey, err)
		}
	}
}

type authorRefs struct {
	author, copyEditor, translator, translationCopyEditor *string
}

func resolveAuthors(ctx context.Context, b *importer.Base, author, copyEditor, translator, translationCopyEditor string) (authorRefs, error) {
	var r authorRefs
	var errs []error
	for _, f := range []struct {
		name string
		dst  **string
	}{
		{author, &r.author},
		{copyEditor, &r.copyEditor},
		{translator, &r.translator},
		{translationCopyEditor, &r.translationCopyEditor},
	} {
		ref, err := b.Authors().Ref(ctx, f.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*f.dst = ref
	}
	return r, multierr.Combine(errs...)
}

// shortText truncates a 255-column value with a warning.
func shortText(b *importer.Base, res *importer.Result, key, lang, field, v string) *string {
	cut, truncated := transform.Truncate(v, transform.MaxShortText)
	if truncated {
		b.Warn(res, "%s:%s: %s truncated from %d chars", key, lang, field, len([]rune(v)))
	}
	return ptr(cut)
}

func attachTags(ctx context.Context, b *importer.Base, res *importer.Result, key, itemID, legacyLang string, fields map[string]string) {
	lang, err := b.Deps().Codes.Language(legacyLang)
	if err != nil {
		b.Warn(res, "%s: tags: %v", key, err)
		return
	}
	var ids []string
	for _, category := range []string{helpers.TagMaterial, helpers.TagDynasty, helpers.TagKeyword} {
		got, err := b.Tags().FindOrCreateList(ctx, category, lang, fields[category])
		if err != nil {
			b.Warn(res, "%s: %s tags: %v", key, category, err)
		}
		ids = append(ids, got...)
	}
	if err := b.Attach(ctx, itemID, ids, entity.RelationItemTags); err != nil {
		b.Warn(res, "%s: attach tags: %v", key, err)
	}
}

func attachArtists(ctx context.Context, b *importer.Base, res *importer.Result, key, itemID, raw string, details helpers.ArtistDetails) {
	ids, err := b.Artists().FindOrCreateList(ctx, raw, details)
	if err != nil {
		b.Warn(res, "%s: artists: %v", key, err)
	}
	if err := b.Attach(ctx, itemID, ids, entity.RelationItemArtists); err != nil {
		b.Warn(res, "%s: attach artists: %v", key, err)
	}
}
