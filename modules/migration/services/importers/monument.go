package importers

import (
	"context"
	"strings"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/samples"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/helpers"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

// MonumentImporter creates one item per monument. A language row's own key
// (which includes lang) is stored on its translation and resolves to the
// same item, so references that name a monument in one language, such as a
// museum's mon_* columns, find it.
type MonumentImporter struct{ importer.Base }

func NewMonumentImporter(d *importer.Deps) importer.Importer {
	return &MonumentImporter{importer.NewBase("monument", d)}
}

func monumentGroup(m legacy.Monument) string {
	return strings.Join([]string{m.ProjectID, m.Country, m.InstitutionID, m.Number}, "\x00")
}

func (i *MonumentImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	epm, _, err := i.Resolve(ctx, entity.KindContext, identity.EPMContextKey)
	if err != nil {
		return i.Finish(res, err)
	}
	err = legacy.GroupBy(ctx, d.Source, legacy.QueryMonuments, monumentGroup, func(_ string, rows []legacy.Monument) error {
		i.importMonument(ctx, res, rows, epm)
		return nil
	})
	return i.Finish(res, err)
}

func (i *MonumentImporter) importMonument(ctx context.Context, res *importer.Result, rows []legacy.Monument, epmContext string) {
	d := i.Deps()
	first := rows[0]
	key, err := identity.Monuments.Key(first.ProjectID, first.Country, first.InstitutionID, first.Number)
	if err != nil {
		i.Fail(res, "", err)
		return
	}

	main, isDefault := pick(&i.Base, rows, func(m legacy.Monument) string { return m.Lang })
	name := transform.Inline(str(main.Name))
	if name == "" {
		i.Fail(res, key, errMissingName)
		i.Collect("monument", main, samples.ReasonEdge, "missing_name", main.Lang)
		return
	}
	if !isDefault {
		i.WarnSample(res, "monument", main, "no_default_language", "%s: no %s row, named from %s", key, d.Options.DefaultLanguage, main.Lang)
	}

	project, err := resolveProject(ctx, &i.Base, identity.Projects.MustKey(first.ProjectID))
	if err != nil {
		i.Fail(res, key, err)
		return
	}
	partner, err := mustResolve(ctx, &i.Base, entity.KindPartner, identity.Institutions.MustKey(first.InstitutionID, first.Country))
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
		Type:                  entity.ItemMonument,
		InternalName:          name,
		BackwardCompatibility: key,
		CollectionID:          &project.collection,
		PartnerID:             &partner,
		CountryID:             &country,
		ProjectID:             &project.project,
		OwnerReference:        ptr(str(first.InventoryID)),
		MwnfReference:         ptr(str(first.WorkingNumber)),
		MapZoom:               transform.ParseZoom(str(main.Zoom)),
	}
	if lat, lng, err := transform.ParseCoordinates(str(main.GeoCoordinates)); err != nil {
		i.WarnSample(res, "monument", main, "invalid_coordinates", "%s: %v", key, err)
	} else {
		rec.Latitude, rec.Longitude = lat, lng
	}

	itemID, outcome := i.Process(ctx, res, importer.Row{
		Kind: entity.KindItem, Key: key, Describe: name, Record: rec, Sample: main, Language: main.Lang,
		Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateItem(ctx, rec) },
	})
	if outcome == importer.Failed {
		return
	}

	for _, row := range rows {
		langKey, err := identity.MonumentLangs.Key(row.ProjectID, row.Country, row.InstitutionID, row.Number, row.Lang)
		if err != nil {
			i.Warn(res, "%s: %v", key, err)
			continue
		}
		i.translate(ctx, res, langKey, itemID, project.context, epmContext, row)
	}
	attachTags(ctx, &i.Base, res, key, itemID, main.Lang, map[string]string{
		helpers.TagDynasty: str(main.Dynasty),
		helpers.TagKeyword: str(main.Keywords),
	})
}

func (i *MonumentImporter) translate(ctx context.Context, res *importer.Result, langKey, itemID, projectContext, epmContext string, row legacy.Monument) {
	d := i.Deps()
	lang, err := d.Codes.Language(row.Lang)
	if err != nil {
		i.WarnSample(res, "monument", row, "unknown_language", "%s: %v", langKey, err)
		return
	}
	name := transform.Inline(str(row.Name))
	if name == "" {
		i.Warn(res, "%s: translation without name, skipped", langKey)
		return
	}
	people, err := resolveAuthors(ctx, &i.Base, str(row.PreparedBy), str(row.CopyEditedBy), str(row.TranslationBy), str(row.TranslationCopyEditedBy))
	if err != nil {
		i.Warn(res, "%s: %v", langKey, err)
	}
	altName := shortText(&i.Base, res, langKey, row.Lang, "alternate_name", transform.Inline(str(row.Name2)))
	typ := shortText(&i.Base, res, langKey, row.Lang, "type", transform.Inline(str(row.TypeOf)))

	for _, v := range transform.Descriptions(row.ProjectID, str(row.Description), str(row.Description2), epmContext != "") {
		contextID, trKey := projectContext, langKey
		if v.EPM {
			contextID, trKey = epmContext, translationKey(langKey, "epm")
		}
		tr := entity.ItemTranslation{
			ItemID:                  itemID,
			LanguageID:              lang,
			ContextID:               contextID,
			Name:                    name,
			Description:             v.Text,
			AlternateName:           altName,
			Type:                    typ,
			Owner:                   ptr(transform.Inline(str(row.CurrentOwner))),
			InitialOwner:            ptr(transform.Inline(str(row.OriginalOwner))),
			Dates:                   ptr(transform.Inline(str(row.DateDescription))),
			Location:                ptr(transform.Join(", ", str(row.Location), str(row.Province))),
			MethodForDatation:       ptr(transform.HTMLToText(str(row.DatationMethod))),
			Bibliography:            ptr(transform.HTMLToText(str(row.Bibliography))),
			AuthorID:                people.author,
			TextCopyEditorID:        people.copyEditor,
			TranslatorID:            people.translator,
			TranslationCopyEditorID: people.translationCopyEditor,
			BackwardCompatibility:   trKey,
		}
		_, _, err := i.Ensure(ctx, entity.KindItemTranslation, trKey, tr, func(ctx context.Context) (string, error) {
			return d.Strategy.CreateItemTranslation(ctx, tr)
		})
		if err != nil {
			i.Warn(res, "%s: %v", trKey, err)
			continue
		}
		if !v.EPM {
			// the stored translation carries langKey, so the store resolves
			// it to the item as well
			d.Tracker.Register(entity.KindItem, langKey, itemID)
		}
	}
}

// MonumentDetailImporter creates detail items under their monument.
type MonumentDetailImporter struct{ importer.Base }

func NewMonumentDetailImporter(d *importer.Deps) importer.Importer {
	return &MonumentDetailImporter{importer.NewBase("monument-detail", d)}
}

func detailGroup(m legacy.MonumentDetail) string {
	return strings.Join([]string{m.ProjectID, m.CountryID, m.InstitutionID, m.MonumentID, m.DetailID}, "\x00")
}

func (i *MonumentDetailImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	err := legacy.GroupBy(ctx, i.Deps().Source, legacy.QueryMonumentDetails, detailGroup, func(_ string, rows []legacy.MonumentDetail) error {
		i.importDetail(ctx, res, rows)
		return nil
	})
	return i.Finish(res, err)
}

func (i *MonumentDetailImporter) importDetail(ctx context.Context, res *importer.Result, rows []legacy.MonumentDetail) {
	d := i.Deps()
	first := rows[0]
	key, err := identity.MonumentDetails.Key(first.ProjectID, first.CountryID, first.InstitutionID, first.MonumentID, first.DetailID)
	if err != nil {
		i.Fail(res, "", err)
		return
	}
	main, _ := pick(&i.Base, rows, func(m legacy.MonumentDetail) string { return m.LangID })
	name := firstNonEmpty(transform.Inline(str(main.Name)), "detail "+first.DetailID)

	parent, err := mustResolve(ctx, &i.Base, entity.KindItem, identity.Monuments.MustKey(first.ProjectID, first.CountryID, first.InstitutionID, first.MonumentID))
	if err != nil {
		i.Fail(res, key, err)
		return
	}
	project, err := resolveProject(ctx, &i.Base, identity.Projects.MustKey(first.ProjectID))
	if err != nil {
		i.Fail(res, key, err)
		return
	}
	country, err := d.Codes.Country(first.CountryID)
	if err != nil {
		i.Fail(res, key, err)
		return
	}

	rec := entity.Item{
		Type:                  entity.ItemDetail,
		InternalName:          name,
		BackwardCompatibility: key,
		CollectionID:          &project.collection,
		CountryID:             &country,
		ProjectID:             &project.project,
		ParentID:              &parent,
	}
	itemID, outcome := i.Process(ctx, res, importer.Row{
		Kind: entity.KindItem, Key: key, Describe: name, Record: rec, Sample: main, Language: main.LangID,
		Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateItem(ctx, rec) },
	})
	if outcome == importer.Failed {
		return
	}

	for _, row := range rows {
		lang, err := d.Codes.Language(row.LangID)
		if err != nil {
			i.Warn(res, "%s: %v", key, err)
			continue
		}
		desc := transform.HTMLToText(str(row.Description))
		if desc == "" {
			continue
		}
		tr := entity.ItemTranslation{
			ItemID:                itemID,
			LanguageID:            lang,
			ContextID:             project.context,
			Name:                  firstNonEmpty(transform.Inline(str(row.Name)), name),
			Description:           desc,
			Dates:                 ptr(transform.Inline(str(row.Date))),
			Location:              ptr(transform.Inline(str(row.Location))),
			BackwardCompatibility: translationKey(key, row.LangID),
		}
		if _, _, err := i.Ensure(ctx, entity.KindItemTranslation, tr.BackwardCompatibility, tr, func(ctx context.Context) (string, error) {
			return d.Strategy.CreateItemTranslation(ctx, tr)
		}); err != nil {
			i.Warn(res, "%s: %v", tr.BackwardCompatibility, err)
		}
	}
	attachArtists(ctx, &i.Base, res, key, itemID, str(main.Artist), helpers.ArtistDetails{})
}
