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

func shGroup(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// shItem is the part of a Sharing History object, monument or detail that
// becomes the item itself. Texts are handled by each importer.
type shItem struct {
	entityType string
	key        string
	typ        entity.ItemType
	projectID  string
	country    string
	partnersID string
	parentKey  string
	ownerRef   string
	mwnfRef    string
	name       string
	lang       string
	isDefault  bool
	mapped     map[string]string
	sample     any
}

// importShItem stores the item in its SH project's collection. A missing
// partner is a warning; a missing project or parent fails the row.
func importShItem(ctx context.Context, b *importer.Base, res *importer.Result, it shItem) (string, projectRefs, bool) {
	d := b.Deps()
	if it.name == "" {
		b.Fail(res, it.key, errMissingName)
		b.Collect(it.entityType, it.sample, samples.ReasonEdge, "missing_name", it.lang)
		return "", projectRefs{}, false
	}
	if !it.isDefault {
		b.WarnSample(res, it.entityType, it.sample, "no_default_language", "%s: no %s row, named from %s", it.key, d.Options.DefaultLanguage, it.lang)
	}

	project, err := resolveProject(ctx, b, identity.ShProjects.MustKey(it.projectID))
	if err != nil {
		b.Fail(res, it.key, err)
		return "", projectRefs{}, false
	}
	rec := entity.Item{
		Type:                  it.typ,
		InternalName:          it.name,
		BackwardCompatibility: it.key,
		CollectionID:          &project.collection,
		ProjectID:             &project.project,
		OwnerReference:        ptr(it.ownerRef),
		MwnfReference:         ptr(it.mwnfRef),
	}
	if it.parentKey != "" {
		parent, err := mustResolve(ctx, b, entity.KindItem, it.parentKey)
		if err != nil {
			b.Fail(res, it.key, err)
			return "", projectRefs{}, false
		}
		rec.ParentID = &parent
	}
	if it.partnersID != "" {
		partner, err := shPartnerRef(ctx, b, it.mapped, it.partnersID)
		if err != nil {
			b.Fail(res, it.key, err)
			return "", projectRefs{}, false
		}
		if partner == nil {
			b.Warn(res, "%s: partner %s not found", it.key, it.partnersID)
		}
		rec.PartnerID = partner
	}
	if it.country != "" {
		if country, err := d.Codes.Country(it.country); err != nil {
			b.Warn(res, "%s: %v", it.key, err)
		} else {
			rec.CountryID = &country
		}
	}

	itemID, outcome := b.Process(ctx, res, importer.Row{
		Kind: entity.KindItem, Key: it.key, Describe: it.name, Record: rec, Sample: it.sample, Language: it.lang,
		Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateItem(ctx, rec) },
	})
	return itemID, project, outcome != importer.Failed
}

// shPartnerRef resolves an SH partner by its own key, then through the
// mwnf3 partner it was merged into.
func shPartnerRef(ctx context.Context, b *importer.Base, mapped map[string]string, partnersID string) (*string, error) {
	id, err := optionalRef(ctx, b, entity.KindPartner, identity.ShPartners.MustKey(partnersID))
	if err != nil || id != nil {
		return id, err
	}
	all := mapped[partnersID]
	if all == "" {
		return nil, nil
	}
	found, ok, err := resolveMappedPartner(ctx, b, all)
	if err != nil || !ok {
		return nil, err
	}
	return &found, nil
}

func ensureItemTranslation(ctx context.Context, b *importer.Base, res *importer.Result, tr entity.ItemTranslation) {
	_, _, err := b.Ensure(ctx, entity.KindItemTranslation, tr.BackwardCompatibility, tr, func(ctx context.Context) (string, error) {
		return b.Deps().Strategy.CreateItemTranslation(ctx, tr)
	})
	if err != nil {
		b.Warn(res, "%s: %v", tr.BackwardCompatibility, err)
	}
}

// ShObjectImporter creates one item per Sharing History object, with one
// translation per sh_objects_texts row.
type ShObjectImporter struct{ importer.Base }

func NewShObjectImporter(d *importer.Deps) importer.Importer {
	return &ShObjectImporter{importer.NewBase("sh-object", d)}
}

func (i *ShObjectImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	mapped, err := partnerMappings(ctx, d.Source)
	if err != nil {
		return i.Finish(res, err)
	}
	texts, err := legacy.All[legacy.ShObjectText](ctx, d.Source, legacy.QueryShObjectTexts)
	if err != nil {
		return i.Finish(res, err)
	}
	byObject := map[string][]legacy.ShObjectText{}
	for _, t := range texts {
		g := shGroup(t.ProjectID, t.Country, t.Number)
		byObject[g] = append(byObject[g], t)
	}

	err = legacy.Each(ctx, d.Source, legacy.QueryShObjects, func(row legacy.ShObject) error {
		i.importObject(ctx, res, row, byObject[shGroup(row.ProjectID, row.Country, row.Number)], mapped)
		return nil
	})
	return i.Finish(res, err)
}

func (i *ShObjectImporter) importObject(ctx context.Context, res *importer.Result, row legacy.ShObject, texts []legacy.ShObjectText, mapped map[string]string) {
	key, err := identity.ShObjects.Key(row.ProjectID, row.Country, row.Number)
	if err != nil {
		i.Fail(res, "", err)
		return
	}
	it := shItem{
		entityType: "sh_object",
		key:        key,
		typ:        entity.ItemObject,
		projectID:  row.ProjectID,
		country:    row.Country,
		partnersID: str(row.PartnersID),
		ownerRef:   str(row.InventoryID),
		mwnfRef:    str(row.WorkingNumber),
		isDefault:  true,
		mapped:     mapped,
		sample:     row,
	}
	var main legacy.ShObjectText
	if len(texts) > 0 {
		main, it.isDefault = pick(&i.Base, texts, func(t legacy.ShObjectText) string { return t.Lang })
		it.name, it.lang = transform.Inline(str(main.Name)), main.Lang
	}
	itemID, project, ok := importShItem(ctx, &i.Base, res, it)
	if !ok {
		return
	}

	for _, t := range texts {
		i.translate(ctx, res, key, itemID, project.context, t)
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

func (i *ShObjectImporter) translate(ctx context.Context, res *importer.Result, itemKey, itemID, contextID string, t legacy.ShObjectText) {
	d := i.Deps()
	lang, err := d.Codes.Language(t.Lang)
	if err != nil {
		i.WarnSample(res, "sh_object", t, "unknown_language", "%s: %v", itemKey, err)
		return
	}
	name := transform.Inline(str(t.Name))
	desc := transform.Join("\n\n", transform.HTMLToText(str(t.Description)), transform.HTMLToText(str(t.Description2)))
	if name == "" || desc == "" {
		i.Warn(res, "%s:%s: translation without name or description, skipped", itemKey, t.Lang)
		return
	}
	people, err := resolveAuthors(ctx, &i.Base, str(t.PreparedBy), str(t.CopyEditedBy), str(t.TranslationBy), str(t.TranslationCopyEditedBy))
	if err != nil {
		i.Warn(res, "%s:%s: %v", itemKey, t.Lang, err)
	}
	alt := transform.Join("; ", transform.Inline(str(t.Name2)), transform.Inline(str(t.SecondName)), transform.Inline(str(t.ThirdName)))

	ensureItemTranslation(ctx, &i.Base, res, entity.ItemTranslation{
		ItemID:                  itemID,
		LanguageID:              lang,
		ContextID:               contextID,
		Name:                    name,
		Description:             desc,
		AlternateName:           shortText(&i.Base, res, itemKey, t.Lang, "alternate_name", alt),
		Type:                    shortText(&i.Base, res, itemKey, t.Lang, "type", transform.Inline(str(t.TypeOf))),
		Holder:                  ptr(transform.Inline(firstNonEmpty(str(t.HoldingMuseum), str(t.HoldingInstitution)))),
		Owner:                   ptr(transform.Inline(str(t.CurrentOwner))),
		InitialOwner:            ptr(transform.Inline(str(t.OriginalOwner))),
		Dates:                   ptr(transform.Inline(str(t.DateDescription))),
		Location:                ptr(transform.Join(", ", str(t.Location), str(t.Province))),
		Dimensions:              ptr(transform.HTMLToText(str(t.Dimensions))),
		PlaceOfProduction:       ptr(transform.Inline(str(t.ProductionPlace))),
		MethodForDatation:       ptr(transform.HTMLToText(str(t.DatationMethod))),
		MethodForProvenance:     ptr(transform.HTMLToText(str(t.ProvenanceMethod))),
		Obtention:               ptr(transform.HTMLToText(str(t.ObtentionMethod))),
		Bibliography:            ptr(transform.HTMLToText(str(t.Bibliography))),
		AuthorID:                people.author,
		TextCopyEditorID:        people.copyEditor,
		TranslatorID:            people.translator,
		TranslationCopyEditorID: people.translationCopyEditor,
		Extra: transform.Extra(map[string]string{
			"archival":   transform.HTMLToText(str(t.Archival)),
			"provenance": transform.HTMLToText(str(t.Provenance)),
			"workshop":   str(t.Workshop),
			"copyright":  str(t.Copyright),
			"notice":     transform.HTMLToText(str(t.Notice)),
		}),
		BackwardCompatibility: translationKey(itemKey, t.Lang),
	})
}

// ShMonumentImporter creates one item per Sharing History monument. Details
// and pictures of SH monuments hang off these items.
type ShMonumentImporter struct{ importer.Base }

func NewShMonumentImporter(d *importer.Deps) importer.Importer {
	return &ShMonumentImporter{importer.NewBase("sh-monument", d)}
}

func (i *ShMonumentImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	mapped, err := partnerMappings(ctx, d.Source)
	if err != nil {
		return i.Finish(res, err)
	}
	texts, err := legacy.All[legacy.ShMonumentText](ctx, d.Source, legacy.QueryShMonumentTexts)
	if err != nil {
		return i.Finish(res, err)
	}
	byMonument := map[string][]legacy.ShMonumentText{}
	for _, t := range texts {
		g := shGroup(t.ProjectID, t.Country, t.Number)
		byMonument[g] = append(byMonument[g], t)
	}

	err = legacy.Each(ctx, d.Source, legacy.QueryShMonuments, func(row legacy.ShMonument) error {
		i.importMonument(ctx, res, row, byMonument[shGroup(row.ProjectID, row.Country, row.Number)], mapped)
		return nil
	})
	return i.Finish(res, err)
}

func (i *ShMonumentImporter) importMonument(ctx context.Context, res *importer.Result, row legacy.ShMonument, texts []legacy.ShMonumentText, mapped map[string]string) {
	key, err := identity.ShMonuments.Key(row.ProjectID, row.Country, row.Number)
	if err != nil {
		i.Fail(res, "", err)
		return
	}
	it := shItem{
		entityType: "sh_monument",
		key:        key,
		typ:        entity.ItemMonument,
		projectID:  row.ProjectID,
		country:    row.Country,
		partnersID: str(row.PartnersID),
		mwnfRef:    str(row.WorkingNumber),
		isDefault:  true,
		mapped:     mapped,
		sample:     row,
	}
	var main legacy.ShMonumentText
	if len(texts) > 0 {
		main, it.isDefault = pick(&i.Base, texts, func(t legacy.ShMonumentText) string { return t.Lang })
		it.name, it.lang = transform.Inline(str(main.Name)), main.Lang
	}
	itemID, project, ok := importShItem(ctx, &i.Base, res, it)
	if !ok {
		return
	}

	for _, t := range texts {
		i.translate(ctx, res, key, itemID, project.context, t)
	}
	attachTags(ctx, &i.Base, res, key, itemID, main.Lang, map[string]string{
		helpers.TagDynasty: str(main.Dynasty),
		helpers.TagKeyword: str(main.Keywords),
	})
	attachArtists(ctx, &i.Base, res, key, itemID, str(main.Architects), helpers.ArtistDetails{})
}

func (i *ShMonumentImporter) translate(ctx context.Context, res *importer.Result, itemKey, itemID, contextID string, t legacy.ShMonumentText) {
	d := i.Deps()
	lang, err := d.Codes.Language(t.Lang)
	if err != nil {
		i.WarnSample(res, "sh_monument", t, "unknown_language", "%s: %v", itemKey, err)
		return
	}
	name := transform.Inline(str(t.Name))
	desc := transform.Join("\n\n",
		transform.HTMLToText(str(t.Description)),
		transform.HTMLToText(str(t.Description2)),
		transform.HTMLToText(str(t.History)))
	if name == "" || desc == "" {
		i.Warn(res, "%s:%s: translation without name or description, skipped", itemKey, t.Lang)
		return
	}
	people, err := resolveAuthors(ctx, &i.Base, str(t.PreparedBy), str(t.CopyEditedBy), str(t.TranslationBy), str(t.TranslationCopyEditedBy))
	if err != nil {
		i.Warn(res, "%s:%s: %v", itemKey, t.Lang, err)
	}
	alt := transform.Join("; ", transform.Inline(str(t.Name2)), transform.Inline(str(t.SecondName)), transform.Inline(str(t.ThirdName)))

	ensureItemTranslation(ctx, &i.Base, res, entity.ItemTranslation{
		ItemID:                  itemID,
		LanguageID:              lang,
		ContextID:               contextID,
		Name:                    name,
		Description:             desc,
		AlternateName:           shortText(&i.Base, res, itemKey, t.Lang, "alternate_name", alt),
		Type:                    shortText(&i.Base, res, itemKey, t.Lang, "type", transform.Inline(str(t.TypeOf))),
		Holder:                  ptr(transform.Inline(str(t.Institution))),
		Dates:                   ptr(transform.Inline(str(t.DateDescription))),
		Location:                ptr(transform.Join(", ", str(t.Location), str(t.Province))),
		MethodForDatation:       ptr(transform.HTMLToText(str(t.DatationMethod))),
		Bibliography:            ptr(transform.HTMLToText(str(t.Bibliography))),
		AuthorID:                people.author,
		TextCopyEditorID:        people.copyEditor,
		TranslatorID:            people.translator,
		TranslationCopyEditorID: people.translationCopyEditor,
		Extra: transform.Extra(map[string]string{
			"patrons":   transform.Inline(str(t.Patrons)),
			"copyright": str(t.Copyright),
		}),
		BackwardCompatibility: translationKey(itemKey, t.Lang),
	})
}

// ShMonumentDetailImporter creates detail items under their SH monument.
type ShMonumentDetailImporter struct{ importer.Base }

func NewShMonumentDetailImporter(d *importer.Deps) importer.Importer {
	return &ShMonumentDetailImporter{importer.NewBase("sh-monument-detail", d)}
}

func (i *ShMonumentDetailImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	texts, err := legacy.All[legacy.ShMonumentDetailText](ctx, d.Source, legacy.QueryShMonumentDetailTexts)
	if err != nil {
		return i.Finish(res, err)
	}
	byDetail := map[string][]legacy.ShMonumentDetailText{}
	for _, t := range texts {
		g := shGroup(t.ProjectID, t.Country, t.Number, t.DetailID)
		byDetail[g] = append(byDetail[g], t)
	}

	err = legacy.Each(ctx, d.Source, legacy.QueryShMonumentDetails, func(row legacy.ShMonumentDetail) error {
		i.importDetail(ctx, res, row, byDetail[shGroup(row.ProjectID, row.Country, row.Number, row.DetailID)])
		return nil
	})
	return i.Finish(res, err)
}

func (i *ShMonumentDetailImporter) importDetail(ctx context.Context, res *importer.Result, row legacy.ShMonumentDetail, texts []legacy.ShMonumentDetailText) {
	d := i.Deps()
	key, err := identity.ShMonumentDetails.Key(row.ProjectID, row.Country, row.Number, row.DetailID)
	if err != nil {
		i.Fail(res, "", err)
		return
	}
	it := shItem{
		entityType: "sh_monument_detail",
		key:        key,
		typ:        entity.ItemDetail,
		projectID:  row.ProjectID,
		parentKey:  identity.ShMonuments.MustKey(row.ProjectID, row.Country, row.Number),
		name:       "detail " + row.DetailID,
		isDefault:  true,
		sample:     row,
	}
	var main legacy.ShMonumentDetailText
	if len(texts) > 0 {
		main, _ = pick(&i.Base, texts, func(t legacy.ShMonumentDetailText) string { return t.Lang })
		it.name, it.lang = firstNonEmpty(transform.Inline(str(main.Name)), it.name), main.Lang
	}
	itemID, project, ok := importShItem(ctx, &i.Base, res, it)
	if !ok {
		return
	}

	for _, t := range texts {
		lang, err := d.Codes.Language(t.Lang)
		if err != nil {
			i.Warn(res, "%s: %v", key, err)
			continue
		}
		desc := transform.HTMLToText(str(t.Description))
		if desc == "" {
			i.Warn(res, "%s:%s: translation without description, skipped", key, t.Lang)
			continue
		}
		ensureItemTranslation(ctx, &i.Base, res, entity.ItemTranslation{
			ItemID:                itemID,
			LanguageID:            lang,
			ContextID:             project.context,
			Name:                  firstNonEmpty(transform.Inline(str(t.Name)), it.name),
			Description:           desc,
			Dates:                 ptr(transform.Inline(str(t.Date))),
			Location:              ptr(transform.Inline(str(t.Location))),
			BackwardCompatibility: translationKey(key, t.Lang),
		})
	}
	attachArtists(ctx, &i.Base, res, key, itemID, str(main.Artist), helpers.ArtistDetails{})
}
