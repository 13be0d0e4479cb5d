package importers

import (
	"context"
	"fmt"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

type GlossaryImporter struct{ importer.Base }

func NewGlossaryImporter(d *importer.Deps) importer.Importer {
	return &GlossaryImporter{importer.NewBase("glossary", d)}
}

func (i *GlossaryImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	err := legacy.Each(ctx, d.Source, legacy.QueryGlossary, func(row legacy.GlossaryWord) error {
		key, err := identity.Glossary.Key(row.WordID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		rec := entity.Glossary{
			InternalName:          firstNonEmpty(transform.Inline(str(row.Name)), fmt.Sprintf("word_%s", row.WordID)),
			BackwardCompatibility: key,
		}
		i.Process(ctx, res, importer.Row{
			Kind: entity.KindGlossary, Key: key, Record: rec, Sample: row,
			Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateGlossary(ctx, rec) },
		})
		return nil
	})
	return i.Finish(res, err)
}

type GlossaryTranslationImporter struct{ importer.Base }

func NewGlossaryTranslationImporter(d *importer.Deps) importer.Importer {
	return &GlossaryTranslationImporter{importer.NewBase("glossary-translation", d)}
}

func (i *GlossaryTranslationImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	err := legacy.Each(ctx, d.Source, legacy.QueryGlossaryDefs, func(row legacy.GlossaryDefinition) error {
		key, err := identity.GlossaryDefs.Key(row.WordID, row.LangID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		definition := transform.HTMLToText(str(row.Definition))
		if definition == "" {
			i.MarkSkipped(res)
			return nil
		}
		word, err := mustResolve(ctx, &i.Base, entity.KindGlossary, identity.Glossary.MustKey(row.WordID))
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		lang, err := d.Codes.Language(row.LangID)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		rec := entity.GlossaryTranslation{GlossaryID: word, LanguageID: lang, Definition: definition, BackwardCompatibility: key}
		i.Process(ctx, res, importer.Row{
			Kind: entity.KindGlossaryTranslation, Key: key, Record: rec, Sample: row, Language: row.LangID,
			Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateGlossaryTranslation(ctx, rec) },
		})
		return nil
	})
	return i.Finish(res, err)
}

type GlossarySpellingImporter struct{ importer.Base }

func NewGlossarySpellingImporter(d *importer.Deps) importer.Importer {
	return &GlossarySpellingImporter{importer.NewBase("glossary-spelling", d)}
}

func (i *GlossarySpellingImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	err := legacy.Each(ctx, d.Source, legacy.QueryGlossarySpelling, func(row legacy.GlossarySpelling) error {
		key, err := identity.GlossarySpelling.Key(row.SpellingID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		spelling := transform.Inline(str(row.Spelling))
		if spelling == "" {
			i.MarkSkipped(res)
			return nil
		}
		word, err := mustResolve(ctx, &i.Base, entity.KindGlossary, identity.Glossary.MustKey(row.WordID))
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		lang, err := d.Codes.Language(row.LangID)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		rec := entity.GlossarySpelling{GlossaryID: word, LanguageID: lang, Spelling: spelling, BackwardCompatibility: key}
		i.Process(ctx, res, importer.Row{
			Kind: entity.KindGlossarySpelling, Key: key, Record: rec, Sample: row, Language: row.LangID,
			Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateGlossarySpelling(ctx, rec) },
		})
		return nil
	})
	return i.Finish(res, err)
}
