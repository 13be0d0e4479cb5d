package importers

import (
	"context"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

type LanguageImporter struct{ importer.Base }

func NewLanguageImporter(d *importer.Deps) importer.Importer {
	return &LanguageImporter{importer.NewBase("language", d)}
}

func (i *LanguageImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	err := legacy.Each(ctx, d.Source, legacy.QueryLanguages, func(row legacy.Language) error {
		key, err := identity.Languages.Key(row.LangID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		code, err := d.Codes.Language(row.LangID)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		rec := entity.Language{
			ID:                    code,
			InternalName:          firstNonEmpty(transform.Inline(str(row.Name)), row.LangID),
			BackwardCompatibility: key,
			IsDefault:             code == d.Options.DefaultLanguage,
		}
		i.Process(ctx, res, importer.Row{
			Kind: entity.KindLanguage, Key: key, Record: rec, Sample: row,
			Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateLanguage(ctx, rec) },
		})
		return nil
	})
	return i.Finish(res, err)
}

type LanguageTranslationImporter struct{ importer.Base }

func NewLanguageTranslationImporter(d *importer.Deps) importer.Importer {
	return &LanguageTranslationImporter{importer.NewBase("language-translation", d)}
}

func (i *LanguageTranslationImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	err := legacy.Each(ctx, d.Source, legacy.QueryLanguageNames, func(row legacy.LanguageName) error {
		key, err := identity.LanguageNames.Key(row.LangID, row.Lang)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		lang, err := d.Codes.Language(row.LangID)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		display, err := d.Codes.Language(row.Lang)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		name := transform.Inline(str(row.Name))
		if name == "" {
			i.WarnSample(res, "language_translation", row, "missing_name", "%s: empty name, skipped", key)
			i.MarkSkipped(res)
			return nil
		}
		rec := entity.LanguageTranslation{LanguageID: lang, DisplayLanguageID: display, Name: name, BackwardCompatibility: key}
		i.Process(ctx, res, importer.Row{
			Kind: entity.KindLanguageTranslation, Key: key, Record: rec, Sample: row, Language: row.Lang,
			Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateLanguageTranslation(ctx, rec) },
		})
		return nil
	})
	return i.Finish(res, err)
}

type CountryImporter struct{ importer.Base }

func NewCountryImporter(d *importer.Deps) importer.Importer {
	return &CountryImporter{importer.NewBase("country", d)}
}

func (i *CountryImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	err := legacy.Each(ctx, d.Source, legacy.QueryCountries, func(row legacy.Country) error {
		key, err := identity.Countries.Key(row.CountryID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		code, err := d.Codes.Country(row.CountryID)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		rec := entity.Country{
			ID:                    code,
			InternalName:          firstNonEmpty(transform.Inline(str(row.Name)), row.CountryID),
			BackwardCompatibility: key,
		}
		i.Process(ctx, res, importer.Row{
			Kind: entity.KindCountry, Key: key, Record: rec, Sample: row,
			Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateCountry(ctx, rec) },
		})
		return nil
	})
	return i.Finish(res, err)
}

type CountryTranslationImporter struct{ importer.Base }

func NewCountryTranslationImporter(d *importer.Deps) importer.Importer {
	return &CountryTranslationImporter{importer.NewBase("country-translation", d)}
}

func (i *CountryTranslationImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	err := legacy.Each(ctx, d.Source, legacy.QueryCountryNames, func(row legacy.CountryName) error {
		key, err := identity.CountryNames.Key(row.Country, row.Lang)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		country, err := d.Codes.Country(row.Country)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		lang, err := d.Codes.Language(row.Lang)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		name := transform.Inline(str(row.Name))
		if name == "" {
			i.WarnSample(res, "country_translation", row, "missing_name", "%s: empty name, skipped", key)
			i.MarkSkipped(res)
			return nil
		}
		rec := entity.CountryTranslation{CountryID: country, LanguageID: lang, Name: name, BackwardCompatibility: key}
		i.Process(ctx, res, importer.Row{
			Kind: entity.KindCountryTranslation, Key: key, Record: rec, Sample: row, Language: row.Lang,
			Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateCountryTranslation(ctx, rec) },
		})
		return nil
	})
	return i.Finish(res, err)
}

// DefaultContextImporter creates the single context that translations
// without a project scope belong to.
type DefaultContextImporter struct{ importer.Base }

func NewDefaultContextImporter(d *importer.Deps) importer.Importer {
	return &DefaultContextImporter{importer.NewBase("default-context", d)}
}

func (i *DefaultContextImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	rec := entity.Context{InternalName: "default", BackwardCompatibility: identity.DefaultContextKey, IsDefault: true}
	i.Process(ctx, res, importer.Row{
		Kind: entity.KindContext, Key: rec.BackwardCompatibility, Record: rec,
		Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateContext(ctx, rec) },
	})
	return i.Finish(res, nil)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
