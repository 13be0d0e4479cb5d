package importers

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/memory"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

func TestLanguageImporter_MapsCodesAndMarksDefault(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryLanguages, sqlmock.NewRows([]string{"lang_id", "name"}).
		AddRow("en", "English").
		AddRow("fr", nil).
		AddRow("qq", "Unknown"))

	res := NewLanguageImporter(h.deps).Import(ctx)
	requireCounts(t, res, 2, 0, 1)
	require.Contains(t, res.Errors[0], `unknown language code "qq"`)

	rec, ok := s.Get(entity.KindLanguage, identity.Languages.MustKey("en"))
	require.True(t, ok)
	en := rec.(entity.Language)
	require.Equal(t, "eng", en.ID)
	require.True(t, en.IsDefault)
	rec, _ = s.Get(entity.KindLanguage, identity.Languages.MustKey("fr"))
	fr := rec.(entity.Language)
	require.Equal(t, "fr", fr.InternalName)
	require.False(t, fr.IsDefault)

	rerun := newHarness(t, s, importer.Options{})
	rerun.expect(legacy.QueryLanguages, sqlmock.NewRows([]string{"lang_id", "name"}).AddRow("en", "English"))
	requireCounts(t, NewLanguageImporter(rerun.deps).Import(ctx), 0, 1, 0)
	require.Equal(t, 2, s.Len(entity.KindLanguage))
}

func TestLanguageTranslationImporter_EmptyNameIsSkipped(t *testing.T) {
	s := memory.New()

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryLanguageNames, sqlmock.NewRows([]string{"lang_id", "lang", "name"}).
		AddRow("fr", "en", "French").
		AddRow("fr", "de", " ").
		AddRow("fr", "qq", "?"))

	res := NewLanguageTranslationImporter(h.deps).Import(context.Background())
	requireCounts(t, res, 1, 1, 1)
	require.Len(t, res.Warnings, 1)

	rec, ok := s.Get(entity.KindLanguageTranslation, identity.LanguageNames.MustKey("fr", "en"))
	require.True(t, ok)
	tr := rec.(entity.LanguageTranslation)
	require.Equal(t, "fra", tr.LanguageID)
	require.Equal(t, "eng", tr.DisplayLanguageID)
	require.Equal(t, "French", tr.Name)
}

func TestCountryImporters(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryCountries, sqlmock.NewRows([]string{"country_id", "name"}).
		AddRow("eg", "Egypt").
		AddRow("pd", "Public domain").
		AddRow("zz", "Nowhere"))
	res := NewCountryImporter(h.deps).Import(ctx)
	requireCounts(t, res, 2, 0, 1)

	rec, ok := s.Get(entity.KindCountry, identity.Countries.MustKey("pd"))
	require.True(t, ok)
	require.Equal(t, "zzzpd", rec.(entity.Country).ID)

	h.expect(legacy.QueryCountryNames, sqlmock.NewRows([]string{"country", "lang", "name"}).
		AddRow("eg", "fr", "Égypte").
		AddRow("eg", "en", nil))
	res = NewCountryTranslationImporter(h.deps).Import(ctx)
	requireCounts(t, res, 1, 1, 0)

	rec, ok = s.Get(entity.KindCountryTranslation, identity.CountryNames.MustKey("eg", "fr"))
	require.True(t, ok)
	tr := rec.(entity.CountryTranslation)
	require.Equal(t, "egy", tr.CountryID)
	require.Equal(t, "fra", tr.LanguageID)
	require.NoError(t, h.mock.ExpectationsWereMet())
}

func TestDefaultContextImporter_CreatesOnce(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	h := newHarness(t, s, importer.Options{})
	requireCounts(t, NewDefaultContextImporter(h.deps).Import(ctx), 1, 0, 0)
	requireCounts(t, NewDefaultContextImporter(h.deps).Import(ctx), 0, 1, 0)

	rec, ok := s.Get(entity.KindContext, identity.DefaultContextKey)
	require.True(t, ok)
	require.True(t, rec.(entity.Context).IsDefault)
	require.Equal(t, 1, s.Len(entity.KindContext))
}

func TestProjectImporter_CreatesContextCollectionAndProject(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	expect := func(h *harness) {
		h.expect(legacy.QueryProjectNames, sqlmock.NewRows([]string{"project_id", "lang", "name", "description"}).
			AddRow("ISL", "en", "Discover Islamic Art", "<p>Virtual museum.</p>").
			AddRow("ISL", "fr", "Découvrir l'art islamique", nil))
		h.expect(legacy.QueryProjects, sqlmock.NewRows([]string{"project_id", "name", "launchdate", "active"}).
			AddRow("ISL", "Islamic Art", "0000-00-00", "1").
			AddRow("BAR", nil, "2012-06-15", nil))
	}

	h := newHarness(t, s, importer.Options{})
	expect(h)
	res := NewProjectImporter(h.deps).Import(ctx)
	requireCounts(t, res, 2, 0, 0)

	key := identity.Projects.MustKey("ISL")
	rec, ok := s.Get(entity.KindProject, key)
	require.True(t, ok)
	p := rec.(entity.Project)
	require.Equal(t, "Islamic Art", p.InternalName)
	require.Nil(t, p.LaunchDate)
	require.False(t, p.IsLaunched)
	require.True(t, p.IsEnabled)

	ctxRec, _ := s.Get(entity.KindContext, key)
	colRec, ok := s.Get(entity.KindCollection, key)
	require.True(t, ok)
	col := colRec.(entity.Collection)
	require.Equal(t, collectionType, col.Type)
	require.Equal(t, "eng", col.LanguageID)
	require.Equal(t, ctxRec.(entity.Context).InternalName, col.InternalName)

	rec, ok = s.Get(entity.KindCollectionTrans, translationKey(key, "en"))
	require.True(t, ok)
	require.Equal(t, "Virtual museum.", *rec.(entity.CollectionTranslation).Description)
	rec, _ = s.Get(entity.KindCollectionTrans, translationKey(key, "fr"))
	require.Nil(t, rec.(entity.CollectionTranslation).Description)

	rec, _ = s.Get(entity.KindProject, identity.Projects.MustKey("BAR"))
	bar := rec.(entity.Project)
	require.Equal(t, "BAR", bar.InternalName)
	require.Equal(t, "2012-06-15", *bar.LaunchDate)
	require.True(t, bar.IsLaunched)

	rerun := newHarness(t, s, importer.Options{})
	expect(rerun)
	requireCounts(t, NewProjectImporter(rerun.deps).Import(ctx), 0, 2, 0)
	require.Equal(t, 2, s.Len(entity.KindCollection))
	require.Equal(t, 2, s.Len(entity.KindCollectionTrans))
}
