package importers

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/memory"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

func wordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"word_id", "name"}).
		AddRow("1", "Mihrab").
		AddRow("2", nil).
		AddRow("3", "<i>Qibla</i>")
}

func TestGlossaryImporter_IdempotentAcrossRuns(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryGlossary, wordRows())
	res := NewGlossaryImporter(h.deps).Import(ctx)
	requireCounts(t, res, 3, 0, 0)

	rec, ok := s.Get(entity.KindGlossary, "mwnf3:glossary:2")
	require.True(t, ok)
	require.Equal(t, "word_2", rec.(entity.Glossary).InternalName)
	rec, _ = s.Get(entity.KindGlossary, "mwnf3:glossary:3")
	require.Equal(t, "Qibla", rec.(entity.Glossary).InternalName)

	again := newHarness(t, s, importer.Options{})
	again.expect(legacy.QueryGlossary, wordRows())
	res = NewGlossaryImporter(again.deps).Import(ctx)
	requireCounts(t, res, 0, 3, 0)
	require.Equal(t, 3, s.Calls()["CreateGlossary"])
}

func TestGlossaryImporter_DryRun(t *testing.T) {
	s := memory.New()
	h := newHarness(t, s, importer.Options{DryRun: true})
	h.expect(legacy.QueryGlossary, wordRows())

	res := NewGlossaryImporter(h.deps).Import(context.Background())
	requireCounts(t, res, 3, 0, 0)
	require.Zero(t, s.Mutations())
}

func TestGlossaryImporter_QueryFailure(t *testing.T) {
	h := newHarness(t, memory.New(), importer.Options{})
	h.mock.ExpectQuery(legacy.QueryGlossary + " LIMIT 100 OFFSET 0").WillReturnError(errors.New("table missing"))

	res := NewGlossaryImporter(h.deps).Import(context.Background())
	require.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "table missing")
}

func TestGlossaryTranslationImporter(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	_, err := s.CreateGlossary(ctx, entity.Glossary{InternalName: "mihrab", BackwardCompatibility: "mwnf3:glossary:1"})
	require.NoError(t, err)

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryGlossaryDefs, sqlmock.NewRows([]string{"word_id", "lang_id", "definition"}).
		AddRow("1", "en", "<p>Prayer niche</p>").
		AddRow("1", "fr", "  ").
		AddRow("1", "xx", "unknown language").
		AddRow("9", "en", "orphan"))

	res := NewGlossaryTranslationImporter(h.deps).Import(ctx)
	requireCounts(t, res, 1, 1, 2)
	require.Contains(t, res.Errors[0], "mwnf3:gl_definitions:1:xx")
	require.Contains(t, res.Errors[1], "missing glossary mwnf3:glossary:9")

	rec, ok := s.Get(entity.KindGlossaryTranslation, "mwnf3:gl_definitions:1:en")
	require.True(t, ok)
	tr := rec.(entity.GlossaryTranslation)
	require.Equal(t, "eng", tr.LanguageID)
	require.Equal(t, "Prayer niche", tr.Definition)
}

func TestGlossarySpellingImporter(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	_, err := s.CreateGlossary(ctx, entity.Glossary{InternalName: "mihrab", BackwardCompatibility: "mwnf3:glossary:1"})
	require.NoError(t, err)

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryGlossarySpelling, sqlmock.NewRows([]string{"spelling_id", "word_id", "lang_id", "spelling"}).
		AddRow("10", "1", "en", "mehrab").
		AddRow("11", "1", "ar", nil))

	res := NewGlossarySpellingImporter(h.deps).Import(ctx)
	requireCounts(t, res, 1, 1, 0)
	require.NoError(t, h.mock.ExpectationsWereMet())
}
