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

var museumCols = []string{
	"museum_id", "country", "name", "city", "fax", "project_id", "geoCoordinates", "zoom",
	"mon_project_id", "mon_country_id", "mon_institution_id", "mon_monument_id", "mon_lang_id",
}

func expectPartnerQueries(h *harness, museums *sqlmock.Rows) {
	h.expect(legacy.QueryMuseumNames, sqlmock.NewRows([]string{"museum_id", "country", "lang", "name", "opening_hours"}).
		AddRow("12", "eg", "en", "Museum of Islamic Art", "<p>9-17</p>").
		AddRow("12", "eg", "ar", "متحف الفن الإسلامي", nil))
	h.expect(legacy.QueryMuseums, museums)
	h.expect(legacy.QueryInstitutionNames, sqlmock.NewRows([]string{"institution_id", "country", "lang", "name"}))
	h.expect(legacy.QueryInstitutions, sqlmock.NewRows([]string{"institution_id", "country", "name"}).
		AddRow("3", "tr", "Ministry of Culture"))
}

func TestPartnerImporter_MuseumsAndInstitutions(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	ctxID := seedDefaultContext(t, s)
	_, colID, projectID := seedProject(t, s, "ISL")

	h := newHarness(t, s, importer.Options{})
	expectPartnerQueries(h, sqlmock.NewRows(museumCols).
		AddRow("12", "eg", "MIA", "Cairo", "+20 2", "ISL", "30.0459, 31.2243", "14", "ISL", "eg", "3", "7", "en"))

	res := NewPartnerImporter(h.deps).Import(ctx)
	requireCounts(t, res, 2, 0, 0)

	museumKey := identity.Museums.MustKey("12", "eg")
	rec, ok := s.Get(entity.KindPartner, museumKey)
	require.True(t, ok)
	p := rec.(entity.Partner)
	require.Equal(t, "egy", *p.CountryID)
	require.Equal(t, projectID, *p.ProjectID)
	require.InDelta(t, 30.0459, *p.Latitude, 1e-9)
	require.Equal(t, 14, *p.MapZoom)

	rec, ok = s.Get(entity.KindPartnerTranslation, museumKey+":en")
	require.True(t, ok)
	tr := rec.(entity.PartnerTranslation)
	require.Equal(t, ctxID, tr.ContextID)
	require.Equal(t, "Museum of Islamic Art", tr.Name)
	require.JSONEq(t, `{"fax":"+20 2","opening_hours":"9-17"}`, *tr.Extra)
	require.Equal(t, 2, s.Len(entity.KindPartnerTranslation))

	partnerID, _ := h.deps.Tracker.Lookup(entity.KindPartner, museumKey)
	require.Equal(t, []string{partnerID}, s.Attached(entity.RelationCollectionPartners, colID))

	links := h.deps.Links.Pending(entity.RelationMonumentLocation)
	require.Len(t, links, 1)
	require.Equal(t, museumKey, links[0].SourceKey)
	require.Equal(t, identity.MonumentLangs.MustKey("ISL", "eg", "3", "7", "en"), links[0].TargetKey)
	require.Equal(t, identity.Monuments.MustKey("ISL", "eg", "3", "7"), links[0].TargetFallbackKey)

	rec, ok = s.Get(entity.KindPartner, identity.Institutions.MustKey("3", "tr"))
	require.True(t, ok)
	require.Equal(t, entity.PartnerInstitution, rec.(entity.Partner).Type)
	require.NoError(t, h.mock.ExpectationsWereMet())
}

func TestPartnerImporter_InvalidCoordinatesWarn(t *testing.T) {
	s := memory.New()
	seedDefaultContext(t, s)

	h := newHarness(t, s, importer.Options{})
	expectPartnerQueries(h, sqlmock.NewRows(museumCols).
		AddRow("12", "eg", "MIA", nil, nil, nil, "91.5,10", nil, nil, nil, nil, nil, nil))

	res := NewPartnerImporter(h.deps).Import(context.Background())
	requireCounts(t, res, 2, 0, 0)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "out of range")
	require.Zero(t, h.deps.Links.Len())

	rec, _ := s.Get(entity.KindPartner, identity.Museums.MustKey("12", "eg"))
	require.Nil(t, rec.(entity.Partner).Latitude)
}

func TestPartnerImporter_UnknownCountryIsRowError(t *testing.T) {
	s := memory.New()
	seedDefaultContext(t, s)

	h := newHarness(t, s, importer.Options{})
	expectPartnerQueries(h, sqlmock.NewRows(museumCols).
		AddRow("12", "qq", "Nowhere", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	res := NewPartnerImporter(h.deps).Import(context.Background())
	requireCounts(t, res, 1, 0, 1)
	require.Contains(t, res.Errors[0], `unknown country code "qq"`)
}

func TestPartnerImporter_NeedsDefaultContext(t *testing.T) {
	h := newHarness(t, memory.New(), importer.Options{})

	res := NewPartnerImporter(h.deps).Import(context.Background())
	require.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "missing context")
}
