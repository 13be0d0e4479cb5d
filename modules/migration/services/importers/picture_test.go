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

var objectPictureCols = []string{"project_id", "country", "museum_id", "number", "lang", "type", "image_number", "path", "caption"}

func seedItem(t *testing.T, s *memory.Strategy, typ entity.ItemType, key string) string {
	t.Helper()
	id, err := s.CreateItem(context.Background(), entity.Item{Type: typ, InternalName: key, BackwardCompatibility: key})
	require.NoError(t, err)
	return id
}

func image(t *testing.T, s *memory.Strategy, kind entity.Kind, key string) entity.Image {
	t.Helper()
	rec, ok := s.Get(kind, key)
	require.True(t, ok, key)
	return rec.(entity.Image)
}

func TestObjectPictureImporter_GroupsLanguagesAndOrders(t *testing.T) {
	s := memory.New()
	objectKey := identity.Objects.MustKey("ISL", "eg", "12", "001")
	itemID := seedItem(t, s, entity.ItemObject, objectKey)

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryObjectPictures, sqlmock.NewRows(objectPictureCols).
		AddRow("ISL", "eg", "12", "001", "en", "", "1", "objects/ISL/bowl.jpg", "Lustre <b>bowl</b>").
		AddRow("ISL", "eg", "12", "001", "fr", "", "1", "objects/ISL/bowl.jpg", "Coupe").
		AddRow("ISL", "eg", "12", "001", "en", "", "2", "objects/ISL/bowl_b.png", nil))

	res := NewObjectPictureImporter(h.deps).Import(context.Background())
	requireCounts(t, res, 2, 0, 0)
	require.Equal(t, 2, s.Len(entity.KindItemImage))

	first := image(t, s, entity.KindItemImage, identity.ObjectPictures.MustKey("ISL", "eg", "12", "001", "1"))
	require.Equal(t, itemID, first.OwnerID)
	require.Equal(t, "Lustre bowl", *first.AltText)
	require.Equal(t, "bowl.jpg", first.OriginalName)
	require.Equal(t, "image/jpeg", first.MimeType)
	require.Equal(t, 1, first.DisplayOrder)

	second := image(t, s, entity.KindItemImage, identity.ObjectPictures.MustKey("ISL", "eg", "12", "001", "2"))
	require.Equal(t, "objects/ISL/bowl_b.png", *second.AltText)
	require.Equal(t, "image/png", second.MimeType)
	require.Equal(t, 2, second.DisplayOrder)
	require.NoError(t, h.mock.ExpectationsWereMet())
}

func TestObjectPictureImporter_MissingObjectAndPath(t *testing.T) {
	s := memory.New()
	seedItem(t, s, entity.ItemObject, identity.Objects.MustKey("ISL", "eg", "12", "001"))

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryObjectPictures, sqlmock.NewRows(objectPictureCols).
		AddRow("ISL", "eg", "12", "001", "en", "", "1", nil, "No file").
		AddRow("ISL", "eg", "12", "404", "en", "", "1", "objects/ISL/x.jpg", nil))

	res := NewObjectPictureImporter(h.deps).Import(context.Background())
	requireCounts(t, res, 0, 0, 2)
	require.Contains(t, res.Errors[0], errMissingPath.Error())
	require.Contains(t, res.Errors[1], "missing item")
	require.Zero(t, s.Len(entity.KindItemImage))
}

func TestPartnerPictureImporter_MuseumsAndInstitutions(t *testing.T) {
	s := memory.New()
	museumID := seedPartner(t, s, identity.Museums.MustKey("12", "eg"), entity.PartnerMuseum)
	instID := seedPartner(t, s, identity.Institutions.MustKey("3", "tr"), entity.PartnerInstitution)

	cols := []string{"partner_id", "country", "image_number", "path", "caption"}
	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryMuseumPictures, sqlmock.NewRows(cols).
		AddRow("12", "eg", "1", "museums/mia_1.jpg", "Facade").
		AddRow("12", "eg", "2", "museums/mia_2.jpg", nil))
	h.expect(legacy.QueryInstitutionPictures, sqlmock.NewRows(cols).
		AddRow("3", "tr", "1", "institutions/moc.gif", "Entrance"))

	res := NewPartnerPictureImporter(h.deps).Import(context.Background())
	requireCounts(t, res, 3, 0, 0)

	img := image(t, s, entity.KindPartnerImage, identity.MuseumPictures.MustKey("12", "eg", "2"))
	require.Equal(t, museumID, img.OwnerID)
	require.Equal(t, 2, img.DisplayOrder)
	img = image(t, s, entity.KindPartnerImage, identity.InstitutionPics.MustKey("3", "tr", "1"))
	require.Equal(t, instID, img.OwnerID)
	require.Equal(t, "Entrance", *img.AltText)
	require.Equal(t, 1, img.DisplayOrder)
	require.Zero(t, s.Calls()["CreateItemImage"])
}

func TestMonumentDetailPictureImporter_AttachesToDetail(t *testing.T) {
	s := memory.New()
	detailKey := identity.MonumentDetails.MustKey("ISL", "eg", "3", "7", "2")
	detailID := seedItem(t, s, entity.ItemDetail, detailKey)

	cols := []string{"project_id", "country_id", "institution_id", "monument_id", "detail_id", "picture_id", "lang_id", "path", "caption"}
	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryMonumentDetailPictures, sqlmock.NewRows(cols).
		AddRow("ISL", "eg", "3", "7", "2", "1", "en", nil, "Minaret from the north").
		AddRow("ISL", "eg", "3", "7", "2", "1", "fr", "monuments/minaret.jpg", "Minaret vu du nord").
		AddRow("ISL", "eg", "3", "7", "2", "2", "en", "monuments/minaret_top.jpg", nil))

	res := NewMonumentDetailPictureImporter(h.deps).Import(context.Background())
	requireCounts(t, res, 2, 0, 0)

	img := image(t, s, entity.KindItemImage, identity.MonumentDetailPics.MustKey("ISL", "eg", "3", "7", "2", "1"))
	require.Equal(t, detailID, img.OwnerID)
	require.Equal(t, "monuments/minaret.jpg", img.Path)
	require.Equal(t, "Minaret from the north", *img.AltText)
	img = image(t, s, entity.KindItemImage, identity.MonumentDetailPics.MustKey("ISL", "eg", "3", "7", "2", "2"))
	require.Equal(t, 2, img.DisplayOrder)
}

var logoCols = []string{"partner_id", "country", "name", "logo", "logo1", "logo2", "logo3"}

func TestPartnerLogoImporter_OneImagePerLogoColumn(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	museumKey := identity.Museums.MustKey("12", "eg")
	museumID := seedPartner(t, s, museumKey, entity.PartnerMuseum)
	seedPartner(t, s, identity.Institutions.MustKey("3", "tr"), entity.PartnerInstitution)

	h := newHarness(t, s, importer.Options{})
	h.expect(legacy.QueryMuseumLogos, sqlmock.NewRows(logoCols).
		AddRow("12", "eg", "Museum of Islamic Art", "logos/mia.png", nil, "logos/mia_mono.png", nil))
	h.expect(legacy.QueryInstitutionLogos, sqlmock.NewRows(logoCols[:6]).
		AddRow("3", "tr", nil, "logos/moc.jpg", nil, nil).
		AddRow("9", "tr", "Unknown", "logos/unknown.jpg", nil, nil))

	res := NewPartnerLogoImporter(h.deps).Import(ctx)
	requireCounts(t, res, 3, 0, 1)
	require.Contains(t, res.Errors[0], "missing partner")

	primary := image(t, s, entity.KindPartnerImage, logoKey(museumKey, "primary"))
	require.Equal(t, museumID, primary.OwnerID)
	require.Equal(t, "Museum of Islamic Art - primary logo", *primary.AltText)
	require.Equal(t, 1, primary.DisplayOrder)
	tertiary := image(t, s, entity.KindPartnerImage, logoKey(museumKey, "tertiary"))
	require.Equal(t, 3, tertiary.DisplayOrder)

	inst := image(t, s, entity.KindPartnerImage, logoKey(identity.Institutions.MustKey("3", "tr"), "primary"))
	require.Equal(t, "3 - primary logo", *inst.AltText)

	rerun := newHarness(t, s, importer.Options{})
	rerun.expect(legacy.QueryMuseumLogos, sqlmock.NewRows(logoCols).
		AddRow("12", "eg", "Museum of Islamic Art", "logos/mia.png", nil, "logos/mia_mono.png", nil))
	rerun.expect(legacy.QueryInstitutionLogos, sqlmock.NewRows(logoCols[:6]))
	requireCounts(t, NewPartnerLogoImporter(rerun.deps).Import(ctx), 0, 2, 0)
	require.Equal(t, 3, s.Len(entity.KindPartnerImage))
}
