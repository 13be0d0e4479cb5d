package importers

import (
	"context"
	"strings"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

// ObjectPictureImporter creates one item image per object picture. The
// legacy table repeats a picture per language and type; those rows are
// grouped and the default-language caption becomes the alt text.
type ObjectPictureImporter struct{ importer.Base }

func NewObjectPictureImporter(d *importer.Deps) importer.Importer {
	return &ObjectPictureImporter{importer.NewBase("object-picture", d)}
}

func pictureGroup(p legacy.ObjectPicture) string {
	return strings.Join([]string{p.ProjectID, p.Country, p.MuseumID, p.Number, p.ImageNumber}, "\x00")
}

func (i *ObjectPictureImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()
	order := map[string]int{}

	err := legacy.GroupBy(ctx, d.Source, legacy.QueryObjectPictures, pictureGroup, func(_ string, rows []legacy.ObjectPicture) error {
		first := rows[0]
		key, err := identity.ObjectPictures.Key(first.ProjectID, first.Country, first.MuseumID, first.Number, first.ImageNumber)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		ownerKey := identity.Objects.MustKey(first.ProjectID, first.Country, first.MuseumID, first.Number)
		order[ownerKey]++

		path := firstPath(rows, func(p legacy.ObjectPicture) *string { return p.Path })
		if path == "" {
			i.Fail(res, key, errMissingPath)
			return nil
		}
		owner, err := mustResolve(ctx, &i.Base, entity.KindItem, ownerKey)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		main, _ := pick(&i.Base, rows, func(p legacy.ObjectPicture) string { return p.Lang })
		importImage(ctx, &i.Base, res, entity.KindItemImage, key, owner, path, transform.Inline(str(main.Caption)), order[ownerKey], main)
		return nil
	})
	return i.Finish(res, err)
}

// MonumentDetailPictureImporter attaches detail pictures to their detail
// item, grouped and captioned the same way as object pictures.
type MonumentDetailPictureImporter struct{ importer.Base }

func NewMonumentDetailPictureImporter(d *importer.Deps) importer.Importer {
	return &MonumentDetailPictureImporter{importer.NewBase("monument-detail-picture", d)}
}

func detailPictureGroup(p legacy.MonumentDetailPicture) string {
	return strings.Join([]string{p.ProjectID, p.CountryID, p.InstitutionID, p.MonumentID, p.DetailID, p.PictureID}, "\x00")
}

func (i *MonumentDetailPictureImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	order := map[string]int{}

	err := legacy.GroupBy(ctx, i.Deps().Source, legacy.QueryMonumentDetailPictures, detailPictureGroup, func(_ string, rows []legacy.MonumentDetailPicture) error {
		first := rows[0]
		key, err := identity.MonumentDetailPics.Key(first.ProjectID, first.CountryID, first.InstitutionID, first.MonumentID, first.DetailID, first.PictureID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		ownerKey := identity.MonumentDetails.MustKey(first.ProjectID, first.CountryID, first.InstitutionID, first.MonumentID, first.DetailID)
		order[ownerKey]++

		path := firstPath(rows, func(p legacy.MonumentDetailPicture) *string { return p.Path })
		if path == "" {
			i.Fail(res, key, errMissingPath)
			return nil
		}
		owner, err := mustResolve(ctx, &i.Base, entity.KindItem, ownerKey)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		main, _ := pick(&i.Base, rows, func(p legacy.MonumentDetailPicture) string { return p.LangID })
		importImage(ctx, &i.Base, res, entity.KindItemImage, key, owner, path, transform.Inline(str(main.Caption)), order[ownerKey], main)
		return nil
	})
	return i.Finish(res, err)
}

// PartnerPictureImporter creates partner images for museums and
// institutions.
type PartnerPictureImporter struct{ importer.Base }

func NewPartnerPictureImporter(d *importer.Deps) importer.Importer {
	return &PartnerPictureImporter{importer.NewBase("partner-picture", d)}
}

func (i *PartnerPictureImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	for _, src := range []struct {
		query   string
		picture identity.Table
		owner   identity.Table
	}{
		{legacy.QueryMuseumPictures, identity.MuseumPictures, identity.Museums},
		{legacy.QueryInstitutionPictures, identity.InstitutionPics, identity.Institutions},
	} {
		order := map[string]int{}
		err := legacy.Each(ctx, i.Deps().Source, src.query, func(row legacy.PartnerPicture) error {
			key, err := src.picture.Key(row.PartnerID, row.Country, row.ImageNumber)
			if err != nil {
				i.Fail(res, "", err)
				return nil
			}
			ownerKey := src.owner.MustKey(row.PartnerID, row.Country)
			order[ownerKey]++
			path := str(row.Path)
			if path == "" {
				i.Fail(res, key, errMissingPath)
				return nil
			}
			owner, err := mustResolve(ctx, &i.Base, entity.KindPartner, ownerKey)
			if err != nil {
				i.Fail(res, key, err)
				return nil
			}
			importImage(ctx, &i.Base, res, entity.KindPartnerImage, key, owner, path, transform.Inline(str(row.Caption)), order[ownerKey], row)
			return nil
		})
		if err != nil {
			return i.Finish(res, err)
		}
	}
	return i.Finish(res, nil)
}

// firstPath returns the first non-blank path among the language rows of a
// picture.
func firstPath[T any](rows []T, path func(T) *string) string {
	for _, r := range rows {
		if p := str(path(r)); p != "" {
			return p
		}
	}
	return ""
}

func importImage(ctx context.Context, b *importer.Base, res *importer.Result, kind entity.Kind, key, ownerID, path, caption string, order int, sample any) {
	d := b.Deps()
	file := transform.InspectImage(d.Options.ImageRoot, path)
	if d.Options.ImageRoot != "" && !file.Found {
		b.Warn(res, "%s: file %s not found under image root", key, path)
	}
	rec := entity.Image{
		OwnerID:               ownerID,
		Path:                  path,
		OriginalName:          file.OriginalName,
		MimeType:              file.MimeType,
		Size:                  file.Size,
		AltText:               ptr(firstNonEmpty(caption, path)),
		DisplayOrder:          order,
		BackwardCompatibility: key,
	}
	create := d.Strategy.CreateItemImage
	if kind == entity.KindPartnerImage {
		create = d.Strategy.CreatePartnerImage
	}
	b.Process(ctx, res, importer.Row{
		Kind: kind, Key: key, Describe: path, Record: rec, Sample: sample,
		Create: func(ctx context.Context) (string, error) { return create(ctx, rec) },
	})
}
