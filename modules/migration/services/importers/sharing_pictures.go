package importers

import (
	"context"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

// loadShCaptions reads a caption table and groups its rows by picture.
func loadShCaptions(ctx context.Context, src *legacy.Source, query string, group func(legacy.ShPictureText) string) (map[string][]legacy.ShPictureText, error) {
	texts, err := legacy.All[legacy.ShPictureText](ctx, src, query)
	if err != nil {
		return nil, err
	}
	out := map[string][]legacy.ShPictureText{}
	for _, t := range texts {
		g := group(t)
		out[g] = append(out[g], t)
	}
	return out, nil
}

func shCaption(b *importer.Base, texts []legacy.ShPictureText) string {
	if len(texts) == 0 {
		return ""
	}
	main, _ := pick(b, texts, func(t legacy.ShPictureText) string { return t.Lang })
	return transform.Inline(str(main.Caption))
}

// ShMonumentPictureImporter attaches sh_monument_images to their SH
// monument item. Rows of one image number that differ only in type are one
// picture.
type ShMonumentPictureImporter struct{ importer.Base }

func NewShMonumentPictureImporter(d *importer.Deps) importer.Importer {
	return &ShMonumentPictureImporter{importer.NewBase("sh-monument-picture", d)}
}

func shImageGroup(p legacy.ShPicture) string {
	return shGroup(p.ProjectID, p.Country, p.Number, p.ImageNumber)
}

func (i *ShMonumentPictureImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	captions, err := loadShCaptions(ctx, d.Source, legacy.QueryShMonumentImageTexts, func(t legacy.ShPictureText) string {
		return shGroup(t.ProjectID, t.Country, t.Number, t.ImageNumber)
	})
	if err != nil {
		return i.Finish(res, err)
	}
	order := map[string]int{}

	err = legacy.GroupBy(ctx, d.Source, legacy.QueryShMonumentImages, shImageGroup, func(g string, rows []legacy.ShPicture) error {
		first := rows[0]
		key, err := identity.ShMonumentImages.Key(first.ProjectID, first.Country, first.Number, first.ImageNumber)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		ownerKey := identity.ShMonuments.MustKey(first.ProjectID, first.Country, first.Number)
		order[ownerKey]++

		path := firstPath(rows, func(p legacy.ShPicture) *string { return p.Path })
		if path == "" {
			i.Fail(res, key, errMissingPath)
			return nil
		}
		owner, err := mustResolve(ctx, &i.Base, entity.KindItem, ownerKey)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		importImage(ctx, &i.Base, res, entity.KindItemImage, key, owner, path, shCaption(&i.Base, captions[g]), order[ownerKey], first)
		return nil
	})
	return i.Finish(res, err)
}

// ShMonumentDetailPictureImporter attaches sh_monument_detail_pictures to
// their SH detail item.
type ShMonumentDetailPictureImporter struct{ importer.Base }

func NewShMonumentDetailPictureImporter(d *importer.Deps) importer.Importer {
	return &ShMonumentDetailPictureImporter{importer.NewBase("sh-monument-detail-picture", d)}
}

func (i *ShMonumentDetailPictureImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	captions, err := loadShCaptions(ctx, d.Source, legacy.QueryShDetailPictureTexts, func(t legacy.ShPictureText) string {
		return shGroup(t.ProjectID, t.Country, t.Number, t.DetailID, t.PictureID)
	})
	if err != nil {
		return i.Finish(res, err)
	}
	order := map[string]int{}

	err = legacy.Each(ctx, d.Source, legacy.QueryShDetailPictures, func(row legacy.ShPicture) error {
		key, err := identity.ShDetailPictures.Key(row.ProjectID, row.Country, row.Number, row.DetailID, row.PictureID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		ownerKey := identity.ShMonumentDetails.MustKey(row.ProjectID, row.Country, row.Number, row.DetailID)
		order[ownerKey]++

		path := str(row.Path)
		if path == "" {
			i.Fail(res, key, errMissingPath)
			return nil
		}
		owner, err := mustResolve(ctx, &i.Base, entity.KindItem, ownerKey)
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		caption := shCaption(&i.Base, captions[shGroup(row.ProjectID, row.Country, row.Number, row.DetailID, row.PictureID)])
		importImage(ctx, &i.Base, res, entity.KindItemImage, key, owner, path, caption, order[ownerKey], row)
		return nil
	})
	return i.Finish(res, err)
}
