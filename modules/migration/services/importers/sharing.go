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

// ShProjectImporter imports Sharing History projects the same way as mwnf3
// projects, under their own schema's keys.
type ShProjectImporter struct{ importer.Base }

func NewShProjectImporter(d *importer.Deps) importer.Importer {
	return &ShProjectImporter{importer.NewBase("sh-project", d)}
}

func (i *ShProjectImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	names, err := legacy.All[legacy.ShProjectName](ctx, d.Source, legacy.QueryShProjectNames)
	if err != nil {
		return i.Finish(res, err)
	}
	byProject := map[string][]projectTitle{}
	for _, n := range names {
		byProject[n.ProjectID] = append(byProject[n.ProjectID], projectTitle{
			lang:  n.Lang,
			title: transform.Inline(str(n.Title)),
			description: transform.Join("\n\n",
				transform.HTMLToText(str(n.ShortIntroduction)),
				transform.HTMLToText(str(n.Introduction))),
			sample: n,
		})
	}

	err = legacy.Each(ctx, d.Source, legacy.QueryShProjects, func(row legacy.ShProject) error {
		key, err := identity.ShProjects.Key(row.ProjectID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		enabled := true
		if row.Show != nil {
			enabled = transform.Flag(*row.Show)
		}
		importProject(ctx, &i.Base, res, projectSource{
			key:          key,
			internalName: firstNonEmpty(transform.Inline(str(row.Name)), row.ProjectID),
			launchDate:   str(row.AddedDate),
			enabled:      enabled,
			names:        byProject[row.ProjectID],
			sample:       row,
		})
		return nil
	})
	return i.Finish(res, err)
}

// ShPartnerImporter imports Sharing History partners. A partner mapped to an
// mwnf3 museum or institution reuses that partner: its key becomes an alias
// and only its translations are added.
type ShPartnerImporter struct{ importer.Base }

func NewShPartnerImporter(d *importer.Deps) importer.Importer {
	return &ShPartnerImporter{importer.NewBase("sh-partner", d)}
}

func (i *ShPartnerImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	ctxID, err := defaultContext(ctx, &i.Base)
	if err != nil {
		return i.Finish(res, err)
	}
	mapped, err := partnerMappings(ctx, d.Source)
	if err != nil {
		return i.Finish(res, err)
	}
	names, err := legacy.All[legacy.ShPartnerName](ctx, d.Source, legacy.QueryShPartnerNames)
	if err != nil {
		return i.Finish(res, err)
	}
	byPartner := map[string][]partnerName{}
	for _, n := range names {
		byPartner[n.PartnersID] = append(byPartner[n.PartnersID], partnerName{
			lang:        n.Lang,
			name:        transform.Inline(str(n.Name)),
			city:        str(n.City),
			description: transform.HTMLToText(str(n.Description)),
			extra: map[string]string{
				"department":    transform.Inline(str(n.Department)),
				"how_to_reach":  transform.HTMLToText(str(n.HowToReach)),
				"opening_hours": transform.HTMLToText(str(n.OpeningHours)),
			},
			sample: n,
		})
	}

	err = legacy.Each(ctx, d.Source, legacy.QueryShPartners, func(row legacy.ShPartner) error {
		key, err := identity.ShPartners.Key(row.PartnersID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		src := partnerSource{
			key: key, typ: shPartnerType(str(row.PartnerCategory)), country: str(row.Country),
			name: transform.Inline(str(row.Name)), fallback: row.PartnersID,
			city: str(row.City), address: str(row.Address), phone: str(row.Phone),
			email: str(row.Email), url: str(row.URL),
			names:  byPartner[row.PartnersID],
			sample: row,
		}
		if all, ok := mapped[row.PartnersID]; ok {
			existing, found, err := resolveMappedPartner(ctx, &i.Base, all)
			if err != nil {
				i.Fail(res, key, err)
				return nil
			}
			if found {
				d.Tracker.Register(entity.KindPartner, key, existing)
				if createPartnerTranslations(ctx, &i.Base, res, existing, ctxID, key, src) > 0 {
					i.MarkImported(res)
				} else {
					i.MarkSkipped(res)
				}
				return nil
			}
			i.Warn(res, "%s: mapped partner %s not found, creating a new partner", key, all)
		}
		importPartner(ctx, &i.Base, res, ctxID, src)
		return nil
	})
	return i.Finish(res, err)
}

// partnerMappings maps SH partners_id to mwnf3 all_partners_id.
func partnerMappings(ctx context.Context, src *legacy.Source) (map[string]string, error) {
	mappings, err := legacy.All[legacy.PartnerMapping](ctx, src, legacy.QueryPartnerShMapping)
	if err != nil {
		return nil, err
	}
	mapped := make(map[string]string, len(mappings))
	for _, m := range mappings {
		mapped[strings.TrimSpace(m.PartnersID)] = strings.TrimSpace(m.AllPartnersID)
	}
	return mapped, nil
}

// resolveMappedPartner finds the mwnf3 partner behind an all_partners_id.
// The id starts with the two-letter country code of the museum or
// institution.
func resolveMappedPartner(ctx context.Context, b *importer.Base, allID string) (string, bool, error) {
	if len(allID) < 3 {
		return "", false, nil
	}
	country := strings.ToLower(allID[:2])
	for _, t := range []identity.Table{identity.Museums, identity.Institutions} {
		id, ok, err := b.Resolve(ctx, entity.KindPartner, t.MustKey(allID, country))
		if err != nil || ok {
			return id, ok, err
		}
	}
	return "", false, nil
}

func shPartnerType(category string) entity.PartnerType {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "museum"):
		return entity.PartnerMuseum
	case strings.Contains(c, "individual"), strings.Contains(c, "person"):
		return entity.PartnerIndividual
	}
	return entity.PartnerInstitution
}
