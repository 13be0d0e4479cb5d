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

// logoSlots names the logo, logo1, logo2 and logo3 columns.
var logoSlots = []string{"primary", "secondary", "tertiary", "quaternary"}

func logoKey(partnerKey, slot string) string {
	return partnerKey + ":logo:" + slot
}

// PartnerLogoImporter stores museum and institution logos as partner
// images, one per filled logo column.
type PartnerLogoImporter struct{ importer.Base }

func NewPartnerLogoImporter(d *importer.Deps) importer.Importer {
	return &PartnerLogoImporter{importer.NewBase("partner-logo", d)}
}

func (i *PartnerLogoImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	for _, src := range []struct {
		query string
		owner identity.Table
	}{
		{legacy.QueryMuseumLogos, identity.Museums},
		{legacy.QueryInstitutionLogos, identity.Institutions},
	} {
		err := legacy.Each(ctx, i.Deps().Source, src.query, func(row legacy.PartnerLogos) error {
			key, err := src.owner.Key(row.PartnerID, str(row.Country))
			if err != nil {
				i.Fail(res, "", err)
				return nil
			}
			owner, err := mustResolve(ctx, &i.Base, entity.KindPartner, key)
			if err != nil {
				i.Fail(res, key, err)
				return nil
			}
			importLogos(ctx, &i.Base, res, key, owner, row)
			return nil
		})
		if err != nil {
			return i.Finish(res, err)
		}
	}
	return i.Finish(res, nil)
}

// ShPartnerLogoImporter stores Sharing History partner logos. A partner
// merged into an mwnf3 partner is found through partner_sh_partners.
type ShPartnerLogoImporter struct{ importer.Base }

func NewShPartnerLogoImporter(d *importer.Deps) importer.Importer {
	return &ShPartnerLogoImporter{importer.NewBase("sh-partner-logo", d)}
}

func (i *ShPartnerLogoImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	mapped, err := partnerMappings(ctx, d.Source)
	if err != nil {
		return i.Finish(res, err)
	}
	err = legacy.Each(ctx, d.Source, legacy.QueryShPartnerLogos, func(row legacy.PartnerLogos) error {
		key, err := identity.ShPartners.Key(row.PartnerID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		owner, ok, err := i.Resolve(ctx, entity.KindPartner, key)
		if err == nil && !ok && mapped[row.PartnerID] != "" {
			owner, ok, err = resolveMappedPartner(ctx, &i.Base, mapped[row.PartnerID])
		}
		if err != nil {
			i.Fail(res, key, err)
			return nil
		}
		if !ok {
			i.Warn(res, "%s: partner not found, logos skipped", key)
			i.MarkSkipped(res)
			return nil
		}
		importLogos(ctx, &i.Base, res, key, owner, row)
		return nil
	})
	return i.Finish(res, err)
}

func importLogos(ctx context.Context, b *importer.Base, res *importer.Result, partnerKey, ownerID string, row legacy.PartnerLogos) {
	name := firstNonEmpty(transform.Inline(str(row.Name)), row.PartnerID)
	for n, path := range row.Slots() {
		if path == "" {
			continue
		}
		slot := logoSlots[n]
		alt := fmt.Sprintf("%s - %s logo", name, slot)
		importImage(ctx, b, res, entity.KindPartnerImage, logoKey(partnerKey, slot), ownerID, path, alt, n+1, row)
	}
}
