package importers

import (
	"context"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

// Reasons recorded for links that cannot be resolved.
const (
	ReasonPartnerNotFound  = "partner-not-found"
	ReasonMonumentNotFound = "monument-not-found"
)

// PartnerMonumentLinker sets partner.monument_item_id for museums that
// reference a monument. It runs in the final phase, after every item
// exists. Both sides are looked up again by key; nothing is fabricated.
type PartnerMonumentLinker struct{ importer.Base }

func NewPartnerMonumentLinker(d *importer.Deps) importer.Importer {
	return &PartnerMonumentLinker{importer.NewBase("partner-monument-link", d)}
}

func (i *PartnerMonumentLinker) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	links := d.Links.Pending(entity.RelationMonumentLocation)
	if len(links) == 0 {
		// partner did not run in this process; read the references again
		err := legacy.Each(ctx, d.Source, legacy.QueryMuseumMonumentRefs, func(row legacy.Museum) error {
			ref, ok := row.MonumentRef()
			if !ok {
				return nil
			}
			key, err := identity.Museums.Key(row.MuseumID, row.Country)
			if err != nil {
				i.Fail(res, "", err)
				return nil
			}
			links = append(links, monumentLink(key, ref))
			return nil
		})
		if err != nil {
			return i.Finish(res, err)
		}
	}

	for _, l := range links {
		i.link(ctx, res, l)
	}
	return i.Finish(res, nil)
}

// monumentLink builds the link for a museum's five mon_* values. The
// language row key is tried first; the monument key itself is always stored
// on the item and backs it up when no translation carries the language key.
func monumentLink(museumKey string, ref []string) entity.DeferredLink {
	return entity.DeferredLink{
		SourceKind:        entity.KindPartner,
		SourceKey:         museumKey,
		TargetKind:        entity.KindItem,
		TargetKey:         identity.MonumentLangs.MustKey(ref...),
		TargetFallbackKey: identity.Monuments.MustKey(ref[:4]...),
		Relation:          entity.RelationMonumentLocation,
	}
}

func (i *PartnerMonumentLinker) link(ctx context.Context, res *importer.Result, l entity.DeferredLink) {
	d := i.Deps()
	partnerID, ok, err := i.Resolve(ctx, l.SourceKind, l.SourceKey)
	if err != nil {
		i.Fail(res, l.SourceKey, err)
		return
	}
	if !ok {
		i.Warn(res, "%s: %s", l.SourceKey, ReasonPartnerNotFound)
		i.MarkSkipped(res)
		return
	}
	itemID, ok, err := i.Resolve(ctx, l.TargetKind, l.TargetKey)
	if err == nil && !ok && l.TargetFallbackKey != "" {
		itemID, ok, err = i.Resolve(ctx, l.TargetKind, l.TargetFallbackKey)
	}
	if err != nil {
		i.Fail(res, l.SourceKey, err)
		return
	}
	if !ok {
		i.Warn(res, "%s -> %s: %s", l.SourceKey, l.TargetKey, ReasonMonumentNotFound)
		i.MarkSkipped(res)
		return
	}

	if !d.Options.Mutating() {
		i.Log().Infof("%s Would link partner %s -> monument %s", d.Options.Prefix(), l.SourceKey, l.TargetKey)
		i.MarkImported(res)
		return
	}
	if err := d.Strategy.UpdatePartnerMonumentItem(ctx, partnerID, itemID); err != nil {
		i.Fail(res, l.SourceKey, err)
		return
	}
	i.MarkImported(res)
}
