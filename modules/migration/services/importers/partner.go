package importers

import (
	"context"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

// partnerSource is a museum, institution or sharing-history partner
// normalised for creation.
type partnerSource struct {
	key        string
	typ        entity.PartnerType
	country    string
	name       string
	fallback   string
	city       string
	address    string
	phone      string
	email      string
	url        string
	fax        string
	projectKey string
	geo        string
	zoom       string
	names      []partnerName
	sample     any
}

type partnerName struct {
	lang        string
	name        string
	city        string
	description string
	extra       map[string]string
	sample      any
}

// PartnerImporter creates partners from museums and institutions. Museums
// that point at a monument queue a deferred link for the final phase.
type PartnerImporter struct{ importer.Base }

func NewPartnerImporter(d *importer.Deps) importer.Importer {
	return &PartnerImporter{importer.NewBase("partner", d)}
}

func (i *PartnerImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	ctxID, err := defaultContext(ctx, &i.Base)
	if err != nil {
		return i.Finish(res, err)
	}

	museumNames, err := legacy.All[legacy.MuseumName](ctx, d.Source, legacy.QueryMuseumNames)
	if err != nil {
		return i.Finish(res, err)
	}
	byMuseum := map[string][]partnerName{}
	for _, n := range museumNames {
		k := n.MuseumID + "\x00" + n.Country
		byMuseum[k] = append(byMuseum[k], partnerName{
			lang:        n.Lang,
			name:        transform.Inline(str(n.Name)),
			city:        str(n.City),
			description: transform.HTMLToText(str(n.Description)),
			extra: map[string]string{
				"ex_name":        transform.Inline(str(n.ExName)),
				"ex_description": transform.HTMLToText(str(n.ExDescription)),
				"how_to_reach":   transform.HTMLToText(str(n.HowToReach)),
				"opening_hours":  transform.HTMLToText(str(n.OpeningHours)),
			},
			sample: n,
		})
	}

	err = legacy.Each(ctx, d.Source, legacy.QueryMuseums, func(row legacy.Museum) error {
		key, err := identity.Museums.Key(row.MuseumID, row.Country)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		src := partnerSource{
			key: key, typ: entity.PartnerMuseum, country: row.Country,
			name: transform.Inline(str(row.Name)), fallback: row.MuseumID,
			city: str(row.City), address: str(row.Address), phone: str(row.Phone),
			email: str(row.Email), url: str(row.URL), fax: str(row.Fax),
			geo: str(row.GeoCoordinates), zoom: str(row.Zoom),
			names:  byMuseum[row.MuseumID+"\x00"+row.Country],
			sample: row,
		}
		if p := str(row.ProjectID); p != "" {
			src.projectKey = identity.Projects.MustKey(p)
		}
		if _, ok := importPartner(ctx, &i.Base, res, ctxID, src); !ok {
			return nil
		}
		if ref, ok := row.MonumentRef(); ok {
			d.Links.Push(monumentLink(key, ref))
		}
		return nil
	})
	if err != nil {
		return i.Finish(res, err)
	}

	instNames, err := legacy.All[legacy.InstitutionName](ctx, d.Source, legacy.QueryInstitutionNames)
	if err != nil {
		return i.Finish(res, err)
	}
	byInst := map[string][]partnerName{}
	for _, n := range instNames {
		k := n.InstitutionID + "\x00" + n.Country
		byInst[k] = append(byInst[k], partnerName{
			lang:        n.Lang,
			name:        transform.Inline(str(n.Name)),
			description: transform.HTMLToText(str(n.Description)),
			sample:      n,
		})
	}
	err = legacy.Each(ctx, d.Source, legacy.QueryInstitutions, func(row legacy.Institution) error {
		key, err := identity.Institutions.Key(row.InstitutionID, row.Country)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		importPartner(ctx, &i.Base, res, ctxID, partnerSource{
			key: key, typ: entity.PartnerInstitution, country: row.Country,
			name: transform.Inline(str(row.Name)), fallback: row.InstitutionID,
			city: str(row.City), address: str(row.Address), phone: str(row.Phone),
			email: str(row.Email), url: str(row.URL), fax: str(row.Fax),
			names:  byInst[row.InstitutionID+"\x00"+row.Country],
			sample: row,
		})
		return nil
	})
	return i.Finish(res, err)
}

// importPartner creates the partner row and its translations. ok is false
// when the row failed.
func importPartner(ctx context.Context, b *importer.Base, res *importer.Result, contextID string, p partnerSource) (string, bool) {
	d := b.Deps()
	rec := entity.Partner{
		Type:                  p.typ,
		InternalName:          firstNonEmpty(p.name, p.fallback),
		BackwardCompatibility: p.key,
		MapZoom:               transform.ParseZoom(p.zoom),
		Visible:               true,
	}
	if p.country != "" {
		code, err := d.Codes.Country(p.country)
		if err != nil {
			b.Fail(res, p.key, err)
			return "", false
		}
		rec.CountryID = &code
	}
	lat, lng, err := transform.ParseCoordinates(p.geo)
	if err != nil {
		b.WarnSample(res, "partner", p.sample, "invalid_coordinates", "%s: %v", p.key, err)
	} else {
		rec.Latitude, rec.Longitude = lat, lng
	}

	var collectionID *string
	if p.projectKey != "" {
		if rec.ProjectID, err = optionalRef(ctx, b, entity.KindProject, p.projectKey); err != nil {
			b.Fail(res, p.key, err)
			return "", false
		}
		if collectionID, err = optionalRef(ctx, b, entity.KindCollection, p.projectKey); err != nil {
			b.Fail(res, p.key, err)
			return "", false
		}
		if rec.ProjectID == nil {
			b.Warn(res, "%s: project %s not found", p.key, p.projectKey)
		}
	}

	id, outcome := b.Process(ctx, res, importer.Row{
		Kind: entity.KindPartner, Key: p.key, Describe: rec.InternalName, Record: rec, Sample: p.sample,
		Create: func(ctx context.Context) (string, error) { return d.Strategy.CreatePartner(ctx, rec) },
	})
	if outcome == importer.Failed {
		return "", false
	}

	createPartnerTranslations(ctx, b, res, id, contextID, p.key, p)

	if collectionID != nil {
		if err := b.Attach(ctx, *collectionID, []string{id}, entity.RelationCollectionPartners); err != nil {
			b.Warn(res, "%s: attach to collection: %v", p.key, err)
		}
	}
	return id, true
}

// createPartnerTranslations ensures one translation per name row, keyed
// under keyBase. It returns how many were created.
func createPartnerTranslations(ctx context.Context, b *importer.Base, res *importer.Result, partnerID, contextID, keyBase string, p partnerSource) int {
	d := b.Deps()
	created := 0
	for _, n := range p.names {
		lang, err := d.Codes.Language(n.lang)
		if err != nil {
			b.WarnSample(res, "partner_translation", n.sample, "unknown_language", "%s: %v", keyBase, err)
			continue
		}
		extra := map[string]string{"fax": p.fax}
		for k, v := range n.extra {
			extra[k] = v
		}
		tr := entity.PartnerTranslation{
			PartnerID:             partnerID,
			LanguageID:            lang,
			ContextID:             contextID,
			Name:                  firstNonEmpty(n.name, p.name, p.fallback),
			Description:           ptr(n.description),
			CityDisplay:           ptr(firstNonEmpty(n.city, p.city)),
			Address:               ptr(p.address),
			ContactWebsite:        ptr(p.url),
			ContactPhone:          ptr(p.phone),
			ContactEmailGeneral:   ptr(p.email),
			Extra:                 transform.Extra(extra),
			BackwardCompatibility: translationKey(keyBase, n.lang),
		}
		_, ok, err := b.Ensure(ctx, entity.KindPartnerTranslation, tr.BackwardCompatibility, tr, func(ctx context.Context) (string, error) {
			return d.Strategy.CreatePartnerTranslation(ctx, tr)
		})
		if err != nil {
			b.Warn(res, "%s: %v", tr.BackwardCompatibility, err)
			continue
		}
		if ok {
			created++
		}
	}
	return created
}
