package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gerrors "github.com/go-faster/errors"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
)

const duplicateCode = "DUPLICATE"

var resources = map[entity.Kind]string{
	entity.KindLanguage:            "language",
	entity.KindLanguageTranslation: "language-translation",
	entity.KindCountry:             "country",
	entity.KindCountryTranslation:  "country-translation",
	entity.KindContext:             "context",
	entity.KindCollection:          "collection",
	entity.KindCollectionTrans:     "collection-translation",
	entity.KindProject:             "project",
	entity.KindPartner:             "partner",
	entity.KindPartnerTranslation:  "partner-translation",
	entity.KindItem:                "item",
	entity.KindItemTranslation:     "item-translation",
	entity.KindTag:                 "tag",
	entity.KindAuthor:              "author",
	entity.KindArtist:              "artist",
	entity.KindItemImage:           "item-image",
	entity.KindPartnerImage:        "partner-image",
	entity.KindGlossary:            "glossary",
	entity.KindGlossaryTranslation: "glossary-translation",
	entity.KindGlossarySpelling:    "glossary-spelling",
}

var attachPaths = map[entity.Relation]string{
	entity.RelationItemTags:           "/api/item/%s/tags",
	entity.RelationItemArtists:        "/api/item/%s/artists",
	entity.RelationCollectionItems:    "/api/collection/%s/items",
	entity.RelationCollectionPartners: "/api/collection/%s/partners",
}

// Strategy implements domain.Strategy against the target REST API, one
// resource per kind under /api.
type Strategy struct {
	c *Client
}

var (
	_ domain.Strategy = (*Strategy)(nil)
	_ domain.Pinger   = (*Strategy)(nil)
)

func NewStrategy(c *Client) *Strategy {
	return &Strategy{c: c}
}

type idEnvelope struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type listRow struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`
}

type listEnvelope struct {
	Data []listRow `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func resourcePath(kind entity.Kind) (string, error) {
	r, ok := resources[kind]
	if !ok {
		return "", fmt.Errorf("no api resource for kind %q", kind)
	}
	return "/api/" + r, nil
}

// statusError turns a non-2xx response into an error. 409, and 422 that
// reports the canonical key as taken, are duplicates.
func statusError(status int, e *apiError) error {
	switch {
	case status == http.StatusConflict:
		return gerrors.Wrap(domain.ErrDuplicate, e.Error())
	case status == http.StatusUnprocessableEntity && isDuplicate422(e):
		return gerrors.Wrap(domain.ErrDuplicate, e.Error())
	case status == http.StatusNotFound:
		return gerrors.Wrap(domain.ErrNotFound, e.Error())
	default:
		return fmt.Errorf("api status %d: %w", status, e)
	}
}

func isDuplicate422(e *apiError) bool {
	if strings.EqualFold(e.Code, duplicateCode) {
		return true
	}
	if _, ok := e.Errors["backward_compatibility"]; ok {
		return true
	}
	return e.Meta["field"] == "backward_compatibility"
}

func (s *Strategy) Ping(ctx context.Context) error {
	status, apiErr, err := s.c.doJSON(ctx, http.MethodGet, "/api/info", nil, nil, nil)
	if err != nil {
		return err
	}
	if apiErr != nil {
		return statusError(status, apiErr)
	}
	return nil
}

// FindByCanonicalKey resolves key to an id. Items also answer for the keys
// of their translations, which is how per-language monument keys resolve.
func (s *Strategy) FindByCanonicalKey(ctx context.Context, kind entity.Kind, key string) (string, bool, error) {
	path, err := resourcePath(kind)
	if err != nil {
		return "", false, err
	}
	row, ok, err := s.findOne(ctx, path, key)
	if err != nil {
		return "", false, fmt.Errorf("find %s %s: %w", kind, key, err)
	}
	if ok || kind != entity.KindItem {
		return row.ID, ok, nil
	}

	row, ok, err = s.findOne(ctx, "/api/"+resources[entity.KindItemTranslation], key)
	if err != nil {
		return "", false, fmt.Errorf("find %s %s: %w", kind, key, err)
	}
	if !ok || row.ItemID == "" {
		return "", false, nil
	}
	return row.ItemID, true, nil
}

func (s *Strategy) findOne(ctx context.Context, path, key string) (listRow, bool, error) {
	q := url.Values{}
	q.Set("backward_compatibility", key)
	q.Set("per_page", "1")

	var out listEnvelope
	status, apiErr, err := s.c.doJSON(ctx, http.MethodGet, path, q, nil, &out)
	if err != nil {
		return listRow{}, false, err
	}
	if apiErr != nil {
		if status == http.StatusNotFound {
			return listRow{}, false, nil
		}
		return listRow{}, false, statusError(status, apiErr)
	}
	if len(out.Data) == 0 || out.Data[0].ID == "" {
		return listRow{}, false, nil
	}
	return out.Data[0], true, nil
}

func (s *Strategy) create(ctx context.Context, kind entity.Kind, body any) (string, error) {
	path, err := resourcePath(kind)
	if err != nil {
		return "", err
	}
	var out idEnvelope
	status, apiErr, err := s.c.doJSON(ctx, http.MethodPost, path, nil, body, &out)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", kind, err)
	}
	if apiErr != nil {
		return "", fmt.Errorf("create %s: %w", kind, statusError(status, apiErr))
	}
	if out.Data.ID == "" {
		return "", fmt.Errorf("create %s: response carried no id", kind)
	}
	return out.Data.ID, nil
}

func (s *Strategy) CreateLanguage(ctx context.Context, rec entity.Language) (string, error) {
	return s.create(ctx, entity.KindLanguage, rec)
}

func (s *Strategy) CreateLanguageTranslation(ctx context.Context, rec entity.LanguageTranslation) (string, error) {
	return s.create(ctx, entity.KindLanguageTranslation, rec)
}

func (s *Strategy) CreateCountry(ctx context.Context, rec entity.Country) (string, error) {
	return s.create(ctx, entity.KindCountry, rec)
}

func (s *Strategy) CreateCountryTranslation(ctx context.Context, rec entity.CountryTranslation) (string, error) {
	return s.create(ctx, entity.KindCountryTranslation, rec)
}

func (s *Strategy) CreateContext(ctx context.Context, rec entity.Context) (string, error) {
	return s.create(ctx, entity.KindContext, rec)
}

func (s *Strategy) CreateCollection(ctx context.Context, rec entity.Collection) (string, error) {
	return s.create(ctx, entity.KindCollection, rec)
}

func (s *Strategy) CreateCollectionTranslation(ctx context.Context, rec entity.CollectionTranslation) (string, error) {
	return s.create(ctx, entity.KindCollectionTrans, rec)
}

func (s *Strategy) CreateProject(ctx context.Context, rec entity.Project) (string, error) {
	return s.create(ctx, entity.KindProject, rec)
}

func (s *Strategy) CreatePartner(ctx context.Context, rec entity.Partner) (string, error) {
	return s.create(ctx, entity.KindPartner, rec)
}

func (s *Strategy) CreatePartnerTranslation(ctx context.Context, rec entity.PartnerTranslation) (string, error) {
	return s.create(ctx, entity.KindPartnerTranslation, rec)
}

func (s *Strategy) CreateItem(ctx context.Context, rec entity.Item) (string, error) {
	return s.create(ctx, entity.KindItem, rec)
}

func (s *Strategy) CreateItemTranslation(ctx context.Context, rec entity.ItemTranslation) (string, error) {
	return s.create(ctx, entity.KindItemTranslation, rec)
}

func (s *Strategy) CreateTag(ctx context.Context, rec entity.Tag) (string, error) {
	return s.create(ctx, entity.KindTag, rec)
}

func (s *Strategy) CreateAuthor(ctx context.Context, rec entity.Author) (string, error) {
	return s.create(ctx, entity.KindAuthor, rec)
}

func (s *Strategy) CreateArtist(ctx context.Context, rec entity.Artist) (string, error) {
	return s.create(ctx, entity.KindArtist, rec)
}

func (s *Strategy) CreateItemImage(ctx context.Context, rec entity.Image) (string, error) {
	return s.create(ctx, entity.KindItemImage, struct {
		entity.Image
		ItemID string `json:"item_id"`
	}{rec, rec.OwnerID})
}

func (s *Strategy) CreatePartnerImage(ctx context.Context, rec entity.Image) (string, error) {
	return s.create(ctx, entity.KindPartnerImage, struct {
		entity.Image
		PartnerID string `json:"partner_id"`
	}{rec, rec.OwnerID})
}

func (s *Strategy) CreateGlossary(ctx context.Context, rec entity.Glossary) (string, error) {
	return s.create(ctx, entity.KindGlossary, rec)
}

func (s *Strategy) CreateGlossaryTranslation(ctx context.Context, rec entity.GlossaryTranslation) (string, error) {
	return s.create(ctx, entity.KindGlossaryTranslation, rec)
}

func (s *Strategy) CreateGlossarySpelling(ctx context.Context, rec entity.GlossarySpelling) (string, error) {
	return s.create(ctx, entity.KindGlossarySpelling, rec)
}

func (s *Strategy) Attach(ctx context.Context, parentID string, childIDs []string, rel entity.Relation) error {
	tmpl, ok := attachPaths[rel]
	if !ok {
		return fmt.Errorf("no api endpoint for relation %q", rel)
	}
	if len(childIDs) == 0 {
		return nil
	}
	path := fmt.Sprintf(tmpl, url.PathEscape(parentID))
	status, apiErr, err := s.c.doJSON(ctx, http.MethodPatch, path, nil, map[string][]string{"attach": childIDs}, nil)
	if err != nil {
		return fmt.Errorf("attach %s: %w", rel, err)
	}
	if apiErr != nil {
		return fmt.Errorf("attach %s: %w", rel, statusError(status, apiErr))
	}
	return nil
}

func (s *Strategy) UpdatePartnerMonumentItem(ctx context.Context, partnerID, itemID string) error {
	path := "/api/partner/" + url.PathEscape(partnerID)
	status, apiErr, err := s.c.doJSON(ctx, http.MethodPatch, path, nil, map[string]string{"monument_item_id": itemID}, nil)
	if err != nil {
		return fmt.Errorf("update partner %s: %w", partnerID, err)
	}
	if apiErr != nil {
		return fmt.Errorf("update partner %s: %w", partnerID, statusError(status, apiErr))
	}
	return nil
}

func (s *Strategy) CountCollectionItems(ctx context.Context, collectionID string) (int, error) {
	path := "/api/collection/" + url.PathEscape(collectionID) + "/items"
	q := url.Values{}
	q.Set("per_page", "1")

	var out listEnvelope
	status, apiErr, err := s.c.doJSON(ctx, http.MethodGet, path, q, nil, &out)
	if err != nil {
		return 0, fmt.Errorf("count collection %s items: %w", collectionID, err)
	}
	if apiErr != nil {
		return 0, fmt.Errorf("count collection %s items: %w", collectionID, statusError(status, apiErr))
	}
	return out.Meta.Total, nil
}

func (s *Strategy) Delete(ctx context.Context, kind entity.Kind, id string) error {
	path, err := resourcePath(kind)
	if err != nil {
		return err
	}
	status, apiErr, err := s.c.doJSON(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil, nil)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, err)
	}
	if apiErr != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, statusError(status, apiErr))
	}
	return nil
}
