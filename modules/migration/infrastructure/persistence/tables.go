package persistence

import (
	"fmt"
	"strings"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
)

// table describes where a kind is stored. cols are the named insert
// columns; col maps a column name to a record field tag when they differ.
type table struct {
	name string
	cols []string
	col  map[string]string
}

var tables = map[entity.Kind]table{
	entity.KindLanguage:            {name: "languages", cols: []string{"id", "internal_name", "backward_compatibility", "is_default"}},
	entity.KindLanguageTranslation: {name: "language_translations", cols: []string{"id", "language_id", "display_language_id", "name", "backward_compatibility"}},
	entity.KindCountry:             {name: "countries", cols: []string{"id", "internal_name", "backward_compatibility"}},
	entity.KindCountryTranslation:  {name: "country_translations", cols: []string{"id", "country_id", "language_id", "name", "backward_compatibility"}},
	entity.KindContext:             {name: "contexts", cols: []string{"id", "internal_name", "backward_compatibility", "is_default"}},
	entity.KindCollection: {name: "collections", cols: []string{
		"id", "context_id", "language_id", "parent_id", "type", "internal_name", "backward_compatibility",
		"latitude", "longitude", "map_zoom", "country_id",
	}},
	entity.KindCollectionTrans: {name: "collection_translations", cols: []string{
		"id", "collection_id", "language_id", "context_id", "title", "description", "quote", "backward_compatibility",
	}},
	entity.KindProject: {name: "projects", cols: []string{
		"id", "context_id", "language_id", "internal_name", "launch_date", "is_launched", "is_enabled", "backward_compatibility",
	}},
	entity.KindPartner: {name: "partners", cols: []string{
		"id", "type", "internal_name", "backward_compatibility", "country_id", "latitude", "longitude", "map_zoom",
		"project_id", "monument_item_id", "visible",
	}},
	entity.KindPartnerTranslation: {name: "partner_translations", cols: []string{
		"id", "partner_id", "language_id", "context_id", "name", "description", "city_display", "address",
		"contact_website", "contact_phone", "contact_email_general", "extra", "backward_compatibility",
	}},
	entity.KindItem: {name: "items", cols: []string{
		"id", "type", "internal_name", "backward_compatibility", "collection_id", "partner_id", "country_id",
		"project_id", "parent_id", "owner_reference", "mwnf_reference", "latitude", "longitude", "map_zoom",
	}},
	entity.KindItemTranslation: {name: "item_translations", cols: []string{
		"id", "item_id", "language_id", "context_id", "name", "description", "alternate_name", "type", "holder",
		"owner", "initial_owner", "dates", "location", "dimensions", "place_of_production", "method_for_datation",
		"method_for_provenance", "obtention", "bibliography", "author_id", "text_copy_editor_id", "translator_id",
		"translation_copy_editor_id", "extra", "backward_compatibility",
	}},
	entity.KindTag:    {name: "tags", cols: []string{"id", "internal_name", "category", "language_id", "description", "backward_compatibility"}},
	entity.KindAuthor: {name: "authors", cols: []string{"id", "name", "internal_name", "backward_compatibility"}},
	entity.KindArtist: {name: "artists", cols: []string{
		"id", "name", "internal_name", "place_of_birth", "place_of_death", "date_of_birth", "date_of_death",
		"period_of_activity", "backward_compatibility",
	}},
	entity.KindItemImage: {
		name: "item_images",
		cols: []string{"id", "item_id", "path", "original_name", "mime_type", "size", "alt_text", "display_order", "backward_compatibility"},
		col:  map[string]string{"item_id": "owner_id"},
	},
	entity.KindPartnerImage: {
		name: "partner_images",
		cols: []string{"id", "partner_id", "path", "original_name", "mime_type", "size", "alt_text", "display_order", "backward_compatibility"},
		col:  map[string]string{"partner_id": "owner_id"},
	},
	entity.KindGlossary:            {name: "glossaries", cols: []string{"id", "internal_name", "backward_compatibility"}},
	entity.KindGlossaryTranslation: {name: "glossary_translations", cols: []string{"id", "glossary_id", "language_id", "definition", "backward_compatibility"}},
	entity.KindGlossarySpelling:    {name: "glossary_spellings", cols: []string{"id", "glossary_id", "language_id", "spelling", "backward_compatibility"}},
}

var pivots = map[entity.Relation]struct {
	name, parent, child string
	extra               string
}{
	entity.RelationItemTags:           {name: "item_tag", parent: "item_id", child: "tag_id"},
	entity.RelationItemArtists:        {name: "artist_item", parent: "item_id", child: "artist_id"},
	entity.RelationCollectionItems:    {name: "collection_item", parent: "collection_id", child: "item_id"},
	entity.RelationCollectionPartners: {name: "collection_partner", parent: "collection_id", child: "partner_id", extra: "'project'"},
}

func lookupTable(kind entity.Kind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("no table for kind %q", kind)
	}
	return t, nil
}

func (t table) insertSQL() string {
	params := make([]string, len(t.cols))
	for i, c := range t.cols {
		field := c
		if f, ok := t.col[c]; ok {
			field = f
		}
		params[i] = ":" + field
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(t.cols, ", "), strings.Join(params, ", "),
	)
}

// findSQL resolves a key to an id. Items also answer for the keys of their
// translations, which is how per-language monument keys resolve.
func (t table) findSQL(kind entity.Kind) string {
	if kind == entity.KindItem {
		return `SELECT id FROM items WHERE backward_compatibility = $1
UNION ALL
SELECT item_id FROM item_translations WHERE backward_compatibility = $1
LIMIT 1`
	}
	return fmt.Sprintf("SELECT id FROM %s WHERE backward_compatibility = $1 LIMIT 1", t.name)
}

func (t table) snapshotSQL(kind entity.Kind) string {
	if kind == entity.KindItem {
		return `SELECT backward_compatibility AS key, id FROM items WHERE backward_compatibility IS NOT NULL
UNION ALL
SELECT backward_compatibility AS key, item_id AS id FROM item_translations WHERE backward_compatibility IS NOT NULL`
	}
	return fmt.Sprintf("SELECT backward_compatibility AS key, id FROM %s WHERE backward_compatibility IS NOT NULL", t.name)
}
