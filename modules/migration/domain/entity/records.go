package entity

// Records passed to the persistence strategy. Field tags serve three
// consumers: `db` for the named SQL statements, `json` for the HTTP API and
// `validate` for the pre-create check run by every importer.

type Language struct {
	ID                    string `db:"id" json:"id" validate:"required,len=3"`
	InternalName          string `db:"internal_name" json:"internal_name" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
	IsDefault             bool   `db:"is_default" json:"is_default"`
}

type LanguageTranslation struct {
	ID                    string `db:"id" json:"-"`
	LanguageID            string `db:"language_id" json:"language_id" validate:"required,len=3"`
	DisplayLanguageID     string `db:"display_language_id" json:"display_language_id" validate:"required,len=3"`
	Name                  string `db:"name" json:"name" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type Country struct {
	ID                    string `db:"id" json:"id" validate:"required,min=3,max=5"`
	InternalName          string `db:"internal_name" json:"internal_name" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type CountryTranslation struct {
	ID                    string `db:"id" json:"-"`
	CountryID             string `db:"country_id" json:"country_id" validate:"required"`
	LanguageID            string `db:"language_id" json:"language_id" validate:"required,len=3"`
	Name                  string `db:"name" json:"name" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type Context struct {
	ID                    string `db:"id" json:"-"`
	InternalName          string `db:"internal_name" json:"internal_name" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
	IsDefault             bool   `db:"is_default" json:"is_default"`
}

type Collection struct {
	ID                    string   `db:"id" json:"-"`
	ContextID             string   `db:"context_id" json:"context_id" validate:"required"`
	LanguageID            string   `db:"language_id" json:"language_id" validate:"required,len=3"`
	ParentID              *string  `db:"parent_id" json:"parent_id"`
	Type                  string   `db:"type" json:"type" validate:"required"`
	InternalName          string   `db:"internal_name" json:"internal_name" validate:"required"`
	BackwardCompatibility string   `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
	Latitude              *float64 `db:"latitude" json:"latitude"`
	Longitude             *float64 `db:"longitude" json:"longitude"`
	MapZoom               *int     `db:"map_zoom" json:"map_zoom"`
	CountryID             *string  `db:"country_id" json:"country_id"`
}

type CollectionTranslation struct {
	ID                    string  `db:"id" json:"-"`
	CollectionID          string  `db:"collection_id" json:"collection_id" validate:"required"`
	LanguageID            string  `db:"language_id" json:"language_id" validate:"required,len=3"`
	ContextID             string  `db:"context_id" json:"context_id" validate:"required"`
	Title                 string  `db:"title" json:"title" validate:"required"`
	Description           *string `db:"description" json:"description"`
	Quote                 *string `db:"quote" json:"quote"`
	BackwardCompatibility string  `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type Project struct {
	ID                    string  `db:"id" json:"-"`
	ContextID             string  `db:"context_id" json:"context_id" validate:"required"`
	LanguageID            string  `db:"language_id" json:"language_id" validate:"required,len=3"`
	InternalName          string  `db:"internal_name" json:"internal_name" validate:"required"`
	LaunchDate            *string `db:"launch_date" json:"launch_date"`
	IsLaunched            bool    `db:"is_launched" json:"is_launched"`
	IsEnabled             bool    `db:"is_enabled" json:"is_enabled"`
	BackwardCompatibility string  `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type PartnerType string

const (
	PartnerMuseum      PartnerType = "museum"
	PartnerInstitution PartnerType = "institution"
	PartnerIndividual  PartnerType = "individual"
)

type Partner struct {
	ID                    string      `db:"id" json:"-"`
	Type                  PartnerType `db:"type" json:"type" validate:"required,oneof=museum institution individual"`
	InternalName          string      `db:"internal_name" json:"internal_name" validate:"required"`
	BackwardCompatibility string      `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
	CountryID             *string     `db:"country_id" json:"country_id"`
	Latitude              *float64    `db:"latitude" json:"latitude"`
	Longitude             *float64    `db:"longitude" json:"longitude"`
	MapZoom               *int        `db:"map_zoom" json:"map_zoom"`
	ProjectID             *string     `db:"project_id" json:"project_id"`
	MonumentItemID        *string     `db:"monument_item_id" json:"monument_item_id"`
	Visible               bool        `db:"visible" json:"visible"`
}

type PartnerTranslation struct {
	ID                    string  `db:"id" json:"-"`
	PartnerID             string  `db:"partner_id" json:"partner_id" validate:"required"`
	LanguageID            string  `db:"language_id" json:"language_id" validate:"required,len=3"`
	ContextID             string  `db:"context_id" json:"context_id" validate:"required"`
	Name                  string  `db:"name" json:"name" validate:"required"`
	Description           *string `db:"description" json:"description"`
	CityDisplay           *string `db:"city_display" json:"city_display"`
	Address               *string `db:"address" json:"address"`
	ContactWebsite        *string `db:"contact_website" json:"contact_website"`
	ContactPhone          *string `db:"contact_phone" json:"contact_phone"`
	ContactEmailGeneral   *string `db:"contact_email_general" json:"contact_email_general"`
	Extra                 *string `db:"extra" json:"extra"`
	BackwardCompatibility string  `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type ItemType string

const (
	ItemObject   ItemType = "object"
	ItemMonument ItemType = "monument"
	ItemDetail   ItemType = "detail"
	ItemPicture  ItemType = "picture"
)

type Item struct {
	ID                    string   `db:"id" json:"-"`
	Type                  ItemType `db:"type" json:"type" validate:"required,oneof=object monument detail picture"`
	InternalName          string   `db:"internal_name" json:"internal_name" validate:"required"`
	BackwardCompatibility string   `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
	CollectionID          *string  `db:"collection_id" json:"collection_id"`
	PartnerID             *string  `db:"partner_id" json:"partner_id"`
	CountryID             *string  `db:"country_id" json:"country_id"`
	ProjectID             *string  `db:"project_id" json:"project_id"`
	ParentID              *string  `db:"parent_id" json:"parent_id"`
	OwnerReference        *string  `db:"owner_reference" json:"owner_reference"`
	MwnfReference         *string  `db:"mwnf_reference" json:"mwnf_reference"`
	Latitude              *float64 `db:"latitude" json:"latitude"`
	Longitude             *float64 `db:"longitude" json:"longitude"`
	MapZoom               *int     `db:"map_zoom" json:"map_zoom"`
}

type ItemTranslation struct {
	ID                      string  `db:"id" json:"-"`
	ItemID                  string  `db:"item_id" json:"item_id" validate:"required"`
	LanguageID              string  `db:"language_id" json:"language_id" validate:"required,len=3"`
	ContextID               string  `db:"context_id" json:"context_id" validate:"required"`
	Name                    string  `db:"name" json:"name" validate:"required"`
	Description             string  `db:"description" json:"description" validate:"required"`
	AlternateName           *string `db:"alternate_name" json:"alternate_name" validate:"omitempty,max=255"`
	Type                    *string `db:"type" json:"type" validate:"omitempty,max=255"`
	Holder                  *string `db:"holder" json:"holder"`
	Owner                   *string `db:"owner" json:"owner"`
	InitialOwner            *string `db:"initial_owner" json:"initial_owner"`
	Dates                   *string `db:"dates" json:"dates"`
	Location                *string `db:"location" json:"location"`
	Dimensions              *string `db:"dimensions" json:"dimensions"`
	PlaceOfProduction       *string `db:"place_of_production" json:"place_of_production"`
	MethodForDatation       *string `db:"method_for_datation" json:"method_for_datation"`
	MethodForProvenance     *string `db:"method_for_provenance" json:"method_for_provenance"`
	Obtention               *string `db:"obtention" json:"obtention"`
	Bibliography            *string `db:"bibliography" json:"bibliography"`
	AuthorID                *string `db:"author_id" json:"author_id"`
	TextCopyEditorID        *string `db:"text_copy_editor_id" json:"text_copy_editor_id"`
	TranslatorID            *string `db:"translator_id" json:"translator_id"`
	TranslationCopyEditorID *string `db:"translation_copy_editor_id" json:"translation_copy_editor_id"`
	Extra                   *string `db:"extra" json:"extra"`
	BackwardCompatibility   string  `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type Tag struct {
	ID                    string  `db:"id" json:"-"`
	InternalName          string  `db:"internal_name" json:"internal_name" validate:"required"`
	Category              string  `db:"category" json:"category" validate:"required"`
	LanguageID            string  `db:"language_id" json:"language_id" validate:"required,len=3"`
	Description           *string `db:"description" json:"description"`
	BackwardCompatibility string  `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type Author struct {
	ID                    string `db:"id" json:"-"`
	Name                  string `db:"name" json:"name" validate:"required"`
	InternalName          string `db:"internal_name" json:"internal_name" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type Artist struct {
	ID                    string  `db:"id" json:"-"`
	Name                  string  `db:"name" json:"name" validate:"required"`
	InternalName          string  `db:"internal_name" json:"internal_name" validate:"required"`
	PlaceOfBirth          *string `db:"place_of_birth" json:"place_of_birth"`
	PlaceOfDeath          *string `db:"place_of_death" json:"place_of_death"`
	DateOfBirth           *string `db:"date_of_birth" json:"date_of_birth"`
	DateOfDeath           *string `db:"date_of_death" json:"date_of_death"`
	PeriodOfActivity      *string `db:"period_of_activity" json:"period_of_activity"`
	BackwardCompatibility string  `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

// Image is shared by item and partner images; OwnerID is the item or partner.
type Image struct {
	ID                    string  `db:"id" json:"-"`
	OwnerID               string  `db:"owner_id" json:"-" validate:"required"`
	Path                  string  `db:"path" json:"path" validate:"required"`
	OriginalName          string  `db:"original_name" json:"original_name" validate:"required"`
	MimeType              string  `db:"mime_type" json:"mime_type" validate:"required"`
	Size                  int64   `db:"size" json:"size" validate:"gte=0"`
	AltText               *string `db:"alt_text" json:"alt_text"`
	DisplayOrder          int     `db:"display_order" json:"display_order" validate:"gte=1"`
	BackwardCompatibility string  `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type Glossary struct {
	ID                    string `db:"id" json:"-"`
	InternalName          string `db:"internal_name" json:"internal_name" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type GlossaryTranslation struct {
	ID                    string `db:"id" json:"-"`
	GlossaryID            string `db:"glossary_id" json:"glossary_id" validate:"required"`
	LanguageID            string `db:"language_id" json:"language_id" validate:"required,len=3"`
	Definition            string `db:"definition" json:"definition" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}

type GlossarySpelling struct {
	ID                    string `db:"id" json:"-"`
	GlossaryID            string `db:"glossary_id" json:"glossary_id" validate:"required"`
	LanguageID            string `db:"language_id" json:"language_id" validate:"required,len=3"`
	Spelling              string `db:"spelling" json:"spelling" validate:"required"`
	BackwardCompatibility string `db:"backward_compatibility" json:"backward_compatibility" validate:"required"`
}
