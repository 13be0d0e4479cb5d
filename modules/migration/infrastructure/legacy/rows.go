package legacy

import "strings"

// Row types mirror the legacy columns. Nullable columns are pointers; every
// struct carries json tags so it can be stored as a raw sample.

type Language struct {
	LangID string  `db:"lang_id" json:"lang_id"`
	Name   *string `db:"name" json:"name"`
}

type LanguageName struct {
	LangID string  `db:"lang_id" json:"lang_id"`
	Lang   string  `db:"lang" json:"lang"`
	Name   *string `db:"name" json:"name"`
}

type Country struct {
	CountryID string  `db:"country_id" json:"country_id"`
	Name      *string `db:"name" json:"name"`
}

type CountryName struct {
	Country string  `db:"country" json:"country"`
	Lang    string  `db:"lang" json:"lang"`
	Name    *string `db:"name" json:"name"`
}

type Project struct {
	ProjectID  string  `db:"project_id" json:"project_id"`
	Name       *string `db:"name" json:"name"`
	LaunchDate *string `db:"launchdate" json:"launchdate"`
	Active     *string `db:"active" json:"active"`
}

type ProjectName struct {
	ProjectID   string  `db:"project_id" json:"project_id"`
	Lang        string  `db:"lang" json:"lang"`
	Name        *string `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}

type Museum struct {
	MuseumID         string  `db:"museum_id" json:"museum_id"`
	Country          string  `db:"country" json:"country"`
	Name             *string `db:"name" json:"name"`
	City             *string `db:"city" json:"city"`
	Address          *string `db:"address" json:"address"`
	Phone            *string `db:"phone" json:"phone"`
	Fax              *string `db:"fax" json:"fax"`
	Email            *string `db:"email" json:"email"`
	URL              *string `db:"url" json:"url"`
	ProjectID        *string `db:"project_id" json:"project_id"`
	GeoCoordinates   *string `db:"geoCoordinates" json:"geoCoordinates"`
	Zoom             *string `db:"zoom" json:"zoom"`
	MonProjectID     *string `db:"mon_project_id" json:"mon_project_id"`
	MonCountryID     *string `db:"mon_country_id" json:"mon_country_id"`
	MonInstitutionID *string `db:"mon_institution_id" json:"mon_institution_id"`
	MonMonumentID    *string `db:"mon_monument_id" json:"mon_monument_id"`
	MonLangID        *string `db:"mon_lang_id" json:"mon_lang_id"`
}

// MonumentRef returns the five mon_* values when all are present.
func (m Museum) MonumentRef() ([]string, bool) {
	vals := []string{Str(m.MonProjectID), Str(m.MonCountryID), Str(m.MonInstitutionID), Str(m.MonMonumentID), Str(m.MonLangID)}
	for _, v := range vals {
		if v == "" {
			return nil, false
		}
	}
	return vals, true
}

type MuseumName struct {
	MuseumID      string  `db:"museum_id" json:"museum_id"`
	Country       string  `db:"country" json:"country"`
	Lang          string  `db:"lang" json:"lang"`
	Name          *string `db:"name" json:"name"`
	ExName        *string `db:"ex_name" json:"ex_name"`
	City          *string `db:"city" json:"city"`
	Description   *string `db:"description" json:"description"`
	ExDescription *string `db:"ex_description" json:"ex_description"`
	HowToReach    *string `db:"how_to_reach" json:"how_to_reach"`
	OpeningHours  *string `db:"opening_hours" json:"opening_hours"`
}

type Institution struct {
	InstitutionID string  `db:"institution_id" json:"institution_id"`
	Country       string  `db:"country" json:"country"`
	Name          *string `db:"name" json:"name"`
	City          *string `db:"city" json:"city"`
	Address       *string `db:"address" json:"address"`
	Phone         *string `db:"phone" json:"phone"`
	Fax           *string `db:"fax" json:"fax"`
	Email         *string `db:"email" json:"email"`
	URL           *string `db:"url" json:"url"`
}

type InstitutionName struct {
	InstitutionID string  `db:"institution_id" json:"institution_id"`
	Country       string  `db:"country" json:"country"`
	Lang          string  `db:"lang" json:"lang"`
	Name          *string `db:"name" json:"name"`
	Description   *string `db:"description" json:"description"`
}

type Object struct {
	ProjectID               string  `db:"project_id" json:"project_id"`
	Country                 string  `db:"country" json:"country"`
	MuseumID                string  `db:"museum_id" json:"museum_id"`
	Number                  string  `db:"number" json:"number"`
	Lang                    string  `db:"lang" json:"lang"`
	WorkingNumber           *string `db:"working_number" json:"working_number"`
	InventoryID             *string `db:"inventory_id" json:"inventory_id"`
	Name                    *string `db:"name" json:"name"`
	Name2                   *string `db:"name2" json:"name2"`
	TypeOf                  *string `db:"typeof" json:"typeof"`
	HoldingMuseum           *string `db:"holding_museum" json:"holding_museum"`
	Location                *string `db:"location" json:"location"`
	Province                *string `db:"province" json:"province"`
	DateDescription         *string `db:"date_description" json:"date_description"`
	Dynasty                 *string `db:"dynasty" json:"dynasty"`
	CurrentOwner            *string `db:"current_owner" json:"current_owner"`
	OriginalOwner           *string `db:"original_owner" json:"original_owner"`
	Provenance              *string `db:"provenance" json:"provenance"`
	Dimensions              *string `db:"dimensions" json:"dimensions"`
	Materials               *string `db:"materials" json:"materials"`
	Artist                  *string `db:"artist" json:"artist"`
	BirthDate               *string `db:"birthdate" json:"birthdate"`
	BirthPlace              *string `db:"birthplace" json:"birthplace"`
	DeathDate               *string `db:"deathdate" json:"deathdate"`
	DeathPlace              *string `db:"deathplace" json:"deathplace"`
	PeriodActivity          *string `db:"period_activity" json:"period_activity"`
	ProductionPlace         *string `db:"production_place" json:"production_place"`
	Workshop                *string `db:"workshop" json:"workshop"`
	Description             *string `db:"description" json:"description"`
	Description2            *string `db:"description2" json:"description2"`
	DatationMethod          *string `db:"datationmethod" json:"datationmethod"`
	ProvenanceMethod        *string `db:"provenancemethod" json:"provenancemethod"`
	ObtentionMethod         *string `db:"obtentionmethod" json:"obtentionmethod"`
	Bibliography            *string `db:"bibliography" json:"bibliography"`
	Keywords                *string `db:"keywords" json:"keywords"`
	PreparedBy              *string `db:"preparedby" json:"preparedby"`
	CopyEditedBy            *string `db:"copyeditedby" json:"copyeditedby"`
	TranslationBy           *string `db:"translationby" json:"translationby"`
	TranslationCopyEditedBy *string `db:"translationcopyeditedby" json:"translationcopyeditedby"`
	Copyright               *string `db:"copyright" json:"copyright"`
	BindingDesc             *string `db:"binding_desc" json:"binding_desc"`
}

type Monument struct {
	ProjectID               string  `db:"project_id" json:"project_id"`
	Country                 string  `db:"country" json:"country"`
	InstitutionID           string  `db:"institution_id" json:"institution_id"`
	Number                  string  `db:"number" json:"number"`
	Lang                    string  `db:"lang" json:"lang"`
	WorkingNumber           *string `db:"working_number" json:"working_number"`
	InventoryID             *string `db:"inventory_id" json:"inventory_id"`
	Name                    *string `db:"name" json:"name"`
	Name2                   *string `db:"name2" json:"name2"`
	TypeOf                  *string `db:"typeof" json:"typeof"`
	Location                *string `db:"location" json:"location"`
	Province                *string `db:"province" json:"province"`
	DateDescription         *string `db:"date_description" json:"date_description"`
	Dynasty                 *string `db:"dynasty" json:"dynasty"`
	CurrentOwner            *string `db:"current_owner" json:"current_owner"`
	OriginalOwner           *string `db:"original_owner" json:"original_owner"`
	Description             *string `db:"description" json:"description"`
	Description2            *string `db:"description2" json:"description2"`
	DatationMethod          *string `db:"datationmethod" json:"datationmethod"`
	Bibliography            *string `db:"bibliography" json:"bibliography"`
	Keywords                *string `db:"keywords" json:"keywords"`
	PreparedBy              *string `db:"preparedby" json:"preparedby"`
	CopyEditedBy            *string `db:"copyeditedby" json:"copyeditedby"`
	TranslationBy           *string `db:"translationby" json:"translationby"`
	TranslationCopyEditedBy *string `db:"translationcopyeditedby" json:"translationcopyeditedby"`
	GeoCoordinates          *string `db:"geoCoordinates" json:"geoCoordinates"`
	Zoom                    *string `db:"zoom" json:"zoom"`
}

type MonumentDetail struct {
	ProjectID     string  `db:"project_id" json:"project_id"`
	CountryID     string  `db:"country_id" json:"country_id"`
	InstitutionID string  `db:"institution_id" json:"institution_id"`
	MonumentID    string  `db:"monument_id" json:"monument_id"`
	LangID        string  `db:"lang_id" json:"lang_id"`
	DetailID      string  `db:"detail_id" json:"detail_id"`
	Name          *string `db:"name" json:"name"`
	Description   *string `db:"description" json:"description"`
	Location      *string `db:"location" json:"location"`
	Date          *string `db:"date" json:"date"`
	Artist        *string `db:"artist" json:"artist"`
}

type ObjectPicture struct {
	ProjectID    string  `db:"project_id" json:"project_id"`
	Country      string  `db:"country" json:"country"`
	MuseumID     string  `db:"museum_id" json:"museum_id"`
	Number       string  `db:"number" json:"number"`
	Lang         string  `db:"lang" json:"lang"`
	Type         *string `db:"type" json:"type"`
	ImageNumber  string  `db:"image_number" json:"image_number"`
	Path         *string `db:"path" json:"path"`
	Caption      *string `db:"caption" json:"caption"`
	Photographer *string `db:"photographer" json:"photographer"`
	Copyright    *string `db:"copyright" json:"copyright"`
}

// PartnerPicture covers museums_pictures and institutions_pictures; the
// queries alias museum_id and institution_id to partner_id.
type PartnerPicture struct {
	PartnerID    string  `db:"partner_id" json:"partner_id"`
	Country      string  `db:"country" json:"country"`
	ImageNumber  string  `db:"image_number" json:"image_number"`
	Path         *string `db:"path" json:"path"`
	Caption      *string `db:"caption" json:"caption"`
	Photographer *string `db:"photographer" json:"photographer"`
	Copyright    *string `db:"copyright" json:"copyright"`
}

type MonumentDetailPicture struct {
	ProjectID     string  `db:"project_id" json:"project_id"`
	CountryID     string  `db:"country_id" json:"country_id"`
	InstitutionID string  `db:"institution_id" json:"institution_id"`
	MonumentID    string  `db:"monument_id" json:"monument_id"`
	DetailID      string  `db:"detail_id" json:"detail_id"`
	PictureID     string  `db:"picture_id" json:"picture_id"`
	LangID        string  `db:"lang_id" json:"lang_id"`
	Path          *string `db:"path" json:"path"`
	Caption       *string `db:"caption" json:"caption"`
	Photographer  *string `db:"photographer" json:"photographer"`
	Copyright     *string `db:"copyright" json:"copyright"`
}

// PartnerLogos covers the logo columns of museums, institutions and SH
// partners; the queries alias each id column to partner_id.
type PartnerLogos struct {
	PartnerID string  `db:"partner_id" json:"partner_id"`
	Country   *string `db:"country" json:"country"`
	Name      *string `db:"name" json:"name"`
	Logo      *string `db:"logo" json:"logo"`
	Logo1     *string `db:"logo1" json:"logo1"`
	Logo2     *string `db:"logo2" json:"logo2"`
	Logo3     *string `db:"logo3" json:"logo3"`
}

// Slots returns the logo paths in column order; blank columns are empty.
func (p PartnerLogos) Slots() []string {
	return []string{Str(p.Logo), Str(p.Logo1), Str(p.Logo2), Str(p.Logo3)}
}

type ShProject struct {
	ProjectID string  `db:"project_id" json:"project_id"`
	Name      *string `db:"name" json:"name"`
	AddedDate *string `db:"addeddate" json:"addeddate"`
	Show      *string `db:"show" json:"show"`
	Category  *string `db:"category" json:"category"`
}

type ShProjectName struct {
	ProjectID         string  `db:"project_id" json:"project_id"`
	Lang              string  `db:"lang" json:"lang"`
	Title             *string `db:"title" json:"title"`
	SubTitle          *string `db:"sub_title" json:"sub_title"`
	ShortIntroduction *string `db:"short_introduction" json:"short_introduction"`
	Introduction      *string `db:"introduction" json:"introduction"`
}

type ShPartner struct {
	PartnersID      string  `db:"partners_id" json:"partners_id"`
	Country         *string `db:"country" json:"country"`
	PartnerCategory *string `db:"partner_category" json:"partner_category"`
	Name            *string `db:"name" json:"name"`
	City            *string `db:"city" json:"city"`
	Address         *string `db:"address" json:"address"`
	Phone           *string `db:"phone" json:"phone"`
	Email           *string `db:"email" json:"email"`
	URL             *string `db:"url" json:"url"`
}

type ShPartnerName struct {
	PartnersID   string  `db:"partners_id" json:"partners_id"`
	Lang         string  `db:"lang" json:"lang"`
	Name         *string `db:"name" json:"name"`
	City         *string `db:"city" json:"city"`
	Department   *string `db:"department" json:"department"`
	Description  *string `db:"description" json:"description"`
	HowToReach   *string `db:"how_to_reach" json:"how_to_reach"`
	OpeningHours *string `db:"opening_hours" json:"opening_hours"`
}

type PartnerMapping struct {
	AllPartnersID string `db:"all_partners_id" json:"all_partners_id"`
	PartnersID    string `db:"partners_id" json:"partners_id"`
}

type ShObject struct {
	ProjectID     string  `db:"project_id" json:"project_id"`
	Country       string  `db:"country" json:"country"`
	Number        string  `db:"number" json:"number"`
	PartnersID    *string `db:"partners_id" json:"partners_id"`
	WorkingNumber *string `db:"working_number" json:"working_number"`
	InventoryID   *string `db:"inventory_id" json:"inventory_id"`
	StartDate     *string `db:"start_date" json:"start_date"`
	EndDate       *string `db:"end_date" json:"end_date"`
	DisplayStatus *string `db:"display_status" json:"display_status"`
	PdCountry     *string `db:"pd_country" json:"pd_country"`
}

type ShObjectText struct {
	ProjectID               string  `db:"project_id" json:"project_id"`
	Country                 string  `db:"country" json:"country"`
	Number                  string  `db:"number" json:"number"`
	Lang                    string  `db:"lang" json:"lang"`
	Name                    *string `db:"name" json:"name"`
	Name2                   *string `db:"name2" json:"name2"`
	SecondName              *string `db:"second_name" json:"second_name"`
	ThirdName               *string `db:"third_name" json:"third_name"`
	Archival                *string `db:"archival" json:"archival"`
	TypeOf                  *string `db:"typeof" json:"typeof"`
	HoldingMuseum           *string `db:"holding_museum" json:"holding_museum"`
	HoldingInstitution      *string `db:"holding_institution_org" json:"holding_institution_org"`
	Location                *string `db:"location" json:"location"`
	Province                *string `db:"province" json:"province"`
	DateDescription         *string `db:"date_description" json:"date_description"`
	Dynasty                 *string `db:"dynasty" json:"dynasty"`
	CurrentOwner            *string `db:"current_owner" json:"current_owner"`
	OriginalOwner           *string `db:"original_owner" json:"original_owner"`
	Provenance              *string `db:"provenance" json:"provenance"`
	Dimensions              *string `db:"dimensions" json:"dimensions"`
	Materials               *string `db:"materials" json:"materials"`
	Artist                  *string `db:"artist" json:"artist"`
	BirthDate               *string `db:"birthdate" json:"birthdate"`
	BirthPlace              *string `db:"birthplace" json:"birthplace"`
	DeathDate               *string `db:"deathdate" json:"deathdate"`
	DeathPlace              *string `db:"deathplace" json:"deathplace"`
	PeriodActivity          *string `db:"period_activity" json:"period_activity"`
	ProductionPlace         *string `db:"production_place" json:"production_place"`
	Workshop                *string `db:"workshop" json:"workshop"`
	Description             *string `db:"description" json:"description"`
	Description2            *string `db:"description2" json:"description2"`
	DatationMethod          *string `db:"datationmethod" json:"datationmethod"`
	ProvenanceMethod        *string `db:"provenancemethod" json:"provenancemethod"`
	ObtentionMethod         *string `db:"obtentionmethod" json:"obtentionmethod"`
	Bibliography            *string `db:"bibliography" json:"bibliography"`
	Keywords                *string `db:"keywords" json:"keywords"`
	PreparedBy              *string `db:"preparedby" json:"preparedby"`
	CopyEditedBy            *string `db:"copyeditedby" json:"copyeditedby"`
	TranslationBy           *string `db:"translationby" json:"translationby"`
	TranslationCopyEditedBy *string `db:"translationcopyeditedby" json:"translationcopyeditedby"`
	Copyright               *string `db:"copyright" json:"copyright"`
	Notice                  *string `db:"notice" json:"notice"`
}

type ShMonument struct {
	ProjectID     string  `db:"project_id" json:"project_id"`
	Country       string  `db:"country" json:"country"`
	Number        string  `db:"number" json:"number"`
	PartnersID    *string `db:"partners_id" json:"partners_id"`
	WorkingNumber *string `db:"working_number" json:"working_number"`
	StartDate     *string `db:"start_date" json:"start_date"`
	EndDate       *string `db:"end_date" json:"end_date"`
	DisplayStatus *string `db:"display_status" json:"display_status"`
	PdCountry     *string `db:"pd_country" json:"pd_country"`
}

type ShMonumentText struct {
	ProjectID               string  `db:"project_id" json:"project_id"`
	Country                 string  `db:"country" json:"country"`
	Number                  string  `db:"number" json:"number"`
	Lang                    string  `db:"lang" json:"lang"`
	Name                    *string `db:"name" json:"name"`
	Name2                   *string `db:"name2" json:"name2"`
	SecondName              *string `db:"second_name" json:"second_name"`
	ThirdName               *string `db:"third_name" json:"third_name"`
	TypeOf                  *string `db:"typeof" json:"typeof"`
	Location                *string `db:"location" json:"location"`
	Province                *string `db:"province" json:"province"`
	Institution             *string `db:"institution" json:"institution"`
	DateDescription         *string `db:"date_description" json:"date_description"`
	Dynasty                 *string `db:"dynasty" json:"dynasty"`
	Patrons                 *string `db:"patrons" json:"patrons"`
	Architects              *string `db:"architects" json:"architects"`
	Description             *string `db:"description" json:"description"`
	Description2            *string `db:"description2" json:"description2"`
	History                 *string `db:"history" json:"history"`
	DatationMethod          *string `db:"datationmethod" json:"datationmethod"`
	Bibliography            *string `db:"bibliography" json:"bibliography"`
	Keywords                *string `db:"keywords" json:"keywords"`
	PreparedBy              *string `db:"preparedby" json:"preparedby"`
	CopyEditedBy            *string `db:"copyeditedby" json:"copyeditedby"`
	TranslationBy           *string `db:"translationby" json:"translationby"`
	TranslationCopyEditedBy *string `db:"translationcopyeditedby" json:"translationcopyeditedby"`
	Copyright               *string `db:"copyright" json:"copyright"`
}

type ShMonumentDetail struct {
	ProjectID string `db:"project_id" json:"project_id"`
	Country   string `db:"country" json:"country"`
	Number    string `db:"number" json:"number"`
	DetailID  string `db:"detail_id" json:"detail_id"`
}

type ShMonumentDetailText struct {
	ProjectID   string  `db:"project_id" json:"project_id"`
	Country     string  `db:"country" json:"country"`
	Number      string  `db:"number" json:"number"`
	DetailID    string  `db:"detail_id" json:"detail_id"`
	Lang        string  `db:"lang" json:"lang"`
	Name        *string `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Location    *string `db:"location" json:"location"`
	Date        *string `db:"date" json:"date"`
	Artist      *string `db:"artist" json:"artist"`
}

// ShPicture covers sh_monument_images and sh_monument_detail_pictures.
// DetailID and PictureID are empty for monument images, Type and
// ImageNumber for detail pictures.
type ShPicture struct {
	ProjectID   string  `db:"project_id" json:"project_id"`
	Country     string  `db:"country" json:"country"`
	Number      string  `db:"number" json:"number"`
	DetailID    string  `db:"detail_id" json:"detail_id,omitempty"`
	PictureID   string  `db:"picture_id" json:"picture_id,omitempty"`
	Type        *string `db:"type" json:"type,omitempty"`
	ImageNumber string  `db:"image_number" json:"image_number,omitempty"`
	Path        *string `db:"path" json:"path"`
}

// ShPictureText is the per-language caption of an ShPicture.
type ShPictureText struct {
	ProjectID    string  `db:"project_id" json:"project_id"`
	Country      string  `db:"country" json:"country"`
	Number       string  `db:"number" json:"number"`
	DetailID     string  `db:"detail_id" json:"detail_id,omitempty"`
	PictureID    string  `db:"picture_id" json:"picture_id,omitempty"`
	Type         *string `db:"type" json:"type,omitempty"`
	ImageNumber  string  `db:"image_number" json:"image_number,omitempty"`
	Lang         string  `db:"lang" json:"lang"`
	Caption      *string `db:"caption" json:"caption"`
	Photographer *string `db:"photographer" json:"photographer"`
	Copyright    *string `db:"copyright" json:"copyright"`
}

type GlossaryWord struct {
	WordID string  `db:"word_id" json:"word_id"`
	Name   *string `db:"name" json:"name"`
}

type GlossaryDefinition struct {
	WordID     string  `db:"word_id" json:"word_id"`
	LangID     string  `db:"lang_id" json:"lang_id"`
	Definition *string `db:"definition" json:"definition"`
}

type GlossarySpelling struct {
	SpellingID string  `db:"spelling_id" json:"spelling_id"`
	WordID     string  `db:"word_id" json:"word_id"`
	LangID     string  `db:"lang_id" json:"lang_id"`
	Spelling   *string `db:"spelling" json:"spelling"`
}

// Str dereferences a nullable column and trims it.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// Ptr returns nil for blank values.
func Ptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
