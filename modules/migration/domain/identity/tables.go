package identity

const (
	SchemaMwnf3          = "mwnf3"
	SchemaSharingHistory = "mwnf3_sharing_history"
)

// Primary-key layouts of the legacy tables read by the importers. Every key
// in the pipeline is built from one of these.
var (
	Languages          = Table{SchemaMwnf3, "langs", []string{"lang_id"}}
	LanguageNames      = Table{SchemaMwnf3, "langnames", []string{"lang_id", "lang"}}
	Countries          = Table{SchemaMwnf3, "countries", []string{"country_id"}}
	CountryNames       = Table{SchemaMwnf3, "countrynames", []string{"country", "lang"}}
	Contexts           = Table{SchemaMwnf3, "context", []string{"name"}}
	Projects           = Table{SchemaMwnf3, "projects", []string{"project_id"}}
	Museums            = Table{SchemaMwnf3, "museums", []string{"museum_id", "country"}}
	Institutions       = Table{SchemaMwnf3, "institutions", []string{"institution_id", "country"}}
	Objects            = Table{SchemaMwnf3, "objects", []string{"project_id", "country", "museum_id", "number"}}
	Monuments          = Table{SchemaMwnf3, "monuments", []string{"project_id", "country", "institution_id", "number"}}
	MonumentLangs      = Table{SchemaMwnf3, "monuments", []string{"project_id", "country", "institution_id", "number", "lang"}}
	MonumentDetails    = Table{SchemaMwnf3, "monument_details", []string{"project_id", "country_id", "institution_id", "monument_id", "detail_id"}}
	ObjectPictures     = Table{SchemaMwnf3, "objects_pictures", []string{"project_id", "country", "museum_id", "number", "image_number"}}
	MuseumPictures     = Table{SchemaMwnf3, "museums_pictures", []string{"museum_id", "country", "image_number"}}
	InstitutionPics    = Table{SchemaMwnf3, "institutions_pictures", []string{"institution_id", "country", "image_number"}}
	MonumentDetailPics = Table{SchemaMwnf3, "monument_detail_pictures", []string{"project_id", "country_id", "institution_id", "monument_id", "detail_id", "picture_id"}}
	Tags               = Table{SchemaMwnf3, "tags", []string{"category", "lang", "name"}}
	Authors            = Table{SchemaMwnf3, "authors", []string{"name"}}
	Artists            = Table{SchemaMwnf3, "artists", []string{"name"}}
	Glossary           = Table{SchemaMwnf3, "glossary", []string{"word_id"}}
	GlossaryDefs       = Table{SchemaMwnf3, "gl_definitions", []string{"word_id", "lang_id"}}
	GlossarySpelling   = Table{SchemaMwnf3, "gl_spellings", []string{"spelling_id"}}
	ShProjects         = Table{SchemaSharingHistory, "sh_projects", []string{"project_id"}}
	ShPartners         = Table{SchemaSharingHistory, "sh_partners", []string{"partners_id"}}
	ShObjects          = Table{SchemaSharingHistory, "sh_objects", []string{"project_id", "country", "number"}}
	ShMonuments        = Table{SchemaSharingHistory, "sh_monuments", []string{"project_id", "country", "number"}}
	ShMonumentDetails  = Table{SchemaSharingHistory, "sh_monument_details", []string{"project_id", "country", "number", "detail_id"}}
	ShMonumentImages   = Table{SchemaSharingHistory, "sh_monument_images", []string{"project_id", "country", "number", "image_number"}}
	ShDetailPictures   = Table{SchemaSharingHistory, "sh_monument_detail_pictures", []string{"project_id", "country", "number", "detail_id", "picture_id"}}
)

// DefaultContextKey identifies the context every untargeted translation uses.
var DefaultContextKey = Contexts.MustKey("default")

// EPMContextKey is the project context that receives description2 texts.
var EPMContextKey = Projects.MustKey("EPM")
