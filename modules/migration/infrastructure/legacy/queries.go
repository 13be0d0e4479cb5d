package legacy

// Legacy queries. Each is ordered by its primary key so chunked reads are
// stable and GroupBy sees group members consecutively.
const (
	QueryLanguages     = "SELECT lang_id, name FROM mwnf3.langs ORDER BY lang_id"
	QueryLanguageNames = "SELECT lang_id, lang, name FROM mwnf3.langnames ORDER BY lang_id, lang"
	QueryCountries     = "SELECT country_id, name FROM mwnf3.countries ORDER BY country_id"
	QueryCountryNames  = "SELECT country, lang, name FROM mwnf3.countrynames ORDER BY country, lang"

	QueryProjects     = "SELECT * FROM mwnf3.projects ORDER BY project_id"
	QueryProjectNames = "SELECT * FROM mwnf3.projectnames ORDER BY project_id, lang"

	QueryMuseums          = "SELECT * FROM mwnf3.museums ORDER BY museum_id, country"
	QueryMuseumNames      = "SELECT * FROM mwnf3.museumnames ORDER BY museum_id, country, lang"
	QueryInstitutions     = "SELECT * FROM mwnf3.institutions ORDER BY institution_id, country"
	QueryInstitutionNames = "SELECT * FROM mwnf3.institutionnames ORDER BY institution_id, country, lang"

	QueryMuseumMonumentRefs = `SELECT museum_id, country, name,
	mon_project_id, mon_country_id, mon_institution_id, mon_monument_id, mon_lang_id
FROM mwnf3.museums
WHERE mon_project_id IS NOT NULL
	AND mon_country_id IS NOT NULL
	AND mon_institution_id IS NOT NULL
	AND mon_monument_id IS NOT NULL
	AND mon_lang_id IS NOT NULL
ORDER BY museum_id, country`

	QueryObjects         = "SELECT * FROM mwnf3.objects ORDER BY project_id, country, museum_id, number, lang"
	QueryMonuments       = "SELECT * FROM mwnf3.monuments ORDER BY project_id, country, institution_id, number, lang"
	QueryMonumentDetails = "SELECT * FROM mwnf3.monument_details ORDER BY project_id, country_id, institution_id, monument_id, detail_id, lang_id"

	QueryObjectPictures = `SELECT * FROM mwnf3.objects_pictures
ORDER BY project_id, country, museum_id, number, image_number, CASE WHEN type = '' THEN 0 ELSE 1 END, lang`
	QueryMuseumPictures = `SELECT museum_id AS partner_id, country, image_number, path, caption, photographer, copyright
FROM mwnf3.museums_pictures ORDER BY museum_id, country, image_number`
	QueryInstitutionPictures = `SELECT institution_id AS partner_id, country, image_number, path, caption, photographer, copyright
FROM mwnf3.institutions_pictures ORDER BY institution_id, country, image_number`

	QueryMonumentDetailPictures = `SELECT * FROM mwnf3.monument_detail_pictures
ORDER BY project_id, country_id, institution_id, monument_id, detail_id, picture_id, lang_id`

	QueryMuseumLogos = `SELECT museum_id AS partner_id, country, name, logo, logo1, logo2, logo3
FROM mwnf3.museums
WHERE logo IS NOT NULL OR logo1 IS NOT NULL OR logo2 IS NOT NULL OR logo3 IS NOT NULL
ORDER BY museum_id, country`
	QueryInstitutionLogos = `SELECT institution_id AS partner_id, country, name, logo, logo1, logo2
FROM mwnf3.institutions
WHERE logo IS NOT NULL OR logo1 IS NOT NULL OR logo2 IS NOT NULL
ORDER BY institution_id, country`
	QueryShPartnerLogos = `SELECT partners_id AS partner_id, country, name, logo, logo1, logo2, logo3
FROM mwnf3_sharing_history.sh_partners
WHERE logo IS NOT NULL OR logo1 IS NOT NULL OR logo2 IS NOT NULL OR logo3 IS NOT NULL
ORDER BY partners_id`

	QueryShProjects       = "SELECT * FROM mwnf3_sharing_history.sh_projects ORDER BY project_id"
	QueryShProjectNames   = "SELECT * FROM mwnf3_sharing_history.sh_project_names ORDER BY project_id, lang"
	QueryShPartners       = "SELECT * FROM mwnf3_sharing_history.sh_partners ORDER BY partners_id"
	QueryShPartnerNames   = "SELECT * FROM mwnf3_sharing_history.sh_partner_names ORDER BY partners_id, lang"
	QueryPartnerShMapping = "SELECT all_partners_id, partners_id FROM mwnf3.partner_sh_partners ORDER BY partners_id"

	QueryShObjects             = "SELECT * FROM mwnf3_sharing_history.sh_objects ORDER BY project_id, country, number"
	QueryShObjectTexts         = "SELECT * FROM mwnf3_sharing_history.sh_objects_texts ORDER BY project_id, country, number, lang"
	QueryShMonuments           = "SELECT * FROM mwnf3_sharing_history.sh_monuments ORDER BY project_id, country, number"
	QueryShMonumentTexts       = "SELECT * FROM mwnf3_sharing_history.sh_monuments_texts ORDER BY project_id, country, number, lang"
	QueryShMonumentDetails     = "SELECT * FROM mwnf3_sharing_history.sh_monument_details ORDER BY project_id, country, number, detail_id"
	QueryShMonumentDetailTexts = "SELECT * FROM mwnf3_sharing_history.sh_monument_detail_texts ORDER BY project_id, country, number, detail_id, lang"

	QueryShMonumentImages = `SELECT * FROM mwnf3_sharing_history.sh_monument_images
ORDER BY project_id, country, number, image_number, CASE WHEN type = '' THEN 0 ELSE 1 END`
	QueryShMonumentImageTexts = `SELECT * FROM mwnf3_sharing_history.sh_monument_image_texts
ORDER BY project_id, country, number, image_number, lang`
	QueryShDetailPictures     = "SELECT * FROM mwnf3_sharing_history.sh_monument_detail_pictures ORDER BY project_id, country, number, detail_id, picture_id"
	QueryShDetailPictureTexts = "SELECT * FROM mwnf3_sharing_history.sh_monument_detail_picture_texts ORDER BY project_id, country, number, detail_id, picture_id, lang"

	QueryGlossary         = "SELECT word_id, name FROM mwnf3.glossary ORDER BY word_id"
	QueryGlossaryDefs     = "SELECT word_id, lang_id, definition FROM mwnf3.gl_definitions ORDER BY word_id, lang_id"
	QueryGlossarySpelling = "SELECT spelling_id, word_id, lang_id, spelling FROM mwnf3.gl_spellings ORDER BY word_id, lang_id, spelling_id"
)
