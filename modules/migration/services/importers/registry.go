package importers

import "github.com/iota-uz/legacy-migrate/modules/migration/services/importer"

// FinalPhase is reserved for work that needs the whole graph: deferred
// links first, then cleanup of empty containers. Cleanup never removes
// partners or items, and linking never adds items to a collection, so the
// two cannot invalidate each other in this order.
const FinalPhase = 11

// Entry is one registered importer.
type Entry struct {
	Key         string
	Phase       int
	Description string
	New         func(*importer.Deps) importer.Importer
}

// Registry returns every importer in run order.
func Registry() []Entry {
	return []Entry{
		{"language", 0, "Languages (mwnf3.langs)", NewLanguageImporter},
		{"language-translation", 0, "Language names (mwnf3.langnames)", NewLanguageTranslationImporter},
		{"country", 0, "Countries (mwnf3.countries)", NewCountryImporter},
		{"country-translation", 0, "Country names (mwnf3.countrynames)", NewCountryTranslationImporter},
		{"default-context", 0, "Default context", NewDefaultContextImporter},

		{"project", 1, "Projects as context, collection and project (mwnf3.projects)", NewProjectImporter},
		{"partner", 1, "Museums and institutions as partners", NewPartnerImporter},
		{"object", 1, "Objects as items with translations, tags and artists", NewObjectImporter},
		{"monument", 1, "Monuments as items with translations and tags", NewMonumentImporter},
		{"monument-detail", 1, "Monument details as child items", NewMonumentDetailImporter},

		{"object-picture", 2, "Object pictures as item images", NewObjectPictureImporter},
		{"partner-picture", 2, "Museum and institution pictures as partner images", NewPartnerPictureImporter},
		{"partner-logo", 2, "Museum and institution logos as partner images", NewPartnerLogoImporter},
		{"monument-detail-picture", 2, "Monument detail pictures as item images", NewMonumentDetailPictureImporter},

		{"sh-project", 3, "Sharing History projects", NewShProjectImporter},
		{"sh-partner", 3, "Sharing History partners, reusing mapped mwnf3 partners", NewShPartnerImporter},
		{"sh-partner-logo", 3, "Sharing History partner logos as partner images", NewShPartnerLogoImporter},
		{"sh-object", 3, "Sharing History objects as items with translations", NewShObjectImporter},
		{"sh-monument", 3, "Sharing History monuments as items with translations", NewShMonumentImporter},
		{"sh-monument-detail", 3, "Sharing History monument details as child items", NewShMonumentDetailImporter},
		{"sh-monument-picture", 3, "Sharing History monument pictures as item images", NewShMonumentPictureImporter},
		{"sh-monument-detail-picture", 3, "Sharing History monument detail pictures as item images", NewShMonumentDetailPictureImporter},

		{"glossary", 4, "Glossary words", NewGlossaryImporter},
		{"glossary-translation", 4, "Glossary definitions", NewGlossaryTranslationImporter},
		{"glossary-spelling", 4, "Glossary spellings", NewGlossarySpellingImporter},

		{"partner-monument-link", FinalPhase, "Link museums to their monument item", NewPartnerMonumentLinker},
		{"project-cleanup", FinalPhase, "Remove projects whose collection has no items", NewProjectCleanup},
	}
}
