package entity

// Kind names a target entity type. The tracker and the strategies key their
// state by (Kind, canonical key).
type Kind string

const (
	KindLanguage            Kind = "language"
	KindLanguageTranslation Kind = "language_translation"
	KindCountry             Kind = "country"
	KindCountryTranslation  Kind = "country_translation"
	KindContext             Kind = "context"
	KindCollection          Kind = "collection"
	KindCollectionTrans     Kind = "collection_translation"
	KindProject             Kind = "project"
	KindPartner             Kind = "partner"
	KindPartnerTranslation  Kind = "partner_translation"
	KindItem                Kind = "item"
	KindItemTranslation     Kind = "item_translation"
	KindTag                 Kind = "tag"
	KindAuthor              Kind = "author"
	KindArtist              Kind = "artist"
	KindItemImage           Kind = "item_image"
	KindPartnerImage        Kind = "partner_image"
	KindGlossary            Kind = "glossary"
	KindGlossaryTranslation Kind = "glossary_translation"
	KindGlossarySpelling    Kind = "glossary_spelling"
)

// Kinds lists every kind in creation order.
var Kinds = []Kind{
	KindLanguage,
	KindLanguageTranslation,
	KindCountry,
	KindCountryTranslation,
	KindContext,
	KindCollection,
	KindCollectionTrans,
	KindProject,
	KindPartner,
	KindPartnerTranslation,
	KindItem,
	KindItemTranslation,
	KindTag,
	KindAuthor,
	KindArtist,
	KindItemImage,
	KindPartnerImage,
	KindGlossary,
	KindGlossaryTranslation,
	KindGlossarySpelling,
}

func (k Kind) String() string {
	return string(k)
}

// Relation names a many-to-many attachment between two entities.
type Relation string

const (
	RelationItemTags           Relation = "item_tags"
	RelationItemArtists        Relation = "item_artists"
	RelationCollectionItems    Relation = "collection_items"
	RelationCollectionPartners Relation = "collection_partners"
	RelationMonumentLocation   Relation = "monument_location"
)

// Tracked is one registered (kind, key) -> id mapping.
type Tracked struct {
	Kind Kind
	Key  string
	ID   string
}
