// Package memory is an in-process Strategy. It backs rehearsal runs
// (IMPORT_STRATEGY=memory) that exercise every importer without a target,
// and it is the fake used by the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
)

type stored struct {
	key string
	rec any
}

type Strategy struct {
	mu       sync.Mutex
	byKey    map[entity.Kind]map[string]string
	byID     map[entity.Kind]map[string]stored
	attached map[entity.Relation]map[string][]string
	calls    map[string]int

	// CreateErr forces Create* for a canonical key to fail with the error.
	CreateErr map[string]error
	// DeleteErr forces Delete of a kind to fail with the error.
	DeleteErr map[entity.Kind]error
	// Hidden keys are stored but invisible to FindByCanonicalKey.
	Hidden map[string]bool
	// NewID overrides id generation.
	NewID func() string
}

var (
	_ domain.Strategy    = (*Strategy)(nil)
	_ domain.Snapshotter = (*Strategy)(nil)
)

func New() *Strategy {
	return &Strategy{
		byKey:     map[entity.Kind]map[string]string{},
		byID:      map[entity.Kind]map[string]stored{},
		attached:  map[entity.Relation]map[string][]string{},
		calls:     map[string]int{},
		CreateErr: map[string]error{},
		DeleteErr: map[entity.Kind]error{},
		Hidden:    map[string]bool{},
		NewID:     uuid.NewString,
	}
}

// Calls returns how often each method was invoked.
func (s *Strategy) Calls() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.calls))
	for k, v := range s.calls {
		out[k] = v
	}
	return out
}

// Mutations counts every call other than lookups and counts.
func (s *Strategy) Mutations() int {
	n := 0
	for m, c := range s.Calls() {
		if m != "FindByCanonicalKey" && m != "CountCollectionItems" && m != "Snapshot" {
			n += c
		}
	}
	return n
}

// Len returns the number of stored entities of kind.
func (s *Strategy) Len(kind entity.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID[kind])
}

// Get returns the stored record of kind by canonical key.
func (s *Strategy) Get(kind entity.Kind, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byKey[kind][key]
	if !ok {
		return nil, false
	}
	return s.byID[kind][id].rec, true
}

// Attached returns the children linked to parent under rel.
func (s *Strategy) Attached(rel entity.Relation, parentID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.attached[rel][parentID]...)
}

func (s *Strategy) FindByCanonicalKey(_ context.Context, kind entity.Kind, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["FindByCanonicalKey"]++
	if s.Hidden[key] {
		return "", false, nil
	}
	if id, ok := s.byKey[kind][key]; ok {
		return id, true, nil
	}
	// an item is also found through the keys of its translations
	if kind == entity.KindItem {
		if tid, ok := s.byKey[entity.KindItemTranslation][key]; ok {
			tr := s.byID[entity.KindItemTranslation][tid].rec.(entity.ItemTranslation)
			return tr.ItemID, true, nil
		}
	}
	return "", false, nil
}

func (s *Strategy) Snapshot(_ context.Context, kind entity.Kind) ([]entity.Tracked, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Snapshot"]++
	out := make([]entity.Tracked, 0, len(s.byKey[kind]))
	for k, id := range s.byKey[kind] {
		out = append(out, entity.Tracked{Kind: kind, Key: k, ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Strategy) create(method string, kind entity.Kind, key, id string, rec any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[method]++
	if err := s.CreateErr[key]; err != nil {
		return "", err
	}
	if _, ok := s.byKey[kind][key]; ok {
		return "", fmt.Errorf("%s %s: %w", kind, key, domain.ErrDuplicate)
	}
	if id == "" {
		id = s.NewID()
	}
	if _, ok := s.byID[kind][id]; ok {
		return "", fmt.Errorf("%s id %s: %w", kind, id, domain.ErrDuplicate)
	}
	if s.byKey[kind] == nil {
		s.byKey[kind] = map[string]string{}
		s.byID[kind] = map[string]stored{}
	}
	s.byKey[kind][key] = id
	s.byID[kind][id] = stored{key: key, rec: rec}
	return id, nil
}

func (s *Strategy) CreateLanguage(_ context.Context, r entity.Language) (string, error) {
	return s.create("CreateLanguage", entity.KindLanguage, r.BackwardCompatibility, r.ID, r)
}

func (s *Strategy) CreateLanguageTranslation(_ context.Context, r entity.LanguageTranslation) (string, error) {
	return s.create("CreateLanguageTranslation", entity.KindLanguageTranslation, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateCountry(_ context.Context, r entity.Country) (string, error) {
	return s.create("CreateCountry", entity.KindCountry, r.BackwardCompatibility, r.ID, r)
}

func (s *Strategy) CreateCountryTranslation(_ context.Context, r entity.CountryTranslation) (string, error) {
	return s.create("CreateCountryTranslation", entity.KindCountryTranslation, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateContext(_ context.Context, r entity.Context) (string, error) {
	return s.create("CreateContext", entity.KindContext, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateCollection(_ context.Context, r entity.Collection) (string, error) {
	return s.create("CreateCollection", entity.KindCollection, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateCollectionTranslation(_ context.Context, r entity.CollectionTranslation) (string, error) {
	return s.create("CreateCollectionTranslation", entity.KindCollectionTrans, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateProject(_ context.Context, r entity.Project) (string, error) {
	return s.create("CreateProject", entity.KindProject, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreatePartner(_ context.Context, r entity.Partner) (string, error) {
	return s.create("CreatePartner", entity.KindPartner, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreatePartnerTranslation(_ context.Context, r entity.PartnerTranslation) (string, error) {
	return s.create("CreatePartnerTranslation", entity.KindPartnerTranslation, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateItem(_ context.Context, r entity.Item) (string, error) {
	return s.create("CreateItem", entity.KindItem, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateItemTranslation(_ context.Context, r entity.ItemTranslation) (string, error) {
	return s.create("CreateItemTranslation", entity.KindItemTranslation, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateTag(_ context.Context, r entity.Tag) (string, error) {
	return s.create("CreateTag", entity.KindTag, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateAuthor(_ context.Context, r entity.Author) (string, error) {
	return s.create("CreateAuthor", entity.KindAuthor, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateArtist(_ context.Context, r entity.Artist) (string, error) {
	return s.create("CreateArtist", entity.KindArtist, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateItemImage(_ context.Context, r entity.Image) (string, error) {
	return s.create("CreateItemImage", entity.KindItemImage, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreatePartnerImage(_ context.Context, r entity.Image) (string, error) {
	return s.create("CreatePartnerImage", entity.KindPartnerImage, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateGlossary(_ context.Context, r entity.Glossary) (string, error) {
	return s.create("CreateGlossary", entity.KindGlossary, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateGlossaryTranslation(_ context.Context, r entity.GlossaryTranslation) (string, error) {
	return s.create("CreateGlossaryTranslation", entity.KindGlossaryTranslation, r.BackwardCompatibility, "", r)
}

func (s *Strategy) CreateGlossarySpelling(_ context.Context, r entity.GlossarySpelling) (string, error) {
	return s.create("CreateGlossarySpelling", entity.KindGlossarySpelling, r.BackwardCompatibility, "", r)
}

func (s *Strategy) Attach(_ context.Context, parentID string, childIDs []string, rel entity.Relation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Attach"]++
	if s.attached[rel] == nil {
		s.attached[rel] = map[string][]string{}
	}
	have := map[string]bool{}
	for _, c := range s.attached[rel][parentID] {
		have[c] = true
	}
	for _, c := range childIDs {
		if !have[c] {
			have[c] = true
			s.attached[rel][parentID] = append(s.attached[rel][parentID], c)
		}
	}
	return nil
}

func (s *Strategy) UpdatePartnerMonumentItem(_ context.Context, partnerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["UpdatePartnerMonumentItem"]++
	st, ok := s.byID[entity.KindPartner][partnerID]
	if !ok {
		return fmt.Errorf("partner %s: %w", partnerID, domain.ErrNotFound)
	}
	p := st.rec.(entity.Partner)
	p.MonumentItemID = &itemID
	st.rec = p
	s.byID[entity.KindPartner][partnerID] = st
	return nil
}

func (s *Strategy) CountCollectionItems(_ context.Context, collectionID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["CountCollectionItems"]++
	n := len(s.attached[entity.RelationCollectionItems][collectionID])
	for _, st := range s.byID[entity.KindItem] {
		if it := st.rec.(entity.Item); it.CollectionID != nil && *it.CollectionID == collectionID {
			n++
		}
	}
	return n, nil
}

func (s *Strategy) Delete(_ context.Context, kind entity.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Delete"]++
	if err := s.DeleteErr[kind]; err != nil {
		return err
	}
	st, ok := s.byID[kind][id]
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	delete(s.byID[kind], id)
	delete(s.byKey[kind], st.key)
	return nil
}
