package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
)

func newTestStrategy(t *testing.T, h http.HandlerFunc) *Strategy {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(ClientOptions{BaseURL: srv.URL, Token: "secret", RequestIDHeader: "X-Request-Id"})
	require.NoError(t, err)
	return NewStrategy(c)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestStrategy_CreateSendsRecord(t *testing.T) {
	s := newTestStrategy(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tag", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "bronze", body["internal_name"])
		require.Equal(t, "mwnf3:tags:material:eng:bronze", body["backward_compatibility"])
		require.NotContains(t, body, "id")

		writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]string{"id": "tag-1"}})
	})

	id, err := s.CreateTag(context.Background(), entity.Tag{
		InternalName: "bronze", Category: "material", LanguageID: "eng",
		BackwardCompatibility: "mwnf3:tags:material:eng:bronze",
	})
	require.NoError(t, err)
	require.Equal(t, "tag-1", id)
}

func TestStrategy_FindByCanonicalKey(t *testing.T) {
	s := newTestStrategy(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/partner", r.URL.Path)
		switch r.URL.Query().Get("backward_compatibility") {
		case "mwnf3:museums:12:EG":
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{{"id": "p-12"}}})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
		}
	})

	id, found, err := s.FindByCanonicalKey(context.Background(), entity.KindPartner, "mwnf3:museums:12:EG")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "p-12", id)

	_, found, err = s.FindByCanonicalKey(context.Background(), entity.KindPartner, "mwnf3:museums:13:EG")
	require.NoError(t, err)
	require.False(t, found)
}

func TestStrategy_FindItemByTranslationKey(t *testing.T) {
	var paths []string
	s := newTestStrategy(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		key := r.URL.Query().Get("backward_compatibility")
		switch {
		case r.URL.Path == "/api/item" && key == "mwnf3:monuments:ISL:eg:3:7":
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{{"id": "item-7"}}})
		case r.URL.Path == "/api/item-translation" && key == "mwnf3:monuments:ISL:eg:3:7:en":
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]string{{"id": "tr-1", "item_id": "item-7"}}})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
		}
	})
	ctx := context.Background()

	id, found, err := s.FindByCanonicalKey(ctx, entity.KindItem, "mwnf3:monuments:ISL:eg:3:7")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "item-7", id)
	require.Equal(t, []string{"/api/item"}, paths)

	paths = nil
	id, found, err = s.FindByCanonicalKey(ctx, entity.KindItem, "mwnf3:monuments:ISL:eg:3:7:en")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "item-7", id)
	require.Equal(t, []string{"/api/item", "/api/item-translation"}, paths)

	_, found, err = s.FindByCanonicalKey(ctx, entity.KindItem, "mwnf3:monuments:ISL:eg:3:8:en")
	require.NoError(t, err)
	require.False(t, found)

	// other kinds never fall back to translations
	paths = nil
	_, found, err = s.FindByCanonicalKey(ctx, entity.KindPartner, "mwnf3:museums:1:eg")
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, []string{"/api/partner"}, paths)
}

func TestStrategy_DuplicateResponses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   any
		dup    bool
	}{
		{"conflict", http.StatusConflict, map[string]string{"message": "exists"}, true},
		{"conflict plain body", http.StatusConflict, "taken", true},
		{"422 code", http.StatusUnprocessableEntity, map[string]string{"message": "dup", "code": "DUPLICATE"}, true},
		{"422 field", http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"backward_compatibility": {"has already been taken"}},
		}, true},
		{"422 other field", http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"name": {"is required"}},
		}, false},
		{"server error", http.StatusInternalServerError, map[string]string{"message": "boom"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStrategy(t, func(w http.ResponseWriter, r *http.Request) {
				if str, ok := tc.body.(string); ok {
					w.WriteHeader(tc.status)
					_, _ = io.WriteString(w, str)
					return
				}
				writeJSON(w, tc.status, tc.body)
			})
			_, err := s.CreateAuthor(context.Background(), entity.Author{
				Name: "Leonardo da Vinci", InternalName: "Leonardo da Vinci",
				BackwardCompatibility: "mwnf3:authors:Leonardo da Vinci",
			})
			require.Error(t, err)
			require.Equal(t, tc.dup, errors.Is(err, domain.ErrDuplicate))
		})
	}
}

func TestStrategy_ImagePayloadCarriesOwner(t *testing.T) {
	s := newTestStrategy(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/item-image", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "item-1", body["item_id"])
		require.Equal(t, float64(2), body["display_order"])
		writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]string{"id": "img-1"}})
	})

	id, err := s.CreateItemImage(context.Background(), entity.Image{
		OwnerID: "item-1", Path: "objects/a.jpg", OriginalName: "a.jpg", MimeType: "image/jpeg",
		DisplayOrder: 2, BackwardCompatibility: "k",
	})
	require.NoError(t, err)
	require.Equal(t, "img-1", id)
}

func TestStrategy_AttachAndUpdate(t *testing.T) {
	var calls []string
	s := newTestStrategy(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	require.NoError(t, s.Attach(ctx, "item-1", []string{"t-1", "t-2"}, entity.RelationItemTags))
	require.NoError(t, s.Attach(ctx, "item-1", nil, entity.RelationItemArtists))
	require.NoError(t, s.UpdatePartnerMonumentItem(ctx, "p-1", "item-7"))

	require.Equal(t, []string{"PATCH /api/item/item-1/tags", "PATCH /api/partner/p-1"}, calls)
}

func TestStrategy_CountAndDelete(t *testing.T) {
	s := newTestStrategy(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/collection/col-1/items":
			writeJSON(w, http.StatusOK, map[string]any{"data": []any{}, "meta": map[string]int{"total": 3}})
		case "DELETE /api/project/prj-1":
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		}
	})
	ctx := context.Background()

	n, err := s.CountCollectionItems(ctx, "col-1")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.NoError(t, s.Delete(ctx, entity.KindProject, "prj-1"))
	require.ErrorIs(t, s.Delete(ctx, entity.KindProject, "prj-2"), domain.ErrNotFound)
}

func TestClient_Throttles(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientOptions{BaseURL: srv.URL, RateLimit: "2-M"})
	require.NoError(t, err)
	var slept []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return context.Canceled
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, apiErr, err := c.doJSON(ctx, http.MethodGet, "/api/info", nil, nil, nil)
		require.NoError(t, err)
		require.Nil(t, apiErr)
	}
	_, _, err = c.doJSON(ctx, http.MethodGet, "/api/info", nil, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, slept, 1)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestNewClient_Validates(t *testing.T) {
	_, err := NewClient(ClientOptions{BaseURL: "not a url"})
	require.Error(t, err)

	_, err = NewClient(ClientOptions{BaseURL: "http://localhost", RateLimit: "fast"})
	require.Error(t, err)
}
