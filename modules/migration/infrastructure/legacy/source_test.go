package legacy

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockSource(t *testing.T, chunk, limit int) (*Source, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSource(sqlx.NewDb(db, "mysql"), chunk, limit), mock
}

func expectChunk(mock sqlmock.Sqlmock, query string, size, offset int, rows *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(fmt.Sprintf("%s LIMIT %d OFFSET %d", query, size, offset))).
		WillReturnRows(rows)
}

func TestEach_ReadsInChunks(t *testing.T) {
	s, mock := newMockSource(t, 2, 0)

	expectChunk(mock, QueryLanguages, 2, 0, sqlmock.NewRows([]string{"lang_id", "name"}).AddRow("ar", "Arabic").AddRow("de", "German"))
	expectChunk(mock, QueryLanguages, 2, 2, sqlmock.NewRows([]string{"lang_id", "name"}).AddRow("en", "English"))

	var got []string
	err := Each(context.Background(), s, QueryLanguages, func(l Language) error {
		got = append(got, l.LangID+"="+Str(l.Name))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ar=Arabic", "de=German", "en=English"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEach_HonoursRowLimit(t *testing.T) {
	s, mock := newMockSource(t, 10, 3)

	mock.ExpectQuery(regexp.QuoteMeta(QueryCountries + " LIMIT 3 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"country_id", "name"}).
			AddRow("eg", "Egypt").AddRow("tn", "Tunisia").AddRow("jo", "Jordan"))

	n := 0
	err := Each(context.Background(), s, QueryCountries, func(Country) error {
		n++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEach_IgnoresUnmappedColumns(t *testing.T) {
	s, mock := newMockSource(t, 5, 0)

	expectChunk(mock, QueryProjects, 5, 0, sqlmock.NewRows([]string{"project_id", "name", "launchdate", "active", "legacy_flag"}).
		AddRow("EPM", "Exhibition", nil, "1", "x"))

	var got []Project
	err := Each(context.Background(), s, QueryProjects, func(p Project) error {
		got = append(got, p)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "EPM", got[0].ProjectID)
	require.Nil(t, got[0].LaunchDate)
}

func TestEach_PropagatesQueryError(t *testing.T) {
	s, mock := newMockSource(t, 5, 0)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("table missing"))

	err := Each(context.Background(), s, QueryGlossary, func(GlossaryWord) error { return nil })
	require.ErrorContains(t, err, "table missing")
}

func TestGroupBy_SpansChunks(t *testing.T) {
	s, mock := newMockSource(t, 2, 0)
	cols := []string{"word_id", "lang_id", "definition"}

	expectChunk(mock, QueryGlossaryDefs, 2, 0, sqlmock.NewRows(cols).AddRow("1", "en", "a").AddRow("1", "fr", "b"))
	expectChunk(mock, QueryGlossaryDefs, 2, 2, sqlmock.NewRows(cols).AddRow("1", "it", "c").AddRow("2", "en", "d"))
	expectChunk(mock, QueryGlossaryDefs, 2, 4, sqlmock.NewRows(cols))

	groups := map[string]int{}
	var order []string
	err := GroupBy(context.Background(), s, QueryGlossaryDefs,
		func(d GlossaryDefinition) string { return d.WordID },
		func(key string, rows []GlossaryDefinition) error {
			groups[key] = len(rows)
			order = append(order, key)
			return nil
		})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, order)
	require.Equal(t, map[string]int{"1": 3, "2": 1}, groups)
}

func TestGroupBy_LimitCountsGroups(t *testing.T) {
	s, mock := newMockSource(t, 10, 1)
	cols := []string{"word_id", "lang_id", "definition"}

	expectChunk(mock, QueryGlossaryDefs, 10, 0, sqlmock.NewRows(cols).
		AddRow("1", "en", "a").AddRow("1", "fr", "b").AddRow("2", "en", "c"))

	var keys []string
	err := GroupBy(context.Background(), s, QueryGlossaryDefs,
		func(d GlossaryDefinition) string { return d.WordID },
		func(key string, rows []GlossaryDefinition) error {
			keys = append(keys, key)
			require.Len(t, rows, 2)
			return nil
		})
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, keys)
}

func TestMuseum_MonumentRef(t *testing.T) {
	p := func(s string) *string { return &s }
	m := Museum{
		MuseumID: "12", Country: "EG",
		MonProjectID: p("ISL"), MonCountryID: p("eg"), MonInstitutionID: p("1"),
		MonMonumentID: p("7"), MonLangID: p("en"),
	}
	ref, ok := m.MonumentRef()
	require.True(t, ok)
	require.Equal(t, []string{"ISL", "eg", "1", "7", "en"}, ref)

	m.MonLangID = p("  ")
	_, ok = m.MonumentRef()
	require.False(t, ok)
}
