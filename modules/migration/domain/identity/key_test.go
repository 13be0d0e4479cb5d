package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat_TrimsOnly(t *testing.T) {
	got := Format("mwnf3", "museums", " 12 ", "EG")
	require.Equal(t, "mwnf3:museums:12:EG", got)

	// case and inner whitespace are kept as extracted
	require.Equal(t, "mwnf3:authors:Leonardo da Vinci", Format("mwnf3", "authors", "Leonardo da Vinci"))
}

func TestFormat_Deterministic(t *testing.T) {
	a := Format("mwnf3", "objects", "EPM", "it", "rom01", "7")
	b := Format("mwnf3", "objects", "EPM", "it", "rom01", "7")
	require.Equal(t, a, b)
}

func TestTableKey_RejectsEmptyValues(t *testing.T) {
	_, err := Museums.Key("12", "  ")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrEmptyValue))
}

func TestTableKey_RejectsWrongArity(t *testing.T) {
	_, err := Objects.Key("EPM", "it")
	require.ErrorIs(t, err, ErrFieldCount)
}

func TestTableKeyFrom_UsesFieldOrder(t *testing.T) {
	row := map[string]string{
		"number":         "4",
		"lang":           "en",
		"institution_id": "ins01",
		"country":        "eg",
		"project_id":     "ISL",
	}
	k, err := MonumentLangs.KeyFrom(row)
	require.NoError(t, err)
	require.Equal(t, "mwnf3:monuments:ISL:eg:ins01:4:en", k)

	delete(row, "lang")
	_, err = MonumentLangs.KeyFrom(row)
	require.ErrorIs(t, err, ErrEmptyValue)
}

func TestMonumentKeys_ShareGroupPrefix(t *testing.T) {
	group := Monuments.MustKey("ISL", "eg", "ins01", "4")
	lang := MonumentLangs.MustKey("ISL", "eg", "ins01", "4", "en")
	require.Equal(t, group+":en", lang)
}

func TestWellKnownKeys(t *testing.T) {
	require.Equal(t, "mwnf3:context:default", DefaultContextKey)
	require.Equal(t, "mwnf3:projects:EPM", EPMContextKey)
	require.Equal(t, "mwnf3:museums:", Museums.Prefix())
}
