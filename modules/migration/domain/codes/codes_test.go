package codes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLanguage(t *testing.T) {
	m := New()
	for legacy, want := range map[string]string{
		"en":  "eng",
		"ch":  "zho",
		"se":  "swe",
		"si":  "slv",
		"EN ": "eng",
	} {
		got, err := m.Language(legacy)
		require.NoError(t, err, legacy)
		require.Equal(t, want, got, legacy)
	}

	_, err := m.Language("xx")
	require.Error(t, err)
}

func TestCountry(t *testing.T) {
	m := New()
	got, err := m.Country("EG")
	require.NoError(t, err)
	require.Equal(t, "egy", got)

	got, err = m.Country("ab")
	require.NoError(t, err)
	require.Equal(t, "alb", got)

	got, err = m.Country("pd")
	require.NoError(t, err)
	require.Equal(t, "zzzpd", got)

	_, err = m.Country("qq")
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.yaml")
	content := "languages:\n  ka: kat\ncountries:\n  eg: xeg\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadOverrides(path)
	require.NoError(t, err)

	got, err := m.Language("ka")
	require.NoError(t, err)
	require.Equal(t, "kat", got)

	got, err = m.Country("eg")
	require.NoError(t, err)
	require.Equal(t, "xeg", got)

	// defaults stay untouched for the next mapper
	got, err = New().Country("eg")
	require.NoError(t, err)
	require.Equal(t, "egy", got)
}

func TestLoadOverrides_EmptyPath(t *testing.T) {
	m, err := LoadOverrides("")
	require.NoError(t, err)
	got, err := m.Language("fr")
	require.NoError(t, err)
	require.Equal(t, "fra", got)
}
