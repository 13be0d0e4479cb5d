package transform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLToText(t *testing.T) {
	cases := map[string]string{
		"":                                 "",
		"plain text":                       "plain text",
		"<b>Bowl</b> with &amp; inscription": "Bowl with & inscription",
		"line one<br>line two":             "line one\nline two",
		"<p>first</p><p>second</p>":        "first\n\nsecond",
		"<ul><li>a</li><li>b</li></ul>":    "- a\n- b",
	}
	for in, want := range cases {
		assert.Equal(t, want, HTMLToText(in), in)
	}
}

func TestInline(t *testing.T) {
	assert.Equal(t, "Great Mosque of Damascus", Inline("<p>Great Mosque<br/>of   Damascus</p>"))
}

func TestTruncate(t *testing.T) {
	s, cut := Truncate("short", MaxShortText)
	assert.False(t, cut)
	assert.Equal(t, "short", s)

	long := strings.Repeat("é", 300)
	s, cut = Truncate(long, MaxShortText)
	require.True(t, cut)
	assert.Equal(t, MaxShortText, len([]rune(s)))
	assert.True(t, strings.HasSuffix(s, "..."))
}

func TestJoinAndExtra(t *testing.T) {
	assert.Equal(t, "Cairo, Giza", Join(", ", " Cairo ", "", "Giza"))
	assert.Equal(t, "", Join(", ", "", " "))

	assert.Nil(t, Extra(map[string]string{"workshop": " "}))
	got := Extra(map[string]string{"workshop": "Royal", "copyright": ""})
	require.NotNil(t, got)
	assert.JSONEq(t, `{"workshop":"Royal"}`, *got)
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, SplitTags("  "))
	assert.Equal(t, []string{"Warp: wool; Weft: cotton"}, SplitTags("Warp: wool; Weft: cotton"))
	assert.Equal(t, []string{"gold", "silver"}, SplitTags("gold; silver;"))
	assert.Equal(t, []string{"ivory", "bone"}, SplitTags("ivory, bone"))
	assert.Equal(t, []string{"a, b", "c"}, SplitTags("a, b; c"))
}

func TestFlag(t *testing.T) {
	for _, v := range []string{"1", "Y", "yes", "TRUE"} {
		assert.True(t, Flag(v), v)
	}
	for _, v := range []string{"", "0", "n", "no"} {
		assert.False(t, Flag(v), v)
	}
}

func TestParseCoordinates(t *testing.T) {
	lat, lng, err := ParseCoordinates("")
	require.NoError(t, err)
	assert.Nil(t, lat)
	assert.Nil(t, lng)

	lat, lng, err = ParseCoordinates(" 30.0444, 31.2357 ")
	require.NoError(t, err)
	assert.InDelta(t, 30.0444, *lat, 1e-9)
	assert.InDelta(t, 31.2357, *lng, 1e-9)

	for _, bad := range []string{"30.1", "north,east", "95,10", "10,-181"} {
		_, _, err := ParseCoordinates(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseZoom(t *testing.T) {
	require.NotNil(t, ParseZoom("12"))
	assert.Equal(t, 12, *ParseZoom(" 12 "))
	assert.Nil(t, ParseZoom(""))
	assert.Nil(t, ParseZoom("far"))
}

func TestDescriptions(t *testing.T) {
	got := Descriptions("EPM", "ignored", "<p>EPM text</p>", true)
	assert.Equal(t, []Variant{{Text: "EPM text"}}, got)

	assert.Nil(t, Descriptions("EPM", "only main", "", true))

	got = Descriptions("ISL", "main", "epm", true)
	assert.Equal(t, []Variant{{Text: "main"}, {Text: "epm", EPM: true}}, got)

	got = Descriptions("ISL", "main", "epm", false)
	assert.Equal(t, []Variant{{Text: "main"}}, got)

	assert.Empty(t, Descriptions("ISL", "", "", true))
}

func TestInspectImage(t *testing.T) {
	root := t.TempDir()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "objects"), 0o755))
	// content wins over a misleading extension
	require.NoError(t, os.WriteFile(filepath.Join(root, "objects", "a.jpg"), png, 0o644))

	info := InspectImage(root, "/objects/a.jpg")
	assert.True(t, info.Found)
	assert.Equal(t, "image/png", info.MimeType)
	assert.Equal(t, int64(len(png)), info.Size)
	assert.Equal(t, "a.jpg", info.OriginalName)

	info = InspectImage(root, "objects/missing.JPG")
	assert.False(t, info.Found)
	assert.Equal(t, "image/jpeg", info.MimeType)
	assert.Zero(t, info.Size)

	info = InspectImage("", "x/noext")
	assert.Equal(t, "application/octet-stream", info.MimeType)
}
