// Package transform holds the pure value conversions applied to legacy rows
// before they become target records.
package transform

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxShortText is the column width of short translation fields.
const MaxShortText = 255

// HTMLToText converts legacy rich text to plain text. Block elements and
// <br> become line breaks; runs of blank lines collapse to one.
func HTMLToText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n\n")
	})
	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		sel.PrependHtml("- ")
		sel.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			if len(out) > 0 && !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Inline is HTMLToText flattened to a single line, used for names.
func Inline(s string) string {
	return strings.Join(strings.Fields(HTMLToText(s)), " ")
}

// Truncate shortens s to max runes, ending in "...". The flag reports
// whether anything was cut.
func Truncate(s string, max int) (string, bool) {
	r := []rune(s)
	if len(r) <= max {
		return s, false
	}
	return string(r[:max-3]) + "...", true
}

// Join concatenates the non-blank parts with sep.
func Join(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// Extra encodes the non-blank values as a JSON object, or nil when there are
// none.
func Extra(fields map[string]string) *string {
	kept := map[string]string{}
	for k, v := range fields {
		if v = strings.TrimSpace(v); v != "" {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return nil
	}
	b, err := json.Marshal(kept)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

// SplitTags splits a legacy tag field. A value containing ':' is structured
// text ("Warp: wool; Weft: cotton") and stays one tag. Otherwise ';' is the
// separator, with ',' as fallback.
func SplitTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.Contains(raw, ":") {
		return []string{raw}
	}
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	return SplitList(raw, sep)
}

// SplitList splits on sep, trimming and dropping blank entries.
func SplitList(raw, sep string) []string {
	var out []string
	for _, p := range strings.Split(raw, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Flag reads the legacy yes/no encodings.
func Flag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "y", "yes", "true", "on":
		return true
	}
	return false
}
