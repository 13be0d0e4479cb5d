// Package codes maps legacy two-letter language and country codes to the
// ISO 639-3 and ISO 3166-1 alpha-3 codes used by the target store.
package codes

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var defaultLanguages = map[string]string{
	"ar": "ara",
	"cs": "ces",
	"de": "deu",
	"el": "ell",
	"en": "eng",
	"es": "spa",
	"fa": "fas",
	"fr": "fra",
	"he": "heb",
	"hr": "hrv",
	"hu": "hun",
	"it": "ita",
	"ja": "jpn",
	"pt": "por",
	"ru": "rus",
	"tr": "tur",
	"zh": "zho",
	// legacy-only codes
	"ch": "zho",
	"se": "swe",
	"si": "slv",
}

var defaultCountries = map[string]string{
	"at": "aut", "az": "aze", "be": "bel", "br": "bra", "ca": "can",
	"cz": "cze", "de": "deu", "dz": "dza", "eg": "egy", "es": "esp",
	"fr": "fra", "gr": "grc", "hr": "hrv", "hu": "hun", "iq": "irq",
	"jo": "jor", "jp": "jpn", "lb": "lbn", "ly": "lby", "ma": "mar",
	"pl": "pol", "pt": "prt", "ro": "rou", "ru": "rus", "sa": "sau",
	"sy": "syr", "tn": "tun", "tr": "tur",
	// legacy-only codes
	"ab": "alb", "ag": "arg", "al": "aus", "bg": "bgd", "bh": "bhr",
	"bl": "blr", "bs": "bih", "bu": "bgr", "ch": "chn", "co": "com",
	"cy": "cyp", "dj": "dji", "dn": "dnk", "et": "est", "fn": "fin",
	"ge": "geo", "ia": "irn", "is": "isr", "ix": "ita", "ln": "ltu",
	"lt": "lva", "lx": "lux", "mc": "mkd", "md": "mda", "ml": "mlt",
	"mn": "mne", "mt": "mrt", "nt": "nld", "on": "omn", "pa": "pse",
	"pd": "zzzpd", "px": "pse", "qt": "qat", "rm": "rou", "sb": "srb",
	"sd": "sdn", "sf": "zaf", "sl": "svk", "so": "som", "sw": "che",
	"uc": "ukr", "uk": "gbr", "va": "vat", "ww": "zzzww", "ym": "yem",
}

// Mapper resolves legacy codes. The zero value is not usable; use New.
type Mapper struct {
	languages map[string]string
	countries map[string]string
}

// Overrides is the YAML shape of CODE_MAP_FILE.
type Overrides struct {
	Languages map[string]string `yaml:"languages"`
	Countries map[string]string `yaml:"countries"`
}

func New() *Mapper {
	m := &Mapper{
		languages: make(map[string]string, len(defaultLanguages)),
		countries: make(map[string]string, len(defaultCountries)),
	}
	for k, v := range defaultLanguages {
		m.languages[k] = v
	}
	for k, v := range defaultCountries {
		m.countries[k] = v
	}
	return m
}

// LoadOverrides reads a YAML file and returns a mapper with its entries
// applied on top of the defaults. An empty path returns the defaults.
func LoadOverrides(path string) (*Mapper, error) {
	m := New()
	if strings.TrimSpace(path) == "" {
		return m, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read code map %s: %w", path, err)
	}
	var o Overrides
	if err := yaml.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("decode code map %s: %w", path, err)
	}
	m.Apply(o)
	return m, nil
}

func (m *Mapper) Apply(o Overrides) {
	for k, v := range o.Languages {
		m.languages[normalize(k)] = strings.TrimSpace(v)
	}
	for k, v := range o.Countries {
		m.countries[normalize(k)] = strings.TrimSpace(v)
	}
}

// Language maps a legacy language code. Unknown codes are an error so that
// no row is written with a guessed language.
func (m *Mapper) Language(legacy string) (string, error) {
	if v, ok := m.languages[normalize(legacy)]; ok {
		return v, nil
	}
	return "", fmt.Errorf("unknown language code %q", legacy)
}

func (m *Mapper) Country(legacy string) (string, error) {
	if v, ok := m.countries[normalize(legacy)]; ok {
		return v, nil
	}
	return "", fmt.Errorf("unknown country code %q", legacy)
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
