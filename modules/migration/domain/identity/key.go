// Package identity derives canonical keys for legacy records.
//
// A canonical key is `{schema}:{table}:{pk1}:{pk2}...`. The same legacy row
// always yields the same key, and the key is stored on the target entity as
// its backward_compatibility value.
package identity

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

const separator = ":"

var (
	ErrEmptyValue = errors.New("empty primary key value")
	ErrFieldCount = errors.New("primary key field count mismatch")
)

// Format joins schema, table and pk values. Values are trimmed and otherwise
// used as-is. Callers must reject empty values before calling Format.
func Format(schema, table string, pk ...string) string {
	parts := make([]string, 0, len(pk)+2)
	parts = append(parts, strings.TrimSpace(schema), strings.TrimSpace(table))
	for _, v := range pk {
		parts = append(parts, strings.TrimSpace(v))
	}
	return strings.Join(parts, separator)
}

// Table is the fixed primary-key layout of one legacy table or logical
// record. Fields are listed in key order.
type Table struct {
	Schema string
	Name   string
	Fields []string
}

// Key validates values against the table layout and formats the key.
func (t Table) Key(values ...string) (string, error) {
	if len(values) != len(t.Fields) {
		return "", fmt.Errorf("%s.%s: want %d values, got %d: %w", t.Schema, t.Name, len(t.Fields), len(values), ErrFieldCount)
	}
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("%s.%s: field %s: %w", t.Schema, t.Name, t.Fields[i], ErrEmptyValue)
		}
	}
	return Format(t.Schema, t.Name, values...), nil
}

// KeyFrom reads the pk fields out of a column map in table order.
func (t Table) KeyFrom(row map[string]string) (string, error) {
	values := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		v, ok := row[f]
		if !ok {
			return "", fmt.Errorf("%s.%s: missing field %s: %w", t.Schema, t.Name, f, ErrEmptyValue)
		}
		values[i] = v
	}
	return t.Key(values...)
}

// MustKey is Key for values already known to be present.
func (t Table) MustKey(values ...string) string {
	k, err := t.Key(values...)
	if err != nil {
		panic(err)
	}
	return k
}

// Prefix is `{schema}:{table}:`, shared by every key of the table.
func (t Table) Prefix() string {
	return t.Schema + separator + t.Name + separator
}

func (t Table) String() string {
	return t.Schema + "." + t.Name
}
