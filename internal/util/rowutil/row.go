// Package rowutil looks up semantic fields in loosely structured spreadsheet rows.
package rowutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Cell is one header/value pair of a worksheet row.
type Cell struct {
	Header string
	Value  string
}

// Row keeps cells in column order. Lookup returns the first match, so order is
// significant and a map would not do.
type Row []Cell

// Get returns the value under an exact header.
func (r Row) Get(header string) (string, bool) {
	for _, c := range r {
		if c.Header == header {
			return c.Value, c.Value != ""
		}
	}
	return "", false
}

// Aliases is an ordered list of normalized candidate header names for one field.
type Aliases []string

// NewAliases normalizes every candidate the same way headers are normalized.
func NewAliases(candidates ...string) Aliases {
	a := make(Aliases, len(candidates))
	for i, c := range candidates {
		a[i] = Normalize(c)
	}
	return a
}

// Normalize folds a header or alias to its comparable form: NFC, trimmed and
// lower-cased. Sheets exported from different tools disagree on whether
// Vietnamese diacritics are precomposed.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

func (a Aliases) has(key string) bool {
	for _, c := range a {
		if c == key {
			return true
		}
	}
	return false
}

func (a Aliases) containedIn(key string) bool {
	for _, c := range a {
		if len([]rune(c)) > 1 && strings.Contains(key, c) {
			return true
		}
	}
	return false
}

// Lookup returns the first non-empty cell whose header equals one of the aliases.
// Failing that it falls back to the first header containing an alias longer than
// one character. Exact matches win so that e.g. "id" does not get picked up by a
// "Size Id" column before the real "ID" column is considered.
func Lookup(row Row, aliases Aliases) (string, bool) {
	keys := make([]string, len(row))
	for i, c := range row {
		keys[i] = Normalize(c.Header)
	}

	for i, c := range row {
		if c.Value != "" && aliases.has(keys[i]) {
			return c.Value, true
		}
	}
	for i, c := range row {
		if c.Value != "" && aliases.containedIn(keys[i]) {
			return c.Value, true
		}
	}
	return "", false
}
