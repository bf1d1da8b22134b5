// Package country builds the ordered country lists shown in a country <select>.
//
// Everything here is a pure function over a Translator: the locale is always
// passed explicitly and nothing is cached between calls.
package country

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a code has no entry in a locale's table
	ErrNotFound = errors.New("country not found")

	// ErrMissingLocale is returned by translators that have no table for a locale
	ErrMissingLocale = errors.New("locale not found")
)

// Translator is the read-only view of a translation table that the builder needs.
// Fallback between locales is the implementation's business, not the builder's.
type Translator interface {
	// Lookup returns the localized name of code in locale
	Lookup(locale, code string) (string, error)

	// AllCodes returns every code defined for locale
	AllCodes(locale string) ([]string, error)
}

// TableReader is implemented by translators that can hand out a whole locale
// at once. The builder prefers it over one Lookup per code.
type TableReader interface {
	Table(locale string) (map[string]string, error)
}

// Entry is a single selectable country: its display name and ISO code
type Entry struct {
	Name string
	Code string
}

// Separator marks the disabled divider between priority and remaining countries
type Separator struct{}

// Item is either an Entry or a Separator
type Item interface {
	isItem()
}

func (Entry) isItem()     {}
func (Separator) isItem() {}

// CanonicalCode normalizes a country code for comparison and lookup
// Example: " es " -> "ES"
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
