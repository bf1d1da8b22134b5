package country

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation selects how country names are compared when sorting
type Collation int

const (
	// CollationOrdinal compares names by code point (the default)
	CollationOrdinal Collation = iota

	// CollationLocale compares names with the locale's collation rules
	CollationLocale
)

// ParseCollation converts a configuration value ("ordinal", "locale") into a Collation
func ParseCollation(value string) (Collation, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "ordinal":
		return CollationOrdinal, nil
	case "locale":
		return CollationLocale, nil
	default:
		return CollationOrdinal, fmt.Errorf("unknown collation: %s (supported: 'ordinal', 'locale')", value)
	}
}

func (c Collation) String() string {
	if c == CollationLocale {
		return "locale"
	}
	return "ordinal"
}

// Option configures a list build
type Option func(*options)

type options struct {
	collation Collation
}

// WithCollation picks the name comparison used by LocalizedCountries
func WithCollation(c Collation) Option {
	return func(o *options) {
		o.collation = c
	}
}

func buildOptions(opts []Option) options {
	o := options{collation: CollationOrdinal}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// comparer returns a three-way string comparison for the given locale.
// A collate.Collator keeps internal buffers, so a fresh one is made per call.
func (o options) comparer(locale string) func(a, b string) int {
	if o.collation != CollationLocale {
		return strings.Compare
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	collator := collate.New(tag)
	return collator.CompareString
}
