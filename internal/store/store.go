package store

import (
	"github.com/evyataryagoni/countryselect/internal/country"
	"github.com/evyataryagoni/countryselect/internal/locales"
)

// Store defines the interface for country translation lookups
// Allows multiple implementations (memory, Redis, SQL) and easy testing with mocks
//
// Every implementation reports country.ErrMissingLocale for a locale it has no
// table for, and country.ErrNotFound for a code missing from a known locale.
type Store interface {
	country.Translator
	country.TableReader

	// Locales lists the locales the store has tables for
	Locales() ([]string, error)

	// Close cleans up resources (database connections, clients, etc.)
	Close() error
}

// Loader is implemented by stores that can be filled from locale files
type Loader interface {
	// LoadTable writes every locale of table and returns the number of translations written
	LoadTable(table locales.Table) (int, error)

	// IsEmpty reports whether the store holds no translations yet
	IsEmpty() (bool, error)
}

// SeedIfEmpty loads table into an empty store and leaves a filled one alone
// Returns the number of translations written
func SeedIfEmpty(l Loader, table locales.Table) (int, error) {
	empty, err := l.IsEmpty()
	if err != nil {
		return 0, err
	}
	if !empty {
		return 0, nil
	}
	return l.LoadTable(table)
}

// Refresher is implemented by stores holding state that can go stale:
// file stores re-read their directory, caches drop their snapshots.
// Wrappers pass the call on to the store they wrap.
type Refresher interface {
	Refresh() error
}

// Refresh refreshes s when it supports it and does nothing otherwise
func Refresh(s Store) error {
	if r, ok := s.(Refresher); ok {
		return r.Refresh()
	}
	return nil
}

// LocaleResolver is implemented by stores that may serve a locale from another locale's table
type LocaleResolver interface {
	// Resolve returns the locale whose table answers for locale
	Resolve(locale string) (string, error)
}
