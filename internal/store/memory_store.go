package store

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/evyataryagoni/countryselect/internal/country"
	"github.com/evyataryagoni/countryselect/internal/locales"
)

// MemoryStore implements Store over an in-memory translation table
// Readers always see one complete snapshot; Reload swaps it atomically
type MemoryStore struct {
	table atomic.Pointer[locales.Table]
	dir   string // set for file stores, re-read by Refresh
}

// NewMemoryStore creates a store serving the given table
// The table is copied, so later changes by the caller are not visible
func NewMemoryStore(table locales.Table) *MemoryStore {
	s := &MemoryStore{}
	s.Reload(table)
	return s
}

// NewEmbeddedStore creates a store with the locale tables bundled in the binary
func NewEmbeddedStore() (*MemoryStore, error) {
	table, err := locales.Bundled()
	if err != nil {
		return nil, fmt.Errorf("failed to load bundled locales: %w", err)
	}
	return NewMemoryStore(table), nil
}

// NewFileStore creates a store by reading every locale file in dir
//
// Parameters:
//   - dir: directory holding *.yml, *.yaml or *.toml locale files
//
// Returns:
//   - *MemoryStore: store with all locales found in dir
//   - error: any error reading or parsing the files
func NewFileStore(dir string) (*MemoryStore, error) {
	table, err := locales.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load locale files: %w", err)
	}
	s := NewMemoryStore(table)
	s.dir = dir
	return s, nil
}

// Reload replaces the served table
// Codes are canonicalized on the way in, so lower-case keys still match Lookup
func (s *MemoryStore) Reload(table locales.Table) {
	snapshot := locales.Table{}
	for locale, countries := range table {
		for code, name := range countries {
			snapshot.Set(locale, code, name)
		}
	}
	s.table.Store(&snapshot)
}

// Refresh re-reads the locale directory of a file store
// The old table keeps being served when the files fail to load
func (s *MemoryStore) Refresh() error {
	if s.dir == "" {
		return nil
	}
	table, err := locales.LoadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to reload locale files: %w", err)
	}
	s.Reload(table)
	return nil
}

func (s *MemoryStore) snapshot() locales.Table {
	return *s.table.Load()
}

// Lookup returns the name of code in locale
func (s *MemoryStore) Lookup(locale, code string) (string, error) {
	countries, ok := s.snapshot()[locale]
	if !ok {
		return "", fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}

	name, ok := countries[country.CanonicalCode(code)]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", country.ErrNotFound, locale, code)
	}
	return name, nil
}

// AllCodes returns the codes of a locale in ascending order
func (s *MemoryStore) AllCodes(locale string) ([]string, error) {
	countries, ok := s.snapshot()[locale]
	if !ok {
		return nil, fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}

	codes := make([]string, 0, len(countries))
	for code := range countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// Table returns a copy of one locale
func (s *MemoryStore) Table(locale string) (map[string]string, error) {
	countries, ok := s.snapshot().Countries(locale)
	if !ok {
		return nil, fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}
	return countries, nil
}

// Locales lists the loaded locales
func (s *MemoryStore) Locales() ([]string, error) {
	return s.snapshot().Locales(), nil
}

// Close cleans up resources
// Everything lives in memory, but the method is needed to satisfy the Store interface
func (s *MemoryStore) Close() error {
	return nil
}
