package store

import (
	"fmt"
	"sort"

	"github.com/evyataryagoni/countryselect/internal/country"
)

// MockStore is a test double for the Store interface
// It allows tests to control behavior and verify interactions
type MockStore struct {
	// Data holds the mock data (locale -> code -> name)
	Data map[string]map[string]string

	// Track method calls for verification in tests
	LookupCalls []string // "locale/code"
	TableCalls  []string
	CloseCalled bool

	// Control behavior for error scenarios
	Err        error // returned by every read method when set
	CloseError error
}

// NewMockStore creates a mock store with a small en/cz sample
func NewMockStore() *MockStore {
	return &MockStore{
		Data: map[string]map[string]string{
			"en-US": {
				"AF": "Afghanistan",
				"CN": "China",
				"CZ": "Czech Republic",
				"ES": "Spain",
				"TW": "Taiwan",
			},
			"cz": {
				"AF": "Afghánistán",
				"CN": "Čína",
				"CZ": "Česká republika",
				"ES": "Španělsko",
			},
		},
		LookupCalls: []string{},
		TableCalls:  []string{},
	}
}

// NewEmptyMockStore creates a mock store with no locales
// Useful for testing "missing locale" scenarios
func NewEmptyMockStore() *MockStore {
	return &MockStore{
		Data:        map[string]map[string]string{},
		LookupCalls: []string{},
		TableCalls:  []string{},
	}
}

// Lookup implements the Store interface
func (m *MockStore) Lookup(locale, code string) (string, error) {
	m.LookupCalls = append(m.LookupCalls, locale+"/"+code)
	if m.Err != nil {
		return "", m.Err
	}

	countries, ok := m.Data[locale]
	if !ok {
		return "", fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}
	name, ok := countries[country.CanonicalCode(code)]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", country.ErrNotFound, locale, code)
	}
	return name, nil
}

// AllCodes implements the Store interface
func (m *MockStore) AllCodes(locale string) ([]string, error) {
	table, err := m.Table(locale)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// Table implements the Store interface
func (m *MockStore) Table(locale string) (map[string]string, error) {
	m.TableCalls = append(m.TableCalls, locale)
	if m.Err != nil {
		return nil, m.Err
	}

	countries, ok := m.Data[locale]
	if !ok {
		return nil, fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}
	out := make(map[string]string, len(countries))
	for code, name := range countries {
		out[code] = name
	}
	return out, nil
}

// Locales implements the Store interface
func (m *MockStore) Locales() ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, 0, len(m.Data))
	for locale := range m.Data {
		names = append(names, locale)
	}
	sort.Strings(names)
	return names, nil
}

// Close implements the Store interface
// Tracks that close was called and returns configured error if any
func (m *MockStore) Close() error {
	m.CloseCalled = true
	return m.CloseError
}
