package store

import (
	"errors"
	"strings"

	"github.com/evyataryagoni/countryselect/internal/country"
)

// FallbackStore resolves locales that have no table of their own
//
// Resolution order for a locale such as "de-AT":
//  1. de-AT
//  2. de (the base language)
//  3. the default locale
//
// Only a missing locale triggers the fallback. A code missing from a locale
// that does exist is still reported as country.ErrNotFound.
type FallbackStore struct {
	next          Store
	defaultLocale string
}

// NewFallbackStore wraps next with locale fallback to defaultLocale
func NewFallbackStore(next Store, defaultLocale string) *FallbackStore {
	return &FallbackStore{
		next:          next,
		defaultLocale: defaultLocale,
	}
}

// Chain returns the locales tried for locale, in order, without duplicates
func (s *FallbackStore) Chain(locale string) []string {
	chain := []string{locale}
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		chain = append(chain, locale[:i])
	}
	if s.defaultLocale != "" {
		chain = append(chain, s.defaultLocale)
	}

	seen := make(map[string]bool, len(chain))
	out := chain[:0]
	for _, l := range chain {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// resolve runs fn against each locale of the chain until one exists
func resolve[T any](s *FallbackStore, locale string, fn func(string) (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	for _, candidate := range s.Chain(locale) {
		result, err = fn(candidate)
		if !errors.Is(err, country.ErrMissingLocale) {
			return result, err
		}
	}
	return result, err
}

// Resolve returns the locale whose table will actually serve locale
func (s *FallbackStore) Resolve(locale string) (string, error) {
	return resolve(s, locale, func(candidate string) (string, error) {
		if _, err := s.next.AllCodes(candidate); err != nil {
			return "", err
		}
		return candidate, nil
	})
}

// Lookup returns the name of code, falling back across locales
func (s *FallbackStore) Lookup(locale, code string) (string, error) {
	return resolve(s, locale, func(candidate string) (string, error) {
		return s.next.Lookup(candidate, code)
	})
}

// AllCodes returns the codes of the first existing locale in the chain
func (s *FallbackStore) AllCodes(locale string) ([]string, error) {
	return resolve(s, locale, s.next.AllCodes)
}

// Table returns the table of the first existing locale in the chain
func (s *FallbackStore) Table(locale string) (map[string]string, error) {
	return resolve(s, locale, s.next.Table)
}

// Locales lists the locales of the wrapped store
func (s *FallbackStore) Locales() ([]string, error) {
	return s.next.Locales()
}

// Refresh refreshes the wrapped store
func (s *FallbackStore) Refresh() error {
	return Refresh(s.next)
}

// Close closes the wrapped store
func (s *FallbackStore) Close() error {
	return s.next.Close()
}
