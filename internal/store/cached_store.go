package store

import (
	"fmt"
	"time"

	"github.com/evyataryagoni/countryselect/internal/country"
	gocache "github.com/patrickmn/go-cache"
)

// CachedStore keeps per-locale snapshots of another Store in memory
// A snapshot is never modified after it is cached, so it is safe to share between requests
type CachedStore struct {
	next  Store
	cache *gocache.Cache
}

// NewCachedStore wraps next with a snapshot cache
//
// Parameters:
//   - next: the store that owns the data (Redis, SQL, ...)
//   - ttl: how long a locale snapshot stays valid
func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// snapshot returns the cached table of a locale, reading through on a miss
func (s *CachedStore) snapshot(locale string) (map[string]string, error) {
	if cached, ok := s.cache.Get(locale); ok {
		return cached.(map[string]string), nil
	}

	table, err := s.next.Table(locale)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(locale, table)
	return table, nil
}

// Lookup returns the name of code in locale
func (s *CachedStore) Lookup(locale, code string) (string, error) {
	table, err := s.snapshot(locale)
	if err != nil {
		return "", err
	}

	code = country.CanonicalCode(code)
	name, ok := table[code]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", country.ErrNotFound, locale, code)
	}
	return name, nil
}

// AllCodes returns the codes of a locale
func (s *CachedStore) AllCodes(locale string) ([]string, error) {
	table, err := s.snapshot(locale)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	return codes, nil
}

// Table returns a copy of the cached snapshot
func (s *CachedStore) Table(locale string) (map[string]string, error) {
	table, err := s.snapshot(locale)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(table))
	for code, name := range table {
		out[code] = name
	}
	return out, nil
}

// Locales is not cached; it is only used for listings
func (s *CachedStore) Locales() ([]string, error) {
	return s.next.Locales()
}

// Invalidate drops every cached snapshot, e.g. after reloading the backing store
func (s *CachedStore) Invalidate() {
	s.cache.Flush()
}

// Refresh drops the cached snapshots, then refreshes the wrapped store
func (s *CachedStore) Refresh() error {
	s.Invalidate()
	return Refresh(s.next)
}

// Close closes the wrapped store
func (s *CachedStore) Close() error {
	return s.next.Close()
}
