package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/evyataryagoni/countryselect/internal/country"
)

// TestCachedStore_ReadsThroughOnce tests that a locale is fetched once per TTL
func TestCachedStore_ReadsThroughOnce(t *testing.T) {
	mock := NewMockStore()
	cached := NewCachedStore(mock, time.Minute)

	for i := 0; i < 3; i++ {
		name, err := cached.Lookup("cz", "ES")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if name != "Španělsko" {
			t.Errorf("expected 'Španělsko', got '%s'", name)
		}
	}
	if _, err := country.LocalizedCountries(cached, "cz"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.TableCalls) != 1 {
		t.Errorf("expected 1 backing Table call, got %d", len(mock.TableCalls))
	}
	if len(mock.LookupCalls) != 0 {
		t.Errorf("expected no backing Lookup calls, got %d", len(mock.LookupCalls))
	}
}

// TestCachedStore_Invalidate tests that new data is seen after Invalidate
func TestCachedStore_Invalidate(t *testing.T) {
	mock := NewMockStore()
	cached := NewCachedStore(mock, time.Minute)

	cached.Lookup("en-US", "CZ")
	mock.Data["en-US"]["CZ"] = "Czechia"

	if name, _ := cached.Lookup("en-US", "CZ"); name != "Czech Republic" {
		t.Errorf("expected cached 'Czech Republic', got '%s'", name)
	}

	cached.Invalidate()

	if name, _ := cached.Lookup("en-US", "CZ"); name != "Czechia" {
		t.Errorf("expected 'Czechia' after invalidate, got '%s'", name)
	}
}

// TestRefresh_Chain tests that Refresh reaches the cache through the outer wrappers
func TestRefresh_Chain(t *testing.T) {
	mock := NewMockStore()
	chain := NewFallbackStore(NewCachedStore(mock, time.Minute), "en-US")

	chain.Lookup("en-GB", "CZ")
	mock.Data["en-US"]["CZ"] = "Czechia"

	if name, _ := chain.Lookup("en-GB", "CZ"); name != "Czech Republic" {
		t.Errorf("expected cached 'Czech Republic', got '%s'", name)
	}

	if err := Refresh(chain); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if name, _ := chain.Lookup("en-GB", "CZ"); name != "Czechia" {
		t.Errorf("expected 'Czechia' after refresh, got '%s'", name)
	}
}

// TestRefresh_Unsupported tests that stores without Refresh are left alone
func TestRefresh_Unsupported(t *testing.T) {
	if err := Refresh(NewMockStore()); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

// TestCachedStore_Errors tests that errors are passed through and not cached
func TestCachedStore_Errors(t *testing.T) {
	mock := NewMockStore()
	cached := NewCachedStore(mock, time.Minute)

	if _, err := cached.Lookup("xx", "ES"); !errors.Is(err, country.ErrMissingLocale) {
		t.Errorf("expected ErrMissingLocale, got %v", err)
	}
	if _, err := cached.Lookup("cz", "TW"); !errors.Is(err, country.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	mock.Data["xx"] = map[string]string{"ES": "Spain"}
	if _, err := cached.Lookup("xx", "ES"); err != nil {
		t.Errorf("expected locale added later to be found, got %v", err)
	}
}

// TestCachedStore_TableIsCopy tests that callers cannot corrupt the snapshot
func TestCachedStore_TableIsCopy(t *testing.T) {
	cached := NewCachedStore(NewMockStore(), time.Minute)

	table, _ := cached.Table("cz")
	table["ES"] = "broken"

	if name, _ := cached.Lookup("cz", "ES"); name != "Španělsko" {
		t.Errorf("expected snapshot unchanged, got '%s'", name)
	}
}

// TestCachedStore_Close tests that Close reaches the wrapped store
func TestCachedStore_Close(t *testing.T) {
	mock := NewMockStore()
	NewCachedStore(mock, time.Minute).Close()

	if !mock.CloseCalled {
		t.Error("expected wrapped store to be closed")
	}
}

// TestFallbackStore_Chain tests the resolution order
func TestFallbackStore_Chain(t *testing.T) {
	store := NewFallbackStore(NewMockStore(), "en-US")

	tests := []struct {
		locale   string
		expected []string
	}{
		{"de-AT", []string{"de-AT", "de", "en-US"}},
		{"pt_BR", []string{"pt_BR", "pt", "en-US"}},
		{"cz", []string{"cz", "en-US"}},
		{"en-US", []string{"en-US", "en"}},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := store.Chain(tt.locale); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestFallbackStore_MissingLocale tests falling back to the default locale
func TestFallbackStore_MissingLocale(t *testing.T) {
	store := NewFallbackStore(NewMockStore(), "en-US")

	name, err := store.Lookup("de-AT", "ES")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Spain" {
		t.Errorf("expected 'Spain', got '%s'", name)
	}

	resolved, err := store.Resolve("de-AT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != "en-US" {
		t.Errorf("expected 'en-US', got '%s'", resolved)
	}

	entries, err := country.LocalizedCountries(store, "fr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 5 || entries[0].Name != "Afghanistan" {
		t.Errorf("expected English list, got %v", entries)
	}
}

// TestFallbackStore_BaseLanguage tests the base language step
func TestFallbackStore_BaseLanguage(t *testing.T) {
	mock := NewMockStore()
	mock.Data["de"] = map[string]string{"ES": "Spanien"}
	store := NewFallbackStore(mock, "en-US")

	name, err := store.Lookup("de-CH", "ES")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Spanien" {
		t.Errorf("expected 'Spanien', got '%s'", name)
	}
}

// TestFallbackStore_NoFallbackForCodes tests that a missing code is not looked up elsewhere
func TestFallbackStore_NoFallbackForCodes(t *testing.T) {
	store := NewFallbackStore(NewMockStore(), "en-US")

	// TW exists in en-US but not in cz
	_, err := store.Lookup("cz", "TW")
	if !errors.Is(err, country.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestFallbackStore_NothingMatches tests the error when no locale in the chain exists
func TestFallbackStore_NothingMatches(t *testing.T) {
	store := NewFallbackStore(NewEmptyMockStore(), "en-US")

	if _, err := store.Table("de"); !errors.Is(err, country.ErrMissingLocale) {
		t.Errorf("expected ErrMissingLocale, got %v", err)
	}
}

// TestFallbackStore_StoreError tests that other errors stop the chain
func TestFallbackStore_StoreError(t *testing.T) {
	mock := NewMockStore()
	mock.Err = errors.New("connection refused")
	store := NewFallbackStore(mock, "en-US")

	_, err := store.Lookup("de", "ES")
	if err == nil || err.Error() != "connection refused" {
		t.Errorf("expected store error, got %v", err)
	}
	if len(mock.LookupCalls) != 1 {
		t.Errorf("expected 1 Lookup call, got %d", len(mock.LookupCalls))
	}
}
