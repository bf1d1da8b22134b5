package store

import (
	"testing"

	"github.com/evyataryagoni/countryselect/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestInstrumentedStore_Counts tests status labels per operation
func TestInstrumentedStore_Counts(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	store := NewInstrumentedStore(NewMockStore(), m)

	store.Lookup("cz", "ES")
	store.Lookup("cz", "TW")
	store.Lookup("xx", "ES")
	store.Table("en-US")
	store.Locales()

	tests := []struct {
		operation string
		status    string
		expected  float64
	}{
		{"lookup", "ok", 1},
		{"lookup", "not_found", 1},
		{"lookup", "missing_locale", 1},
		{"table", "ok", 1},
		{"locales", "ok", 1},
	}

	for _, tt := range tests {
		t.Run(tt.operation+"/"+tt.status, func(t *testing.T) {
			got := testutil.ToFloat64(m.StoreOperationsTotal.WithLabelValues(tt.operation, tt.status))
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestInstrumentedStore_PassesThrough tests that results are unchanged
func TestInstrumentedStore_PassesThrough(t *testing.T) {
	mock := NewMockStore()
	store := NewInstrumentedStore(mock, metrics.NewWithRegistry(prometheus.NewRegistry()))

	name, err := store.Lookup("en-US", "TW")
	if err != nil || name != "Taiwan" {
		t.Errorf("expected Taiwan, got %q (err=%v)", name, err)
	}
	codes, err := store.AllCodes("cz")
	if err != nil || len(codes) != 4 {
		t.Errorf("expected 4 codes, got %v (err=%v)", codes, err)
	}

	store.Close()
	if !mock.CloseCalled {
		t.Error("expected wrapped store to be closed")
	}
}
