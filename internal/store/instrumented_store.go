package store

import (
	"errors"
	"time"

	"github.com/evyataryagoni/countryselect/internal/country"
	"github.com/evyataryagoni/countryselect/internal/metrics"
)

// InstrumentedStore records Prometheus metrics for every call to another Store
type InstrumentedStore struct {
	next    Store
	metrics *metrics.Metrics
}

// NewInstrumentedStore wraps next; m must not be nil
func NewInstrumentedStore(next Store, m *metrics.Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: m}
}

func (s *InstrumentedStore) observe(operation string, start time.Time, err error) {
	s.metrics.StoreOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	s.metrics.StoreOperationsTotal.WithLabelValues(operation, statusOf(err)).Inc()
}

// statusOf maps an error to a metric label
func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, country.ErrNotFound):
		return "not_found"
	case errors.Is(err, country.ErrMissingLocale):
		return "missing_locale"
	default:
		return "error"
	}
}

func (s *InstrumentedStore) Lookup(locale, code string) (string, error) {
	start := time.Now()
	name, err := s.next.Lookup(locale, code)
	s.observe("lookup", start, err)
	return name, err
}

func (s *InstrumentedStore) AllCodes(locale string) ([]string, error) {
	start := time.Now()
	codes, err := s.next.AllCodes(locale)
	s.observe("all_codes", start, err)
	return codes, err
}

func (s *InstrumentedStore) Table(locale string) (map[string]string, error) {
	start := time.Now()
	table, err := s.next.Table(locale)
	s.observe("table", start, err)
	return table, err
}

func (s *InstrumentedStore) Locales() ([]string, error) {
	start := time.Now()
	names, err := s.next.Locales()
	s.observe("locales", start, err)
	return names, err
}

func (s *InstrumentedStore) Refresh() error {
	return Refresh(s.next)
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
