package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evyataryagoni/countryselect/internal/country"
	"github.com/evyataryagoni/countryselect/internal/logger"
	"github.com/evyataryagoni/countryselect/internal/metrics"
	"github.com/evyataryagoni/countryselect/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidLocale is returned when a locale fails validation
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrInvalidCode is returned when a country code fails validation
	ErrInvalidCode = errors.New("invalid country code")
)

// CountryService handles business logic for country lists
// This is the service layer - it sits between handlers and stores
//
// Responsibilities:
//   - Validate input (locale and country codes)
//   - Build lists with the country package
//   - Log and count outcomes
type CountryService struct {
	store     store.Store
	options   []country.Option
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewCountryService creates a new country service
//
// Parameters:
//   - store: any implementation of the Store interface
//   - m: metrics collector (optional, can be nil)
//   - log: logger (optional, can be nil)
//   - opts: list build options such as country.WithCollation
func NewCountryService(store store.Store, m *metrics.Metrics, log *logger.Logger, opts ...country.Option) *CountryService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &CountryService{
		store:     store,
		options:   opts,
		validator: validator.New(),
		metrics:   m,
		logger:    log.WithComponent("CountryService"),
	}
}

// Countries returns every country of a locale sorted by localized name
func (s *CountryService) Countries(locale string) ([]country.Entry, error) {
	if err := s.validateLocale(locale); err != nil {
		return nil, err
	}

	entries, err := country.LocalizedCountries(s.store, locale, s.options...)
	s.record("localized", locale, len(entries), err)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// PriorityCountries returns the named countries in the order given
func (s *CountryService) PriorityCountries(locale string, codes []string) ([]country.Entry, error) {
	if err := s.validateLocale(locale); err != nil {
		return nil, err
	}
	if err := s.validateCodes(codes); err != nil {
		return nil, err
	}

	entries, err := country.PriorityCountries(s.store, locale, codes)
	s.record("priority", locale, len(entries), err)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SelectList returns the full option order for a country select:
// priority countries, a separator, then everything else
func (s *CountryService) SelectList(locale string, priority []string) ([]country.Item, error) {
	if err := s.validateLocale(locale); err != nil {
		return nil, err
	}
	if err := s.validateCodes(priority); err != nil {
		return nil, err
	}

	items, err := country.BuildSelectList(s.store, locale, priority, s.options...)
	s.record("select", locale, len(items), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Lookup returns a single localized country
func (s *CountryService) Lookup(locale, code string) (country.Entry, error) {
	if err := s.validateLocale(locale); err != nil {
		return country.Entry{}, err
	}
	if err := s.validateCodes([]string{code}); err != nil {
		return country.Entry{}, err
	}

	code = country.CanonicalCode(code)
	name, err := s.store.Lookup(locale, code)
	if err != nil {
		s.countLookup(err)
		s.logFailure(locale, err).Str("code", code).Msg("Country lookup failed")
		return country.Entry{}, err
	}

	s.countLookup(nil)
	s.logger.Debug().Str("locale", locale).Str("code", code).Str("name", name).Msg("Country lookup successful")
	return country.Entry{Name: name, Code: code}, nil
}

// ResolveLocale returns the locale whose table answers for locale.
// It differs from locale only when the store falls back to another table;
// stores without fallback, or a failed resolution, give back locale itself.
func (s *CountryService) ResolveLocale(locale string) string {
	resolver, ok := s.store.(store.LocaleResolver)
	if !ok {
		return locale
	}
	resolved, err := resolver.Resolve(locale)
	if err != nil {
		s.logger.Debug().Err(err).Str("locale", locale).Msg("Locale resolution failed")
		return locale
	}
	return resolved
}

// Locales lists the locales the store can serve
func (s *CountryService) Locales() ([]string, error) {
	names, err := s.store.Locales()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list locales")
		return nil, err
	}
	return names, nil
}

// Close cleans up resources
// This will close the underlying store (database connections, etc.)
func (s *CountryService) Close() error {
	return s.store.Close()
}

// ParseCodes splits a comma separated list of country codes
// Example: "es, cz,,TW" -> ["ES", "CZ", "TW"]
func ParseCodes(value string) []string {
	var codes []string
	for _, part := range strings.Split(value, ",") {
		if code := country.CanonicalCode(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// IsNotFound reports whether err means the locale or country does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, country.ErrNotFound) || errors.Is(err, country.ErrMissingLocale)
}

// IsInvalidInput reports whether err is a validation failure
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidLocale) || errors.Is(err, ErrInvalidCode)
}

func (s *CountryService) validateLocale(locale string) error {
	if err := s.validator.Var(locale, "required,max=35,printascii"); err != nil {
		s.logger.Warn().Str("locale", locale).Msg("Invalid locale")
		s.countInvalid()
		return fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
	}
	return nil
}

func (s *CountryService) validateCodes(codes []string) error {
	for _, code := range codes {
		if err := s.validator.Var(country.CanonicalCode(code), "required,len=2,alpha"); err != nil {
			s.logger.Warn().Str("code", code).Msg("Invalid country code")
			s.countInvalid()
			return fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
	}
	return nil
}

// record logs and counts one list build
func (s *CountryService) record(kind, locale string, size int, err error) {
	if err != nil {
		s.logFailure(locale, err).Str("kind", kind).Msg("Country list build failed")
		if s.metrics != nil {
			s.metrics.CountryListsTotal.WithLabelValues(kind, resultOf(err)).Inc()
		}
		return
	}

	s.logger.Debug().Str("locale", locale).Str("kind", kind).Int("size", size).Msg("Country list built")
	if s.metrics != nil {
		s.metrics.CountryListsTotal.WithLabelValues(kind, "success").Inc()
		s.metrics.CountryListSize.WithLabelValues(kind).Observe(float64(size))
	}
}

// logFailure picks the level for a store error: missing data is the caller's
// problem, anything else is ours
func (s *CountryService) logFailure(locale string, err error) *zerolog.Event {
	log := s.logger.WithLocale(locale)
	if IsNotFound(err) {
		return log.Debug().Err(err)
	}
	return log.Error().Err(err)
}

func (s *CountryService) countLookup(err error) {
	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues(resultOf(err)).Inc()
	}
}

func (s *CountryService) countInvalid() {
	if s.metrics != nil {
		s.metrics.CountryListsTotal.WithLabelValues("validation", "invalid").Inc()
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}
