package models

import "github.com/evyataryagoni/countryselect/internal/country"

// CountryOption is one row of a country select list in JSON responses
// A separator row has Separator set and no name or code
type CountryOption struct {
	Name      string `json:"name,omitempty"`
	Code      string `json:"code,omitempty"`
	Separator bool   `json:"separator,omitempty"`
}

// CountryListResponse is returned by GET /v1/countries
type CountryListResponse struct {
	Locale    string          `json:"locale"`
	Countries []CountryOption `json:"countries"`
}

// CountryResponse is returned by GET /v1/countries/{code}
type CountryResponse struct {
	Locale string `json:"locale"`
	Code   string `json:"code"`
	Name   string `json:"name"`
}

// LocalesResponse is returned by GET /v1/locales
type LocalesResponse struct {
	Locales []string `json:"locales"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewCountryOptions converts builder items into their JSON form
func NewCountryOptions(items []country.Item) []CountryOption {
	options := make([]CountryOption, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case country.Entry:
			options = append(options, CountryOption{Name: v.Name, Code: v.Code})
		case country.Separator:
			options = append(options, CountryOption{Separator: true})
		}
	}
	return options
}
