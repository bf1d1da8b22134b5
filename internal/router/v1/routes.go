package v1

import (
	"github.com/evyataryagoni/countryselect/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures the /v1 API routes
func SetupRoutes(countryHandler *handler.CountryHandler) chi.Router {
	r := chi.NewRouter()

	// GET /v1/countries?locale=cz&priority=ES,CZ
	r.Get("/countries", countryHandler.ListCountries)

	// GET /v1/countries/ES?locale=cz
	r.Get("/countries/{code}", countryHandler.GetCountry)

	// GET /v1/country-select?locale=cz&priority=ES&object=user&method=country
	r.Get("/country-select", countryHandler.CountrySelect)

	// GET /v1/locales
	r.Get("/locales", countryHandler.ListLocales)

	return r
}
