package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/evyataryagoni/countryselect/internal/models"
	"github.com/evyataryagoni/countryselect/internal/render"
	"github.com/evyataryagoni/countryselect/internal/service"
	"github.com/go-chi/chi/v5"
)

// CountryHandler handles HTTP requests for country lists
// This is the handler layer - it deals with HTTP concerns only
//
// Responsibilities:
//   - Parse HTTP requests (query and path parameters)
//   - Call service methods
//   - Format HTTP responses (JSON or HTML)
//   - NO business logic (that's in the service layer)
type CountryHandler struct {
	service       *service.CountryService
	defaultLocale string
}

// NewCountryHandler creates a new country handler
// defaultLocale is used when a request has no locale parameter
func NewCountryHandler(service *service.CountryService, defaultLocale string) *CountryHandler {
	return &CountryHandler{
		service:       service,
		defaultLocale: defaultLocale,
	}
}

// ListCountries handles GET /v1/countries?locale=<locale>&priority=<codes>
// Without priority the response is the sorted list; with priority it is the
// full select list including a separator row.
// The locale field names the table that served the list, which is not the
// requested one when the store fell back.
func (h *CountryHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	priority := service.ParseCodes(r.URL.Query().Get("priority"))

	items, err := h.service.SelectList(locale, priority)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.CountryListResponse{
		Locale:    h.service.ResolveLocale(locale),
		Countries: models.NewCountryOptions(items),
	})
}

// GetCountry handles GET /v1/countries/{code}?locale=<locale>
func (h *CountryHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	locale := h.locale(r)
	code := chi.URLParam(r, "code")

	entry, err := h.service.Lookup(locale, code)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.CountryResponse{
		Locale: h.service.ResolveLocale(locale),
		Code:   entry.Code,
		Name:   entry.Name,
	})
}

// CountrySelect handles GET /v1/country-select
// Renders an HTML select fragment for embedding into forms
//
// Query parameters: locale, priority, object, method, selected, include_blank, prompt
func (h *CountryHandler) CountrySelect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	locale := h.locale(r)

	items, err := h.service.SelectList(locale, service.ParseCodes(query.Get("priority")))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	field := render.Field{Object: query.Get("object"), Method: query.Get("method")}
	if field.Object == "" && field.Method == "" {
		field = render.Field{Object: "user", Method: "country"}
	}
	if field.Method == "" {
		h.respondError(w, http.StatusBadRequest, "Missing 'method' query parameter")
		return
	}

	includeBlank, _ := strconv.ParseBool(query.Get("include_blank"))
	html := render.Select(field, items, render.SelectOptions{
		IncludeBlank: includeBlank,
		Prompt:       query.Get("prompt"),
		Selected:     query.Get("selected"),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// ListLocales handles GET /v1/locales
func (h *CountryHandler) ListLocales(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.Locales()
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, models.LocalesResponse{Locales: names})
}

func (h *CountryHandler) locale(r *http.Request) string {
	if locale := r.URL.Query().Get("locale"); locale != "" {
		return locale
	}
	return h.defaultLocale
}

// respondServiceError maps service errors to status codes
func (h *CountryHandler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsInvalidInput(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case service.IsNotFound(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		// Any other error is an internal server error
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON writes a JSON response with the given status code
func (h *CountryHandler) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent, nothing more to do than report it
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondError writes an error response with consistent formatting
func (h *CountryHandler) respondError(w http.ResponseWriter, statusCode int, message string) {
	h.respondJSON(w, statusCode, models.ErrorResponse{Error: message})
}
