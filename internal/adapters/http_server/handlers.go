package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"travel_search/internal/app"
	"travel_search/internal/domain"
	"travel_search/internal/geo"
)

type Handlers struct {
	S        *app.SearchService
	validate *validator.Validate
}

func NewHandlers(s *app.SearchService) *Handlers {
	return &Handlers{S: s, validate: validator.New()}
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/airports/search", h.searchAirports)
	s.mux.Post("/flights/search", h.searchFlights)
	s.mux.Post("/hotels/search", h.searchHotels)
	s.mux.Get("/coords/{skyId}", h.getCoords)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// etagFor is a weak hash over the response bytes, so clients polling a cached
// airport payload can short-circuit on If-None-Match.
func etagFor(body []byte) string {
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

func (h *Handlers) searchAirports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Query", "query parameter is required")
		return
	}

	payload, err := h.S.SearchAirports(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			writeProblem(w, http.StatusInternalServerError, "Upstream Throttled", "rate limited with no cached results")
			return
		}
		log.Error().Err(err).Str("query", query).Msg("airport search failed")
		writeProblem(w, http.StatusInternalServerError, "Upstream Failure", "failed to search airports")
		return
	}

	etag := etagFor(payload)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Error().Err(err).Msg("failed to write airport search body")
	}
}

func (h *Handlers) searchFlights(w http.ResponseWriter, r *http.Request) {
	var req domain.FlightSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}

	env, err := h.S.SearchFlights(r.Context(), req)
	if err != nil {
		// only reachable when the failure policy is Propagate
		writeProblem(w, http.StatusInternalServerError, "Upstream Failure", "failed to search flights")
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	var req domain.HotelSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.S.SearchHotels(r.Context(), req))
}

func (h *Handlers) getCoords(w http.ResponseWriter, r *http.Request) {
	skyID := chi.URLParam(r, "skyId")
	c, ok := geo.Lookup(skyID)
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "no coordinates for "+skyID)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		SkyID string  `json:"skyId"`
		Lon   float64 `json:"lon"`
		Lat   float64 `json:"lat"`
	}{skyID, c.Lon, c.Lat})
}
