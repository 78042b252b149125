package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tradewatch/internal/countries"
	"tradewatch/internal/pipeline"
	"tradewatch/internal/providers/census"
	"tradewatch/internal/tariff"
)

// Refresher runs one refresh cycle; satisfied by *pipeline.Pipeline.
type Refresher interface {
	Refresh(ctx context.Context, names []string, period string) (pipeline.Result, error)
}

// TradeHandler serves the shaped trade table, the supported country list,
// and the tariff table.
//
// Endpoints:
//   - GET /api/v1/trade?countries=India,China&period=2023
//   - GET /api/v1/countries
//   - GET /api/v1/tariffs
type TradeHandler struct {
	refresher Refresher
	tariffs   tariff.Table
	defaults  []string
}

func NewTradeHandler(refresher Refresher, tariffs tariff.Table, defaultCountries []string) *TradeHandler {
	return &TradeHandler{
		refresher: refresher,
		tariffs:   tariffs,
		defaults:  defaultCountries,
	}
}

// GetTrade returns the derived rows for the requested countries and
// period. Omitting countries uses the server's default set; omitting
// period uses the latest complete year.
//
// Errors follow the pipeline's kinds: an unsupported country is the
// caller's mistake (400); anything the statistics API did wrong becomes a
// 503 "no data available" so the client renders an empty state.
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		writeError(w, http.StatusInternalServerError, ErrorResponse{Error: "pipeline not configured"})
		return
	}

	names := h.defaults
	if raw := strings.TrimSpace(r.URL.Query().Get("countries")); raw != "" {
		names = splitList(raw)
	}
	period := strings.TrimSpace(r.URL.Query().Get("period"))

	result, err := h.refresher.Refresh(r.Context(), names, period)
	if err != nil {
		h.writeRefreshError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *TradeHandler) writeRefreshError(w http.ResponseWriter, err error) {
	var shapeErr *census.ShapeError
	var statusErr *census.StatusError
	switch {
	case errors.Is(err, countries.ErrUnknownCountry):
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error:   "unsupported country",
			Code:    "unknown_country",
			Details: err.Error(),
		})
	case errors.Is(err, census.ErrRateLimited):
		writeError(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "no data available",
			Code:    "rate_limited",
			Details: err.Error(),
		})
	case errors.Is(err, census.ErrNoRecords):
		writeError(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "no data available",
			Code:  "no_records",
		})
	case errors.As(err, &shapeErr):
		writeError(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "no data available",
			Code:    "bad_upstream_data",
			Details: err.Error(),
		})
	case errors.As(err, &statusErr):
		writeError(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "no data available",
			Code:    "upstream_error",
			Details: err.Error(),
		})
	default:
		writeError(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "no data available",
			Code:    "fetch_failed",
			Details: err.Error(),
		})
	}
}

// GetCountries lists the supported countries with their codes.
func (h *TradeHandler) GetCountries(w http.ResponseWriter, r *http.Request) {
	_ = r
	type entry struct {
		Name       string `json:"name"`
		CensusCode string `json:"census_code"`
		ISO3       string `json:"iso3"`
	}
	all := countries.All()
	out := make([]entry, 0, len(all))
	for _, c := range all {
		out = append(out, entry{Name: c.Name, CensusCode: c.CensusCode, ISO3: c.ISO3})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTariffs returns the active tariff table.
func (h *TradeHandler) GetTariffs(w http.ResponseWriter, r *http.Request) {
	_ = r
	entries := h.tariffs.Entries()
	writeJSON(w, http.StatusOK, entries)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
