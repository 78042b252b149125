package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradewatch/internal/model"
	"tradewatch/internal/pipeline"
	"tradewatch/internal/tariff"
)

type staticRefresher struct{}

func (staticRefresher) Refresh(ctx context.Context, names []string, period string) (pipeline.Result, error) {
	_ = ctx
	_ = names
	return pipeline.Result{Period: period, Rows: []model.DerivedRow{}}, nil
}

func TestNewRouter(t *testing.T) {
	router := NewRouter(Dependencies{
		Refresher:        staticRefresher{},
		Tariffs:          tariff.Default(),
		DefaultCountries: []string{"China"},
	})

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/trade", http.StatusOK},
		{http.MethodGet, "/api/v1/countries", http.StatusOK},
		{http.MethodGet, "/api/v1/tariffs", http.StatusOK},
		{http.MethodPost, "/api/v1/trade", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.want, w.Code)
		}
	}
}
