package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradewatch/internal/api/handlers"
	"tradewatch/internal/api/middleware"
	"tradewatch/internal/tariff"
)

type Dependencies struct {
	Refresher        handlers.Refresher
	Tariffs          tariff.Table
	DefaultCountries []string
}

// NewRouter wires all HTTP routes.
//
//	/api/v1/trade      GET  shaped trade table
//	/api/v1/countries  GET  supported country list
//	/api/v1/tariffs    GET  tariff table
//	/healthz           GET  liveness
//	/metrics           GET  Prometheus metrics
func NewRouter(deps Dependencies) *mux.Router {
	trade := handlers.NewTradeHandler(deps.Refresher, deps.Tariffs, deps.DefaultCountries)

	router := mux.NewRouter()
	router.Use(middleware.Recovery)
	router.Use(middleware.Logging)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/trade", trade.GetTrade).Methods(http.MethodGet)
	v1.HandleFunc("/countries", trade.GetCountries).Methods(http.MethodGet)
	v1.HandleFunc("/tariffs", trade.GetTariffs).Methods(http.MethodGet)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}
