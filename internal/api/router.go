package api

import (
	"net/http"
	"toll-rate-service/internal/api/handlers"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/ports"
)

type RouterConfig struct {
	Source      ports.ObservationSource
	Rates       domain.VehicleRateTable
	Windows     domain.TimeWindowTable
	DefaultSeed uint64
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers only see the ObservationSource port, never a concrete adapter.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	distanceHandler := &handlers.DistanceHandler{Source: cfg.Source}
	tollHandler := &handlers.TollHandler{
		Source:      cfg.Source,
		Rates:       cfg.Rates,
		Windows:     cfg.Windows,
		DefaultSeed: cfg.DefaultSeed,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/distance-matrix", distanceHandler.Matrix)
	mux.HandleFunc("/distances", distanceHandler.Records)
	mux.HandleFunc("/neighbors", distanceHandler.Neighbors)
	mux.HandleFunc("/tolls", tollHandler.Tolls)
	mux.HandleFunc("/coverage", tollHandler.Coverage)

	return loggingMiddleware(mux)
}
