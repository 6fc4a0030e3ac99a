package presentation

import (
	"compress/flate"
	"context"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/services/catalogstats"
	"github.com/opendatanet/catalog-indicators/internal/pkg/presentation/handlers"
	"github.com/riandyrn/otelchi"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Start(port string) error
}

type indicatorsAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(r chi.Router, ctx context.Context, svc catalogstats.CatalogStatsService) API {
	return newIndicatorsAPI(r, ctx, svc)
}

func newIndicatorsAPI(r chi.Router, ctx context.Context, svc catalogstats.CatalogStatsService) *indicatorsAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"application/json",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("catalog-indicators", otelchi.WithChiRoutes(r)))

	a := &indicatorsAPI{
		router: r,
		log:    log,
	}

	a.addIndicatorHandlers(r, log, svc)
	a.addProbeHandlers(r)

	return a
}

func (a *indicatorsAPI) Start(port string) error {
	a.log.Info().Msgf("starting catalog-indicators on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *indicatorsAPI) addIndicatorHandlers(r chi.Router, log zerolog.Logger, svc catalogstats.CatalogStatsService) {
	r.Get(
		"/api/indicators",
		handlers.NewRetrieveCatalogIndicatorsHandler(log, svc),
	)
	r.Get(
		"/api/indicators/network",
		handlers.NewRetrieveNetworkIndicatorsHandler(log, svc),
	)
	r.Get(
		"/api/indicators/{id}",
		handlers.NewRetrieveCatalogIndicatorsByIDHandler(log, svc),
	)
	r.Get(
		"/api/harvest/selection",
		handlers.NewRetrieveHarvestSelectionHandler(log, svc),
	)
}

func (a *indicatorsAPI) addProbeHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
