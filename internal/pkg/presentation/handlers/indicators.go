package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/services/catalogstats"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("catalog-indicators/handlers")

func NewRetrieveCatalogIndicatorsHandler(logger zerolog.Logger, svc catalogstats.CatalogStatsService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		_, span := tracer.Start(r.Context(), "retrieve-catalog-indicators")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		body := svc.GetAll()

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}

func NewRetrieveNetworkIndicatorsHandler(logger zerolog.Logger, svc catalogstats.CatalogStatsService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		_, span := tracer.Start(r.Context(), "retrieve-network-indicators")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		body := svc.GetNetwork()

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}

func NewRetrieveCatalogIndicatorsByIDHandler(logger zerolog.Logger, svc catalogstats.CatalogStatsService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-catalog-indicators-by-id")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, _, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		catalogID, _ := url.QueryUnescape(chi.URLParam(r, "id"))
		if catalogID == "" {
			err = fmt.Errorf("no catalog id supplied in query")
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		body, err := svc.GetByID(catalogID)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}
