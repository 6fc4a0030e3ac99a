package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/harvest"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/services/catalogstats"
	"github.com/rs/zerolog"
)

func NewRetrieveHarvestSelectionHandler(logger zerolog.Logger, svc catalogstats.CatalogStatsService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-harvest-selection")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, _, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		criterion := harvest.Criterion(r.URL.Query().Get("criterion"))
		if criterion == "" {
			criterion = harvest.CriterionValid
		}

		selection, err := svc.Selection(criterion)
		if err != nil {
			if errors.Is(err, harvest.ErrInvalidHarvestMode) {
				log.Error().Err(err).Msg("bad request")
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			log.Error().Err(err).Msg("internal error")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		body, err := json.MarshalIndent(selection, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal harvest selection to json")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}
