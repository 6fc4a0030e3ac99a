package catalogstats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/harvest"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/indicators"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/validation"
	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
	"github.com/opendatanet/catalog-indicators/internal/pkg/infrastructure/repositories/catalogs"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("catalog-indicators/svcs/catalogstats")

type CatalogStatsService interface {
	GetAll() []byte
	GetNetwork() []byte
	GetByID(id string) ([]byte, error)

	Selection(criterion harvest.Criterion) ([]domain.HarvestEntry, error)

	Refresh() error

	Start()
	Shutdown()
}

func NewCatalogStatsService(ctx context.Context, logger zerolog.Logger, loader catalogs.CatalogLoader, sources []string, centralSource string) CatalogStatsService {
	return &catalogStatsSvc{
		ctx:           ctx,
		loader:        loader,
		sources:       sources,
		centralSource: centralSource,
		validator:     validation.New(),
		perCatalog:    []byte("[]"),
		network:       []byte("{}"),
		details:       map[string][]byte{},
		log:           logger,
		keepRunning:   true,
	}
}

type catalogStatsSvc struct {
	loader        catalogs.CatalogLoader
	sources       []string
	centralSource string
	validator     *validation.Validator

	statsMutex sync.Mutex
	catalogs   []domain.Catalog
	perCatalog []byte
	network    []byte
	details    map[string][]byte

	ctx context.Context
	log zerolog.Logger

	keepRunning bool
}

func (svc *catalogStatsSvc) GetAll() []byte {
	svc.statsMutex.Lock()
	defer svc.statsMutex.Unlock()

	return svc.perCatalog
}

func (svc *catalogStatsSvc) GetNetwork() []byte {
	svc.statsMutex.Lock()
	defer svc.statsMutex.Unlock()

	return svc.network
}

func (svc *catalogStatsSvc) GetByID(id string) ([]byte, error) {
	svc.statsMutex.Lock()
	defer svc.statsMutex.Unlock()

	body, ok := svc.details[id]
	if !ok {
		return []byte{}, fmt.Errorf("no such catalog")
	}

	return body, nil
}

func (svc *catalogStatsSvc) Selection(criterion harvest.Criterion) ([]domain.HarvestEntry, error) {
	svc.statsMutex.Lock()
	loaded := svc.catalogs
	svc.statsMutex.Unlock()

	if loaded == nil {
		loaded = []domain.Catalog{}
	}

	return harvest.Select(harvest.FromCatalogs(loaded, criterion, svc.validator))
}

func (svc *catalogStatsSvc) Start() {
	svc.log.Info().Msg("starting catalog stats service")
	go svc.run()
}

func (svc *catalogStatsSvc) Shutdown() {
	svc.log.Info().Msg("shutting down catalog stats service")
	svc.keepRunning = false
}

func (svc *catalogStatsSvc) run() {
	nextRefreshTime := time.Now()

	for svc.keepRunning {
		if time.Now().After(nextRefreshTime) {
			svc.log.Info().Msg("refreshing catalog indicators")
			err := svc.Refresh()

			if err != nil {
				svc.log.Error().Err(err).Msg("failed to refresh catalog indicators")
				nextRefreshTime = time.Now().Add(1 * time.Minute)
			} else {
				nextRefreshTime = time.Now().Add(1 * time.Hour)
			}
		}

		time.Sleep(1 * time.Second)
	}

	svc.log.Info().Msg("catalog stats service exiting")
}

func (svc *catalogStatsSvc) Refresh() error {
	var err error
	ctx, span := tracer.Start(svc.ctx, "refresh-catalog-indicators")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	loaded := make([]domain.Catalog, 0, len(svc.sources))

	for _, source := range svc.sources {
		catalog, loadErr := svc.loader.Load(ctx, source)
		if loadErr != nil {
			logger.Warn().Err(loadErr).Msgf("skipping catalog %s", source)
			continue
		}

		loaded = append(loaded, catalog)
	}

	var central *domain.Catalog

	if svc.centralSource != "" {
		centralCatalog, loadErr := svc.loader.Load(ctx, svc.centralSource)
		if loadErr != nil {
			err = fmt.Errorf("failed to load central catalog: %w", loadErr)
			return err
		}

		central = &centralCatalog
	}

	calculator := indicators.NewCalculator(svc.validator, time.Now().UTC())

	perCatalog, network, warnings, err := calculator.GenerateAll(loaded, central)
	if err != nil {
		return err
	}

	for _, warning := range warnings {
		logger.Warn().Msg(warning)
	}

	perCatalogJSON, err := json.MarshalIndent(perCatalog, "  ", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal catalog indicators to json")
		return err
	}

	networkJSON, err := json.MarshalIndent(network, "  ", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal network indicators to json")
		return err
	}

	details := map[string][]byte{}

	for idx := range perCatalog {
		body, marshalErr := json.MarshalIndent(perCatalog[idx], "  ", "  ")
		if marshalErr != nil {
			logger.Error().Err(marshalErr).Msgf("failed to marshal indicators for catalog %s", perCatalog[idx].Catalog)
			continue
		}

		details[perCatalog[idx].Catalog] = body
	}

	svc.storeResults(loaded, perCatalogJSON, networkJSON, details)

	return nil
}

func (svc *catalogStatsSvc) storeResults(loaded []domain.Catalog, perCatalog, network []byte, details map[string][]byte) {
	svc.statsMutex.Lock()
	defer svc.statsMutex.Unlock()

	svc.catalogs = loaded
	svc.perCatalog = perCatalog
	svc.network = network
	svc.details = details
}
