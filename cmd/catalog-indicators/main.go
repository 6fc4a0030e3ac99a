package main

import (
	"context"
	"flag"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/services/catalogstats"
	"github.com/opendatanet/catalog-indicators/internal/pkg/infrastructure/repositories/catalogs"
	"github.com/opendatanet/catalog-indicators/internal/pkg/presentation"
	"gopkg.in/yaml.v2"
)

type sourcesConfig struct {
	Central  string   `yaml:"central"`
	Catalogs []string `yaml:"catalogs"`
}

var sourcesFileName string

func main() {
	serviceName := "catalog-indicators"
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&sourcesFileName, "sources", "/opt/catalog-indicators/sources.yaml", "A yaml file listing the catalog sources to monitor")
	flag.Parse()

	cfg := loadSourcesConfig(ctx)
	if len(cfg.Catalogs) == 0 {
		log.Fatal().Msgf("no catalog sources configured in %s. Exiting.", sourcesFileName)
	}

	port := os.Getenv("SERVICE_PORT")
	if port == "" {
		port = "8880"
	}

	svc := catalogstats.NewCatalogStatsService(ctx, log, catalogs.NewLoader(), cfg.Catalogs, cfg.Central)
	svc.Start()
	defer svc.Shutdown()

	r := chi.NewRouter()
	api := presentation.NewAPI(r, ctx, svc)

	err := api.Start(port)
	if err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}

func loadSourcesConfig(ctx context.Context) *sourcesConfig {
	log := logging.GetFromContext(ctx)

	configfile, err := os.ReadFile(sourcesFileName)
	if err != nil {
		log.Fatal().Msgf("failed to open the sources file %s. Exiting.", sourcesFileName)
	}

	cfg := &sourcesConfig{}
	err = yaml.Unmarshal(configfile, cfg)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to parse the sources file %s. Exiting.", sourcesFileName)
	}

	return cfg
}
