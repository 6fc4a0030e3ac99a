package catalogstats

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/opendatanet/catalog-indicators/internal/pkg/application/harvest"
	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
	"github.com/rs/zerolog"
)

type mockLoader struct {
	catalogs map[string]domain.Catalog
	failing  map[string]error
}

func (m *mockLoader) Load(ctx context.Context, source string) (domain.Catalog, error) {
	if err, ok := m.failing[source]; ok {
		return domain.Catalog{}, err
	}

	return m.catalogs[source], nil
}

func testCatalog(id string, datasetIDs ...string) domain.Catalog {
	modified := time.Now().UTC().AddDate(0, 0, -1)

	datasets := make([]domain.Dataset, 0, len(datasetIDs))
	for _, dsID := range datasetIDs {
		datasets = append(datasets, domain.Dataset{
			Identifier:         dsID,
			Title:              "dataset " + dsID,
			Publisher:          domain.Publisher{Name: "publisher"},
			AccrualPeriodicity: "R/P1M",
			Modified:           &modified,
			Distributions:      []domain.Distribution{{Format: "CSV"}},
		})
	}

	return domain.Catalog{Identifier: id, Title: id, Datasets: datasets}
}

func TestRefreshComputesAndCachesIndicators(t *testing.T) {
	is := is.New(t)

	loader := &mockLoader{catalogs: map[string]domain.Catalog{
		"src-a": testCatalog("municipal", "a", "b"),
		"src-b": testCatalog("provincial", "c"),
	}}

	svc := NewCatalogStatsService(context.Background(), zerolog.Logger{}, loader, []string{"src-a", "src-b"}, "")

	is.NoErr(svc.Refresh())

	records := []domain.CatalogIndicators{}
	is.NoErr(json.Unmarshal(svc.GetAll(), &records))
	is.Equal(len(records), 2)
	is.Equal(records[0].Catalog, "municipal")
	is.Equal(records[0].DatasetsCount, 2)

	network := domain.NetworkIndicators{}
	is.NoErr(json.Unmarshal(svc.GetNetwork(), &network))
	is.Equal(network.CatalogsCount, 2)
	is.Equal(network.DatasetsCount, 3)

	body, err := svc.GetByID("provincial")
	is.NoErr(err)
	is.True(strings.Contains(string(body), `"datasets_cant": 1`))

	_, err = svc.GetByID("nonexistent")
	is.True(err != nil)
}

func TestRefreshSkipsUnloadableCatalogs(t *testing.T) {
	is := is.New(t)

	loader := &mockLoader{
		catalogs: map[string]domain.Catalog{"src-a": testCatalog("municipal", "a")},
		failing:  map[string]error{"src-b": context.DeadlineExceeded},
	}

	svc := NewCatalogStatsService(context.Background(), zerolog.Logger{}, loader, []string{"src-a", "src-b"}, "")

	is.NoErr(svc.Refresh())

	network := domain.NetworkIndicators{}
	is.NoErr(json.Unmarshal(svc.GetNetwork(), &network))
	is.Equal(network.CatalogsCount, 1)
}

func TestRefreshFailsWhenCentralCatalogCannotBeLoaded(t *testing.T) {
	is := is.New(t)

	loader := &mockLoader{
		catalogs: map[string]domain.Catalog{"src-a": testCatalog("municipal", "a")},
		failing:  map[string]error{"central": context.DeadlineExceeded},
	}

	svc := NewCatalogStatsService(context.Background(), zerolog.Logger{}, loader, []string{"src-a"}, "central")

	is.True(svc.Refresh() != nil)
}

func TestFederationIsComputedAgainstTheCentralCatalog(t *testing.T) {
	is := is.New(t)

	loader := &mockLoader{catalogs: map[string]domain.Catalog{
		"src-a":   testCatalog("municipal", "x", "y", "z"),
		"central": testCatalog("central", "x", "z", "w"),
	}}

	svc := NewCatalogStatsService(context.Background(), zerolog.Logger{}, loader, []string{"src-a"}, "central")

	is.NoErr(svc.Refresh())

	records := []domain.CatalogIndicators{}
	is.NoErr(json.Unmarshal(svc.GetAll(), &records))
	is.Equal(len(records), 1)
	is.True(records[0].FederationIndicators != nil)
	is.Equal(records[0].DatasetsFederatedCount, 2)
	is.Equal(records[0].DatasetsNotFederatedCount, 1)
	is.Equal(records[0].DatasetsFederatedPct, 66.67)
}

func TestSelectionUsesTheLoadedCatalogs(t *testing.T) {
	is := is.New(t)

	loader := &mockLoader{catalogs: map[string]domain.Catalog{
		"src-a": testCatalog("municipal", "a", "b"),
	}}

	svc := NewCatalogStatsService(context.Background(), zerolog.Logger{}, loader, []string{"src-a"}, "")

	is.NoErr(svc.Refresh())

	selection, err := svc.Selection(harvest.CriterionValid)
	is.NoErr(err)
	is.Equal(selection, []domain.HarvestEntry{
		{Catalog: "municipal", Dataset: "a"},
		{Catalog: "municipal", Dataset: "b"},
	})

	_, err = svc.Selection(harvest.Criterion("bogus"))
	is.Equal(err, harvest.ErrInvalidHarvestMode)
}
