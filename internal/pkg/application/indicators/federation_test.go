package indicators

import (
	"testing"

	"github.com/matryer/is"
	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
)

func TestFederationCountsMatchOnIdentifier(t *testing.T) {
	is := is.New(t)

	catalog := domain.Catalog{
		Identifier: "A",
		Datasets: []domain.Dataset{
			newDataset("x", "R/P1M", daysBefore(1)),
			newDataset("y", "R/P1M", daysBefore(1)),
			newDataset("z", "R/P1M", daysBefore(1)),
		},
	}

	central := domain.Catalog{
		Identifier: "central",
		Datasets: []domain.Dataset{
			newDataset("x", "R/P1M", daysBefore(1)),
			newDataset("z", "R/P1M", daysBefore(1)),
			newDataset("w", "R/P1M", daysBefore(1)),
		},
	}

	result := federationIndicators(catalog, central)

	is.Equal(result.DatasetsFederatedCount, 2)
	is.Equal(result.DatasetsNotFederatedCount, 1)
	is.Equal(result.DatasetsFederatedPct, 66.67)
}

func TestFederationSplitsSumToDatasetCount(t *testing.T) {
	is := is.New(t)

	catalog := domain.Catalog{
		Identifier: "A",
		Datasets: []domain.Dataset{
			newDataset("x", "R/P1M", daysBefore(1)),
			newDataset("y", "R/P1M", daysBefore(1)),
		},
	}

	central := domain.Catalog{Identifier: "central"}

	result := federationIndicators(catalog, central)

	is.Equal(result.DatasetsFederatedCount+result.DatasetsNotFederatedCount, len(catalog.Datasets))
	is.Equal(result.DatasetsFederatedPct, 0.0)
}

func TestRemovedDatasetsAreCountedByLikelyPublisher(t *testing.T) {
	is := is.New(t)

	catalog := domain.Catalog{
		Identifier: "A",
		Datasets: []domain.Dataset{
			newDataset("x", "R/P1M", daysBefore(1)),
		},
	}

	removed := newDataset("gone", "R/P1M", daysBefore(1))

	otherPublisher := newDataset("other", "R/P1M", daysBefore(1))
	otherPublisher.Publisher.Name = "someone else"

	central := domain.Catalog{
		Identifier: "central",
		Datasets: []domain.Dataset{
			newDataset("x", "R/P1M", daysBefore(1)),
			removed,
			otherPublisher,
		},
	}

	result := federationIndicators(catalog, central)

	is.Equal(result.DatasetsFederatedCount, 1)
	is.Equal(result.DatasetsFederatedRemovedCount, 1)
}

func TestEmptyCatalogFederatesNothing(t *testing.T) {
	is := is.New(t)

	result := federationIndicators(domain.Catalog{}, domain.Catalog{
		Datasets: []domain.Dataset{newDataset("x", "R/P1M", daysBefore(1))},
	})

	is.Equal(result.DatasetsFederatedCount, 0)
	is.Equal(result.DatasetsNotFederatedCount, 0)
	is.Equal(result.DatasetsFederatedPct, 0.0)
}
