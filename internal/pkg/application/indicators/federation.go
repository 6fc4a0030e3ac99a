package indicators

import (
	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
)

// federationIndicators counts how many of the catalog's datasets are also
// present in the central catalog. Datasets match on identifier equality
// only. The removed count covers central datasets that belong to one of
// the catalog's publishers but are no longer present in the catalog
// itself, which usually means they were deleted after being federated.
func federationIndicators(catalog, central domain.Catalog) *domain.FederationIndicators {
	centralIDs := make(map[string]bool, len(central.Datasets))
	for _, ds := range central.Datasets {
		centralIDs[ds.Identifier] = true
	}

	result := &domain.FederationIndicators{}

	sourceIDs := make(map[string]bool, len(catalog.Datasets))
	publishers := map[string]bool{}

	for _, ds := range catalog.Datasets {
		sourceIDs[ds.Identifier] = true

		if ds.Publisher.Name != "" {
			publishers[ds.Publisher.Name] = true
		}

		if centralIDs[ds.Identifier] {
			result.DatasetsFederatedCount++
		} else {
			result.DatasetsNotFederatedCount++
		}
	}

	for _, ds := range central.Datasets {
		if publishers[ds.Publisher.Name] && !sourceIDs[ds.Identifier] {
			result.DatasetsFederatedRemovedCount++
		}
	}

	result.DatasetsFederatedPct = percentage(result.DatasetsFederatedCount, len(catalog.Datasets))

	return result
}
