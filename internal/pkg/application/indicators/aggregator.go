package indicators

import (
	"errors"
	"math"

	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
)

// ErrMixedFederation is returned when a batch mixes records that were
// computed with a central catalog with records that were not. Summing the
// two would silently corrupt the network percentages.
var ErrMixedFederation = errors.New("cannot aggregate records computed with and without a central catalog")

// Aggregate folds a list of per-catalog records into one network record.
// Counts and histograms sum directly. Percentages are recomputed from the
// aggregated counts so that the network percentage is always derivable
// from the published counts. The exception is the field usage pair, which
// is weighted by dataset count because the underlying per-dataset
// fractions are not retained at the network level; that value is an
// approximation. The fold is associative and commutative, so records may
// be computed in any order, but the input order is preserved by the
// caller.
func Aggregate(records []domain.CatalogIndicators) (domain.NetworkIndicators, error) {
	network := domain.NetworkIndicators{
		CatalogsCount: len(records),
		CatalogIndicators: domain.CatalogIndicators{
			FrequencyCount: map[string]int{},
			FormatCount:    map[string]int{},
		},
	}

	var federated *domain.FederationIndicators
	var weightedRecommended, weightedOptional float64

	for idx, rec := range records {
		network.DatasetsCount += rec.DatasetsCount
		network.DistributionsCount += rec.DistributionsCount
		network.DatasetsMetaOKCount += rec.DatasetsMetaOKCount
		network.DatasetsMetaErrorCount += rec.DatasetsMetaErrorCount
		network.DatasetsUpToDateCount += rec.DatasetsUpToDateCount
		network.DatasetsOutdatedCount += rec.DatasetsOutdatedCount

		network.DaysSinceLastUpdate = math.Max(network.DaysSinceLastUpdate, rec.DaysSinceLastUpdate)

		weightedRecommended += rec.RecommendedFieldsPct * float64(rec.DatasetsCount)
		weightedOptional += rec.OptionalFieldsPct * float64(rec.DatasetsCount)

		mergeCounts(network.FrequencyCount, rec.FrequencyCount)
		mergeCounts(network.FormatCount, rec.FormatCount)

		if idx > 0 && (rec.FederationIndicators != nil) != (federated != nil) {
			return domain.NetworkIndicators{}, ErrMixedFederation
		}

		if rec.FederationIndicators != nil {
			if federated == nil {
				federated = &domain.FederationIndicators{}
			}

			federated.DatasetsFederatedCount += rec.DatasetsFederatedCount
			federated.DatasetsNotFederatedCount += rec.DatasetsNotFederatedCount
			federated.DatasetsFederatedRemovedCount += rec.DatasetsFederatedRemovedCount
		}
	}

	network.DatasetsMetaOKPct = percentage(network.DatasetsMetaOKCount, network.DatasetsCount)
	network.DatasetsUpToDatePct = percentage(network.DatasetsUpToDateCount, network.DatasetsCount)

	if network.DatasetsCount > 0 {
		network.RecommendedFieldsPct = round2(weightedRecommended / float64(network.DatasetsCount))
		network.OptionalFieldsPct = round2(weightedOptional / float64(network.DatasetsCount))
	}

	if federated != nil {
		federated.DatasetsFederatedPct = percentage(federated.DatasetsFederatedCount, network.DatasetsCount)
		network.FederationIndicators = federated
	}

	return network, nil
}

func mergeCounts(dst, src map[string]int) {
	for key, count := range src {
		dst[key] += count
	}
}
