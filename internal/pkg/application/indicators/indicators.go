package indicators

import (
	"sync"

	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
)

// GenerateAll computes one indicator record per catalog and the network
// record for the whole batch. Catalogs are independent of each other, so
// the per-catalog computations run concurrently; each result is written to
// its own slot so the returned list keeps the input catalog order.
// Warnings from all catalogs are returned in that same order.
func (c *Calculator) GenerateAll(catalogs []domain.Catalog, central *domain.Catalog) ([]domain.CatalogIndicators, domain.NetworkIndicators, []string, error) {
	results := make([]domain.CatalogIndicators, len(catalogs))
	warningsPerCatalog := make([][]string, len(catalogs))

	var wg sync.WaitGroup

	for idx := range catalogs {
		wg.Add(1)

		go func(slot int) {
			defer wg.Done()
			results[slot], warningsPerCatalog[slot] = c.Generate(catalogs[slot], central)
		}(idx)
	}

	wg.Wait()

	warnings := []string{}
	for _, w := range warningsPerCatalog {
		warnings = append(warnings, w...)
	}

	network, err := Aggregate(results)
	if err != nil {
		return nil, domain.NetworkIndicators{}, warnings, err
	}

	return results, network, warnings, nil
}
