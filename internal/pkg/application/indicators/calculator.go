package indicators

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
)

// DatasetValidator reports whether the metadata of a dataset is
// structurally sound. The calculator only consumes the verdict; the full
// field level error list stays with the validator.
type DatasetValidator interface {
	IsValid(ds domain.Dataset) bool
}

// RecommendedDatasetFields and OptionalDatasetFields are the metadata
// fields counted by the campos_recomendados_pct and campos_optativos_pct
// indicators.
var RecommendedDatasetFields = []string{
	"theme", "keyword", "license", "language", "landingPage", "issued",
}

var OptionalDatasetFields = []string{
	"description", "contactPoint", "spatial", "temporal", "source",
}

type Calculator struct {
	validator         DatasetValidator
	referenceDate     time.Time
	recommendedFields []string
	optionalFields    []string
}

// NewCalculator returns a calculator that classifies freshness against the
// given reference date. The reference date is explicit so that results are
// deterministic; callers that want wall clock behaviour pass time.Now().
func NewCalculator(validator DatasetValidator, referenceDate time.Time) *Calculator {
	return &Calculator{
		validator:         validator,
		referenceDate:     referenceDate,
		recommendedFields: RecommendedDatasetFields,
		optionalFields:    OptionalDatasetFields,
	}
}

// Generate computes the indicator record for a single catalog. If a central
// catalog is supplied the record includes the federation indicators. The
// returned warnings describe recovered per-dataset conditions, such as
// unparseable frequency codes. Inputs are never mutated.
func (c *Calculator) Generate(catalog domain.Catalog, central *domain.Catalog) (domain.CatalogIndicators, []string) {
	result := domain.CatalogIndicators{
		Catalog:        catalog.Identifier,
		DatasetsCount:  len(catalog.Datasets),
		FrequencyCount: map[string]int{},
		FormatCount:    map[string]int{},
	}

	warnings := []string{}

	for _, ds := range catalog.Datasets {
		result.DistributionsCount += len(ds.Distributions)

		if c.validator == nil || c.validator.IsValid(ds) {
			result.DatasetsMetaOKCount++
		} else {
			result.DatasetsMetaErrorCount++
		}

		for _, dist := range ds.Distributions {
			if dist.Format != "" {
				result.FormatCount[strings.ToUpper(dist.Format)]++
			}
		}

		result.FrequencyCount[ds.AccrualPeriodicity]++

		upToDate, warning := c.isUpToDate(catalog.Identifier, ds)
		if upToDate {
			result.DatasetsUpToDateCount++
		} else {
			result.DatasetsOutdatedCount++
		}

		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	result.DatasetsMetaOKPct = percentage(result.DatasetsMetaOKCount, result.DatasetsCount)
	result.DatasetsUpToDatePct = percentage(result.DatasetsUpToDateCount, result.DatasetsCount)
	result.DaysSinceLastUpdate = c.daysSinceLastUpdate(catalog)
	result.RecommendedFieldsPct, result.OptionalFieldsPct = c.fieldUsage(catalog)

	if central != nil {
		result.FederationIndicators = federationIndicators(catalog, *central)
	}

	return result, warnings
}

func (c *Calculator) isUpToDate(catalogID string, ds domain.Dataset) (bool, string) {
	if ds.AccrualPeriodicity == FrequencyEventual {
		return true, ""
	}

	tolerance, err := ToleranceDays(ds.AccrualPeriodicity)
	if err != nil {
		return false, fmt.Sprintf(
			"dataset %s in catalog %s: %s", ds.Identifier, catalogID, err.Error(),
		)
	}

	if ds.Modified == nil {
		return false, ""
	}

	return c.ageInDays(*ds.Modified) <= tolerance, ""
}

func (c *Calculator) ageInDays(modified time.Time) float64 {
	return math.Floor(c.referenceDate.Sub(modified).Hours() / 24)
}

func (c *Calculator) daysSinceLastUpdate(catalog domain.Catalog) float64 {
	var mostRecent *time.Time = catalog.Modified

	for idx := range catalog.Datasets {
		modified := catalog.Datasets[idx].Modified
		if modified != nil && (mostRecent == nil || modified.After(*mostRecent)) {
			mostRecent = modified
		}
	}

	if mostRecent == nil {
		return 0
	}

	return math.Max(c.ageInDays(*mostRecent), 0)
}

func (c *Calculator) fieldUsage(catalog domain.Catalog) (float64, float64) {
	if len(catalog.Datasets) == 0 {
		return 0, 0
	}

	var recommended, optional float64

	for _, ds := range catalog.Datasets {
		populated := map[string]bool{}
		for _, field := range ds.PopulatedFields {
			populated[field] = true
		}

		recommended += fraction(populated, c.recommendedFields)
		optional += fraction(populated, c.optionalFields)
	}

	datasets := float64(len(catalog.Datasets))

	return round2(100 * recommended / datasets), round2(100 * optional / datasets)
}

func fraction(populated map[string]bool, fields []string) float64 {
	if len(fields) == 0 {
		return 0
	}

	count := 0
	for _, field := range fields {
		if populated[field] {
			count++
		}
	}

	return float64(count) / float64(len(fields))
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}

	return round2(100 * float64(count) / float64(total))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
