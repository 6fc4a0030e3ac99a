package harvest

import (
	"errors"

	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
	"golang.org/x/exp/slices"
)

type Criterion string

const (
	CriterionAll   Criterion = "all"
	CriterionValid Criterion = "valid"
	CriterionNone  Criterion = "none"
)

var knownCriteria = []Criterion{CriterionAll, CriterionValid, CriterionNone}

// ErrInvalidHarvestMode is returned when a selection source is ambiguous:
// catalogs and a report were both supplied, or neither was, or the
// criterion is unknown.
var ErrInvalidHarvestMode = errors.New("invalid harvest mode")

// DatasetValidator reports whether a dataset passes structural validation.
type DatasetValidator interface {
	IsValid(ds domain.Dataset) bool
}

// ReportEntry is one row of a previously generated harvest report, marking
// a dataset as included or excluded.
type ReportEntry struct {
	Catalog string `json:"catalog"`
	Dataset string `json:"dataset"`
	Harvest bool   `json:"harvest"`
}

// Source is a tagged selection input: either catalogs plus a criterion, or
// a report. Use FromCatalogs or FromReport to construct one.
type Source struct {
	catalogs  []domain.Catalog
	criterion Criterion
	validator DatasetValidator

	report    []ReportEntry
	hasReport bool
}

func FromCatalogs(catalogs []domain.Catalog, criterion Criterion, validator DatasetValidator) Source {
	return Source{
		catalogs:  catalogs,
		criterion: criterion,
		validator: validator,
	}
}

func FromReport(entries []ReportEntry) Source {
	return Source{
		report:    entries,
		hasReport: true,
	}
}

// Select produces the ordered list of (catalog, dataset) pairs eligible
// for harvesting. Input order is preserved and duplicate pairs keep their
// first occurrence only.
func Select(src Source) ([]domain.HarvestEntry, error) {
	if (src.catalogs != nil) == src.hasReport {
		return nil, ErrInvalidHarvestMode
	}

	if src.hasReport {
		return selectFromReport(src.report), nil
	}

	if !slices.Contains(knownCriteria, src.criterion) {
		return nil, ErrInvalidHarvestMode
	}

	return selectFromCatalogs(src)
}

func selectFromCatalogs(src Source) ([]domain.HarvestEntry, error) {
	selection := []domain.HarvestEntry{}

	if src.criterion == CriterionNone {
		return selection, nil
	}

	if src.criterion == CriterionValid && src.validator == nil {
		return nil, ErrInvalidHarvestMode
	}

	seen := map[domain.HarvestEntry]bool{}

	for _, catalog := range src.catalogs {
		for _, ds := range catalog.Datasets {
			if src.criterion == CriterionValid && !src.validator.IsValid(ds) {
				continue
			}

			entry := domain.HarvestEntry{Catalog: catalog.Identifier, Dataset: ds.Identifier}
			if seen[entry] {
				continue
			}

			seen[entry] = true
			selection = append(selection, entry)
		}
	}

	return selection, nil
}

func selectFromReport(entries []ReportEntry) []domain.HarvestEntry {
	selection := []domain.HarvestEntry{}
	seen := map[domain.HarvestEntry]bool{}

	for _, row := range entries {
		if !row.Harvest {
			continue
		}

		entry := domain.HarvestEntry{Catalog: row.Catalog, Dataset: row.Dataset}
		if seen[entry] {
			continue
		}

		seen[entry] = true
		selection = append(selection, entry)
	}

	return selection
}
