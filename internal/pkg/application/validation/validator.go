package validation

import (
	"fmt"

	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Validator checks that a dataset carries the metadata required for it to
// be harvestable and countable: an identifier, a title, a publisher, an
// update frequency and at least one distribution.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateDataset(ds domain.Dataset) Result {
	result := Result{Valid: true}

	requireNonEmpty := func(field, value string) {
		if value == "" {
			result.Valid = false
			result.Errors = append(result.Errors, FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s is required", field),
			})
		}
	}

	requireNonEmpty("identifier", ds.Identifier)
	requireNonEmpty("title", ds.Title)
	requireNonEmpty("publisher.name", ds.Publisher.Name)
	requireNonEmpty("accrualPeriodicity", ds.AccrualPeriodicity)

	if len(ds.Distributions) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, FieldError{
			Field:   "distribution",
			Message: "at least one distribution is required",
		})
	}

	return result
}

func (v *Validator) ValidateCatalog(c domain.Catalog) []Result {
	results := make([]Result, 0, len(c.Datasets))

	for _, ds := range c.Datasets {
		results = append(results, v.ValidateDataset(ds))
	}

	return results
}

// IsValid exposes the pass/fail verdict on its own, which is all the
// indicator calculator and the harvester policy care about.
func (v *Validator) IsValid(ds domain.Dataset) bool {
	return v.ValidateDataset(ds).Valid
}
