package catalogs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/opendatanet/catalog-indicators/internal/pkg/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("catalog-indicators/catalogs")

const YearMonthDayISO8601 string = "2006-01-02"

// LoadError wraps any failure to retrieve or parse a catalog document.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalog from %s: %s", e.Source, e.Err.Error())
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// CatalogLoader reads a data.json document from a URL or a local file path
// and converts it into the in-memory catalog model.
type CatalogLoader interface {
	Load(ctx context.Context, source string) (domain.Catalog, error)
}

func NewLoader() CatalogLoader {
	return &loader{
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type loader struct {
	httpClient http.Client
}

func (l *loader) Load(ctx context.Context, source string) (domain.Catalog, error) {
	var err error
	ctx, span := tracer.Start(ctx, "load-catalog")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	var body []byte

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = l.fetch(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}

	if err != nil {
		return domain.Catalog{}, &LoadError{Source: source, Err: err}
	}

	catalog, err := parseCatalog(body)
	if err != nil {
		return domain.Catalog{}, &LoadError{Source: source, Err: err}
	}

	return catalog, nil
}

func (l *loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %s", err.Error())
	}

	req.Header.Add("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %s", err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %s", err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		contentType := resp.Header.Get("Content-Type")
		return nil, fmt.Errorf("catalog source returned status code %d (content-type: %s)", resp.StatusCode, contentType)
	}

	return respBody, nil
}

type catalogDTO struct {
	Identifier string            `json:"identifier"`
	Title      string            `json:"title"`
	Modified   string            `json:"modified"`
	Publisher  publisherDTO      `json:"publisher"`
	Dataset    []json.RawMessage `json:"dataset"`
}

type datasetDTO struct {
	Identifier         string            `json:"identifier"`
	Title              string            `json:"title"`
	Publisher          publisherDTO      `json:"publisher"`
	AccrualPeriodicity string            `json:"accrualPeriodicity"`
	Modified           string            `json:"modified"`
	Distribution       []distributionDTO `json:"distribution"`
}

type distributionDTO struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Format     string `json:"format"`
}

type publisherDTO struct {
	Name  string `json:"name"`
	Email string `json:"mbox"`
}

func parseCatalog(body []byte) (domain.Catalog, error) {
	dto := catalogDTO{}
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to unmarshal catalog document: %s", err.Error())
	}

	catalog := domain.Catalog{
		Identifier: dto.Identifier,
		Title:      dto.Title,
		Publisher:  domain.Publisher{Name: dto.Publisher.Name, Email: dto.Publisher.Email},
		Modified:   parseDate(dto.Modified),
		Datasets:   make([]domain.Dataset, 0, len(dto.Dataset)),
	}

	if catalog.Identifier == "" {
		catalog.Identifier = dto.Title
	}

	for idx, raw := range dto.Dataset {
		ds, err := parseDataset(raw)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("failed to unmarshal dataset at index %d: %s", idx, err.Error())
		}

		catalog.Datasets = append(catalog.Datasets, ds)
	}

	return catalog, nil
}

func parseDataset(raw json.RawMessage) (domain.Dataset, error) {
	dto := datasetDTO{}
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Dataset{}, err
	}

	ds := domain.Dataset{
		Identifier:         dto.Identifier,
		Title:              dto.Title,
		Publisher:          domain.Publisher{Name: dto.Publisher.Name, Email: dto.Publisher.Email},
		AccrualPeriodicity: dto.AccrualPeriodicity,
		Modified:           parseDate(dto.Modified),
		Distributions:      make([]domain.Distribution, 0, len(dto.Distribution)),
		PopulatedFields:    populatedFields(raw),
	}

	for _, dist := range dto.Distribution {
		ds.Distributions = append(ds.Distributions, domain.Distribution{
			Identifier: dist.Identifier,
			Title:      dist.Title,
			Format:     dist.Format,
		})
	}

	return ds, nil
}

// populatedFields collects the names of all non-empty fields on the raw
// dataset object, so that field usage scoring does not depend on the
// subset of fields the typed model happens to carry.
func populatedFields(raw json.RawMessage) []string {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	populated := make([]string, 0, len(fields))

	for name, value := range fields {
		trimmed := strings.TrimSpace(string(value))
		if trimmed == "" || trimmed == "null" || trimmed == `""` || trimmed == "[]" || trimmed == "{}" {
			continue
		}

		populated = append(populated, name)
	}

	return populated
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, YearMonthDayISO8601} {
		if timestamp, err := time.Parse(layout, value); err == nil {
			return &timestamp
		}
	}

	return nil
}
