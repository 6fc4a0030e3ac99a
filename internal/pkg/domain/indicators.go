package domain

// CatalogIndicators holds the quality and freshness indicators computed for
// a single catalog. The json names match the indicator vocabulary used by
// the monitoring tooling that consumes these records.
type CatalogIndicators struct {
	Catalog string `json:"catalogo,omitempty"`

	DatasetsCount      int `json:"datasets_cant"`
	DistributionsCount int `json:"distribuciones_cant"`

	DatasetsMetaOKCount    int     `json:"datasets_meta_ok_cant"`
	DatasetsMetaErrorCount int     `json:"datasets_meta_error_cant"`
	DatasetsMetaOKPct      float64 `json:"datasets_meta_ok_pct"`

	DaysSinceLastUpdate float64 `json:"catalogo_ultima_actualizacion_dias"`

	DatasetsUpToDateCount int     `json:"datasets_actualizados_cant"`
	DatasetsOutdatedCount int     `json:"datasets_desactualizados_cant"`
	DatasetsUpToDatePct   float64 `json:"datasets_actualizados_pct"`

	RecommendedFieldsPct float64 `json:"campos_recomendados_pct"`
	OptionalFieldsPct    float64 `json:"campos_optativos_pct"`

	FrequencyCount map[string]int `json:"datasets_frecuencia_cant"`
	FormatCount    map[string]int `json:"distribuciones_formatos_cant"`

	*FederationIndicators
}

// FederationIndicators is only present when the indicators were computed
// against a central catalog.
type FederationIndicators struct {
	DatasetsFederatedCount        int     `json:"datasets_federados_cant"`
	DatasetsNotFederatedCount     int     `json:"datasets_no_federados_cant"`
	DatasetsFederatedRemovedCount int     `json:"datasets_federados_eliminados_cant"`
	DatasetsFederatedPct          float64 `json:"datasets_federados_pct"`
}

// NetworkIndicators aggregates the indicators of all catalogs in a batch.
type NetworkIndicators struct {
	CatalogsCount int `json:"catalogos_cant"`
	CatalogIndicators
}

type HarvestEntry struct {
	Catalog string `json:"catalog"`
	Dataset string `json:"dataset"`
}
