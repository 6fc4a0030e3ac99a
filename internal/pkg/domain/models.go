package domain

import "time"

type Publisher struct {
	Name  string `json:"name"`
	Email string `json:"mbox,omitempty"`
}

type Catalog struct {
	Identifier string     `json:"identifier"`
	Title      string     `json:"title"`
	Publisher  Publisher  `json:"publisher"`
	Modified   *time.Time `json:"modified,omitempty"`
	Datasets   []Dataset  `json:"dataset"`
}

type Dataset struct {
	Identifier         string         `json:"identifier"`
	Title              string         `json:"title"`
	Publisher          Publisher      `json:"publisher"`
	AccrualPeriodicity string         `json:"accrualPeriodicity"`
	Modified           *time.Time     `json:"modified,omitempty"`
	Distributions      []Distribution `json:"distribution"`

	// PopulatedFields holds the names of the non-empty metadata fields on
	// this dataset, as reported by the catalog reader. Used for the
	// recommended/optional field usage indicators.
	PopulatedFields []string `json:"-"`
}

type Distribution struct {
	Identifier string `json:"identifier,omitempty"`
	Title      string `json:"title,omitempty"`
	Format     string `json:"format,omitempty"`
}

func (c Catalog) Dataset(identifier string) (*Dataset, bool) {
	for idx := range c.Datasets {
		if c.Datasets[idx].Identifier == identifier {
			return &c.Datasets[idx], true
		}
	}

	return nil, false
}
