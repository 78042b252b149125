package model

type Flow string

const (
	FlowExport Flow = "export"
	FlowImport Flow = "import"
)

// TradeRecord is one country/period observation, values in billions of USD.
type TradeRecord struct {
	Country    string  `json:"country"`
	CensusCode string  `json:"census_code"`
	ISO3       string  `json:"iso3"`
	Period     string  `json:"period"`
	Exports    float64 `json:"exports"`
	Imports    float64 `json:"imports"`
}

type TariffEntry struct {
	Country  string  `json:"country"`
	ISO3     string  `json:"iso3"`
	Category string  `json:"category"`
	Rate     float64 `json:"rate"`
}

// DerivedRow is the shaped output handed to the presentation layer.
// TariffRate is nil when the country has no tariff entry; nil means
// "unknown tariff" and is never coerced to zero.
type DerivedRow struct {
	Country    string   `json:"country"`
	ISO3       string   `json:"iso3"`
	Category   string   `json:"category,omitempty"`
	Period     string   `json:"period"`
	Exports    float64  `json:"exports"`
	Imports    float64  `json:"imports"`
	Balance    float64  `json:"balance"`
	TariffRate *float64 `json:"tariff_rate"`
}
