// Package tariff holds the tariff-rate table merged into the shaped output.
// The built-in table is a static policy snapshot; a JSON file can override
// it when policies change faster than releases.
package tariff

import (
	"fmt"
	"os"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"tradewatch/internal/model"
)

const (
	CategoryFTAPartner  = "FTA Partner"
	CategoryNormalTrade = "Normal Trade"
	CategoryTradeWar    = "Trade War"
	CategorySanctioned  = "Sanctioned"
)

type Table struct {
	entries map[string]model.TariffEntry
}

func Default() Table {
	return New([]model.TariffEntry{
		{Country: "Canada", ISO3: "CAN", Category: CategoryFTAPartner, Rate: 0.0},
		{Country: "Mexico", ISO3: "MEX", Category: CategoryFTAPartner, Rate: 0.0},
		{Country: "China", ISO3: "CHN", Category: CategoryTradeWar, Rate: 19.3},
		{Country: "Germany", ISO3: "DEU", Category: CategoryNormalTrade, Rate: 2.4},
		{Country: "France", ISO3: "FRA", Category: CategoryNormalTrade, Rate: 2.6},
		{Country: "United Kingdom", ISO3: "GBR", Category: CategoryNormalTrade, Rate: 2.5},
		{Country: "India", ISO3: "IND", Category: CategoryNormalTrade, Rate: 3.2},
		{Country: "Japan", ISO3: "JPN", Category: CategoryFTAPartner, Rate: 0.0},
		{Country: "South Korea", ISO3: "KOR", Category: CategoryFTAPartner, Rate: 0.0},
		{Country: "Brazil", ISO3: "BRA", Category: CategoryNormalTrade, Rate: 3.5},
		{Country: "Vietnam", ISO3: "VNM", Category: CategoryNormalTrade, Rate: 2.8},
		{Country: "Russia", ISO3: "RUS", Category: CategorySanctioned, Rate: 35.0},
		{Country: "Australia", ISO3: "AUS", Category: CategoryFTAPartner, Rate: 0.0},
	})
}

func New(entries []model.TariffEntry) Table {
	t := Table{entries: make(map[string]model.TariffEntry, len(entries))}
	for _, e := range entries {
		t.entries[strings.ToLower(strings.TrimSpace(e.Country))] = e
	}
	return t
}

// LoadFile reads a JSON array of tariff entries, replacing the built-in
// table entirely.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	var entries []model.TariffEntry
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &entries); err != nil {
		return Table{}, fmt.Errorf("tariff: parse %s: %w", path, err)
	}
	if len(entries) == 0 {
		return Table{}, fmt.Errorf("tariff: %s contains no entries", path)
	}
	return New(entries), nil
}

func (t Table) Lookup(country string) (model.TariffEntry, bool) {
	e, ok := t.entries[strings.ToLower(strings.TrimSpace(country))]
	return e, ok
}

func (t Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table contents sorted by country.
func (t Table) Entries() []model.TariffEntry {
	out := make([]model.TariffEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}
