// Package derive computes the shaped rows from raw trade records and the
// tariff table. Pure functions only; inputs are never mutated.
package derive

import (
	"sort"

	"tradewatch/internal/model"
	"tradewatch/internal/tariff"
)

// Rows merges trade records with the tariff table. Balance is exports
// minus imports (positive = surplus). Countries absent from the tariff
// table get a nil TariffRate so downstream rendering can distinguish
// "no tariff" from "unknown tariff".
func Rows(records []model.TradeRecord, t tariff.Table) []model.DerivedRow {
	rows := make([]model.DerivedRow, 0, len(records))
	for _, rec := range records {
		row := model.DerivedRow{
			Country: rec.Country,
			ISO3:    rec.ISO3,
			Period:  rec.Period,
			Exports: rec.Exports,
			Imports: rec.Imports,
			Balance: rec.Exports - rec.Imports,
		}
		if entry, ok := t.Lookup(rec.Country); ok {
			rate := entry.Rate
			row.TariffRate = &rate
			row.Category = entry.Category
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].Period < rows[j].Period
	})
	return rows
}
