package derive

import (
	"testing"

	"tradewatch/internal/model"
	"tradewatch/internal/tariff"
)

func TestRows(t *testing.T) {
	t.Run("balance is exports minus imports exactly", func(t *testing.T) {
		records := []model.TradeRecord{
			{Country: "India", ISO3: "IND", Period: "2023", Exports: 450, Imports: 700},
			{Country: "China", ISO3: "CHN", Period: "2023", Exports: 600, Imports: 500},
		}

		rows := Rows(records, tariff.Default())
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}

		// Sorted by country: China first.
		if rows[0].Country != "China" || rows[0].Balance != 100 {
			t.Errorf("China: expected balance 100, got %+v", rows[0])
		}
		if rows[1].Country != "India" || rows[1].Balance != -250 {
			t.Errorf("India: expected balance -250, got %+v", rows[1])
		}

		for _, row := range rows {
			if row.Balance != row.Exports-row.Imports {
				t.Errorf("%s: balance %f != exports %f - imports %f",
					row.Country, row.Balance, row.Exports, row.Imports)
			}
		}
	})

	t.Run("tariff rates come from the static table", func(t *testing.T) {
		records := []model.TradeRecord{
			{Country: "India", Period: "2023"},
			{Country: "China", Period: "2023"},
		}
		rows := Rows(records, tariff.Default())

		if rows[0].TariffRate == nil || *rows[0].TariffRate != 19.3 {
			t.Errorf("China: expected tariff 19.3, got %v", rows[0].TariffRate)
		}
		if rows[0].Category != tariff.CategoryTradeWar {
			t.Errorf("China: expected category %q, got %q", tariff.CategoryTradeWar, rows[0].Category)
		}
		if rows[1].TariffRate == nil || *rows[1].TariffRate != 3.2 {
			t.Errorf("India: expected tariff 3.2, got %v", rows[1].TariffRate)
		}
	})

	t.Run("missing tariff entry yields nil, never zero", func(t *testing.T) {
		records := []model.TradeRecord{
			{Country: "Switzerland", Period: "2023", Exports: 20, Imports: 50},
		}
		rows := Rows(records, tariff.Default())
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].TariffRate != nil {
			t.Errorf("expected nil tariff rate, got %v", *rows[0].TariffRate)
		}
		if rows[0].Category != "" {
			t.Errorf("expected empty category, got %q", rows[0].Category)
		}
	})

	t.Run("zero-rate tariff is kept, not confused with missing", func(t *testing.T) {
		records := []model.TradeRecord{{Country: "Canada", Period: "2023"}}
		rows := Rows(records, tariff.Default())
		if rows[0].TariffRate == nil {
			t.Fatal("expected non-nil tariff rate for Canada")
		}
		if *rows[0].TariffRate != 0 {
			t.Errorf("expected tariff 0, got %f", *rows[0].TariffRate)
		}
	})

	t.Run("empty input produces an empty row list", func(t *testing.T) {
		rows := Rows(nil, tariff.Default())
		if rows == nil {
			t.Fatal("expected non-nil empty slice")
		}
		if len(rows) != 0 {
			t.Errorf("expected 0 rows, got %d", len(rows))
		}
	})

	t.Run("does not mutate input records", func(t *testing.T) {
		records := []model.TradeRecord{
			{Country: "India", Period: "2023", Exports: 450, Imports: 700},
		}
		original := records[0]
		Rows(records, tariff.Default())
		if records[0] != original {
			t.Errorf("input mutated: %+v != %+v", records[0], original)
		}
	})
}
