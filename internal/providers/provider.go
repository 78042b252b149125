package providers

import (
	"context"

	"tradewatch/internal/model"
)

// Provider fetches trade records from a statistics API. FetchYear returns
// one record per requested country present in the response; countries the
// API has no data for are simply absent from the result.
type Provider interface {
	Name() string
	FetchYear(ctx context.Context, censusCodes []string, period string) ([]model.TradeRecord, error)
}
