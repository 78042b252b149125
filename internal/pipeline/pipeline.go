// Package pipeline orchestrates one dashboard refresh: resolve country
// names, fetch trade records (through the cache), and shape the derived
// rows. Errors are typed so the boundary can render a clear "no data
// available" state instead of crashing.
package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"tradewatch/internal/cache"
	"tradewatch/internal/countries"
	"tradewatch/internal/derive"
	"tradewatch/internal/metrics"
	"tradewatch/internal/model"
	"tradewatch/internal/providers"
	"tradewatch/internal/providers/census"
	"tradewatch/internal/tariff"
)

// Result is one refresh cycle's output. Missing lists requested countries
// the statistics API returned no data for: they are dropped from Rows and
// reported here rather than zero-filled, so the caller can say which
// countries are absent instead of charting fabricated zeros.
type Result struct {
	Period    string             `json:"period"`
	Rows      []model.DerivedRow `json:"rows"`
	Missing   []string           `json:"missing,omitempty"`
	FromCache bool               `json:"from_cache"`
}

type Pipeline struct {
	provider providers.Provider
	tariffs  tariff.Table
	cache    cache.Cache
	ttl      time.Duration
	group    singleflight.Group
}

func New(provider providers.Provider, tariffs tariff.Table, c cache.Cache, ttl time.Duration) *Pipeline {
	if c == nil {
		c = cache.Nop{}
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Pipeline{
		provider: provider,
		tariffs:  tariffs,
		cache:    c,
		ttl:      ttl,
	}
}

// Refresh runs the fetch -> derive sequence for the named countries.
// An empty name list yields an empty result without touching the network.
// Unknown names fail fast with countries.ErrUnknownCountry before any
// fetch. Concurrent refreshes for the same (country-set, period) key are
// collapsed into a single upstream fetch.
func (p *Pipeline) Refresh(ctx context.Context, names []string, period string) (Result, error) {
	if len(names) == 0 {
		return Result{Period: period, Rows: []model.DerivedRow{}}, nil
	}

	resolved := make([]countries.Country, 0, len(names))
	codes := make([]string, 0, len(names))
	for _, name := range names {
		country, err := countries.Resolve(name)
		if err != nil {
			metrics.RefreshErrors.WithLabelValues("lookup").Inc()
			return Result{}, err
		}
		resolved = append(resolved, country)
		codes = append(codes, country.CensusCode)
	}

	key := cache.Key(codes, period)
	if records, ok := p.cache.Get(ctx, key); ok {
		metrics.CacheHits.Inc()
		return p.shape(resolved, records, period, true), nil
	}
	metrics.CacheMisses.Inc()

	fetched, err, _ := p.group.Do(key, func() (any, error) {
		records, err := p.provider.FetchYear(ctx, codes, period)
		if err != nil {
			return nil, err
		}
		p.cache.Set(ctx, key, records, p.ttl)
		return records, nil
	})
	if err != nil {
		metrics.RefreshErrors.WithLabelValues(errorKind(err)).Inc()
		return Result{}, err
	}

	return p.shape(resolved, fetched.([]model.TradeRecord), period, false), nil
}

func (p *Pipeline) shape(requested []countries.Country, records []model.TradeRecord, period string, fromCache bool) Result {
	got := make(map[string]struct{}, len(records))
	for _, record := range records {
		got[record.CensusCode] = struct{}{}
		if period == "" {
			period = record.Period
		}
	}

	missing := make([]string, 0)
	for _, country := range requested {
		if _, ok := got[country.CensusCode]; !ok {
			missing = append(missing, country.Name)
		}
	}
	if len(missing) > 0 {
		log.Printf("pipeline: no data for %v (period %s)", missing, period)
	}

	return Result{
		Period:    period,
		Rows:      derive.Rows(records, p.tariffs),
		Missing:   missing,
		FromCache: fromCache,
	}
}

func errorKind(err error) string {
	var shapeErr *census.ShapeError
	var statusErr *census.StatusError
	switch {
	case errors.Is(err, countries.ErrUnknownCountry):
		return "lookup"
	case errors.Is(err, census.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, census.ErrNoRecords):
		return "no_records"
	case errors.As(err, &shapeErr):
		return "shape"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "network"
	}
}
