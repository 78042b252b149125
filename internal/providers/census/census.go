// Package census fetches annual import/export values from the US Census
// Bureau international trade time series API.
//
// The API answers with a JSON array of arrays whose first row is the
// header. Exports and imports live on separate endpoints; the provider
// fetches both and merges them on CTY_CODE (outer join, a missing flow
// side counts as zero). Requests are made once per endpoint per call:
// the upstream dashboard had no retry policy and none is added here,
// a rate-limited or failed request surfaces as an error immediately.
package census

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"tradewatch/internal/countries"
	"tradewatch/internal/metrics"
	"tradewatch/internal/model"
	"tradewatch/internal/providers"
)

const (
	defaultBaseURL         = "https://api.census.gov/data/timeseries/intltrade"
	defaultExportsPath     = "exports/hs"
	defaultImportsPath     = "imports/hs"
	defaultExportField     = "ALL_VAL_YR"
	defaultImportField     = "GEN_VAL_YR"
	defaultAPIKeyParam     = "key"
	defaultValueDivisor    = 1e9
	defaultTimeoutSeconds  = 30
	defaultRateLimitPerSec = 2
	defaultRateLimitBurst  = 2
	defaultUserAgent       = "tradewatch/0.1"
)

var ErrNoRecords = errors.New("census: no records found")
var ErrRateLimited = errors.New("census: rate limited")

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("census: request failed (%d): %s", e.Code, e.Body)
}

// ShapeError reports a response that parsed as JSON but did not match the
// array-of-arrays layout the API documents.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "census: unexpected response shape: " + e.Reason
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Config struct {
	BaseURL         string
	ExportsPath     string
	ImportsPath     string
	ExportField     string
	ImportField     string
	APIKey          string
	APIKeyParam     string
	ValueDivisor    float64
	Timeout         time.Duration
	UserAgent       string
	RateLimitPerSec int
	RateLimitBurst  int
}

type Provider struct {
	config  Config
	client  *http.Client
	limiter *rateLimiter
	now     func() time.Time
}

func New() (*Provider, error) {
	return NewWithConfig(ConfigFromEnv())
}

func NewWithConfig(cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(cfg.ExportsPath) == "" {
		cfg.ExportsPath = defaultExportsPath
	}
	if strings.TrimSpace(cfg.ImportsPath) == "" {
		cfg.ImportsPath = defaultImportsPath
	}
	if strings.TrimSpace(cfg.ExportField) == "" {
		cfg.ExportField = defaultExportField
	}
	if strings.TrimSpace(cfg.ImportField) == "" {
		cfg.ImportField = defaultImportField
	}
	if strings.TrimSpace(cfg.APIKeyParam) == "" {
		cfg.APIKeyParam = defaultAPIKeyParam
	}
	if cfg.ValueDivisor == 0 {
		cfg.ValueDivisor = defaultValueDivisor
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeoutSeconds * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RateLimitPerSec <= 0 {
		cfg.RateLimitPerSec = defaultRateLimitPerSec
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = defaultRateLimitBurst
	}

	return &Provider{
		config:  cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: newRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst),
		now:     time.Now,
	}, nil
}

func ConfigFromEnv() Config {
	return Config{
		BaseURL:         getenv("CENSUS_BASE_URL", defaultBaseURL),
		ExportsPath:     getenv("CENSUS_EXPORTS_PATH", defaultExportsPath),
		ImportsPath:     getenv("CENSUS_IMPORTS_PATH", defaultImportsPath),
		ExportField:     getenv("CENSUS_EXPORT_FIELD", defaultExportField),
		ImportField:     getenv("CENSUS_IMPORT_FIELD", defaultImportField),
		APIKey:          strings.TrimSpace(os.Getenv("CENSUS_API_KEY")),
		APIKeyParam:     getenv("CENSUS_API_KEY_PARAM", defaultAPIKeyParam),
		ValueDivisor:    getenvFloat("CENSUS_VALUE_DIVISOR", defaultValueDivisor),
		Timeout:         time.Duration(getenvInt("CENSUS_TIMEOUT_SECONDS", defaultTimeoutSeconds)) * time.Second,
		UserAgent:       getenv("CENSUS_USER_AGENT", defaultUserAgent),
		RateLimitPerSec: getenvInt("CENSUS_RATE_LIMIT_PER_SEC", defaultRateLimitPerSec),
		RateLimitBurst:  getenvInt("CENSUS_RATE_LIMIT_BURST", defaultRateLimitBurst),
	}
}

func (p *Provider) Name() string {
	return "census"
}

// FetchYear fetches export and import values for the given period and
// returns one record per requested CTY_CODE present in the response.
// Period accepts "YYYY" or "YYYY-MM"; empty defaults to the previous
// calendar year, the latest complete annual dataset. The API is queried
// for the full country table and filtered locally, so a batch of codes
// costs two requests regardless of size.
func (p *Provider) FetchYear(ctx context.Context, censusCodes []string, period string) ([]model.TradeRecord, error) {
	period, err := p.normalizePeriod(period)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	exports, err := p.fetchFlow(ctx, model.FlowExport, period)
	if err != nil {
		return nil, err
	}
	imports, err := p.fetchFlow(ctx, model.FlowImport, period)
	if err != nil {
		return nil, err
	}
	metrics.FetchDuration.Observe(time.Since(start).Seconds())

	merged := mergeFlows(exports, imports, period)
	if len(censusCodes) > 0 {
		merged = filterByCode(merged, censusCodes)
	}
	if len(merged) == 0 {
		return nil, ErrNoRecords
	}
	return merged, nil
}

type flowRow struct {
	code  string
	name  string
	value float64
}

func (p *Provider) fetchFlow(ctx context.Context, flow model.Flow, period string) (map[string]flowRow, error) {
	path := p.config.ExportsPath
	field := p.config.ExportField
	if flow == model.FlowImport {
		path = p.config.ImportsPath
		field = p.config.ImportField
	}

	params := url.Values{}
	params.Set("get", "CTY_CODE,CTY_NAME,"+field)
	params.Set("time", period)

	body, err := p.doRequest(ctx, p.endpoint(path), params)
	if err != nil {
		metrics.FetchRequests.WithLabelValues(string(flow), "error").Inc()
		return nil, err
	}

	rows, err := parseTable(body, field)
	if err != nil {
		metrics.FetchRequests.WithLabelValues(string(flow), "shape_error").Inc()
		return nil, err
	}
	metrics.FetchRequests.WithLabelValues(string(flow), "ok").Inc()

	scaled := make(map[string]flowRow, len(rows))
	for _, row := range rows {
		row.value /= p.config.ValueDivisor
		scaled[row.code] = row
	}
	return scaled, nil
}

func (p *Provider) endpoint(path string) string {
	return strings.TrimRight(p.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// doRequest performs exactly one attempt. HTTP 429 maps to ErrRateLimited
// so callers can tell throttling apart from hard failures; it is still not
// retried.
func (p *Provider) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	if strings.TrimSpace(p.config.APIKey) != "" {
		query.Set(p.config.APIKeyParam, p.config.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if p.config.UserAgent != "" {
		req.Header.Set("User-Agent", p.config.UserAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("census: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("census: read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, strings.TrimSpace(string(body)))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return body, nil
}

// parseTable decodes the array-of-arrays layout: header row first, then
// one row per country. Rows with an empty or non-numeric value cell are
// a shape error, not a skip; silent coercion would hide schema drift.
func parseTable(body []byte, valueField string) ([]flowRow, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ShapeError{Reason: "not valid JSON: " + err.Error()}
	}

	table, ok := payload.([]any)
	if !ok {
		return nil, &ShapeError{Reason: "top level is not an array"}
	}
	if len(table) < 1 {
		return nil, &ShapeError{Reason: "empty table"}
	}

	header, ok := rowStrings(table[0])
	if !ok {
		return nil, &ShapeError{Reason: "header row is not an array of strings"}
	}
	codeIdx := columnIndex(header, "CTY_CODE")
	nameIdx := columnIndex(header, "CTY_NAME")
	valueIdx := columnIndex(header, valueField)
	if codeIdx < 0 || valueIdx < 0 {
		return nil, &ShapeError{Reason: fmt.Sprintf("header missing CTY_CODE or %s: %v", valueField, header)}
	}

	rows := make([]flowRow, 0, len(table)-1)
	for _, raw := range table[1:] {
		cells, ok := rowStrings(raw)
		if !ok {
			return nil, &ShapeError{Reason: "data row is not an array"}
		}
		if codeIdx >= len(cells) || valueIdx >= len(cells) {
			return nil, &ShapeError{Reason: "data row shorter than header"}
		}

		code := strings.TrimSpace(cells[codeIdx])
		if code == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(cells[valueIdx]), 64)
		if err != nil {
			return nil, &ShapeError{Reason: fmt.Sprintf("non-numeric %s for CTY_CODE %s: %q", valueField, code, cells[valueIdx])}
		}

		name := ""
		if nameIdx >= 0 && nameIdx < len(cells) {
			name = strings.TrimSpace(cells[nameIdx])
		}
		rows = append(rows, flowRow{code: code, name: name, value: value})
	}

	return rows, nil
}

func rowStrings(raw any) ([]string, bool) {
	cells, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(cells))
	for i, cell := range cells {
		switch typed := cell.(type) {
		case string:
			out[i] = typed
		case nil:
			out[i] = ""
		case float64:
			out[i] = strconv.FormatFloat(typed, 'f', -1, 64)
		default:
			return nil, false
		}
	}
	return out, true
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i
		}
	}
	return -1
}

// mergeFlows outer-joins the two flow maps on CTY_CODE. A country present
// on only one side keeps zero for the other flow, matching the source
// dashboard's fill after its outer merge.
func mergeFlows(exports, imports map[string]flowRow, period string) []model.TradeRecord {
	codes := make(map[string]struct{}, len(exports)+len(imports))
	for code := range exports {
		codes[code] = struct{}{}
	}
	for code := range imports {
		codes[code] = struct{}{}
	}

	records := make([]model.TradeRecord, 0, len(codes))
	for code := range codes {
		exp, hasExp := exports[code]
		imp, hasImp := imports[code]

		censusName := exp.name
		if censusName == "" {
			censusName = imp.name
		}

		record := model.TradeRecord{
			CensusCode: code,
			Period:     period,
		}
		if hasExp {
			record.Exports = exp.value
		}
		if hasImp {
			record.Imports = imp.value
		}
		if country, ok := countries.ByCensusCode(code); ok {
			record.Country = country.Name
			record.ISO3 = country.ISO3
		} else {
			record.Country = cleanCountryName(censusName)
		}
		records = append(records, record)
	}
	return records
}

func filterByCode(records []model.TradeRecord, censusCodes []string) []model.TradeRecord {
	wanted := make(map[string]struct{}, len(censusCodes))
	for _, code := range censusCodes {
		wanted[strings.TrimSpace(code)] = struct{}{}
	}
	filtered := make([]model.TradeRecord, 0, len(censusCodes))
	for _, record := range records {
		if _, ok := wanted[record.CensusCode]; ok {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// cleanCountryName title-cases the Census ALL CAPS spelling for codes
// outside the supported resolver set.
func cleanCountryName(name string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func (p *Provider) normalizePeriod(period string) (string, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return strconv.Itoa(p.now().UTC().Year() - 1), nil
	}
	if _, ok := parseYear(period); ok {
		return period, nil
	}
	if year, month, ok := parseYearMonth(period); ok {
		return fmt.Sprintf("%04d-%02d", year, month), nil
	}
	return "", fmt.Errorf("census: invalid period %q (want YYYY or YYYY-MM)", period)
}

func parseYear(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if len(value) != 4 || !isDigits(value) {
		return 0, false
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return year, true
}

func parseYearMonth(value string) (int, int, bool) {
	value = strings.TrimSpace(value)
	if len(value) == 6 && isDigits(value) {
		year, _ := strconv.Atoi(value[:4])
		month, _ := strconv.Atoi(value[4:])
		if month >= 1 && month <= 12 {
			return year, month, true
		}
	}

	parts := strings.Split(value, "-")
	if len(parts) == 2 && len(parts[0]) == 4 {
		year, errYear := strconv.Atoi(parts[0])
		month, errMonth := strconv.Atoi(parts[1])
		if errYear == nil && errMonth == nil && month >= 1 && month <= 12 {
			return year, month, true
		}
	}
	return 0, 0, false
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type rateLimiter struct {
	tokens chan struct{}
}

func newRateLimiter(ratePerSec, burst int) *rateLimiter {
	if ratePerSec <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}

	limiter := &rateLimiter{
		tokens: make(chan struct{}, burst),
	}
	for i := 0; i < burst; i++ {
		limiter.tokens <- struct{}{}
	}

	interval := time.Second / time.Duration(ratePerSec)
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case limiter.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return limiter
}

func (l *rateLimiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.tokens:
		return nil
	}
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

var _ providers.Provider = (*Provider)(nil)
