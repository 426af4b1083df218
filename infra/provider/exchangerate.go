// Package provider implements the external collaborators: the USD to KRW
// exchange-rate source with TTL caching and a constant fallback.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pams-dev/pams/pkg/config"
	"github.com/pams-dev/pams/pkg/provider"
)

// DefaultRateURL is the public quote endpoint the rate is scraped from.
const DefaultRateURL = "https://m.search.naver.com/p/csearch/content/qapirender.nhn?key=calculator&pkid=141&q=%ED%99%98%EC%9C%A8&where=m&u1=keb&u6=standardUnit&u7=0&u3=USD&u4=KRW&u8=down&u2=1"

// quoteResponse is the subset of the quote payload we read: the rate
// lives in country[1].value as a comma-grouped string.
type quoteResponse struct {
	Country []struct {
		Value string `json:"value"`
	} `json:"country"`
}

// ExchangeRateService fetches the USD to KRW rate, caches it for the
// configured TTL, and falls back to a constant when the fetch or parse
// fails. Fetch failures are logged and swallowed: the ledger would
// rather run on a stale approximation than fail a summary query.
type ExchangeRateService struct {
	client *http.Client
	cfg    config.ExchangeRateConfig
	logger *slog.Logger

	mu        sync.Mutex
	cached    decimal.Decimal
	fetchedAt time.Time
}

var _ provider.ExchangeRate = (*ExchangeRateService)(nil)

// NewExchangeRateService creates a rate service from config. An empty
// ApiUrl selects the default quote endpoint.
func NewExchangeRateService(cfg config.ExchangeRateConfig, logger *slog.Logger) *ExchangeRateService {
	if cfg.ApiUrl == "" {
		cfg.ApiUrl = DefaultRateURL
	}
	return &ExchangeRateService{
		client: &http.Client{Timeout: cfg.HTTPTimeout},
		cfg:    cfg,
		logger: logger,
	}
}

// USDToKRW returns the cached rate when fresh, otherwise fetches a new
// one. Never returns an error: failures fall back to the configured
// constant rate.
func (s *ExchangeRateService) USDToKRW(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.cfg.CacheTTL {
		return s.cached, nil
	}
	rate, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("exchange rate fetch failed, using fallback",
			"error", err, "fallback", s.cfg.FallbackRate)
		rate = decimal.NewFromFloat(s.cfg.FallbackRate)
	}
	s.cached = rate
	s.fetchedAt = time.Now()
	return rate, nil
}

func (s *ExchangeRateService) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.ApiUrl, nil)
	if err != nil {
		return decimal.Zero, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return decimal.Zero, err
	}
	if len(quote.Country) < 2 || quote.Country[1].Value == "" {
		return decimal.Zero, fmt.Errorf("unexpected quote payload shape")
	}
	raw := strings.ReplaceAll(quote.Country[1].Value, ",", "")
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse rate %q: %w", raw, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive rate %s", rate)
	}
	return rate, nil
}

// StubExchangeRate returns a fixed rate; used in tests and offline runs.
type StubExchangeRate struct {
	Rate decimal.Decimal
}

var _ provider.ExchangeRate = (*StubExchangeRate)(nil)

// USDToKRW returns the fixed rate.
func (s *StubExchangeRate) USDToKRW(context.Context) (decimal.Decimal, error) {
	return s.Rate, nil
}
