package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NasaVasa/coinsentry/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Typed failures surfaced after the retry budget is exhausted. The caller
// receives exactly one of these (wrapped) and no partial data.
var (
	ErrTimeout     = errors.New("coingecko: request timed out")
	ErrRateLimited = errors.New("coingecko: rate limited")
	ErrRemote      = errors.New("coingecko: remote error")
)

// coinIDs maps short asset codes to CoinGecko coin identifiers. Assets
// outside this table are passed through verbatim.
var coinIDs = map[domain.Asset]string{
	"btc":  "bitcoin",
	"eth":  "ethereum",
	"usdt": "tether",
}

type Options struct {
	BaseURL       string
	Currency      string
	Timeout       time.Duration
	MaxRetries    int
	RetryBase     time.Duration
	RatePerSecond float64
}

// Client fetches spot prices from the CoinGecko simple-price endpoint. It
// holds no mutable state across calls besides configuration and the outbound
// rate limiter.
type Client struct {
	baseURL  string
	currency string
	retries  int
	base     time.Duration
	client   *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger

	// sleep is swapped out by tests to make backoff observable.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	retries := opts.MaxRetries
	if retries < 1 {
		retries = 1
	}
	ratePerSecond := opts.RatePerSecond
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		currency: opts.Currency,
		retries:  retries,
		base:     opts.RetryBase,
		client:   &http.Client{Timeout: opts.Timeout},
		limiter:  rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		logger:   logger,
		sleep:    sleepCtx,
	}
}

// Quotes fetches current prices for every requested asset in one logical
// call. Attempt k waits base × 2^(k-2) beforehand, doubled once more when the
// previous attempt was rate limited. All requested assets resolve or the call
// fails with a typed error.
func (c *Client) Quotes(ctx context.Context, assets []domain.Asset) (map[domain.Asset]domain.Quote, error) {
	endpoint := c.priceURL(assets)

	var lastErr error
	rateLimited := false
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			delay := c.base << (attempt - 2)
			if rateLimited {
				delay *= 2
			}
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		quotes, err := c.fetchOnce(ctx, endpoint, assets)
		if err == nil {
			return quotes, nil
		}
		rateLimited = errors.Is(err, ErrRateLimited)
		lastErr = err
		c.logger.Warn("quote fetch attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.retries),
			zap.Error(err),
		)
	}
	return nil, fmt.Errorf("quote fetch failed after %d attempts: %w", c.retries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string, assets []domain.Asset) (map[domain.Asset]domain.Quote, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", classifyTransportError(err), err)
	}
	defer response.Body.Close()

	c.logger.Debug("coingecko request complete",
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrRemote, response.StatusCode)
	}

	var payload simplePriceResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrRemote, err)
	}

	asOf := time.Now().UTC()
	quotes := make(map[domain.Asset]domain.Quote, len(assets))
	for _, asset := range assets {
		price, ok := payload.price(c.coinID(asset), c.currency)
		if !ok {
			// Partial results are not a supported outcome.
			return nil, fmt.Errorf("%w: missing quote for %s", ErrRemote, asset)
		}
		quotes[asset] = domain.Quote{
			Asset:    asset,
			Price:    price,
			Currency: c.currency,
			AsOf:     asOf,
		}
	}
	return quotes, nil
}

func (c *Client) priceURL(assets []domain.Asset) string {
	ids := make([]string, 0, len(assets))
	for _, asset := range assets {
		ids = append(ids, c.coinID(asset))
	}
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", c.currency)
	return c.baseURL + "/simple/price?" + params.Encode()
}

func (c *Client) coinID(asset domain.Asset) string {
	if id, ok := coinIDs[asset]; ok {
		return id
	}
	return string(asset)
}

func classifyTransportError(err error) error {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrRemote
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
