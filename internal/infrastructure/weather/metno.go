// Package weather fetches forecasts from the met.no Locationforecast API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/domain/entity"
	"github.com/bnema/startdash/internal/infrastructure/cache"
	"github.com/bnema/startdash/internal/logging"
)

const (
	// DefaultBaseURL is the compact Locationforecast endpoint.
	DefaultBaseURL = "https://api.met.no/weatherapi/locationforecast/2.0/compact"

	// DefaultUserAgent identifies the client; met.no rejects requests without one.
	DefaultUserAgent = "startdash/1.0 (+https://github.com/bnema/startdash)"

	requestTimeout = 10 * time.Second

	// Forecast bodies are a few hundred KB; anything larger is not a forecast.
	maxBodySize = 4 * 1024 * 1024

	maxRetryAttempts = 3
	retryBaseDelay   = 250 * time.Millisecond
	retryMaxDelay    = 2 * time.Second
	retryJitterMax   = 200 * time.Millisecond

	// cacheCapacity bounds the number of coordinates kept until their Expires header.
	cacheCapacity = 8

	unknownSymbol = "unknown"
)

var (
	// ErrNoForecast is returned when the response carries no timeseries.
	ErrNoForecast = errors.New("forecast has no timeseries")
)

type compactResponse struct {
	Properties struct {
		Timeseries []timeStep `json:"timeseries"`
	} `json:"properties"`
}

type timeStep struct {
	Time time.Time `json:"time"`
	Data struct {
		Instant struct {
			Details struct {
				AirTemperature *float64 `json:"air_temperature"`
			} `json:"details"`
		} `json:"instant"`
		Next1Hours *struct {
			Summary struct {
				SymbolCode string `json:"symbol_code"`
			} `json:"summary"`
		} `json:"next_1_hours"`
	} `json:"data"`
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client implements port.WeatherProvider against met.no.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	group     singleflight.Group
	cache     port.Cache[string, entity.Forecast]

	now       func() time.Time
	randInt63 func(n int64) int64
	sleep     func(ctx context.Context, d time.Duration) error
}

var _ port.WeatherProvider = (*Client)(nil)

// NewClient creates a met.no client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	c := &Client{
		client:    opts.HTTPClient,
		baseURL:   opts.BaseURL,
		userAgent: opts.UserAgent,
		now:       time.Now,
		randInt63: rand.Int63n,
		sleep:     waitForBackoff,
	}
	c.cache = cache.NewLRUWithClock[string, entity.Forecast](cacheCapacity, func() time.Time { return c.now() })
	return c
}

// Current returns the forecast for lat/lon. Concurrent calls for the same
// coordinates share one request, and a response is reused until the time in
// its Expires header.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*entity.Forecast, error) {
	key := coord(lat) + "," + coord(lon)
	if f, ok := c.cache.Get(key); ok {
		logging.FromContext(ctx).Debug().Str("coords", key).Msg("weather served from cache")
		return &f, nil
	}
	v, err, shared := c.group.Do(key, func() (any, error) {
		f, expires, err := c.fetch(ctx, lat, lon)
		if err != nil {
			return nil, err
		}
		if !expires.IsZero() {
			c.cache.SetUntil(key, *f, expires)
		}
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.FromContext(ctx).Debug().Str("coords", key).Msg("weather request shared")
	}
	f := *v.(*entity.Forecast)
	return &f, nil
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (*entity.Forecast, time.Time, error) {
	log := logging.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, http.NoBody)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("lat", coord(lat))
	q.Set("lon", coord(lon))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.doRequestWithRetry(ctx, req)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("weather request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, time.Time{}, fmt.Errorf("weather request: unexpected status %d", resp.StatusCode)
	}

	var body compactResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode forecast: %w", err)
	}

	forecast, err := summarize(body.Properties.Timeseries, c.now())
	if err != nil {
		return nil, time.Time{}, err
	}
	expires := expiresAt(resp.Header)
	log.Debug().
		Float64("temp_c", forecast.TemperatureC).
		Str("symbol", forecast.Symbol).
		Time("expires", expires).
		Msg("weather fetched")
	return forecast, expires, nil
}

// expiresAt parses the Expires header; zero means the response is not reused.
func expiresAt(h http.Header) time.Time {
	v := h.Get("Expires")
	if v == "" {
		return time.Time{}
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// summarize takes the temperature from the first step and the symbol from
// the first step after now.
func summarize(steps []timeStep, now time.Time) (*entity.Forecast, error) {
	if len(steps) == 0 || steps[0].Data.Instant.Details.AirTemperature == nil {
		return nil, ErrNoForecast
	}
	f := &entity.Forecast{
		TemperatureC: *steps[0].Data.Instant.Details.AirTemperature,
		Symbol:       unknownSymbol,
		UpdatedAt:    now,
	}
	for _, step := range steps {
		if !step.Time.After(now) {
			continue
		}
		if step.Data.Next1Hours != nil && step.Data.Next1Hours.Summary.SymbolCode != "" {
			f.Symbol = step.Data.Next1Hours.Summary.SymbolCode
		}
		break
	}
	return f, nil
}

// coord truncates to four decimals as the API terms require.
func coord(v float64) string {
	return strconv.FormatFloat(float64(int64(v*1e4))/1e4, 'f', -1, 64)
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests || status == http.StatusRequestTimeout {
		return true
	}
	return status >= http.StatusInternalServerError
}

func isRetryableRequestError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func waitForBackoff(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryDelayForAttempt(attempt int, randInt63 func(n int64) int64) time.Duration {
	delay := retryBaseDelay
	for i := 1; i < attempt && delay < retryMaxDelay; i++ {
		delay *= 2
	}
	if randInt63 != nil {
		delay += time.Duration(randInt63(int64(retryJitterMax)))
	}
	return min(delay, retryMaxDelay)
}

// doRequestWithRetry retries the same bodiless request on transient failures.
func (c *Client) doRequestWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 1; ; attempt++ {
		resp, err := c.client.Do(req)
		if err != nil {
			if !isRetryableRequestError(err) || attempt == maxRetryAttempts {
				return nil, err
			}
		} else {
			if !isRetryableStatus(resp.StatusCode) || attempt == maxRetryAttempts {
				return resp, nil
			}
			_ = resp.Body.Close()
		}
		if waitErr := c.sleep(ctx, retryDelayForAttempt(attempt, c.randInt63)); waitErr != nil {
			return nil, waitErr
		}
	}
}
