package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleForecast = `{
  "properties": {
    "timeseries": [
      {"time": "2026-01-10T11:00:00Z", "data": {"instant": {"details": {"air_temperature": 4.6}},
        "next_1_hours": {"summary": {"symbol_code": "cloudy"}}}},
      {"time": "2026-01-10T12:00:00Z", "data": {"instant": {"details": {"air_temperature": 5.1}},
        "next_1_hours": {"summary": {"symbol_code": "lightrain"}}}}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, UserAgent: "startdash-test/1.0"})
	c.now = func() time.Time { return time.Date(2026, 1, 10, 11, 30, 0, 0, time.UTC) }
	c.sleep = func(context.Context, time.Duration) error { return nil }
	c.randInt63 = nil
	return c
}

func TestCurrent_ParsesCompactForecast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "startdash-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "60.3913", r.URL.Query().Get("lat"))
		assert.Equal(t, "5.3221", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(sampleForecast))
	})

	f, err := c.Current(context.Background(), 60.391312, 5.322155)

	require.NoError(t, err)
	assert.InDelta(t, 4.6, f.TemperatureC, 0.001)
	assert.Equal(t, "lightrain", f.Symbol, "symbol comes from the first future step")
}

func TestCurrent_NoFutureStepIsUnknown(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleForecast))
	})
	c.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	f, err := c.Current(context.Background(), 1, 1)

	require.NoError(t, err)
	assert.Equal(t, "unknown", f.Symbol)
}

func TestCurrent_EmptyTimeseries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"properties":{"timeseries":[]}}`))
	})

	_, err := c.Current(context.Background(), 1, 1)

	assert.ErrorIs(t, err, ErrNoForecast)
}

func TestCurrent_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleForecast))
	})

	_, err := c.Current(context.Background(), 1, 1)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCurrent_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := c.Current(context.Background(), 1, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Equal(t, int32(1), calls.Load())
}

func TestCurrent_ConcurrentCallsShareRequest(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(sampleForecast))
	})

	const callers = 5
	var wg sync.WaitGroup
	var started sync.WaitGroup
	started.Add(callers)
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			_, err := c.Current(context.Background(), 60.39, 5.32)
			errs <- err
		}()
	}
	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryDelayForAttempt(t *testing.T) {
	assert.Equal(t, retryBaseDelay, retryDelayForAttempt(1, nil))
	assert.Equal(t, 2*retryBaseDelay, retryDelayForAttempt(2, nil))
	assert.Equal(t, retryMaxDelay, retryDelayForAttempt(10, nil))
}

func TestCurrent_ReusesResponseUntilExpires(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Expires", "Sat, 10 Jan 2026 11:45:00 GMT")
		_, _ = w.Write([]byte(sampleForecast))
	})
	now := time.Date(2026, 1, 10, 11, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	first, err := c.Current(context.Background(), 60.39, 5.32)
	require.NoError(t, err)
	second, err := c.Current(context.Background(), 60.39, 5.32)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second, "callers get their own copy")

	_, err = c.Current(context.Background(), 59.91, 10.75)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "other coordinates are fetched")

	now = now.Add(15 * time.Minute)
	_, err = c.Current(context.Background(), 60.39, 5.32)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load(), "expired responses are refetched")
}

func TestCurrent_NoExpiresIsNotCached(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(sampleForecast))
	})

	for range 2 {
		_, err := c.Current(context.Background(), 60.39, 5.32)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestExpiresAt(t *testing.T) {
	h := http.Header{}
	assert.True(t, expiresAt(h).IsZero())

	h.Set("Expires", "not a date")
	assert.True(t, expiresAt(h).IsZero())

	h.Set("Expires", "Sat, 10 Jan 2026 11:45:00 GMT")
	assert.Equal(t, time.Date(2026, 1, 10, 11, 45, 0, 0, time.UTC), expiresAt(h))
}
