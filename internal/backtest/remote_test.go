package backtest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/walkforward/internal/config"
)

func remoteTestConfig(url string) *config.BacktestConfig {
	return &config.BacktestConfig{
		Adapter:        "remote",
		ServiceURL:     url,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
		MaxRetries:     2,
		RateLimit:      100,
	}
}

// TestRemoteAdapterRun tests a successful round trip
func TestRemoteAdapterRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/backtest", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		var req backtestRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"ES"}, req.Symbols)
		assert.Equal(t, "2021-01-01", req.StartDate)

		json.NewEncoder(w).Encode(backtestResponse{
			WinRate:      0.58,
			AvgRMultiple: 0.31,
			ProfitFactor: 1.7,
			TotalTrades:  120,
		})
	}))
	defer server.Close()

	adapter, err := NewRemoteAdapter(remoteTestConfig(server.URL), nil)
	require.NoError(t, err)
	defer adapter.Close()

	bundle, err := adapter.Run(context.Background(), testPeriod(), nil, []string{"ES"})
	require.NoError(t, err)
	assert.Equal(t, 0.58, bundle.WinRate)
	assert.Equal(t, 120, bundle.TotalTrades)
	assert.True(t, bundle.ProfitFactor.Finite())
	assert.Equal(t, 1.7, bundle.ProfitFactor.Value)
}

// TestRemoteAdapterInfiniteProfitFactor tests the infinite flag mapping
func TestRemoteAdapterInfiniteProfitFactor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backtestResponse{
			WinRate:              1.0,
			ProfitFactorInfinite: true,
			TotalTrades:          15,
		})
	}))
	defer server.Close()

	adapter, err := NewRemoteAdapter(remoteTestConfig(server.URL), nil)
	require.NoError(t, err)
	defer adapter.Close()

	bundle, err := adapter.Run(context.Background(), testPeriod(), nil, []string{"ES"})
	require.NoError(t, err)
	assert.False(t, bundle.ProfitFactor.Finite())
}

// TestRemoteAdapterNoTrades tests the empty-range mapping
func TestRemoteAdapterNoTrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backtestResponse{TotalTrades: 0})
	}))
	defer server.Close()

	adapter, err := NewRemoteAdapter(remoteTestConfig(server.URL), nil)
	require.NoError(t, err)
	defer adapter.Close()

	_, err = adapter.Run(context.Background(), testPeriod(), nil, []string{"ES"})
	assert.True(t, errors.Is(err, ErrNoTrades))
}

// TestRemoteAdapterServiceError tests failure status mapping
func TestRemoteAdapterServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	adapter, err := NewRemoteAdapter(remoteTestConfig(server.URL), nil)
	require.NoError(t, err)
	defer adapter.Close()

	_, err = adapter.Run(context.Background(), testPeriod(), nil, []string{"ES"})
	assert.True(t, errors.Is(err, ErrServiceFailure))
}

// TestRemoteAdapterRetriesServerErrors tests the retry policy
func TestRemoteAdapterRetriesServerErrors(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(backtestResponse{WinRate: 0.5, ProfitFactor: 1.1, TotalTrades: 10})
	}))
	defer server.Close()

	adapter, err := NewRemoteAdapter(remoteTestConfig(server.URL), nil)
	require.NoError(t, err)
	defer adapter.Close()

	bundle, err := adapter.Run(context.Background(), testPeriod(), nil, []string{"ES"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), atomic.LoadInt64(&attempts))
	assert.Equal(t, 10, bundle.TotalTrades)
}

// TestRemoteAdapterRequiresURL tests constructor validation
func TestRemoteAdapterRequiresURL(t *testing.T) {
	_, err := NewRemoteAdapter(&config.BacktestConfig{Adapter: "remote"}, nil)
	assert.Error(t, err)
}
