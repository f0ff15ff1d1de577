package backtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/walkforward/internal/config"
)

// RemoteAdapter runs backtests against an external simulation service over
// HTTP. Requests are rate limited and retried on transient failures.
type RemoteAdapter struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

// backtestRequest is the wire format sent to the simulation service
type backtestRequest struct {
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Symbols        []string        `json:"symbols"`
	StrategyConfig json.RawMessage `json:"strategy_config,omitempty"`
	Metrics        []string        `json:"metrics"`
}

// backtestResponse is the wire format returned by the simulation service.
// An unbounded profit factor is signalled by the infinite flag, not by a
// sentinel value.
type backtestResponse struct {
	WinRate              float64 `json:"win_rate"`
	AvgRMultiple         float64 `json:"avg_r_multiple"`
	ProfitFactor         float64 `json:"profit_factor"`
	ProfitFactorInfinite bool    `json:"profit_factor_infinite"`
	TotalTrades          int     `json:"total_trades"`
	Error                string  `json:"error,omitempty"`
}

// NewRemoteAdapter creates a remote backtest adapter
func NewRemoteAdapter(cfg *config.BacktestConfig, logger *logrus.Logger) (*RemoteAdapter, error) {
	if cfg.ServiceURL == "" {
		return nil, fmt.Errorf("service URL is required for remote adapter")
	}
	if logger == nil {
		logger = logrus.New()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.CheckRetry = backtestRetryPolicy()
	retryClient.Logger = nil

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 10.0
	}

	return &RemoteAdapter{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		baseURL: cfg.ServiceURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}, nil
}

// Run submits the backtest to the remote service and maps the response to a
// metrics bundle
func (a *RemoteAdapter) Run(ctx context.Context, period DateRange, strategyConfig json.RawMessage, symbols []string) (*MetricsBundle, error) {
	start := time.Now()
	defer func() {
		BacktestRunLatency.WithLabelValues("remote").Observe(time.Since(start).Seconds())
	}()

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(backtestRequest{
		StartDate:      period.Start.Format("2006-01-02"),
		EndDate:        period.End.Format("2006-01-02"),
		Symbols:        symbols,
		StrategyConfig: strategyConfig,
		Metrics:        MetricKeys(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode backtest request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/v1/backtest", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build backtest request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("X-API-Key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		BacktestHTTPErrorsTotal.WithLabelValues("transport").Inc()
		BacktestRunsTotal.WithLabelValues("remote", "failure").Inc()
		return nil, fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		BacktestHTTPErrorsTotal.WithLabelValues("read").Inc()
		return nil, fmt.Errorf("failed to read backtest response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		BacktestHTTPErrorsTotal.WithLabelValues("status").Inc()
		BacktestRunsTotal.WithLabelValues("remote", "failure").Inc()
		a.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"period": period.String(),
		}).Error("Backtest service returned non-OK status")
		return nil, fmt.Errorf("%w: status %d", ErrServiceFailure, resp.StatusCode)
	}

	var decoded backtestResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		BacktestHTTPErrorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("failed to decode backtest response: %w", err)
	}
	if decoded.Error != "" {
		BacktestRunsTotal.WithLabelValues("remote", "failure").Inc()
		return nil, fmt.Errorf("%w: %s", ErrServiceFailure, decoded.Error)
	}
	if decoded.TotalTrades == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTrades, period)
	}

	bundle := &MetricsBundle{
		WinRate:      decoded.WinRate,
		AvgRMultiple: decoded.AvgRMultiple,
		TotalTrades:  decoded.TotalTrades,
	}
	if decoded.ProfitFactorInfinite || math.IsInf(decoded.ProfitFactor, 1) {
		bundle.ProfitFactor = InfiniteProfitFactor()
	} else {
		bundle.ProfitFactor = NewProfitFactor(decoded.ProfitFactor)
	}

	BacktestRunsTotal.WithLabelValues("remote", "success").Inc()
	return bundle, nil
}

// Close releases idle connections held by the HTTP client
func (a *RemoteAdapter) Close() error {
	a.client.HTTPClient.CloseIdleConnections()
	return nil
}

// backtestRetryPolicy retries on network errors, rate limiting and server
// errors, never on other client errors
func backtestRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, err
		}
		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			return true, nil
		}
		return false, nil
	}
}
