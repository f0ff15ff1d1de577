package backtest

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/walkforward/internal/models"
	"github.com/yourusername/walkforward/internal/repository"
)

// LocalAdapter derives a metrics bundle by replaying the settled trades
// persisted for a date range. It does not simulate order execution; it
// summarizes outcomes an earlier simulation already produced.
type LocalAdapter struct {
	trades repository.TradeRepository
	logger *logrus.Logger
}

// NewLocalAdapter creates a local backtest adapter
func NewLocalAdapter(trades repository.TradeRepository, logger *logrus.Logger) (*LocalAdapter, error) {
	if trades == nil {
		return nil, fmt.Errorf("trade repository is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &LocalAdapter{trades: trades, logger: logger}, nil
}

// Run loads the trades closed inside the period and reduces them to a bundle
func (a *LocalAdapter) Run(ctx context.Context, period DateRange, strategyConfig json.RawMessage, symbols []string) (*MetricsBundle, error) {
	trades, err := a.trades.GetByRange(ctx, symbols, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load trades for %s: %w", period, err)
	}

	matched := filterByConfig(trades, strategyConfig)
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTrades, period)
	}

	bundle := reduceTrades(matched)
	a.logger.WithFields(logrus.Fields{
		"period": period.String(),
		"trades": bundle.TotalTrades,
	}).Debug("Local backtest completed")
	return bundle, nil
}

// filterByConfig keeps trades tagged with the given strategy config hash.
// Untagged trades predate config hashing and always match.
func filterByConfig(trades []*models.Trade, strategyConfig json.RawMessage) []*models.Trade {
	if len(strategyConfig) == 0 {
		return trades
	}
	hash := configHash(strategyConfig)
	matched := make([]*models.Trade, 0, len(trades))
	for _, trade := range trades {
		if trade.ConfigHash == "" || trade.ConfigHash == hash {
			matched = append(matched, trade)
		}
	}
	return matched
}

// configHash tags trades with the strategy config that produced them
func configHash(strategyConfig json.RawMessage) string {
	return fmt.Sprintf("%x", sha256.Sum256(strategyConfig))
}

func reduceTrades(trades []*models.Trade) *MetricsBundle {
	wins := 0
	grossProfit := 0.0
	grossLoss := 0.0
	rSum := 0.0
	for _, trade := range trades {
		if trade.Won() {
			wins++
			grossProfit += trade.ProfitLoss
		} else if trade.ProfitLoss < 0 {
			grossLoss += math.Abs(trade.ProfitLoss)
		}
		rSum += trade.RMultiple
	}

	bundle := &MetricsBundle{
		TotalTrades:  len(trades),
		WinRate:      float64(wins) / float64(len(trades)),
		AvgRMultiple: rSum / float64(len(trades)),
	}
	if grossLoss == 0 {
		if grossProfit > 0 {
			bundle.ProfitFactor = InfiniteProfitFactor()
		} else {
			bundle.ProfitFactor = NewProfitFactor(0)
		}
	} else {
		bundle.ProfitFactor = NewProfitFactor(grossProfit / grossLoss)
	}
	return bundle
}
