// Package models defines the persistence entities shared by the repositories
// and the local backtest adapter.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeDirection is the side of a historical trade
type TradeDirection string

// Trade directions
const (
	TradeDirectionLong  TradeDirection = "LONG"
	TradeDirectionShort TradeDirection = "SHORT"
)

// Trade is one settled historical trade produced by a prior simulation run.
// Prices are stored as decimals; derived performance figures are floats.
type Trade struct {
	ID         uuid.UUID       `json:"id"`
	Symbol     string          `json:"symbol"`
	Direction  TradeDirection  `json:"direction"`
	EntryTime  time.Time       `json:"entry_time"`
	ExitTime   time.Time       `json:"exit_time"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	ExitPrice  decimal.Decimal `json:"exit_price"`
	Quantity   decimal.Decimal `json:"quantity"`
	ProfitLoss float64         `json:"profit_loss"`
	RMultiple  float64         `json:"r_multiple"`
	ConfigHash string          `json:"config_hash"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Notional returns the position size at entry
func (t *Trade) Notional() decimal.Decimal {
	return t.EntryPrice.Mul(t.Quantity)
}

// Won reports whether the trade closed profitable
func (t *Trade) Won() bool {
	return t.ProfitLoss > 0
}
