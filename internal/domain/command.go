package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Command is one instruction for the copy-trade executor, produced per
// parsed message. Prices are strictly decimal.Decimal; a zero Entry on a
// MARKET open means "execute at current price", not "missing".
type Command struct {
	ID       string          `json:"cmd_id"` // e.g. "tg_12345"
	Action   string          `json:"action"` // OPEN / UPDATE / CANCEL
	Symbol   string          `json:"symbol"` // e.g. "CADCHF-STD"
	Type     string          `json:"type"`   // MARKET / BUY_LIMIT / SELL_LIMIT ...
	Side     string          `json:"side"`   // BUY / SELL
	Entry    decimal.Decimal `json:"entry"`
	SL       decimal.Decimal `json:"sl"`
	TP       decimal.Decimal `json:"tp"`
	OldEntry decimal.Decimal `json:"old_entry"` // set for UPDATE, sometimes CANCEL
	OrderID  string          `json:"order_id"`  // empty until linkage resolution
	Meta     map[string]any  `json:"meta,omitempty"`
}

const (
	ActionOpen   = "OPEN"
	ActionUpdate = "UPDATE"
	ActionCancel = "CANCEL"

	SideBuy  = "BUY"
	SideSell = "SELL"

	OrderTypeMarket    = "MARKET"
	OrderTypeBuyLimit  = "BUY_LIMIT"
	OrderTypeSellLimit = "SELL_LIMIT"
	OrderTypeBuyStop   = "BUY_STOP"
	OrderTypeSellStop  = "SELL_STOP"
)

// CommandID derives the deterministic command id for a source message.
func CommandID(msgID int64) string {
	return fmt.Sprintf("tg_%d", msgID)
}

// OrderIDForMessage derives the deterministic order id minted when a message
// starts a new order chain. Never random, so reprocessing is stable.
func OrderIDForMessage(msgID int64) string {
	return fmt.Sprintf("order_msg%d", msgID)
}

// IsPending checks whether the command targets a pending order type.
func (c *Command) IsPending() bool {
	return c.Type != OrderTypeMarket && c.Type != ""
}
