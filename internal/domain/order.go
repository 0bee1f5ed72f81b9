package domain

import "github.com/shopspring/decimal"

// Order is the persisted aggregate for one logical trading instruction:
// the opening message plus every update/cancel that replied into its chain.
type Order struct {
	OrderID      string  `json:"order_id"`
	FirstMsgID   int64   `json:"first_msg_id"`
	Messages     []int64 `json:"messages"` // unique, in arrival order
	Symbol       string  `json:"symbol"`
	Side         string  `json:"side"`
	Status       string  `json:"status"` // always "active"; no closing transition
	LatestAction string  `json:"latest_action"`
	CreatedAt    int64   `json:"created_at"` // unix seconds
	UpdatedAt    int64   `json:"updated_at"`
}

const OrderStatusActive = "active"

// HasMessage checks whether a message id is already linked to the order.
func (o *Order) HasMessage(msgID int64) bool {
	for _, id := range o.Messages {
		if id == msgID {
			return true
		}
	}
	return false
}

// MessageRecord is the persisted snapshot of one processed message.
// Written once at linkage time, never mutated.
type MessageRecord struct {
	OrderID   string          `json:"order_id"`
	MsgID     int64           `json:"msg_id"`
	Action    string          `json:"action"`
	Symbol    string          `json:"symbol"`
	Type      string          `json:"type"`
	Side      string          `json:"side"`
	Entry     decimal.Decimal `json:"entry"`
	SL        decimal.Decimal `json:"sl"`
	TP        decimal.Decimal `json:"tp"`
	Timestamp int64           `json:"timestamp"` // unix seconds
}

// ArchivedCommand is the sqlite row written for every emitted command.
// Prices are stored as text to keep the exact decimal rendering.
type ArchivedCommand struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	CmdID     string `gorm:"index" json:"cmd_id"`
	OrderID   string `gorm:"index" json:"order_id"`
	Action    string `json:"action"`
	Symbol    string `json:"symbol"`
	Type      string `json:"type"`
	Side      string `json:"side"`
	Entry     string `json:"entry"`
	SL        string `json:"sl"`
	TP        string `json:"tp"`
	OldEntry  string `json:"old_entry"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
}
