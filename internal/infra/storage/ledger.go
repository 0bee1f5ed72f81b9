package storage

import (
	"log/slog"
	"strconv"
	"time"

	"signal_go/internal/domain"
)

// Ledger is the persisted bidirectional index between messages and orders:
// message id -> message record, order id -> order aggregate. It is the
// source of truth for reply-chain order identity across restarts.
type Ledger struct {
	path     string
	messages map[string]domain.MessageRecord
	orders   map[string]*domain.Order

	now func() time.Time // test seam
}

type ledgerDocument struct {
	Messages map[string]domain.MessageRecord `json:"messages"`
	Orders   map[string]*domain.Order        `json:"orders"`
}

// OpenLedger loads the ledger document at path. A missing or unreadable
// file starts an empty ledger.
func OpenLedger(path string) (*Ledger, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	l := &Ledger{
		path:     path,
		messages: make(map[string]domain.MessageRecord),
		orders:   make(map[string]*domain.Order),
		now:      time.Now,
	}

	var doc ledgerDocument
	found, err := loadDocument(path, &doc)
	if err != nil {
		slog.Warn("ledger document unreadable, starting empty", slog.Any("error", err))
		return l, nil
	}
	if found {
		if doc.Messages != nil {
			l.messages = doc.Messages
		}
		if doc.Orders != nil {
			l.orders = doc.Orders
		}
	}
	return l, nil
}

// OrderIDForMessage looks up the order id an already-processed message was
// linked to. Unknown message ids report false.
func (l *Ledger) OrderIDForMessage(msgID int64) (string, bool) {
	rec, ok := l.messages[msgKey(msgID)]
	if !ok {
		return "", false
	}
	return rec.OrderID, true
}

// HasMessage reports whether a message record already exists.
func (l *Ledger) HasMessage(msgID int64) bool {
	_, ok := l.messages[msgKey(msgID)]
	return ok
}

// Link records the message against the order and updates the order
// aggregate: a new order is created with this message as its first member,
// an existing one appends the message (once) and refreshes its latest
// action. The full document is persisted afterwards.
func (l *Ledger) Link(msgID int64, orderID string, cmd *domain.Command) error {
	nowUnix := l.now().Unix()

	l.messages[msgKey(msgID)] = domain.MessageRecord{
		OrderID:   orderID,
		MsgID:     msgID,
		Action:    cmd.Action,
		Symbol:    cmd.Symbol,
		Type:      cmd.Type,
		Side:      cmd.Side,
		Entry:     cmd.Entry,
		SL:        cmd.SL,
		TP:        cmd.TP,
		Timestamp: nowUnix,
	}

	order, ok := l.orders[orderID]
	if !ok {
		l.orders[orderID] = &domain.Order{
			OrderID:      orderID,
			FirstMsgID:   msgID,
			Messages:     []int64{msgID},
			Symbol:       cmd.Symbol,
			Side:         cmd.Side,
			Status:       domain.OrderStatusActive,
			LatestAction: cmd.Action,
			CreatedAt:    nowUnix,
			UpdatedAt:    nowUnix,
		}
	} else {
		if !order.HasMessage(msgID) {
			order.Messages = append(order.Messages, msgID)
		}
		order.LatestAction = cmd.Action
		order.UpdatedAt = nowUnix
	}

	return saveDocument(l.path, ledgerDocument{Messages: l.messages, Orders: l.orders})
}

// Order returns the aggregate for an order id.
func (l *Ledger) Order(orderID string) (*domain.Order, bool) {
	o, ok := l.orders[orderID]
	return o, ok
}

func msgKey(msgID int64) string {
	return strconv.FormatInt(msgID, 10)
}
