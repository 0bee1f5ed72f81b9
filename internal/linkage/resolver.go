// Package linkage resolves order identity: which logical order a message
// belongs to, derived purely from the chat's reply-chain structure.
package linkage

import (
	"log/slog"

	"signal_go/internal/domain"
)

// LedgerStore is the persisted message/order index the resolver works
// against. *storage.Ledger satisfies it; tests use an in-memory fake.
type LedgerStore interface {
	OrderIDForMessage(msgID int64) (string, bool)
	Link(msgID int64, orderID string, cmd *domain.Command) error
	Order(orderID string) (*domain.Order, bool)
}

// Resolver stamps commands with their order id and records the linkage.
type Resolver struct {
	ledger LedgerStore
	logger *slog.Logger
}

// NewResolver creates a resolver over the given ledger store.
func NewResolver(ledger LedgerStore) *Resolver {
	return &Resolver{
		ledger: ledger,
		logger: slog.Default().With("module", "linkage"),
	}
}

// Resolve determines the order identity for a freshly built command.
// A reply reuses the order of the message it replies to, when that message
// is known; anything else mints a new deterministic order id from the
// current message. The linkage is persisted before returning, so the next
// message replying to this one resolves through the ledger directly.
func (r *Resolver) Resolve(msg domain.Message, cmd *domain.Command) (string, error) {
	orderID := ""
	if msg.IsReply() {
		if id, ok := r.ledger.OrderIDForMessage(msg.ReplyTo); ok {
			orderID = id
		} else {
			// Reply target never processed: start a new chain here.
			orderID = domain.OrderIDForMessage(msg.ID)
			r.logger.Warn("reply target unknown, minted new order",
				slog.Int64("msg_id", msg.ID),
				slog.Int64("reply_to", msg.ReplyTo),
				slog.String("order_id", orderID))
		}
	} else {
		orderID = domain.OrderIDForMessage(msg.ID)
	}

	cmd.OrderID = orderID
	if err := r.ledger.Link(msg.ID, orderID, cmd); err != nil {
		return "", err
	}
	return orderID, nil
}

// Summary returns the order aggregate for status reporting, or nil.
func (r *Resolver) Summary(orderID string) *domain.Order {
	if o, ok := r.ledger.Order(orderID); ok {
		return o
	}
	return nil
}
