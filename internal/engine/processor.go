package engine

import (
	"context"
	"log/slog"
	"time"

	"signal_go/internal/domain"
	"signal_go/internal/infra/storage"
	"signal_go/internal/linkage"
	"signal_go/internal/parser"
)

// Sink receives every emitted command.
type Sink interface {
	Append(cmd *domain.Command) error
}

// Archiver is the optional queryable command history.
type Archiver interface {
	SaveCommand(cmd *domain.Command) error
}

// Fetcher retrieves a single message by id (batch mode boundary).
type Fetcher interface {
	Fetch(ctx context.Context, msgID int64) (*domain.Message, error)
}

// Processor runs the per-message pipeline: dedup gate, classification,
// order-identity resolution, emission. It is strictly serialized: one
// message is handled to completion before the next begins. Both persisted
// stores are full-document rewrites, so this single-writer discipline is
// what keeps them consistent. MUST be driven from a single goroutine.
type Processor struct {
	parser   *parser.Parser
	dedup    *storage.DedupStore
	resolver *linkage.Resolver
	sinks    []Sink
	archive  Archiver // may be nil
	logger   *slog.Logger

	now func() time.Time // test seam
}

// NewProcessor wires the pipeline. archive may be nil.
func NewProcessor(p *parser.Parser, dedup *storage.DedupStore, resolver *linkage.Resolver, sinks []Sink, archive Archiver) *Processor {
	return &Processor{
		parser:   p,
		dedup:    dedup,
		resolver: resolver,
		sinks:    sinks,
		archive:  archive,
		logger:   slog.Default().With("module", "engine"),
		now:      time.Now,
	}
}

// RunLive consumes the inbox until the context is cancelled.
func (p *Processor) RunLive(ctx context.Context, inbox <-chan domain.Message) {
	p.logger.Info("listening for signals")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("processor stopping")
			return
		case msg := <-inbox:
			p.HandleLive(msg)
		}
	}
}

// HandleLive processes one live message: already-seen ids are skipped
// outright, everything else is classified and, matching or not, marked
// processed so noise is never retried.
func (p *Processor) HandleLive(msg domain.Message) {
	if p.dedup.IsProcessed(msg.ID) {
		return
	}

	p.process(msg, p.sinks)

	if err := p.dedup.MarkProcessed(msg.ID, p.now().Unix()); err != nil {
		p.logger.Error("failed to persist dedup state",
			slog.Int64("msg_id", msg.ID), slog.Any("error", err))
	}
}

// RunBatch fetches and processes the given message ids strictly in list
// order. The dedup store is not consulted: batch runs are operator replays.
// A fetch failure is logged and the batch continues with the next id.
// sinksFor builds the per-message output sinks.
func (p *Processor) RunBatch(ctx context.Context, fetcher Fetcher, msgIDs []int64, sinksFor func(msgID int64) []Sink) {
	p.logger.Info("batch mode", slog.Int("count", len(msgIDs)))
	for _, id := range msgIDs {
		msg, err := fetcher.Fetch(ctx, id)
		if err != nil {
			p.logger.Error("failed to fetch message",
				slog.Int64("msg_id", id), slog.Any("error", err))
			continue
		}
		p.process(*msg, sinksFor(id))
	}
}

// process classifies, resolves and emits one message. Exactly one outcome
// is logged: ignored or parsed.
func (p *Processor) process(msg domain.Message, sinks []Sink) {
	cmd := p.parser.Parse(msg)
	if cmd == nil {
		p.logger.Info("ignored", slog.Int64("msg_id", msg.ID))
		return
	}

	orderID, err := p.resolver.Resolve(msg, cmd)
	if err != nil {
		p.logger.Error("failed to persist order linkage",
			slog.Int64("msg_id", msg.ID), slog.Any("error", err))
		return
	}

	for _, s := range sinks {
		if err := s.Append(cmd); err != nil {
			p.logger.Error("sink write failed",
				slog.String("cmd_id", cmd.ID), slog.Any("error", err))
		}
	}
	if p.archive != nil {
		if err := p.archive.SaveCommand(cmd); err != nil {
			p.logger.Error("archive write failed",
				slog.String("cmd_id", cmd.ID), slog.Any("error", err))
		}
	}

	attrs := []any{
		slog.String("cmd_id", cmd.ID),
		slog.String("action", cmd.Action),
		slog.String("symbol", cmd.Symbol),
		slog.String("type", cmd.Type),
		slog.String("side", cmd.Side),
		slog.String("order_id", orderID),
	}
	if summary := p.resolver.Summary(orderID); summary != nil {
		attrs = append(attrs,
			slog.String("latest_action", summary.LatestAction),
			slog.Int("messages", len(summary.Messages)))
	}
	p.logger.Info("parsed", attrs...)
}
