package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"signal_go/internal/engine"
	"signal_go/internal/infra"
	"signal_go/internal/infra/storage"
	"signal_go/internal/linkage"
	"signal_go/internal/parser"
	"signal_go/internal/sink"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config    *infra.Config
	Dedup     *storage.DedupStore
	Ledger    *storage.Ledger
	Archive   *storage.Archive
	Processor *engine.Processor
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization: config, logger, output
// directory, persisted stores, sinks and the processing pipeline.
// A configuration error here must terminate the process.
func (b *Bootstrap) Initialize(configPath string) error {
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	dedup, err := storage.OpenDedup(filepath.Join(cfg.Output.Dir, "state.json"))
	if err != nil {
		return err
	}
	b.Dedup = dedup

	ledger, err := storage.OpenLedger(filepath.Join(cfg.Output.Dir, "message_order_db.json"))
	if err != nil {
		return err
	}
	b.Ledger = ledger

	archive, err := storage.NewArchive(filepath.Join(cfg.Output.Dir, "commands.db"))
	if err != nil {
		return err
	}
	b.Archive = archive
	slog.Info("stores initialized", slog.String("dir", cfg.Output.Dir))

	liveSinks := []engine.Sink{
		sink.NewCSVSink(filepath.Join(cfg.Output.Dir, "copytrade_commands.csv")),
		sink.NewJSONLSink(filepath.Join(cfg.Output.Dir, "copytrade_commands.jsonl")),
	}

	b.Processor = engine.NewProcessor(
		parser.NewParser(cfg.Parser.SymbolSuffix),
		dedup,
		linkage.NewResolver(ledger),
		liveSinks,
		archive,
	)

	return nil
}

// BatchSinks builds the per-message output sinks used in batch mode, so a
// replayed id gets its own command files.
func (b *Bootstrap) BatchSinks(msgID int64) []engine.Sink {
	return []engine.Sink{
		sink.NewCSVSink(filepath.Join(b.Config.Output.Dir, fmt.Sprintf("copytrade_commands_msg%d.csv", msgID))),
		sink.NewJSONLSink(filepath.Join(b.Config.Output.Dir, fmt.Sprintf("copytrade_commands_msg%d.jsonl", msgID))),
	}
}
