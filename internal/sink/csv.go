// Package sink holds the output writers the execution agent consumes:
// a fixed-column CSV row log and a line-delimited JSON record log.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"signal_go/internal/domain"
)

var csvHeader = []string{
	"cmd_id", "order_id", "action", "symbol", "type", "side",
	"entry", "sl", "tp", "old_entry",
}

// CSVSink appends commands as fixed-column rows. The header is written
// once, when the file is first created.
type CSVSink struct {
	path string
}

// NewCSVSink creates a sink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Append writes one command row.
func (s *CSVSink) Append(cmd *domain.Command) error {
	_, statErr := os.Stat(s.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	row := []string{
		cmd.ID, cmd.OrderID, cmd.Action, cmd.Symbol, cmd.Type, cmd.Side,
		FormatPrice(cmd.Entry),
		FormatPrice(cmd.SL),
		FormatPrice(cmd.TP),
		FormatPrice(cmd.OldEntry),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// FormatPrice renders a price with five decimal digits, or the literal "0"
// for the zero sentinel.
func FormatPrice(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.StringFixed(5)
}
