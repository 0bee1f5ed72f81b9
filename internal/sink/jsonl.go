package sink

import (
	"encoding/json"
	"fmt"
	"os"

	"signal_go/internal/domain"
)

// JSONLSink appends commands as line-delimited JSON records carrying the
// full command field set.
type JSONLSink struct {
	path string
}

// NewJSONLSink creates a sink writing to path.
func NewJSONLSink(path string) *JSONLSink {
	return &JSONLSink{path: path}
}

// Append writes one command record.
func (s *JSONLSink) Append(cmd *domain.Command) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to encode command %s: %w", cmd.ID, err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}
