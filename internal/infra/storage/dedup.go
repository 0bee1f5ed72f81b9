package storage

import (
	"log/slog"
	"sort"
	"strconv"
)

const (
	// dedupMaxEntries bounds the table; once exceeded, the oldest
	// dedupEvictBatch entries by timestamp are dropped.
	dedupMaxEntries = 20000
	dedupEvictBatch = 2000
)

// DedupStore persists the set of message ids already handled by the live
// listening path, so reconnects and restarts never reprocess a message.
type DedupStore struct {
	path    string
	entries map[string]int64 // message id -> processed unix seconds
}

type dedupDocument struct {
	ProcessedIDs map[string]int64 `json:"processed_ids"`
}

// OpenDedup loads the dedup document at path. A missing or unreadable file
// starts an empty table.
func OpenDedup(path string) (*DedupStore, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	s := &DedupStore{path: path, entries: make(map[string]int64)}
	var doc dedupDocument
	found, err := loadDocument(path, &doc)
	if err != nil {
		// Corrupt state file: start fresh rather than refusing to run.
		slog.Warn("dedup document unreadable, starting empty", slog.Any("error", err))
		return s, nil
	}
	if found && doc.ProcessedIDs != nil {
		s.entries = doc.ProcessedIDs
	}
	return s, nil
}

// IsProcessed reports whether the message id was already handled.
func (s *DedupStore) IsProcessed(msgID int64) bool {
	_, ok := s.entries[strconv.FormatInt(msgID, 10)]
	return ok
}

// MarkProcessed records the message id with its processed timestamp,
// evicts the oldest entries once the table outgrows its bound, and
// persists the full document.
func (s *DedupStore) MarkProcessed(msgID int64, ts int64) error {
	s.entries[strconv.FormatInt(msgID, 10)] = ts

	if len(s.entries) > dedupMaxEntries {
		s.evictOldest(dedupEvictBatch)
	}

	return saveDocument(s.path, dedupDocument{ProcessedIDs: s.entries})
}

// Len returns the number of tracked message ids.
func (s *DedupStore) Len() int {
	return len(s.entries)
}

func (s *DedupStore) evictOldest(n int) {
	type entry struct {
		id string
		ts int64
	}
	all := make([]entry, 0, len(s.entries))
	for id, ts := range s.entries {
		all = append(all, entry{id, ts})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].ts != all[j].ts {
			return all[i].ts < all[j].ts
		}
		return all[i].id < all[j].id
	})
	if n > len(all) {
		n = len(all)
	}
	for _, e := range all[:n] {
		delete(s.entries, e.id)
	}
}
