package storage

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"signal_go/internal/domain"
)

func setupTestArchive(t *testing.T) *Archive {
	a, err := NewArchive(filepath.Join(t.TempDir(), "commands.db"))
	if err != nil {
		t.Fatalf("failed to open test archive: %v", err)
	}
	return a
}

func TestArchive_SaveAndQuery(t *testing.T) {
	a := setupTestArchive(t)

	cmd := &domain.Command{
		ID:      "tg_280",
		OrderID: "order_msg280",
		Action:  domain.ActionOpen,
		Symbol:  "CADCHF-STD",
		Type:    domain.OrderTypeBuyLimit,
		Side:    domain.SideBuy,
		Entry:   decimal.RequireFromString("0.66930"),
	}
	if err := a.SaveCommand(cmd); err != nil {
		t.Fatalf("SaveCommand failed: %v", err)
	}

	update := &domain.Command{
		ID:      "tg_281",
		OrderID: "order_msg280",
		Action:  domain.ActionUpdate,
		Symbol:  "CADCHF-STD",
		Type:    domain.OrderTypeBuyLimit,
		Side:    domain.SideBuy,
		Entry:   decimal.RequireFromString("0.66800"),
	}
	if err := a.SaveCommand(update); err != nil {
		t.Fatalf("SaveCommand failed: %v", err)
	}

	rows, err := a.CommandsForOrder("order_msg280")
	if err != nil {
		t.Fatalf("CommandsForOrder failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].CmdID != "tg_280" || rows[1].CmdID != "tg_281" {
		t.Errorf("rows out of order: %s, %s", rows[0].CmdID, rows[1].CmdID)
	}
	if rows[0].Entry != "0.6693" {
		t.Errorf("expected entry 0.6693, got %s", rows[0].Entry)
	}
}

func TestArchive_RecentCommands(t *testing.T) {
	a := setupTestArchive(t)

	for _, id := range []string{"tg_1", "tg_2", "tg_3"} {
		if err := a.SaveCommand(&domain.Command{ID: id, Action: domain.ActionOpen}); err != nil {
			t.Fatalf("SaveCommand failed: %v", err)
		}
	}

	rows, err := a.RecentCommands(2)
	if err != nil {
		t.Fatalf("RecentCommands failed: %v", err)
	}
	if len(rows) != 2 || rows[0].CmdID != "tg_3" {
		t.Errorf("expected newest first, got %+v", rows)
	}
}
