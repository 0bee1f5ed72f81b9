package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"signal_go/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Archive keeps a queryable sqlite history of every emitted command,
// alongside the flat CSV/JSONL logs the executor consumes.
type Archive struct {
	db *gorm.DB
}

// NewArchive opens (or creates) the command archive at dbPath.
func NewArchive(dbPath string) (*Archive, error) {
	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.ArchivedCommand{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Archive{db: db}, nil
}

// SaveCommand appends one emitted command to the archive.
func (a *Archive) SaveCommand(cmd *domain.Command) error {
	row := domain.ArchivedCommand{
		CmdID:    cmd.ID,
		OrderID:  cmd.OrderID,
		Action:   cmd.Action,
		Symbol:   cmd.Symbol,
		Type:     cmd.Type,
		Side:     cmd.Side,
		Entry:    cmd.Entry.String(),
		SL:       cmd.SL.String(),
		TP:       cmd.TP.String(),
		OldEntry: cmd.OldEntry.String(),
	}
	return a.db.Create(&row).Error
}

// CommandsForOrder retrieves all archived commands linked to an order,
// oldest first.
func (a *Archive) CommandsForOrder(orderID string) ([]domain.ArchivedCommand, error) {
	var rows []domain.ArchivedCommand
	err := a.db.Where("order_id = ?", orderID).Order("id asc").Find(&rows).Error
	return rows, err
}

// RecentCommands retrieves the newest n archived commands.
func (a *Archive) RecentCommands(n int) ([]domain.ArchivedCommand, error) {
	var rows []domain.ArchivedCommand
	err := a.db.Order("id desc").Limit(n).Find(&rows).Error
	return rows, err
}
