package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slotRow is a named session slot in the local database.
type slotRow struct {
	Name string `gorm:"primarykey"`
	Data string `gorm:"not null;default:''"`
}

func (slotRow) TableName() string { return "session_slots" }

type sqliteSlot struct {
	db   *gorm.DB
	name string
	path string
}

// NewSQLiteStore returns a Store backed by <dir>/stockdesk.db.
func NewSQLiteStore(dir, name string) (Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dir, "stockdesk.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL")

	if err := db.AutoMigrate(&slotRow{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return newSlotStore(&sqliteSlot{db: db, name: name, path: dbPath}), nil
}

func (s *sqliteSlot) read() ([]byte, error) {
	var row slotRow
	err := s.db.First(&row, "name = ?", s.name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Data), nil
}

func (s *sqliteSlot) write(data []byte) error {
	return s.db.Save(&slotRow{Name: s.name, Data: string(data)}).Error
}

func (s *sqliteSlot) remove() error {
	return s.db.Delete(&slotRow{}, "name = ?", s.name).Error
}

func (s *sqliteSlot) close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *sqliteSlot) describe() string { return s.path + "#" + s.name }
