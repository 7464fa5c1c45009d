// Package sqlite implements the durable local checklist store on SQLite via
// GORM. One row per storage key holds the serialized index-to-checked
// mapping; the application uses a single fixed key.
package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mealmate/v2/internal/ports/outbound"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// checklistRecord is the GORM model for persisted checklist state
type checklistRecord struct {
	Key       string `gorm:"primaryKey;size:64"`
	State     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (checklistRecord) TableName() string { return "checklist_state" }

// Store is a SQLite-backed checklist store
type Store struct {
	db *gorm.DB
}

var _ outbound.ChecklistStore = (*Store)(nil)

// Open opens (creating if necessary) the database at path and migrates the
// schema. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open checklist database: %w", err)
	}
	if err := db.AutoMigrate(&checklistRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate checklist schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save upserts the whole mapping under key
func (s *Store) Save(ctx context.Context, key string, state map[int]bool) error {
	// JSON objects key by string; mirror the wire format the original
	// frontend kept in local storage.
	encoded := make(map[string]bool, len(state))
	for index, checked := range state {
		encoded[strconv.Itoa(index)] = checked
	}
	payload, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("failed to encode checklist state: %w", err)
	}

	record := checklistRecord{Key: key, State: string(payload), UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
		}).
		Create(&record).Error
}

// Load returns the mapping stored under key, or an empty mapping when the
// key has never been written
func (s *Store) Load(ctx context.Context, key string) (map[int]bool, error) {
	var record checklistRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return map[int]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist state: %w", err)
	}

	var encoded map[string]bool
	if err := json.Unmarshal([]byte(record.State), &encoded); err != nil {
		return nil, fmt.Errorf("failed to decode checklist state: %w", err)
	}
	state := make(map[int]bool, len(encoded))
	for k, checked := range encoded {
		index, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		state[index] = checked
	}
	return state, nil
}
