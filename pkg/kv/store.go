package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound reports an absent key.
var ErrNotFound = errors.New("kv: key not found")

// Entry is one durable key/value pair. Values are JSON documents; the engine
// stores whole collections under a handful of well-known keys.
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the table name stable regardless of GORM naming strategy.
func (Entry) TableName() string { return "kv_entries" }

// Store is a durable key-value store backed by the local database.
type Store struct {
	db *gorm.DB
}

// New binds a store to the provided GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the backing table when missing.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Entry{})
}

// PutJSON marshals value and upserts it under key.
func (s *Store) PutJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := Entry{Key: key, Value: raw}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// GetJSON unmarshals the value stored under key into dest.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) error {
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(entry.Value, dest)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}
