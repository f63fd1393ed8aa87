package session

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// tokenKey is the fixed key the auth token is stored under.
const tokenKey = "auth_token"

// Store holds the session token across application restarts.
type Store interface {
	// Save persists the token, overwriting any prior value.
	Save(token string) error
	// Read returns the stored token, or "" if none exists.
	Read() (string, error)
	// Clear removes the stored token.
	Clear() error
}

// Credential is a single keyed value in the local session database.
// Only the auth token row exists today.
type Credential struct {
	ID        uint   `gorm:"primarykey"`
	Key       string `gorm:"uniqueIndex;not null"`
	Token     string `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLStore is a Store backed by a local sqlite database.
type SQLStore struct {
	db *gorm.DB
}

var _ Store = (*SQLStore)(nil)

// Open connects to the session database and migrates the schema.
func Open(dsn string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	if err := db.AutoMigrate(&Credential{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session schema: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// NewSQLStore wraps an existing database connection. The schema must already
// be migrated.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Save(token string) error {
	var cred Credential
	err := s.db.Where("key = ?", tokenKey).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.Create(&Credential{Key: tokenKey, Token: token}).Error; err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	if err := s.db.Model(&cred).Update("token", token).Error; err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *SQLStore) Read() (string, error) {
	var cred Credential
	err := s.db.Where("key = ?", tokenKey).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return cred.Token, nil
}

func (s *SQLStore) Clear() error {
	if err := s.db.Where("key = ?", tokenKey).Delete(&Credential{}).Error; err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
