package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRecord represents a cached Forkable session for one account.
// ExpiresAt and CreatedAt are epoch milliseconds.
type SessionRecord struct {
	ID           *uuid.UUID `gorm:"type:uuid;primary_key;" json:"id,omitempty"`
	AccountID    string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"account_id"`
	SessionToken string     `gorm:"type:text;not null;" json:"session_token"`
	ExpiresAt    int64      `gorm:"not null;index" json:"expires_at"`
	CreatedAt    int64      `gorm:"autoCreateTime:false;not null" json:"created_at"`
}

// TableName func
func (s *SessionRecord) TableName() string {
	return "forkable_sessions"
}

// BeforeCreate hook - generates UUID before creating
func (s *SessionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID != nil {
		return nil
	}
	id, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	s.ID = &id
	return nil
}

// NewSessionRecord creates a session record stamped with now as its creation time
func NewSessionRecord(accountID, sessionToken string, expiresAt, now time.Time) *SessionRecord {
	return &SessionRecord{
		AccountID:    accountID,
		SessionToken: sessionToken,
		ExpiresAt:    expiresAt.UnixMilli(),
		CreatedAt:    now.UnixMilli(),
	}
}

// IsValidAt reports whether the record may still be used at now
func (s *SessionRecord) IsValidAt(now time.Time) bool {
	return now.UnixMilli() < s.ExpiresAt
}

// ExpiresTime returns ExpiresAt as a time.Time
func (s *SessionRecord) ExpiresTime() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return ErrStoreUnavailable
	}
	return db.AutoMigrate(&SessionRecord{})
}
