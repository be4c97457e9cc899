package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ output.SessionStore = (*SessionStore)(nil)

// SessionStore struct - Secondary/Driven adapter for PostgreSQL
type SessionStore struct {
	dbGorm *gorm.DB
}

// NewSessionStore func - Creates new PostgreSQL session store and migrates its table
func NewSessionStore(dbGorm *gorm.DB) (*SessionStore, error) {
	logrus.Info("Migrate database ...")
	if err := domain.MigrateDatabase(dbGorm); err != nil {
		return nil, fmt.Errorf("failed to migrate session table: %w", err)
	}
	return &SessionStore{
		dbGorm: dbGorm,
	}, nil
}

// GetSession returns the account's record if it has not expired as of now
func (p *SessionStore) GetSession(ctx context.Context, accountID string, now time.Time) (*domain.SessionRecord, error) {
	var record domain.SessionRecord
	err := p.dbGorm.WithContext(ctx).
		Where("account_id = ? AND expires_at > ?", accountID, now.UnixMilli()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logrus.Errorln(err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &record, nil
}

// ReplaceSession deletes the account's previous record and inserts the new one in one transaction
func (p *SessionStore) ReplaceSession(ctx context.Context, record *domain.SessionRecord) error {
	row := *record
	row.ID = nil
	err := p.dbGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", row.AccountID).Delete(&domain.SessionRecord{}).Error; err != nil {
			return err
		}
		// A concurrent writer may have inserted between our delete and insert; last write wins.
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "session_token", "expires_at", "created_at"}),
		}).Create(&row).Error
	})
	if err != nil {
		logrus.Errorln(err)
		return fmt.Errorf("failed to replace session: %w", err)
	}
	return nil
}

// Ping checks the database connection
func (p *SessionStore) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
