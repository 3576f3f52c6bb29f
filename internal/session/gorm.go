package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SessionPath is the row holding one session's current path
type SessionPath struct {
	SessionID string `gorm:"primaryKey;type:varchar(64)"`
	Path      string `gorm:"type:text;not null"`
	// ExpiresAt is a unix timestamp in nanoseconds, 0 for never
	ExpiresAt int64 `gorm:"index;not null;default:0"`
	UpdatedAt time.Time
}

// TableName overrides the table name used by GORM
func (SessionPath) TableName() string {
	return "navshell_session_paths"
}

// GormStore keeps session paths in a SQL database through GORM
type GormStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewGormStore connects to a PostgreSQL database with connection pooling
// and migrates the session table
func NewGormStore(dsn string, ttl time.Duration) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Get underlying sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store, err := NewGormStoreWithDB(db, ttl)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// NewGormStoreWithDB wraps an open database and migrates the session
// table. A zero ttl keeps rows forever.
func NewGormStoreWithDB(db *gorm.DB, ttl time.Duration) (*GormStore, error) {
	if err := db.AutoMigrate(&SessionPath{}); err != nil {
		return nil, fmt.Errorf("migrate session table: %w", err)
	}
	return &GormStore{db: db, ttl: ttl, now: time.Now}, nil
}

// CurrentPath returns the stored path for a session
func (s *GormStore) CurrentPath(ctx context.Context, sessionID string) (string, bool, error) {
	var row SessionPath
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND (expires_at = 0 OR expires_at > ?)", sessionID, s.now().UnixNano()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get current path: %w", err)
	}
	return row.Path, true, nil
}

// SetCurrentPath upserts the session's path and renews its expiry
func (s *GormStore) SetCurrentPath(ctx context.Context, sessionID, path string) error {
	row := SessionPath{SessionID: sessionID, Path: path}
	if s.ttl > 0 {
		row.ExpiresAt = s.now().Add(s.ttl).UnixNano()
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"path", "expires_at", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("set current path: %w", err)
	}
	return nil
}

// Sweep deletes expired rows and returns how many were removed
func (s *GormStore) Sweep(ctx context.Context) (int, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <> 0 AND expires_at <= ?", s.now().UnixNano()).
		Delete(&SessionPath{})
	if result.Error != nil {
		return 0, fmt.Errorf("sweep sessions: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// Close closes the database connection pool
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
