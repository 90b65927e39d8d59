package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pickRecord is the picks table row. Append-only by contract: no update
// or delete path exists.
type pickRecord struct {
	Seq            uint      `gorm:"primaryKey;autoIncrement"`
	PickID         string    `gorm:"size:36;uniqueIndex"`
	Username       string    `gorm:"size:100;index"`
	Email          string    `gorm:"size:255"`
	Sport          string    `gorm:"size:10"`
	Challenge      string    `gorm:"size:100"`
	SelectedPlayer string    `gorm:"size:100"`
	CreatedAt      time.Time
}

func (pickRecord) TableName() string {
	return "picks"
}

// PostgresPickStore keeps the pick log in Postgres for deployments that
// want picks to survive restarts.
type PostgresPickStore struct {
	db *gorm.DB
}

// NewPostgresPickStore opens the connection and migrates the picks table.
func NewPostgresPickStore(databaseURL string, isDevelopment bool) (*PostgresPickStore, error) {
	logLevel := logger.Error
	if isDevelopment {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&pickRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate picks table: %w", err)
	}

	return &PostgresPickStore{db: db}, nil
}

func (s *PostgresPickStore) Append(ctx context.Context, pick Pick) error {
	record := pickRecord{
		PickID:         pick.ID,
		Username:       pick.Username,
		Email:          pick.Email,
		Sport:          pick.Sport,
		Challenge:      pick.Challenge,
		SelectedPlayer: pick.SelectedPlayer,
		CreatedAt:      pick.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to append pick: %w", err)
	}
	return nil
}

func (s *PostgresPickStore) List(ctx context.Context) ([]Pick, error) {
	var records []pickRecord
	if err := s.db.WithContext(ctx).Order("seq asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}

	picks := make([]Pick, 0, len(records))
	for _, record := range records {
		picks = append(picks, Pick{
			ID:             record.PickID,
			Username:       record.Username,
			Email:          record.Email,
			Sport:          record.Sport,
			Challenge:      record.Challenge,
			SelectedPlayer: record.SelectedPlayer,
			CreatedAt:      record.CreatedAt,
		})
	}
	return picks, nil
}

// Close releases the underlying connection pool.
func (s *PostgresPickStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
