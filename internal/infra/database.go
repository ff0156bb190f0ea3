package infra

import (
	"fmt"

	"cicloharmony/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the full schema. The schema is small and owned entirely by
// this service, so AutoMigrate is sufficient — no external migration tool.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Shared with the integration test suite.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() defaults require pgcrypto on Postgres < 13.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.Registration{},
		&model.QrSetting{},
		&model.SystemSetting{},
		&model.Notification{},
		&model.PaymentPreference{},
		&model.AdminUser{},
		&model.ActionHistory{},
	)
}
