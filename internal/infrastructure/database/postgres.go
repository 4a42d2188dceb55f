package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/schoolfin/feeledger-api/internal/config"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		// Accounts
		&entity.User{},

		// Configuration
		&entity.SystemSetting{},
		&entity.ReceiptSequence{},
		&entity.AcademicYear{},

		// Fee catalog
		&entity.FeeType{},
		&entity.Student{},
		&entity.StudentFee{},

		// Financial documents
		&entity.Receipt{},
		&entity.ReceiptItem{},
		&entity.Waiver{},
		&entity.Refund{},

		// Reconciliation
		&entity.CashCount{},
		&entity.PhonePeFeeRule{},
		&entity.SettlementBatch{},

		// System entities
		&entity.AuditLog{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDefaultData seeds numbering settings and default fee types on first
// boot. Existing rows are never overwritten; the setting store stays
// authoritative after that.
func SeedDefaultData(db *gorm.DB, cfg *config.ReceiptConfig) error {
	log.Info().Msg("seeding default data")

	defaults := map[string]string{
		entity.SettingReceiptNumberMode: cfg.NumberMode,
		entity.SettingReceiptPrefix:     cfg.Prefix,
		entity.SettingReceiptSeq:        cfg.Seq,
		entity.SettingSchoolName:        cfg.SchoolName,
	}
	for key, value := range defaults {
		var existing entity.SystemSetting
		if err := db.Where("key = ?", key).First(&existing).Error; err != nil {
			if err := db.Create(&entity.SystemSetting{Key: key, Value: value}).Error; err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to seed setting")
			}
		}
	}

	for _, name := range []string{"Tuition", "Transport", "Admission"} {
		var existing entity.FeeType
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&entity.FeeType{Name: name, IsActive: true}).Error; err != nil {
				log.Warn().Err(err).Str("name", name).Msg("failed to seed fee type")
			}
		}
	}

	return nil
}
