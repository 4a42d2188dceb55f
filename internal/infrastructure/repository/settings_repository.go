package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key, def string) (string, error) {
	var setting entity.SystemSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return setting.Value, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	var setting entity.SystemSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&entity.SystemSetting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	setting.Value = value
	return r.db.WithContext(ctx).Save(&setting).Error
}

// ReserveReceiptSeq advances the per-period counter and returns the reserved
// value. The increment is a single UPDATE so the row lock is held for the
// rest of the transaction; two concurrent reservations can never observe the
// same value. A period with no counter row yet is seeded from the global
// receipt_seq setting.
func (r *settingsRepository) ReserveReceiptSeq(ctx context.Context, yearKey string) (int64, error) {
	reserved, err := r.reserveSeq(ctx, yearKey)
	if isUniqueViolation(err) {
		// Two first reservations raced on creating the counter row; the
		// loser retries and takes the increment path.
		reserved, err = r.reserveSeq(ctx, yearKey)
	}
	return reserved, err
}

// PeekReceiptSeq returns the value the next reservation would hand out,
// without advancing anything.
func (r *settingsRepository) PeekReceiptSeq(ctx context.Context, yearKey string) (int64, error) {
	var seq entity.ReceiptSequence
	err := r.db.WithContext(ctx).Where("year_key = ?", yearKey).First(&seq).Error
	if err == nil {
		return seq.NextValue, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	raw, err := r.Get(ctx, entity.SettingReceiptSeq, "1")
	if err != nil {
		return 0, err
	}
	if n, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); perr == nil && n > 0 {
		return n, nil
	}
	return 1, nil
}

func (r *settingsRepository) reserveSeq(ctx context.Context, yearKey string) (int64, error) {
	var reserved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.ReceiptSequence{}).
			Where("year_key = ?", yearKey).
			UpdateColumn("next_value", gorm.Expr("next_value + 1"))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			var seq entity.ReceiptSequence
			if err := tx.Where("year_key = ?", yearKey).First(&seq).Error; err != nil {
				return err
			}
			reserved = seq.NextValue - 1
			return nil
		}

		// First reservation for this period: seed from the global counter.
		var seedSetting entity.SystemSetting
		seed := int64(1)
		err := tx.Where("key = ?", entity.SettingReceiptSeq).First(&seedSetting).Error
		if err == nil {
			if n, perr := strconv.ParseInt(strings.TrimSpace(seedSetting.Value), 10, 64); perr == nil && n > 0 {
				seed = n
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&entity.ReceiptSequence{YearKey: yearKey, NextValue: seed + 1}).Error; err != nil {
			return err
		}
		reserved = seed
		return nil
	})
	return reserved, err
}
