package repository

import (
	"context"
	"errors"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type academicYearRepository struct {
	db *gorm.DB
}

// NewAcademicYearRepository creates a new academic year repository
func NewAcademicYearRepository(db *gorm.DB) domainRepo.AcademicYearRepository {
	return &academicYearRepository{db: db}
}

func (r *academicYearRepository) GetActive(ctx context.Context) (*entity.AcademicYear, error) {
	var year entity.AcademicYear
	err := r.db.WithContext(ctx).First(&year, "is_active = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &year, err
}

func (r *academicYearRepository) GetByName(ctx context.Context, name string) (*entity.AcademicYear, error) {
	var year entity.AcademicYear
	err := r.db.WithContext(ctx).First(&year, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &year, err
}

func (r *academicYearRepository) List(ctx context.Context) ([]entity.AcademicYear, error) {
	var years []entity.AcademicYear
	err := r.db.WithContext(ctx).Order("name DESC").Find(&years).Error
	return years, err
}

// Activate makes the year the single active one. Clearing every other flag
// and setting the target happen in one transaction, so exactly one year is
// active afterwards.
func (r *academicYearRepository) Activate(ctx context.Context, year *entity.AcademicYear) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.AcademicYear
		err := tx.Where("name = ?", year.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(year).Error; err != nil {
				return err
			}
			existing = *year
		} else if err != nil {
			return err
		}

		if err := tx.Model(&entity.AcademicYear{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.AcademicYear{}).
			Where("id = ?", existing.ID).
			Update("is_active", true).Error; err != nil {
			return err
		}

		existing.IsActive = true
		*year = existing
		return nil
	})
}
