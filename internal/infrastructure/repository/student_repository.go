package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) domainRepo.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	err := r.db.WithContext(ctx).Create(student).Error
	if isUniqueViolation(err) {
		return apperror.ErrDuplicateStudent
	}
	return err
}

func (r *studentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).Preload("Fees.FeeType").First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}

func (r *studentRepository) GetByAdmissionNo(ctx context.Context, admissionNo string) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).First(&student, "admission_no = ?", admissionNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}

func (r *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	err := r.db.WithContext(ctx).Save(student).Error
	if isUniqueViolation(err) {
		return apperror.ErrDuplicateStudent
	}
	return err
}

func (r *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Fee assignments cascade with the student; receipts stay as financial
	// history.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.StudentFee{}, "student_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Student{}, "id = ?", id).Error
	})
}

func (r *studentRepository) List(ctx context.Context, params *domainRepo.StudentFilterParams) ([]entity.Student, error) {
	var students []entity.Student

	query := r.db.WithContext(ctx).Model(&entity.Student{})

	if params.Search != "" {
		// LOWER(...) LIKE is case-insensitive on both Postgres and the
		// sqlite test driver, unlike ILIKE.
		like := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(admission_no) LIKE ? OR LOWER(parent_name) LIKE ?",
			like, like, like,
		)
	}
	if params.ClassName != "" {
		query = query.Where("class_name = ?", params.ClassName)
	}
	if params.Section != "" {
		query = query.Where("section = ?", params.Section)
	}
	if params.OverdueScope {
		// Active students always; discontinued ones only when collectible.
		query = query.Where("discontinued IS NULL OR collectible = ?", true)
	}
	if params.Discontinued != nil {
		if *params.Discontinued {
			query = query.Where("discontinued IS NOT NULL")
		} else {
			query = query.Where("discontinued IS NULL")
		}
	}
	if params.Collectible != nil {
		query = query.Where("collectible = ?", *params.Collectible)
	}

	err := query.
		Order("class_name ASC, section ASC, name ASC").
		Find(&students).Error
	return students, err
}
