package repository

import (
	"context"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) domainRepo.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditRepository) List(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	if limit <= 0 {
		limit = 200
	}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
