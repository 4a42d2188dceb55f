package repository

import (
	"context"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
)

// AuditRepository defines the interface for the audit sink
type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, limit int) ([]entity.AuditLog, error)
}
