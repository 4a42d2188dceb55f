package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
)

// CashCountRepository defines the interface for cash reconciliation rows
type CashCountRepository interface {
	Create(ctx context.Context, count *entity.CashCount) error
	List(ctx context.Context, limit int) ([]entity.CashCount, error)
}

// SettlementRepository defines the interface for settlement batches
type SettlementRepository interface {
	Create(ctx context.Context, batch *entity.SettlementBatch) error
	List(ctx context.Context, limit int) ([]entity.SettlementBatch, error)
}

// FeeRuleRepository defines the interface for provider fee rules
type FeeRuleRepository interface {
	Create(ctx context.Context, rule *entity.PhonePeFeeRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PhonePeFeeRule, error)
	List(ctx context.Context) ([]entity.PhonePeFeeRule, error)
}
