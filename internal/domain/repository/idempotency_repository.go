package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key storage
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
