package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
)

// FeeTypeService handles fee type reference data
type FeeTypeService struct {
	feeTypeRepo repository.FeeTypeRepository
}

// NewFeeTypeService creates a new fee type service
func NewFeeTypeService(feeTypeRepo repository.FeeTypeRepository) *FeeTypeService {
	return &FeeTypeService{feeTypeRepo: feeTypeRepo}
}

// CreateFeeType adds a new charge category.
func (s *FeeTypeService) CreateFeeType(ctx context.Context, name string) (*entity.FeeType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Fee type name is required")
	}

	existing, err := s.feeTypeRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Fee type already exists")
	}

	feeType := &entity.FeeType{Name: name, IsActive: true}
	if err := s.feeTypeRepo.Create(ctx, feeType); err != nil {
		return nil, err
	}
	return feeType, nil
}

// SetActive toggles whether the fee type appears on new receipts. Existing
// receipt items keep their reference either way.
func (s *FeeTypeService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.FeeType, error) {
	feeType, err := s.feeTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if feeType == nil {
		return nil, apperror.NewNotFoundError("Fee type")
	}

	feeType.IsActive = active
	if err := s.feeTypeRepo.Update(ctx, feeType); err != nil {
		return nil, err
	}
	return feeType, nil
}

// ListFeeTypes retrieves fee types, optionally active only
func (s *FeeTypeService) ListFeeTypes(ctx context.Context, activeOnly bool) ([]entity.FeeType, error) {
	return s.feeTypeRepo.List(ctx, activeOnly)
}
