package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
)

// AuditService writes to the audit sink. Failures are logged and swallowed:
// an audit write must never roll back the financial transaction it records.
type AuditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Record persists one audit entry, fire-and-forget.
func (s *AuditService) Record(ctx context.Context, actor, action, entityKind, recordID string, before, after interface{}, reason string) {
	entry := &entity.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityKind: entityKind,
		RecordID:   recordID,
		Reason:     reason,
	}
	entry.BeforeJSON = marshalState(before)
	entry.AfterJSON = marshalState(after)

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).
			Str("action", action).
			Str("entity", entityKind).
			Str("record_id", recordID).
			Msg("audit write failed")
	}
}

// List returns recent audit entries
func (s *AuditService) List(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	return s.auditRepo.List(ctx, limit)
}

func marshalState(state interface{}) string {
	if state == nil {
		return ""
	}
	b, err := json.Marshal(state)
	if err != nil {
		return ""
	}
	return string(b)
}
