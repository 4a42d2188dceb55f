package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
)

// SettingsService handles system configuration and academic year management
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	yearRepo     repository.AcademicYearRepository
	numbering    *NumberingService
	auditService *AuditService
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	yearRepo repository.AcademicYearRepository,
	numbering *NumberingService,
	auditService *AuditService,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		yearRepo:     yearRepo,
		numbering:    numbering,
		auditService: auditService,
	}
}

// ReceiptSettings is the numbering configuration shown on the settings
// screen. NextNumber is a preview, not a hold.
type ReceiptSettings struct {
	Mode       enum.NumberingMode `json:"mode"`
	Prefix     string             `json:"prefix"`
	SchoolName string             `json:"school_name"`
	NextNumber string             `json:"next_number"`
}

// GetReceiptSettings reads the current numbering configuration.
func (s *SettingsService) GetReceiptSettings(ctx context.Context) (*ReceiptSettings, error) {
	mode, err := s.numbering.Mode(ctx)
	if err != nil {
		return nil, err
	}
	prefix, err := s.settingsRepo.Get(ctx, entity.SettingReceiptPrefix, "AY")
	if err != nil {
		return nil, err
	}
	schoolName, err := s.settingsRepo.Get(ctx, entity.SettingSchoolName, "")
	if err != nil {
		return nil, err
	}

	preview := ""
	if mode == enum.NumberingModeAuto {
		if preview, err = s.numbering.Preview(ctx); err != nil {
			return nil, err
		}
	}

	return &ReceiptSettings{
		Mode:       mode,
		Prefix:     prefix,
		SchoolName: schoolName,
		NextNumber: preview,
	}, nil
}

// UpdateReceiptSettingsInput represents the settings update. Nil fields are
// left unchanged.
type UpdateReceiptSettingsInput struct {
	Mode       *string
	Prefix     *string
	Seq        *int64
	SchoolName *string
	UpdatedBy  string
}

// UpdateReceiptSettings changes the numbering configuration. Already-issued
// receipts are never renumbered; a mode or prefix change applies only from
// the next receipt on.
func (s *SettingsService) UpdateReceiptSettings(ctx context.Context, input *UpdateReceiptSettingsInput) error {
	if input.Mode != nil {
		mode := enum.NumberingMode(strings.ToLower(strings.TrimSpace(*input.Mode)))
		if !mode.IsValid() {
			return apperror.NewBadRequestError("Numbering mode must be auto or manual")
		}
		if err := s.settingsRepo.Set(ctx, entity.SettingReceiptNumberMode, string(mode)); err != nil {
			return err
		}
	}
	if input.Prefix != nil {
		if err := s.settingsRepo.Set(ctx, entity.SettingReceiptPrefix, strings.TrimSpace(*input.Prefix)); err != nil {
			return err
		}
	}
	if input.Seq != nil {
		if *input.Seq < 1 {
			return apperror.NewBadRequestError("Sequence seed must be at least 1")
		}
		if err := s.settingsRepo.Set(ctx, entity.SettingReceiptSeq, strconv.FormatInt(*input.Seq, 10)); err != nil {
			return err
		}
	}
	if input.SchoolName != nil {
		if err := s.settingsRepo.Set(ctx, entity.SettingSchoolName, strings.TrimSpace(*input.SchoolName)); err != nil {
			return err
		}
	}

	s.auditService.Record(ctx, input.UpdatedBy, "settings.update", "settings", "receipt", nil, input, "")
	return nil
}

// GetSetting reads a raw setting value
func (s *SettingsService) GetSetting(ctx context.Context, key, def string) (string, error) {
	return s.settingsRepo.Get(ctx, key, def)
}

// ListYears retrieves all academic years
func (s *SettingsService) ListYears(ctx context.Context) ([]entity.AcademicYear, error) {
	return s.yearRepo.List(ctx)
}

// ActiveYear retrieves the active academic year, or nil when none is set
func (s *SettingsService) ActiveYear(ctx context.Context) (*entity.AcademicYear, error) {
	return s.yearRepo.GetActive(ctx)
}

// ActivateYear makes the named year the single active one, creating it if
// needed. Receipts issued afterwards draw numbers from the new year's
// counter; the old year's counter is left where it stopped.
func (s *SettingsService) ActivateYear(ctx context.Context, name string, startDate, endDate *time.Time, updatedBy string) (*entity.AcademicYear, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Year name is required")
	}

	year := &entity.AcademicYear{Name: name, StartDate: startDate, EndDate: endDate}
	if err := s.yearRepo.Activate(ctx, year); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, updatedBy, "year.activate", "academic_year", name, nil, year, "")
	return year, nil
}

// RolloverYear activates the successor of the active year, deriving its name
// from the active one ("2024-25" is followed by "2025-26"). The new year
// starts with a fresh receipt counter.
func (s *SettingsService) RolloverYear(ctx context.Context, updatedBy string) (*entity.AcademicYear, error) {
	active, err := s.yearRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, apperror.NewBadRequestError("No active academic year to roll over")
	}

	next, err := nextYearName(active.Name)
	if err != nil {
		return nil, err
	}
	return s.ActivateYear(ctx, next, nil, nil, updatedBy)
}

// nextYearName increments a year label. Supported shapes are "2024",
// "2024-25" and "2024-2025"; the second part keeps its digit count.
func nextYearName(name string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(name), "-", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", apperror.NewBadRequestError("Active year name cannot be rolled over")
	}
	if len(parts) == 1 {
		return strconv.Itoa(start + 1), nil
	}

	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", apperror.NewBadRequestError("Active year name cannot be rolled over")
	}
	width := len(parts[1])
	modulus := 1
	for i := 0; i < width; i++ {
		modulus *= 10
	}
	return fmt.Sprintf("%d-%0*d", start+1, width, (end+1)%modulus), nil
}
