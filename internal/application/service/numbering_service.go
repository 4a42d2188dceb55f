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
)

// NumberingService implements the receipt-number issuance protocol. In auto
// mode it reserves counter values from the per-year atomic sequence; a
// reserved number is consumed forever, even when the receipt it was reserved
// for never commits.
type NumberingService struct {
	settingsRepo repository.SettingsRepository
	yearRepo     repository.AcademicYearRepository
}

// NewNumberingService creates a new numbering service
func NewNumberingService(
	settingsRepo repository.SettingsRepository,
	yearRepo repository.AcademicYearRepository,
) *NumberingService {
	return &NumberingService{
		settingsRepo: settingsRepo,
		yearRepo:     yearRepo,
	}
}

// Mode returns the configured numbering mode, defaulting to auto.
func (s *NumberingService) Mode(ctx context.Context) (enum.NumberingMode, error) {
	raw, err := s.settingsRepo.Get(ctx, entity.SettingReceiptNumberMode, string(enum.NumberingModeAuto))
	if err != nil {
		return "", err
	}
	mode := enum.NumberingMode(raw)
	if !mode.IsValid() {
		mode = enum.NumberingModeAuto
	}
	return mode, nil
}

// Next reserves and formats the next receipt number for the active period.
// Two concurrent calls never return the same number.
func (s *NumberingService) Next(ctx context.Context) (string, error) {
	prefix, yearKey, err := s.resolvePrefix(ctx)
	if err != nil {
		return "", err
	}

	n, err := s.settingsRepo.ReserveReceiptSeq(ctx, yearKey)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-R-%04d", prefix, n), nil
}

// Preview returns the number the next auto-mode receipt would carry without
// consuming it. Shown on the settings screen; the previewed number is not a
// reservation and may be taken by a concurrent receipt.
func (s *NumberingService) Preview(ctx context.Context) (string, error) {
	prefix, yearKey, err := s.resolvePrefix(ctx)
	if err != nil {
		return "", err
	}

	next, err := s.settingsRepo.PeekReceiptSeq(ctx, yearKey)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-R-%04d", prefix, next), nil
}

// resolvePrefix builds the formatted prefix and the counter period key.
// The literal "AY" in the prefix template is replaced by the active year's
// name with separators stripped; when no year is active the calendar year
// stands in for both.
func (s *NumberingService) resolvePrefix(ctx context.Context) (prefix, yearKey string, err error) {
	template, err := s.settingsRepo.Get(ctx, entity.SettingReceiptPrefix, "AY")
	if err != nil {
		return "", "", err
	}

	yearName := strconv.Itoa(time.Now().Year())
	if year, yerr := s.yearRepo.GetActive(ctx); yerr == nil && year != nil {
		yearName = year.Name
	}

	compact := strings.NewReplacer("-", "", "/", "").Replace(yearName)
	return strings.ReplaceAll(template, "AY", compact), yearName, nil
}
