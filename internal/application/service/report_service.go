package service

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/money"
)

// ReportService produces the read-only listings and their CSV exports.
// Reports recompute from the ledger on every call.
type ReportService struct {
	ledgerService *LedgerService
	studentRepo   repository.StudentRepository
	receiptRepo   repository.ReceiptRepository
}

// NewReportService creates a new report service
func NewReportService(
	ledgerService *LedgerService,
	studentRepo repository.StudentRepository,
	receiptRepo repository.ReceiptRepository,
) *ReportService {
	return &ReportService{
		ledgerService: ledgerService,
		studentRepo:   studentRepo,
		receiptRepo:   receiptRepo,
	}
}

// Overdue lists students owing a positive amount, worst first.
func (s *ReportService) Overdue(ctx context.Context) ([]OverdueRow, error) {
	return s.ledgerService.Overdue(ctx)
}

// OverdueCSV writes the overdue listing as CSV.
func (s *ReportService) OverdueCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.ledgerService.Overdue(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"AdmissionNo", "Name", "Class", "Section", "Phone", "Receivable"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Student.AdmissionNo,
			row.Student.Name,
			row.Student.ClassName,
			row.Student.Section,
			row.Student.Phone,
			money.Format(row.Balance),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DiscontinuedRow is one line of the discontinued-students report
type DiscontinuedRow struct {
	Student entity.Student `json:"student"`
	Balance money.Money    `json:"balance"`
}

// Discontinued lists students who have left, with their remaining balance.
// A non-nil collectible narrows to those still being pursued (true) or
// written off (false).
func (s *ReportService) Discontinued(ctx context.Context, collectible *bool) ([]DiscontinuedRow, error) {
	yes := true
	params := &repository.StudentFilterParams{Discontinued: &yes, Collectible: collectible}
	students, err := s.studentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	rows := make([]DiscontinuedRow, 0, len(students))
	for i := range students {
		pos, err := s.ledgerService.BalanceForStudent(ctx, students[i].ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, DiscontinuedRow{Student: students[i], Balance: pos.Balance})
	}
	return rows, nil
}

// DiscontinuedCSV writes the discontinued listing as CSV. Same columns as
// the overdue export.
func (s *ReportService) DiscontinuedCSV(ctx context.Context, w io.Writer, collectible *bool) error {
	rows, err := s.Discontinued(ctx, collectible)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"AdmissionNo", "Name", "Class", "Section", "Phone", "Receivable"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Student.AdmissionNo,
			row.Student.Name,
			row.Student.ClassName,
			row.Student.Section,
			row.Student.Phone,
			money.Format(row.Balance),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// IncomeByFeeType sums receipt income per fee type within an optional window.
func (s *ReportService) IncomeByFeeType(ctx context.Context, from, to *time.Time) ([]repository.FeeTypeIncome, error) {
	return s.ledgerService.IncomeByFeeType(ctx, from, to)
}

// IncomeByFeeTypeCSV writes the income report as CSV.
func (s *ReportService) IncomeByFeeTypeCSV(ctx context.Context, w io.Writer, from, to *time.Time) error {
	rows, err := s.ledgerService.IncomeByFeeType(ctx, from, to)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"FeeType", "Amount"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.FeeType, money.Format(row.Amount)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DailyCollection is the day's receipts broken down by payment mode
type DailyCollection struct {
	Date    time.Time                        `json:"date"`
	ByMode  map[enum.PaymentMode]money.Money `json:"by_mode"`
	Cash    money.Money                      `json:"cash"`
	Digital money.Money                      `json:"digital"`
	Total   money.Money                      `json:"total"`
}

// CollectionOn sums the date's receipts per payment mode. The cash figure
// feeds the cash-count screen; the digital figure feeds settlement.
func (s *ReportService) CollectionOn(ctx context.Context, date time.Time) (*DailyCollection, error) {
	modes := []enum.PaymentMode{
		enum.PaymentModeCash,
		enum.PaymentModeUPI,
		enum.PaymentModeUPIPhonePe,
		enum.PaymentModeUPIGPay,
		enum.PaymentModeUPIPaytm,
		enum.PaymentModeUPIOther,
		enum.PaymentModeCard,
		enum.PaymentModeBank,
	}

	out := &DailyCollection{
		Date:    date,
		ByMode:  make(map[enum.PaymentMode]money.Money, len(modes)),
		Cash:    money.Zero(),
		Digital: money.Zero(),
		Total:   money.Zero(),
	}

	digital := make(map[enum.PaymentMode]bool)
	for _, m := range enum.DigitalModes() {
		digital[m] = true
	}

	for _, mode := range modes {
		total, err := s.receiptRepo.TotalByModeOn(ctx, mode, date)
		if err != nil {
			return nil, err
		}
		out.ByMode[mode] = total
		out.Total = out.Total.Add(total)
		if mode == enum.PaymentModeCash {
			out.Cash = out.Cash.Add(total)
		}
		if digital[mode] {
			out.Digital = out.Digital.Add(total)
		}
	}
	return out, nil
}
