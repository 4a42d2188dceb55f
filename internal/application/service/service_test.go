package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/infrastructure/database"
	infraRepo "github.com/schoolfin/feeledger-api/internal/infrastructure/repository"
)

// testEnv wires the full service stack over an in-memory database. A single
// connection keeps the memory database alive and serializes access the way a
// single cashier workstation would.
type testEnv struct {
	db *gorm.DB

	students  *StudentService
	feeTypes  *FeeTypeService
	receipts  *ReceiptService
	waivers   *WaiverService
	refunds   *RefundService
	recon     *ReconService
	ledger    *LedgerService
	reports   *ReportService
	settings  *SettingsService
	numbering *NumberingService
	audit     *AuditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	settingsRepo := infraRepo.NewSettingsRepository(db)
	yearRepo := infraRepo.NewAcademicYearRepository(db)
	studentRepo := infraRepo.NewStudentRepository(db)
	feeTypeRepo := infraRepo.NewFeeTypeRepository(db)
	studentFeeRepo := infraRepo.NewStudentFeeRepository(db)
	receiptRepo := infraRepo.NewReceiptRepository(db)
	waiverRepo := infraRepo.NewWaiverRepository(db)
	refundRepo := infraRepo.NewRefundRepository(db)
	cashCountRepo := infraRepo.NewCashCountRepository(db)
	settlementRepo := infraRepo.NewSettlementRepository(db)
	feeRuleRepo := infraRepo.NewFeeRuleRepository(db)
	ledgerRepo := infraRepo.NewLedgerRepository(db)
	auditRepo := infraRepo.NewAuditRepository(db)

	audit := NewAuditService(auditRepo)
	numbering := NewNumberingService(settingsRepo, yearRepo)
	ledger := NewLedgerService(ledgerRepo, studentRepo)

	return &testEnv{
		db:        db,
		students:  NewStudentService(studentRepo, feeTypeRepo, studentFeeRepo, audit),
		feeTypes:  NewFeeTypeService(feeTypeRepo),
		receipts:  NewReceiptService(receiptRepo, studentRepo, feeTypeRepo, numbering, audit),
		waivers:   NewWaiverService(waiverRepo, studentRepo, feeTypeRepo, studentFeeRepo, audit),
		refunds:   NewRefundService(refundRepo, studentRepo, audit),
		recon:     NewReconService(cashCountRepo, settlementRepo, feeRuleRepo, receiptRepo, audit),
		ledger:    ledger,
		reports:   NewReportService(ledger, studentRepo, receiptRepo),
		settings:  NewSettingsService(settingsRepo, yearRepo, numbering, audit),
		numbering: numbering,
		audit:     audit,
	}
}

func (e *testEnv) createStudent(t *testing.T, admissionNo, name string) *entity.Student {
	t.Helper()
	student, err := e.students.CreateStudent(context.Background(), &CreateStudentInput{
		AdmissionNo: admissionNo,
		Name:        name,
		ClassName:   "5",
		Section:     "A",
		CreatedBy:   "test",
	})
	require.NoError(t, err)
	return student
}

func (e *testEnv) createFeeType(t *testing.T, name string) *entity.FeeType {
	t.Helper()
	feeType, err := e.feeTypes.CreateFeeType(context.Background(), name)
	require.NoError(t, err)
	return feeType
}

func (e *testEnv) assignFee(t *testing.T, studentID, feeTypeID uuid.UUID, amount string) {
	t.Helper()
	_, err := e.students.AssignFee(context.Background(), studentID, feeTypeID, amount, "test")
	require.NoError(t, err)
}

func (e *testEnv) setCredit(t *testing.T, studentID uuid.UUID, amount string) {
	t.Helper()
	_, err := e.students.SetCreditBalance(context.Background(), studentID, amount, "test", "test setup")
	require.NoError(t, err)
}

func (e *testEnv) reloadStudent(t *testing.T, id uuid.UUID) *entity.Student {
	t.Helper()
	student, err := e.students.GetStudent(context.Background(), id)
	require.NoError(t, err)
	return student
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func mustStudentID(t *testing.T, env *testEnv, admissionNo string) uuid.UUID {
	t.Helper()
	var student entity.Student
	require.NoError(t, env.db.First(&student, "admission_no = ?", admissionNo).Error)
	return student.ID
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual)
}
