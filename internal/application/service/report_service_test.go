package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolfin/feeledger-api/internal/domain/enum"
)

func TestOverdue_ClipsAndRanks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")

	owesMore := env.createStudent(t, "O-001", "Sita")
	env.assignFee(t, owesMore.ID, tuition.ID, "5000")

	owesLess := env.createStudent(t, "O-002", "Tara")
	env.assignFee(t, owesLess.ID, tuition.ID, "1000")

	// Fully paid: must not appear.
	paid := env.createStudent(t, "O-003", "Uma")
	env.assignFee(t, paid.ID, tuition.ID, "2000")
	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: paid.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "2000"}},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	rows, err := env.reports.Overdue(ctx)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "O-001", rows[0].Student.AdmissionNo)
	requireAmount(t, "5000", rows[0].Balance)
	assert.Equal(t, "O-002", rows[1].Student.AdmissionNo)
	requireAmount(t, "1000", rows[1].Balance)
}

func TestOverdue_DiscontinuedOnlyWhenCollectible(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")

	gone := env.createStudent(t, "O-004", "Veena")
	env.assignFee(t, gone.ID, tuition.ID, "3000")
	_, err := env.students.Discontinue(ctx, gone.ID, time.Now(), false, "test")
	require.NoError(t, err)

	pursued := env.createStudent(t, "O-005", "Wafa")
	env.assignFee(t, pursued.ID, tuition.ID, "2000")
	_, err = env.students.Discontinue(ctx, pursued.ID, time.Now(), true, "test")
	require.NoError(t, err)

	rows, err := env.reports.Overdue(ctx)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "O-005", rows[0].Student.AdmissionNo)
}

func TestOverdue_OpeningBalanceAloneDoesNotList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// An opening balance with no fee assignments: the student owes nothing
	// through the ledger, so the overdue listing stays empty.
	_, err := env.students.CreateStudent(ctx, &CreateStudentInput{
		AdmissionNo:   "O-010",
		Name:          "Carried Forward",
		BalanceAmount: "5000",
		CreatedBy:     "test",
	})
	require.NoError(t, err)

	rows, err := env.reports.Overdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOverdueCSV(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")
	student := env.createStudent(t, "O-006", "Yamini")
	phone := "9900000042"
	_, err := env.students.UpdateStudent(ctx, student.ID, &UpdateStudentInput{Phone: &phone, UpdatedBy: "test"})
	require.NoError(t, err)
	env.assignFee(t, student.ID, tuition.ID, "1500")

	var buf bytes.Buffer
	require.NoError(t, env.reports.OverdueCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"AdmissionNo", "Name", "Class", "Section", "Phone", "Receivable"}, records[0])
	assert.Equal(t, []string{"O-006", "Yamini", "5", "A", "9900000042", "1500.00"}, records[1])
}

func TestDiscontinued_CollectibleFilterAndCSV(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")

	pursued := env.createStudent(t, "D-001", "Zara")
	env.assignFee(t, pursued.ID, tuition.ID, "2500")
	_, err := env.students.Discontinue(ctx, pursued.ID, mustDate(t, "2026-04-30"), true, "test")
	require.NoError(t, err)

	writtenOff := env.createStudent(t, "D-002", "Anil")
	env.assignFee(t, writtenOff.ID, tuition.ID, "800")
	_, err = env.students.Discontinue(ctx, writtenOff.ID, mustDate(t, "2026-04-30"), false, "test")
	require.NoError(t, err)

	all, err := env.reports.Discontinued(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	yes := true
	collectible, err := env.reports.Discontinued(ctx, &yes)
	require.NoError(t, err)
	require.Len(t, collectible, 1)
	assert.Equal(t, "D-001", collectible[0].Student.AdmissionNo)

	var buf bytes.Buffer
	require.NoError(t, env.reports.DiscontinuedCSV(ctx, &buf, &yes))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"AdmissionNo", "Name", "Class", "Section", "Phone", "Receivable"}, records[0])
	assert.Equal(t, []string{"D-001", "Zara", "5", "A", "", "2500.00"}, records[1])
}

func TestIncomeByFeeType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")
	transport := env.createFeeType(t, "Transport")
	student := env.createStudent(t, "O-007", "Zara")

	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines: []ReceiptLineInput{
			{FeeTypeID: tuition.ID, Amount: "1000"},
			{FeeTypeID: transport.ID, Amount: "400"},
		},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	require.NoError(t, err)
	_, err = env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "600"}},
		Mode:      enum.PaymentModeUPI,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	rows, err := env.reports.IncomeByFeeType(ctx, nil, nil)
	require.NoError(t, err)

	byName := make(map[string]string, len(rows))
	for _, row := range rows {
		byName[row.FeeType] = row.Amount.String()
	}
	assert.Equal(t, "1600", byName["Tuition"])
	assert.Equal(t, "400", byName["Transport"])
}

func TestGlobalSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")
	a := env.createStudent(t, "O-008", "Asha")
	b := env.createStudent(t, "O-009", "Bina")
	env.assignFee(t, a.ID, tuition.ID, "4000")
	env.assignFee(t, b.ID, tuition.ID, "3000")

	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: a.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "2500"}},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	summary, err := env.ledger.Summary(ctx)
	require.NoError(t, err)
	requireAmount(t, "7000", summary.Receivable)
	requireAmount(t, "2500", summary.Received)
	requireAmount(t, "4500", summary.Balance)
}

func TestCollectionOn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")
	student := env.createStudent(t, "O-010", "Chitra")

	for _, r := range []struct {
		mode   enum.PaymentMode
		amount string
	}{
		{enum.PaymentModeCash, "700"},
		{enum.PaymentModeUPIGPay, "1300"},
		{enum.PaymentModeCard, "500"},
	} {
		_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
			StudentID: student.ID,
			Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: r.amount}},
			Mode:      r.mode,
			CreatedBy: "test",
		})
		require.NoError(t, err)
	}

	collection, err := env.reports.CollectionOn(ctx, time.Now())
	require.NoError(t, err)
	requireAmount(t, "700", collection.Cash)
	requireAmount(t, "1300", collection.Digital)
	requireAmount(t, "2500", collection.Total)
}
