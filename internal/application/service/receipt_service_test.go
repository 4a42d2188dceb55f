package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
)

func TestCreateReceipt_AmountEqualsSumOfItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "A-001", "Asha")
	tuition := env.createFeeType(t, "Tuition")
	transport := env.createFeeType(t, "Transport")

	receipt, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines: []ReceiptLineInput{
			{FeeTypeID: tuition.ID, Amount: "1500"},
			{FeeTypeID: transport.ID, Amount: "500"},
		},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	requireAmount(t, "2000", receipt.Amount)
	require.Len(t, receipt.Items, 2)

	sum := receipt.Items[0].Amount.Add(receipt.Items[1].Amount)
	assert.True(t, receipt.Amount.Equal(sum))
}

func TestCreateReceipt_DropsBlankAndNonPositiveLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "A-002", "Bina")
	tuition := env.createFeeType(t, "Tuition")
	transport := env.createFeeType(t, "Transport")
	admission := env.createFeeType(t, "Admission")

	receipt, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines: []ReceiptLineInput{
			{FeeTypeID: tuition.ID, Amount: "1000"},
			{FeeTypeID: transport.ID, Amount: ""},
			{FeeTypeID: admission.ID, Amount: "0"},
		},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	require.Len(t, receipt.Items, 1)
	requireAmount(t, "1000", receipt.Amount)
}

func TestCreateReceipt_AllLinesBlankFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "A-003", "Chitra")
	tuition := env.createFeeType(t, "Tuition")

	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: ""}},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	assert.ErrorIs(t, err, apperror.ErrEmptyReceipt)
}

func TestCreateReceipt_ManualModeRequiresNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mode := "manual"
	require.NoError(t, env.settings.UpdateReceiptSettings(ctx, &UpdateReceiptSettingsInput{
		Mode:      &mode,
		UpdatedBy: "test",
	}))

	student := env.createStudent(t, "A-004", "Divya")
	tuition := env.createFeeType(t, "Tuition")

	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "100"}},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	assert.ErrorIs(t, err, apperror.ErrMissingReceiptNumber)

	receipt, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "100"}},
		Mode:      enum.PaymentModeCash,
		ManualNo:  "BOOK-17",
		CreatedBy: "test",
	})
	require.NoError(t, err)
	assert.Equal(t, "BOOK-17", receipt.ReceiptNo)

	// A repeated manual number is rejected, not silently renumbered.
	_, err = env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "200"}},
		Mode:      enum.PaymentModeCash,
		ManualNo:  "BOOK-17",
		CreatedBy: "test",
	})
	assert.ErrorIs(t, err, apperror.ErrDuplicateReceiptNumber)
}

func TestCreateReceipt_BalanceReflectsReceipt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "A-005", "Esha")
	tuition := env.createFeeType(t, "Tuition")
	env.assignFee(t, student.ID, tuition.ID, "5000")

	pos, err := env.ledger.BalanceForStudent(ctx, student.ID)
	require.NoError(t, err)
	requireAmount(t, "5000", pos.Balance)

	_, err = env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "2000"}},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	pos, err = env.ledger.BalanceForStudent(ctx, student.ID)
	require.NoError(t, err)
	requireAmount(t, "5000", pos.Receivable)
	requireAmount(t, "2000", pos.Received)
	requireAmount(t, "3000", pos.Balance)
}

func TestCreateReceipt_UnknownStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")
	ghost := env.createStudent(t, "A-006", "Farah")
	require.NoError(t, env.students.DeleteStudent(ctx, ghost.ID, "test"))

	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: ghost.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "100"}},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
