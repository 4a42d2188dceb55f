package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
)

func TestCreateRefund_ExactCreditSucceeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "R-001", "Kavita")
	env.setCredit(t, student.ID, "800")

	refund, err := env.refunds.CreateRefund(ctx, &CreateRefundInput{
		StudentID: student.ID,
		Amount:    "800",
		Mode:      enum.PaymentModeCash,
		Reason:    "left mid-term",
		CreatedBy: "test",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(refund.RefundNo, "RFND-"))
	requireAmount(t, "800", refund.Amount)

	requireAmount(t, "0", env.reloadStudent(t, student.ID).CreditBalance)
}

func TestCreateRefund_OverCreditFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "R-002", "Lata")
	env.setCredit(t, student.ID, "800")

	_, err := env.refunds.CreateRefund(ctx, &CreateRefundInput{
		StudentID: student.ID,
		Amount:    "800.01",
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	assert.ErrorIs(t, err, apperror.ErrInsufficientCredit)

	// Nothing persisted, nothing decremented.
	refunds, err := env.refunds.ListRefunds(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, refunds)
	requireAmount(t, "800", env.reloadStudent(t, student.ID).CreditBalance)
}

func TestCreateRefund_PartialLeavesRemainder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "R-003", "Meena")
	env.setCredit(t, student.ID, "1000")

	_, err := env.refunds.CreateRefund(ctx, &CreateRefundInput{
		StudentID: student.ID,
		Amount:    "400",
		Mode:      enum.PaymentModeUPI,
		CreatedBy: "test",
	})
	require.NoError(t, err)
	requireAmount(t, "600", env.reloadStudent(t, student.ID).CreditBalance)

	// A second refund against the remainder still works.
	_, err = env.refunds.CreateRefund(ctx, &CreateRefundInput{
		StudentID: student.ID,
		Amount:    "600",
		Mode:      enum.PaymentModeUPI,
		CreatedBy: "test",
	})
	require.NoError(t, err)
	requireAmount(t, "0", env.reloadStudent(t, student.ID).CreditBalance)
}

func TestCreateRefund_RejectsNonPositiveAmounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "R-004", "Nisha")
	env.setCredit(t, student.ID, "100")

	for _, amount := range []string{"0", "-5", "abc"} {
		_, err := env.refunds.CreateRefund(ctx, &CreateRefundInput{
			StudentID: student.ID,
			Amount:    amount,
			Mode:      enum.PaymentModeCash,
			CreatedBy: "test",
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidAmount, "amount %q", amount)
	}
}
