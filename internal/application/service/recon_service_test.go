package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/schoolfin/feeledger-api/internal/domain/enum"
)

func TestSubmitCashCount_Variance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "C-001", "Omana")
	tuition := env.createFeeType(t, "Tuition")

	// Two cash receipts today: 500 + 300. A UPI receipt must not count.
	for _, amount := range []string{"500", "300"} {
		_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
			StudentID: student.ID,
			Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: amount}},
			Mode:      enum.PaymentModeCash,
			CreatedBy: "test",
		})
		require.NoError(t, err)
	}
	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "950"}},
		Mode:      enum.PaymentModeUPI,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	count, err := env.recon.SubmitCashCount(ctx, &SubmitCashCountInput{
		Date:          time.Now(),
		AmountCounted: "750",
		CreatedBy:     "test",
	})
	require.NoError(t, err)

	requireAmount(t, "800", count.Expected)
	requireAmount(t, "750", count.AmountCounted)
	requireAmount(t, "-50", count.Variance)
}

func TestSubmitCashCount_RepeatAppendsRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, counted := range []string{"100", "120"} {
		_, err := env.recon.SubmitCashCount(ctx, &SubmitCashCountInput{
			Date:          time.Now(),
			AmountCounted: counted,
			CreatedBy:     "test",
		})
		require.NoError(t, err)
	}

	counts, err := env.recon.ListCashCounts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, counts, 2)
}

func TestSubmitSettlement_FeeRuleAndVariance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "C-002", "Priya")
	tuition := env.createFeeType(t, "Tuition")

	// Digital receipts summing to 10000 across UPI sub-modes.
	for _, r := range []struct {
		mode   enum.PaymentMode
		amount string
	}{
		{enum.PaymentModeUPIPhonePe, "6000"},
		{enum.PaymentModeUPIGPay, "3000"},
		{enum.PaymentModeUPI, "1000"},
	} {
		_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
			StudentID: student.ID,
			Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: r.amount}},
			Mode:      r.mode,
			CreatedBy: "test",
		})
		require.NoError(t, err)
	}
	// Cash stays out of settlement.
	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "500"}},
		Mode:      enum.PaymentModeCash,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	rule, err := env.recon.CreateFeeRule(ctx, &CreateFeeRuleInput{
		Name:    "PhonePe standard",
		Percent: "2",
		Flat:    "5",
	})
	require.NoError(t, err)

	start := time.Now().AddDate(0, 0, -1)
	batch, err := env.recon.SubmitSettlement(ctx, &SubmitSettlementInput{
		Provider:     "PhonePe",
		StartDate:    start,
		DaysGrouping: 2,
		RuleID:       &rule.ID,
		BankNet:      "9790",
		CreatedBy:    "test",
	})
	require.NoError(t, err)

	requireAmount(t, "10000", batch.Gross)
	requireAmount(t, "205", batch.Charges)
	requireAmount(t, "9795", batch.ExpectedNet)
	requireAmount(t, "9790", batch.BankNet)
	requireAmount(t, "-5", batch.Variance)
}

func TestSubmitSettlement_OverrideBeatsRule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "C-004", "Saira")
	tuition := env.createFeeType(t, "Tuition")
	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "10000"}},
		Mode:      enum.PaymentModeUPIPhonePe,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	// A stored rule that must be ignored once an override is supplied.
	rule, err := env.recon.CreateFeeRule(ctx, &CreateFeeRuleInput{
		Name:    "PhonePe standard",
		Percent: "1.5",
		Flat:    "100",
	})
	require.NoError(t, err)

	batch, err := env.recon.SubmitSettlement(ctx, &SubmitSettlementInput{
		Provider:        "PhonePe",
		StartDate:       time.Now().AddDate(0, 0, -1),
		DaysGrouping:    2,
		RuleID:          &rule.ID,
		OverridePercent: "2",
		OverrideFlat:    "5",
		BankNet:         "9790",
		CreatedBy:       "test",
	})
	require.NoError(t, err)

	requireAmount(t, "10000", batch.Gross)
	requireAmount(t, "205", batch.Charges)
	requireAmount(t, "9795", batch.ExpectedNet)
	requireAmount(t, "-5", batch.Variance)

	// A flat-only override still suppresses the rule's percent component.
	flatOnly, err := env.recon.SubmitSettlement(ctx, &SubmitSettlementInput{
		Provider:     "PhonePe",
		StartDate:    time.Now().AddDate(0, 0, -1),
		DaysGrouping: 2,
		RuleID:       &rule.ID,
		OverrideFlat: "50",
		BankNet:      "9950",
		CreatedBy:    "test",
	})
	require.NoError(t, err)

	requireAmount(t, "50", flatOnly.Charges)
	requireAmount(t, "9950", flatOnly.ExpectedNet)
	requireAmount(t, "0", flatOnly.Variance)
}

func TestSubmitSettlement_NoRuleMeansNoCharges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "C-003", "Rani")
	tuition := env.createFeeType(t, "Tuition")
	_, err := env.receipts.CreateReceipt(ctx, &CreateReceiptInput{
		StudentID: student.ID,
		Lines:     []ReceiptLineInput{{FeeTypeID: tuition.ID, Amount: "2000"}},
		Mode:      enum.PaymentModeUPI,
		CreatedBy: "test",
	})
	require.NoError(t, err)

	batch, err := env.recon.SubmitSettlement(ctx, &SubmitSettlementInput{
		StartDate:    time.Now(),
		DaysGrouping: 1,
		BankNet:      "2000",
		CreatedBy:    "test",
	})
	require.NoError(t, err)

	requireAmount(t, "2000", batch.Gross)
	requireAmount(t, "0", batch.Charges)
	requireAmount(t, "0", batch.Variance)
}

func TestSubmitSettlement_WindowFollowsGrouping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	batch, err := env.recon.SubmitSettlement(ctx, &SubmitSettlementInput{
		StartDate:    start,
		DaysGrouping: 3,
		BankNet:      "0",
		CreatedBy:    "test",
	})
	require.NoError(t, err)
	require.Equal(t, 3, batch.DaysGrouping)
	require.Equal(t, start.AddDate(0, 0, 2), batch.EndDate)

	// Unset grouping falls back to the two-day default.
	batch, err = env.recon.SubmitSettlement(ctx, &SubmitSettlementInput{
		StartDate: start,
		BankNet:   "0",
		CreatedBy: "test",
	})
	require.NoError(t, err)
	require.Equal(t, 2, batch.DaysGrouping)
	require.Equal(t, start.AddDate(0, 0, 1), batch.EndDate)
}
