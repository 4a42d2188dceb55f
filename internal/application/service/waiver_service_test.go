package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraRepo "github.com/schoolfin/feeledger-api/internal/infrastructure/repository"
)

func TestApproveWaiver_FlatAmountReducesOpeningBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student, err := env.students.CreateStudent(ctx, &CreateStudentInput{
		AdmissionNo:   "W-001",
		Name:          "Gauri",
		BalanceAmount: "3000",
		CreatedBy:     "test",
	})
	require.NoError(t, err)
	tuition := env.createFeeType(t, "Tuition")

	waiver, err := env.waivers.CreateWaiver(ctx, &CreateWaiverInput{
		StudentID: student.ID,
		FeeTypeID: tuition.ID,
		Amount:    "500",
		Reason:    "sibling discount",
		CreatedBy: "test",
	})
	require.NoError(t, err)
	assert.False(t, waiver.Approved)

	// Creation has no ledger effect.
	requireAmount(t, "3000", env.reloadStudent(t, student.ID).BalanceAmount)

	approved, err := env.waivers.ApproveWaiver(ctx, waiver.ID, "manager")
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.Equal(t, "manager", approved.ApprovedBy)

	requireAmount(t, "2500", env.reloadStudent(t, student.ID).BalanceAmount)
}

func TestApproveWaiver_PercentOfFeePlanTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student, err := env.students.CreateStudent(ctx, &CreateStudentInput{
		AdmissionNo:   "W-002",
		Name:          "Hema",
		BalanceAmount: "6000",
		CreatedBy:     "test",
	})
	require.NoError(t, err)
	tuition := env.createFeeType(t, "Tuition")
	transport := env.createFeeType(t, "Transport")
	env.assignFee(t, student.ID, tuition.ID, "4000")
	env.assignFee(t, student.ID, transport.ID, "1200")

	// 50% of the Tuition plan only; the Transport assignment is not part of
	// the base.
	waiver, err := env.waivers.CreateWaiver(ctx, &CreateWaiverInput{
		StudentID: student.ID,
		FeeTypeID: tuition.ID,
		Percent:   "50",
		CreatedBy: "test",
	})
	require.NoError(t, err)

	_, err = env.waivers.ApproveWaiver(ctx, waiver.ID, "manager")
	require.NoError(t, err)

	requireAmount(t, "4000", env.reloadStudent(t, student.ID).BalanceAmount)
}

func TestApproveWaiver_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student, err := env.students.CreateStudent(ctx, &CreateStudentInput{
		AdmissionNo:   "W-003",
		Name:          "Indu",
		BalanceAmount: "1000",
		CreatedBy:     "test",
	})
	require.NoError(t, err)
	tuition := env.createFeeType(t, "Tuition")

	waiver, err := env.waivers.CreateWaiver(ctx, &CreateWaiverInput{
		StudentID: student.ID,
		FeeTypeID: tuition.ID,
		Amount:    "250",
		CreatedBy: "test",
	})
	require.NoError(t, err)

	_, err = env.waivers.ApproveWaiver(ctx, waiver.ID, "manager")
	require.NoError(t, err)
	requireAmount(t, "750", env.reloadStudent(t, student.ID).BalanceAmount)

	// Re-approving changes nothing and does not error.
	again, err := env.waivers.ApproveWaiver(ctx, waiver.ID, "manager")
	require.NoError(t, err)
	assert.True(t, again.Approved)
	requireAmount(t, "750", env.reloadStudent(t, student.ID).BalanceAmount)
}

func TestApproveWaiver_RacingApprovalsDecrementOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student, err := env.students.CreateStudent(ctx, &CreateStudentInput{
		AdmissionNo:   "W-005",
		Name:          "Kiran",
		BalanceAmount: "1000",
		CreatedBy:     "test",
	})
	require.NoError(t, err)
	tuition := env.createFeeType(t, "Tuition")

	waiver, err := env.waivers.CreateWaiver(ctx, &CreateWaiverInput{
		StudentID: student.ID,
		FeeTypeID: tuition.ID,
		Amount:    "250",
		CreatedBy: "test",
	})
	require.NoError(t, err)

	// Two approvers that both read the waiver as unapproved reach storage
	// back to back; the guarded update lets only the first one through.
	repo := infraRepo.NewWaiverRepository(env.db)

	applied, err := repo.Approve(ctx, waiver, "manager-a", dec("250"))
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.Approve(ctx, waiver, "manager-b", dec("250"))
	require.NoError(t, err)
	assert.False(t, applied)

	requireAmount(t, "750", env.reloadStudent(t, student.ID).BalanceAmount)

	stored, err := repo.GetByID(ctx, waiver.ID)
	require.NoError(t, err)
	assert.True(t, stored.Approved)
	assert.Equal(t, "manager-a", stored.ApprovedBy)
}

func TestCreateWaiver_NeedsAmountOrPercent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "W-004", "Jaya")
	tuition := env.createFeeType(t, "Tuition")

	_, err := env.waivers.CreateWaiver(ctx, &CreateWaiverInput{
		StudentID: student.ID,
		FeeTypeID: tuition.ID,
		CreatedBy: "test",
	})
	require.Error(t, err)

	_, err = env.waivers.CreateWaiver(ctx, &CreateWaiverInput{
		StudentID: student.ID,
		FeeTypeID: tuition.ID,
		Percent:   "150",
		CreatedBy: "test",
	})
	require.Error(t, err)
}
