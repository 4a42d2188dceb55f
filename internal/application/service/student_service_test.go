package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
)

func TestCreateStudent_DuplicateAdmissionNo(t *testing.T) {
	env := newTestEnv(t)
	env.createStudent(t, "S-001", "Asha")

	_, err := env.students.CreateStudent(context.Background(), &CreateStudentInput{
		AdmissionNo: "S-001",
		Name:        "Someone Else",
		CreatedBy:   "test",
	})
	assert.ErrorIs(t, err, apperror.ErrDuplicateStudent)
}

func TestAssignFee_ReplacesExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "S-002", "Bina")
	tuition := env.createFeeType(t, "Tuition")

	env.assignFee(t, student.ID, tuition.ID, "4000")
	env.assignFee(t, student.ID, tuition.ID, "4500")

	fees, err := env.students.ListFees(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, fees, 1)
	requireAmount(t, "4500", fees[0].Amount)
}

func TestDiscontinueAndReactivate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student := env.createStudent(t, "S-003", "Chitra")
	assert.False(t, student.IsDiscontinued())

	updated, err := env.students.Discontinue(ctx, student.ID, mustDate(t, "2026-03-31"), true, "test")
	require.NoError(t, err)
	assert.True(t, updated.IsDiscontinued())
	assert.True(t, updated.Collectible)
	assert.True(t, updated.InOverdueReports())

	updated, err = env.students.Reactivate(ctx, student.ID, "test")
	require.NoError(t, err)
	assert.False(t, updated.IsDiscontinued())
	assert.False(t, updated.Collectible)
}

func TestListStudents_SearchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createStudent(t, "S-400", "Meenakshi")
	env.createStudent(t, "S-401", "Nikhil")

	rows, err := env.students.ListStudents(ctx, &repository.StudentFilterParams{Search: "MEENA"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "S-400", rows[0].AdmissionNo)

	// Admission numbers are searchable the same way.
	rows, err = env.students.ListStudents(ctx, &repository.StudentFilterParams{Search: "s-401"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Nikhil", rows[0].Name)
}

func TestImportCSV(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// One existing student to collide with.
	env.createStudent(t, "S-100", "Existing")

	csvData := strings.Join([]string{
		"admission_no,name,class,section,parent_name,phone,balance",
		"S-101,Divya,5,A,Ram,9900000001,1200",
		"S-100,Duplicate,5,A,,,",
		"S-102,Esha,6,B,Shyam,9900000002,0",
		",MissingAdmission,5,A,,,",
	}, "\n")

	result, err := env.students.ImportCSV(ctx, strings.NewReader(csvData), "test")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)

	imported := env.reloadStudent(t, mustStudentID(t, env, "S-101"))
	assert.Equal(t, "Divya", imported.Name)
	requireAmount(t, "1200", imported.BalanceAmount)
}

func TestImportCreditCSV(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	known := env.createStudent(t, "S-200", "Farah")

	csvData := strings.Join([]string{
		"admission_no,credit",
		"S-200,350.50",
		"S-999,100",
		"S-200x,-5",
	}, "\n")

	result, err := env.students.ImportCreditCSV(ctx, strings.NewReader(csvData), "test")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 2, result.Skipped)

	reloaded := env.reloadStudent(t, known.ID)
	requireAmount(t, "350.50", reloaded.CreditBalance)
}

func TestBulkAssignFee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tuition := env.createFeeType(t, "Tuition")
	a := env.createStudent(t, "S-300", "Gita")
	b := env.createStudent(t, "S-301", "Hari")

	result, err := env.students.BulkAssignFee(ctx, tuition.ID, "4000", []uuid.UUID{a.ID, b.ID, uuid.New()}, "test")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Assigned)
	assert.Len(t, result.Errors, 1)

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		fees, err := env.students.ListFees(ctx, id)
		require.NoError(t, err)
		require.Len(t, fees, 1)
		requireAmount(t, "4000", fees[0].Amount)
	}
}
