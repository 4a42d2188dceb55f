package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/schoolfin/feeledger-api/pkg/money"
)

// StudentService handles student-related operations
type StudentService struct {
	studentRepo    repository.StudentRepository
	feeTypeRepo    repository.FeeTypeRepository
	studentFeeRepo repository.StudentFeeRepository
	auditService   *AuditService
}

// NewStudentService creates a new student service
func NewStudentService(
	studentRepo repository.StudentRepository,
	feeTypeRepo repository.FeeTypeRepository,
	studentFeeRepo repository.StudentFeeRepository,
	auditService *AuditService,
) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		feeTypeRepo:    feeTypeRepo,
		studentFeeRepo: studentFeeRepo,
		auditService:   auditService,
	}
}

// CreateStudentInput represents the create student input
type CreateStudentInput struct {
	AdmissionNo   string
	Name          string
	ClassName     string
	Section       string
	ParentName    string
	Phone         string
	Email         string
	BalanceAmount string
	CreatedBy     string
}

// CreateStudent admits a new student.
func (s *StudentService) CreateStudent(ctx context.Context, input *CreateStudentInput) (*entity.Student, error) {
	admissionNo := strings.TrimSpace(input.AdmissionNo)
	name := strings.TrimSpace(input.Name)
	if admissionNo == "" || name == "" {
		return nil, apperror.NewBadRequestError("Admission number and name are required")
	}

	opening, err := money.ParseNonNegative(input.BalanceAmount)
	if err != nil {
		return nil, err
	}

	student := &entity.Student{
		AdmissionNo:   admissionNo,
		Name:          name,
		ClassName:     strings.TrimSpace(input.ClassName),
		Section:       strings.TrimSpace(input.Section),
		ParentName:    input.ParentName,
		Phone:         input.Phone,
		Email:         input.Email,
		BalanceAmount: opening,
		CreditBalance: money.Zero(),
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, input.CreatedBy, "student.create", "student", student.AdmissionNo, nil, student, "")
	return student, nil
}

// UpdateStudentInput represents the update student input. Nil fields are
// left unchanged.
type UpdateStudentInput struct {
	Name       *string
	ClassName  *string
	Section    *string
	ParentName *string
	Phone      *string
	Email      *string
	UpdatedBy  string
}

// UpdateStudent edits a student's identity fields. Balance fields are never
// edited here; they move only through receipts, waivers, and refunds.
func (s *StudentService) UpdateStudent(ctx context.Context, id uuid.UUID, input *UpdateStudentInput) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	before := *student
	if input.Name != nil {
		student.Name = strings.TrimSpace(*input.Name)
	}
	if input.ClassName != nil {
		student.ClassName = strings.TrimSpace(*input.ClassName)
	}
	if input.Section != nil {
		student.Section = strings.TrimSpace(*input.Section)
	}
	if input.ParentName != nil {
		student.ParentName = *input.ParentName
	}
	if input.Phone != nil {
		student.Phone = *input.Phone
	}
	if input.Email != nil {
		student.Email = *input.Email
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, input.UpdatedBy, "student.update", "student", student.AdmissionNo, before, student, "")
	return student, nil
}

// Discontinue marks the student as having left. Collectible controls whether
// any remaining balance keeps appearing in overdue reports.
func (s *StudentService) Discontinue(ctx context.Context, id uuid.UUID, asOf time.Time, collectible bool, updatedBy string) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	before := *student
	student.Discontinued = &asOf
	student.Collectible = collectible
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, updatedBy, "student.discontinue", "student", student.AdmissionNo, before, student, "")
	return student, nil
}

// Reactivate clears the discontinued marker.
func (s *StudentService) Reactivate(ctx context.Context, id uuid.UUID, updatedBy string) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	before := *student
	student.Discontinued = nil
	student.Collectible = false
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, updatedBy, "student.reactivate", "student", student.AdmissionNo, before, student, "")
	return student, nil
}

// SetCreditBalance is an administrative correction to the student's credit
// balance, used when an overpayment or advance is recorded outside the
// receipt flow. Refunds are the only other path that moves this field.
func (s *StudentService) SetCreditBalance(ctx context.Context, id uuid.UUID, amount string, updatedBy, reason string) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	credit, err := money.ParseNonNegative(amount)
	if err != nil {
		return nil, err
	}

	before := *student
	student.CreditBalance = credit
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, updatedBy, "student.set_credit", "student", student.AdmissionNo, before, student, reason)
	return student, nil
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}
	return student, nil
}

// ListStudents retrieves students with optional filtering
func (s *StudentService) ListStudents(ctx context.Context, params *repository.StudentFilterParams) ([]entity.Student, error) {
	return s.studentRepo.List(ctx, params)
}

// DeleteStudent removes a student and their fee assignments. Administrative
// use only; receipts referencing the student are kept.
func (s *StudentService) DeleteStudent(ctx context.Context, id uuid.UUID, deletedBy string) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return apperror.NewNotFoundError("Student")
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditService.Record(ctx, deletedBy, "student.delete", "student", student.AdmissionNo, student, nil, "")
	return nil
}

// AssignFee sets the expected amount for a (student, fee type) pair,
// replacing any existing assignment for the pair.
func (s *StudentService) AssignFee(ctx context.Context, studentID, feeTypeID uuid.UUID, amount string, updatedBy string) (*entity.StudentFee, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}
	feeType, err := s.feeTypeRepo.GetByID(ctx, feeTypeID)
	if err != nil {
		return nil, err
	}
	if feeType == nil {
		return nil, apperror.NewNotFoundError("Fee type")
	}

	parsed, err := money.ParsePositive(amount)
	if err != nil {
		return nil, err
	}

	fee := &entity.StudentFee{StudentID: studentID, FeeTypeID: feeTypeID, Amount: parsed}
	if err := s.studentFeeRepo.Upsert(ctx, fee); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, updatedBy, "student.assign_fee", "student_fee", fee.ID.String(), nil, fee, "")
	return fee, nil
}

// ListFees retrieves a student's fee assignments
func (s *StudentService) ListFees(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFee, error) {
	return s.studentFeeRepo.ListByStudent(ctx, studentID)
}

// ImportResult summarizes a CSV import
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportCSV bulk-admits students from a CSV stream. Expected columns:
// admission_no, name, class, section, parent_name, phone, balance. A header
// row is detected and skipped; rows with a known admission number are
// skipped, not updated. The import is best-effort per row, so one bad row
// never aborts the batch.
func (s *StudentService) ImportCSV(ctx context.Context, r io.Reader, createdBy string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperror.NewBadRequestError("Malformed CSV")
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "admission_no") {
			continue
		}
		if len(record) < 2 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: too few columns", line))
			continue
		}

		input := &CreateStudentInput{
			AdmissionNo: record[0],
			Name:        record[1],
			CreatedBy:   createdBy,
		}
		if len(record) > 2 {
			input.ClassName = record[2]
		}
		if len(record) > 3 {
			input.Section = record[3]
		}
		if len(record) > 4 {
			input.ParentName = strings.TrimSpace(record[4])
		}
		if len(record) > 5 {
			input.Phone = strings.TrimSpace(record[5])
		}
		if len(record) > 6 {
			input.BalanceAmount = record[6]
		}

		if _, err := s.CreateStudent(ctx, input); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Created++
	}
	return result, nil
}

// ImportCreditCSV loads opening credit balances from a CSV stream. Expected
// columns: admission_no, credit. Unknown admission numbers and unparseable
// amounts are skipped, not fatal.
func (s *StudentService) ImportCreditCSV(ctx context.Context, r io.Reader, updatedBy string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperror.NewBadRequestError("Malformed CSV")
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "admission_no") {
			continue
		}
		if len(record) < 2 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: too few columns", line))
			continue
		}

		student, err := s.studentRepo.GetByAdmissionNo(ctx, strings.TrimSpace(record[0]))
		if err != nil {
			return nil, err
		}
		if student == nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: unknown admission number %q", line, record[0]))
			continue
		}

		credit, err := money.ParseNonNegative(record[1])
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		before := *student
		student.CreditBalance = credit
		if err := s.studentRepo.Update(ctx, student); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		s.auditService.Record(ctx, updatedBy, "student.import_credit", "student", student.AdmissionNo, before, student, "")
		result.Updated++
	}
	return result, nil
}

// BulkAssignResult summarizes a bulk fee assignment
type BulkAssignResult struct {
	Assigned int      `json:"assigned"`
	Errors   []string `json:"errors,omitempty"`
}

// BulkAssignFee sets the same expected amount for one fee type across many
// students, replacing existing assignments for the pair. Best-effort per
// student.
func (s *StudentService) BulkAssignFee(ctx context.Context, feeTypeID uuid.UUID, amount string, studentIDs []uuid.UUID, updatedBy string) (*BulkAssignResult, error) {
	feeType, err := s.feeTypeRepo.GetByID(ctx, feeTypeID)
	if err != nil {
		return nil, err
	}
	if feeType == nil {
		return nil, apperror.NewNotFoundError("Fee type")
	}

	parsed, err := money.ParsePositive(amount)
	if err != nil {
		return nil, err
	}

	result := &BulkAssignResult{}
	for _, studentID := range studentIDs {
		student, err := s.studentRepo.GetByID(ctx, studentID)
		if err != nil {
			return nil, err
		}
		if student == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("student %s not found", studentID))
			continue
		}

		fee := &entity.StudentFee{StudentID: studentID, FeeTypeID: feeTypeID, Amount: parsed}
		if err := s.studentFeeRepo.Upsert(ctx, fee); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("student %s: %v", student.AdmissionNo, err))
			continue
		}
		result.Assigned++
	}

	s.auditService.Record(ctx, updatedBy, "student.bulk_assign_fee", "fee_type", feeType.Name, nil, result, "")
	return result, nil
}
