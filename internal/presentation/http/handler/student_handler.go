package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/request"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/response"
	"github.com/schoolfin/feeledger-api/pkg/pagination"
)

// StudentHandler handles student-related HTTP requests
type StudentHandler struct {
	studentService *service.StudentService
	ledgerService  *service.LedgerService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *service.StudentService, ledgerService *service.LedgerService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		ledgerService:  ledgerService,
	}
}

// List handles listing students with search and class/section filters
func (h *StudentHandler) List(c *gin.Context) {
	params := &repository.StudentFilterParams{
		Search:    c.Query("search"),
		ClassName: c.Query("class"),
		Section:   c.Query("section"),
	}
	if d := c.Query("discontinued"); d != "" {
		val := d == "true" || d == "1"
		params.Discontinued = &val
	}

	students, err := h.studentService.ListStudents(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	pp := &pagination.PaginationParams{Page: page, PerPage: perPage}
	pp.Validate()

	total := int64(len(students))
	start := pp.Offset()
	if start > len(students) {
		start = len(students)
	}
	end := start + pp.PerPage
	if end > len(students) {
		end = len(students)
	}

	result := pagination.NewPaginatedResult(students[start:end], pagination.NewPagination(pp.Page, pp.PerPage, total))
	response.SuccessWithPagination(c, 200, "Students retrieved successfully", result)
}

// Create handles student admission
func (h *StudentHandler) Create(c *gin.Context) {
	var req request.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.CreateStudent(c.Request.Context(), &service.CreateStudentInput{
		AdmissionNo:   req.AdmissionNo,
		Name:          req.Name,
		ClassName:     req.ClassName,
		Section:       req.Section,
		ParentName:    req.ParentName,
		Phone:         req.Phone,
		Email:         req.Email,
		BalanceAmount: req.BalanceAmount,
		CreatedBy:     GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Student created successfully", student)
}

// Get handles retrieving a single student with their ledger position
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.studentService.GetStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	balance, err := h.ledgerService.BalanceForStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student retrieved successfully", gin.H{
		"student": student,
		"balance": balance,
	})
}

// Update handles editing a student's identity fields
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req request.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), id, &service.UpdateStudentInput{
		Name:       req.Name,
		ClassName:  req.ClassName,
		Section:    req.Section,
		ParentName: req.ParentName,
		Phone:      req.Phone,
		Email:      req.Email,
		UpdatedBy:  GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student updated successfully", student)
}

// Delete handles removing a student
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	if err := h.studentService.DeleteStudent(c.Request.Context(), id, GetUsername(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Discontinue marks a student as having left
func (h *StudentHandler) Discontinue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req request.DiscontinueStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	asOf := time.Now()
	if req.AsOf != "" {
		parsed, err := parseDate(req.AsOf)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	student, err := h.studentService.Discontinue(c.Request.Context(), id, asOf, req.Collectible, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student discontinued", student)
}

// Reactivate clears a student's discontinued marker
func (h *StudentHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.studentService.Reactivate(c.Request.Context(), id, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Student reactivated", student)
}

// SetCredit handles an administrative credit balance correction
func (h *StudentHandler) SetCredit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req request.SetCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.SetCreditBalance(c.Request.Context(), id, req.Amount, GetUsername(c), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit balance updated", student)
}

// AssignFee sets the expected amount for a (student, fee type) pair
func (h *StudentHandler) AssignFee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var req request.AssignFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	feeTypeID, err := uuid.Parse(req.FeeTypeID)
	if err != nil {
		response.BadRequest(c, "Invalid fee type ID")
		return
	}

	fee, err := h.studentService.AssignFee(c.Request.Context(), id, feeTypeID, req.Amount, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee assigned successfully", fee)
}

// ListFees lists a student's fee assignments
func (h *StudentHandler) ListFees(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	fees, err := h.studentService.ListFees(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fees retrieved successfully", fees)
}

// ImportCSV handles bulk student admission from an uploaded CSV file
func (h *StudentHandler) ImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "CSV file is required")
		return
	}
	defer file.Close()

	result, err := h.studentService.ImportCSV(c.Request.Context(), file, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", result)
}

// ImportCreditCSV loads credit balances from an uploaded CSV file
func (h *StudentHandler) ImportCreditCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "CSV file is required")
		return
	}
	defer file.Close()

	result, err := h.studentService.ImportCreditCSV(c.Request.Context(), file, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", result)
}

// ImportTemplate serves the header row for an import CSV. ?type=credit
// returns the credit-balance template; anything else the admission template.
func (h *StudentHandler) ImportTemplate(c *gin.Context) {
	name := "students.csv"
	header := "admission_no,name,class,section,parent_name,phone,balance\n"
	if c.Query("type") == "credit" {
		name = "credit.csv"
		header = "admission_no,credit\n"
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(200, "text/csv", []byte(header))
}

// BulkAssignFee sets one fee amount across many students
func (h *StudentHandler) BulkAssignFee(c *gin.Context) {
	var req request.BulkAssignFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	feeTypeID, err := uuid.Parse(req.FeeTypeID)
	if err != nil {
		response.BadRequest(c, "Invalid fee type ID")
		return
	}

	studentIDs := make([]uuid.UUID, 0, len(req.StudentIDs))
	for _, s := range req.StudentIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(c, "Invalid student ID")
			return
		}
		studentIDs = append(studentIDs, id)
	}

	result, err := h.studentService.BulkAssignFee(c.Request.Context(), feeTypeID, req.Amount, studentIDs, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fees assigned", result)
}
