package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/request"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles receipt creation
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	lines := make([]service.ReceiptLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		feeTypeID, err := uuid.Parse(line.FeeTypeID)
		if err != nil {
			response.BadRequest(c, "Invalid fee type ID")
			return
		}
		lines = append(lines, service.ReceiptLineInput{FeeTypeID: feeTypeID, Amount: line.Amount})
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		StudentID: studentID,
		Lines:     lines,
		Mode:      enum.PaymentMode(req.Mode),
		Notes:     req.Notes,
		ManualNo:  req.ReceiptNo,
		CreatedBy: GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Get handles retrieving a receipt by ID
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// GetByNumber handles retrieving a receipt by its number
func (h *ReceiptHandler) GetByNumber(c *gin.Context) {
	receipt, err := h.receiptService.GetReceiptByNumber(c.Request.Context(), c.Param("no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// List handles listing receipts, optionally filtered by student
func (h *ReceiptHandler) List(c *gin.Context) {
	params := &repository.ReceiptFilterParams{}
	if s := c.Query("student_id"); s != "" {
		studentID, err := uuid.Parse(s)
		if err != nil {
			response.BadRequest(c, "Invalid student ID")
			return
		}
		params.StudentID = &studentID
	}
	if l := c.Query("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 1 {
			response.BadRequest(c, "Invalid limit")
			return
		}
		params.Limit = limit
	}

	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", receipts)
}
