package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/request"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/response"
)

// RefundHandler handles refund-related HTTP requests
type RefundHandler struct {
	refundService *service.RefundService
}

// NewRefundHandler creates a new refund handler
func NewRefundHandler(refundService *service.RefundService) *RefundHandler {
	return &RefundHandler{refundService: refundService}
}

// Create handles refund creation
func (h *RefundHandler) Create(c *gin.Context) {
	var req request.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}

	var feeTypeID *uuid.UUID
	if req.FeeTypeID != "" {
		parsed, err := uuid.Parse(req.FeeTypeID)
		if err != nil {
			response.BadRequest(c, "Invalid fee type ID")
			return
		}
		feeTypeID = &parsed
	}

	refund, err := h.refundService.CreateRefund(c.Request.Context(), &service.CreateRefundInput{
		StudentID: studentID,
		FeeTypeID: feeTypeID,
		Amount:    req.Amount,
		Mode:      enum.PaymentMode(req.Mode),
		Reason:    req.Reason,
		CreatedBy: GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund created successfully", refund)
}

// List handles listing recent refunds
func (h *RefundHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	refunds, err := h.refundService.ListRefunds(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refunds retrieved successfully", refunds)
}
