package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/request"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/response"
)

// WaiverHandler handles waiver-related HTTP requests
type WaiverHandler struct {
	waiverService *service.WaiverService
}

// NewWaiverHandler creates a new waiver handler
func NewWaiverHandler(waiverService *service.WaiverService) *WaiverHandler {
	return &WaiverHandler{waiverService: waiverService}
}

// Create handles waiver proposal
func (h *WaiverHandler) Create(c *gin.Context) {
	var req request.CreateWaiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		response.BadRequest(c, "Invalid student ID")
		return
	}
	feeTypeID, err := uuid.Parse(req.FeeTypeID)
	if err != nil {
		response.BadRequest(c, "Invalid fee type ID")
		return
	}

	waiver, err := h.waiverService.CreateWaiver(c.Request.Context(), &service.CreateWaiverInput{
		StudentID: studentID,
		FeeTypeID: feeTypeID,
		Amount:    req.Amount,
		Percent:   req.Percent,
		Reason:    req.Reason,
		CreatedBy: GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Waiver created successfully", waiver)
}

// Approve handles waiver approval
func (h *WaiverHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid waiver ID")
		return
	}

	waiver, err := h.waiverService.ApproveWaiver(c.Request.Context(), id, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Waiver approved", waiver)
}

// List handles listing recent waivers
func (h *WaiverHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	waivers, err := h.waiverService.ListWaivers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Waivers retrieved successfully", waivers)
}
