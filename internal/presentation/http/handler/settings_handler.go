package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/request"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles configuration HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
	feeTypeService  *service.FeeTypeService
	auditService    *service.AuditService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(
	settingsService *service.SettingsService,
	feeTypeService *service.FeeTypeService,
	auditService *service.AuditService,
) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		feeTypeService:  feeTypeService,
		auditService:    auditService,
	}
}

// GetReceiptSettings returns the numbering configuration
func (h *SettingsHandler) GetReceiptSettings(c *gin.Context) {
	settings, err := h.settingsService.GetReceiptSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateReceiptSettings changes the numbering configuration
func (h *SettingsHandler) UpdateReceiptSettings(c *gin.Context) {
	var req request.UpdateReceiptSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.settingsService.UpdateReceiptSettings(c.Request.Context(), &service.UpdateReceiptSettingsInput{
		Mode:       req.Mode,
		Prefix:     req.Prefix,
		Seq:        req.Seq,
		SchoolName: req.SchoolName,
		UpdatedBy:  GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	settings, err := h.settingsService.GetReceiptSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", settings)
}

// ListYears lists all academic years
func (h *SettingsHandler) ListYears(c *gin.Context) {
	years, err := h.settingsService.ListYears(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Years retrieved successfully", years)
}

// ActivateYear makes the named year the single active one
func (h *SettingsHandler) ActivateYear(c *gin.Context) {
	var req request.ActivateYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
		return
	}

	year, err := h.settingsService.ActivateYear(c.Request.Context(), req.Name, startDate, endDate, GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Year activated", year)
}

// RolloverYear activates the successor of the active year
func (h *SettingsHandler) RolloverYear(c *gin.Context) {
	year, err := h.settingsService.RolloverYear(c.Request.Context(), GetUsername(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Year rolled over", year)
}

// CreateFeeType adds a new charge category
func (h *SettingsHandler) CreateFeeType(c *gin.Context) {
	var req request.CreateFeeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	feeType, err := h.feeTypeService.CreateFeeType(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Fee type created successfully", feeType)
}

// SetFeeTypeActive toggles a fee type
func (h *SettingsHandler) SetFeeTypeActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid fee type ID")
		return
	}

	var req request.SetFeeTypeActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	feeType, err := h.feeTypeService.SetActive(c.Request.Context(), id, req.Active)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fee type updated", feeType)
}

// ListFeeTypes lists charge categories
func (h *SettingsHandler) ListFeeTypes(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "") == "true"

	feeTypes, err := h.feeTypeService.ListFeeTypes(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fee types retrieved successfully", feeTypes)
}

// ListAuditLogs lists recent audit entries
func (h *SettingsHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	logs, err := h.auditService.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Audit logs retrieved successfully", logs)
}
