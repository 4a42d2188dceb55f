package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/request"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/response"
)

// ReconHandler handles reconciliation HTTP requests
type ReconHandler struct {
	reconService *service.ReconService
}

// NewReconHandler creates a new reconciliation handler
func NewReconHandler(reconService *service.ReconService) *ReconHandler {
	return &ReconHandler{reconService: reconService}
}

// SubmitCashCount handles a cash count submission
func (h *ReconHandler) SubmitCashCount(c *gin.Context) {
	var req request.SubmitCashCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	count, err := h.reconService.SubmitCashCount(c.Request.Context(), &service.SubmitCashCountInput{
		Date:          date,
		AmountCounted: req.AmountCounted,
		Notes:         req.Notes,
		CreatedBy:     GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash count recorded", count)
}

// ListCashCounts lists recent cash counts
func (h *ReconHandler) ListCashCounts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	counts, err := h.reconService.ListCashCounts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash counts retrieved successfully", counts)
}

// SubmitSettlement handles a settlement batch submission
func (h *ReconHandler) SubmitSettlement(c *gin.Context) {
	var req request.SubmitSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
		return
	}

	var ruleID *uuid.UUID
	if req.RuleID != "" {
		parsed, err := uuid.Parse(req.RuleID)
		if err != nil {
			response.BadRequest(c, "Invalid rule ID")
			return
		}
		ruleID = &parsed
	}

	batch, err := h.reconService.SubmitSettlement(c.Request.Context(), &service.SubmitSettlementInput{
		Provider:        req.Provider,
		StartDate:       start,
		DaysGrouping:    req.DaysGrouping,
		RuleID:          ruleID,
		OverridePercent: req.OverridePercent,
		OverrideFlat:    req.OverrideFlat,
		BankNet:         req.BankNet,
		CreatedBy:       GetUsername(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Settlement batch recorded", batch)
}

// ListSettlements lists recent settlement batches
func (h *ReconHandler) ListSettlements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))

	batches, err := h.reconService.ListSettlements(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement batches retrieved successfully", batches)
}

// CreateFeeRule handles provider fee rule creation
func (h *ReconHandler) CreateFeeRule(c *gin.Context) {
	var req request.CreateFeeRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rule, err := h.reconService.CreateFeeRule(c.Request.Context(), &service.CreateFeeRuleInput{
		Name:    req.Name,
		Percent: req.Percent,
		Flat:    req.Flat,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Fee rule created successfully", rule)
}

// ListFeeRules lists provider fee rules
func (h *ReconHandler) ListFeeRules(c *gin.Context) {
	rules, err := h.reconService.ListFeeRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Fee rules retrieved successfully", rules)
}
