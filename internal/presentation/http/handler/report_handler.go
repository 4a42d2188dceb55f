package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/dto/response"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
	ledgerService *service.LedgerService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, ledgerService *service.LedgerService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		ledgerService: ledgerService,
	}
}

// Summary returns the global ledger position
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.ledgerService.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Summary retrieved successfully", summary)
}

// Overdue lists students with positive balances, worst first
func (h *ReportHandler) Overdue(c *gin.Context) {
	rows, err := h.reportService.Overdue(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Overdue report retrieved successfully", rows)
}

// OverdueCSV streams the overdue report as CSV
func (h *ReportHandler) OverdueCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="overdue.csv"`)
	if err := h.reportService.OverdueCSV(c.Request.Context(), c.Writer); err != nil {
		response.Error(c, err)
	}
}

// Discontinued lists students who have left, with remaining balances
func (h *ReportHandler) Discontinued(c *gin.Context) {
	rows, err := h.reportService.Discontinued(c.Request.Context(), collectibleFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discontinued report retrieved successfully", rows)
}

// DiscontinuedCSV streams the discontinued report as CSV
func (h *ReportHandler) DiscontinuedCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="discontinued.csv"`)
	if err := h.reportService.DiscontinuedCSV(c.Request.Context(), c.Writer, collectibleFilter(c)); err != nil {
		response.Error(c, err)
	}
}

func collectibleFilter(c *gin.Context) *bool {
	v := c.Query("collectible")
	if v == "" {
		return nil
	}
	val := v == "true" || v == "1"
	return &val
}

// IncomeByFeeType sums receipt income per fee type within an optional window
func (h *ReportHandler) IncomeByFeeType(c *gin.Context) {
	from, to, err := h.parseWindow(c)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	rows, err := h.reportService.IncomeByFeeType(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Income report retrieved successfully", rows)
}

// IncomeByFeeTypeCSV streams the income report as CSV
func (h *ReportHandler) IncomeByFeeTypeCSV(c *gin.Context) {
	from, to, err := h.parseWindow(c)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="income.csv"`)
	if err := h.reportService.IncomeByFeeTypeCSV(c.Request.Context(), c.Writer, from, to); err != nil {
		response.Error(c, err)
	}
}

// Collection returns the day's receipts broken down by payment mode
func (h *ReportHandler) Collection(c *gin.Context) {
	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := parseDate(d)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	collection, err := h.reportService.CollectionOn(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Collection retrieved successfully", collection)
}

func (h *ReportHandler) parseWindow(c *gin.Context) (from, to *time.Time, err error) {
	from, err = parseOptionalDate(c.Query("from"))
	if err != nil {
		return nil, nil, err
	}
	to, err = parseOptionalDate(c.Query("to"))
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
