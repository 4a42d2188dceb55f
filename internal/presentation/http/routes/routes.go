package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schoolfin/feeledger-api/internal/config"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/handler"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/middleware"
	"github.com/schoolfin/feeledger-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Student  *handler.StudentHandler
	Receipt  *handler.ReceiptHandler
	Waiver   *handler.WaiverHandler
	Refund   *handler.RefundHandler
	Recon    *handler.ReconHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	manager := middleware.RequireRole("Owner", "Manager")

	// Staff accounts
	protected.PUT("/profile/password", h.Auth.ChangePassword)
	protected.GET("/users", manager, h.Auth.ListUsers)
	protected.POST("/users", middleware.RequireRole("Owner"), h.Auth.CreateUser)

	// Students
	students := protected.Group("/students")
	{
		students.GET("", h.Student.List)
		students.POST("", h.Student.Create)
		students.POST("/import", h.Student.ImportCSV)
		students.POST("/import-credit", manager, h.Student.ImportCreditCSV)
		students.GET("/import/template", h.Student.ImportTemplate)
		students.POST("/fees/bulk", manager, h.Student.BulkAssignFee)
		students.GET("/:id", h.Student.Get)
		students.PUT("/:id", h.Student.Update)
		students.DELETE("/:id", middleware.RequireRole("Owner"), h.Student.Delete)
		students.POST("/:id/discontinue", manager, h.Student.Discontinue)
		students.POST("/:id/reactivate", manager, h.Student.Reactivate)
		students.PUT("/:id/credit", manager, h.Student.SetCredit)
		students.GET("/:id/fees", h.Student.ListFees)
		students.POST("/:id/fees", h.Student.AssignFee)
	}

	// Double-submit protection on the financial POSTs.
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	// Receipts
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", idempotency, h.Receipt.Create)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.GET("/by-number/:no", h.Receipt.GetByNumber)
	}

	// Waivers
	waivers := protected.Group("/waivers")
	{
		waivers.GET("", h.Waiver.List)
		waivers.POST("", h.Waiver.Create)
		waivers.POST("/:id/approve", manager, h.Waiver.Approve)
	}

	// Refunds
	refunds := protected.Group("/refunds")
	{
		refunds.GET("", h.Refund.List)
		refunds.POST("", manager, idempotency, h.Refund.Create)
	}

	// Reconciliation
	recon := protected.Group("/recon")
	{
		recon.GET("/cash-counts", h.Recon.ListCashCounts)
		recon.POST("/cash-counts", h.Recon.SubmitCashCount)
		recon.GET("/settlements", h.Recon.ListSettlements)
		recon.POST("/settlements", manager, h.Recon.SubmitSettlement)
		recon.GET("/fee-rules", h.Recon.ListFeeRules)
		recon.POST("/fee-rules", manager, h.Recon.CreateFeeRule)
	}

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/overdue", h.Report.Overdue)
		reports.GET("/overdue.csv", h.Report.OverdueCSV)
		reports.GET("/discontinued", h.Report.Discontinued)
		reports.GET("/discontinued.csv", h.Report.DiscontinuedCSV)
		reports.GET("/income", h.Report.IncomeByFeeType)
		reports.GET("/income.csv", h.Report.IncomeByFeeTypeCSV)
		reports.GET("/collection", h.Report.Collection)
	}

	// Settings
	settings := protected.Group("/settings")
	{
		settings.GET("/receipt", h.Settings.GetReceiptSettings)
		settings.PUT("/receipt", manager, h.Settings.UpdateReceiptSettings)
		settings.GET("/years", h.Settings.ListYears)
		settings.POST("/years/activate", middleware.RequireRole("Owner"), h.Settings.ActivateYear)
		settings.POST("/years/rollover", middleware.RequireRole("Owner"), h.Settings.RolloverYear)
		settings.GET("/fee-types", h.Settings.ListFeeTypes)
		settings.POST("/fee-types", manager, h.Settings.CreateFeeType)
		settings.PUT("/fee-types/:id", manager, h.Settings.SetFeeTypeActive)
		settings.GET("/audit-logs", manager, h.Settings.ListAuditLogs)
	}
}
