package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/config"
	"github.com/schoolfin/feeledger-api/internal/infrastructure/database"
	"github.com/schoolfin/feeledger-api/internal/infrastructure/repository"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/handler"
	"github.com/schoolfin/feeledger-api/internal/presentation/http/routes"
	"github.com/schoolfin/feeledger-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed numbering settings and default fee types on first boot
	if err := database.SeedDefaultData(db, &cfg.Receipt); err != nil {
		log.Warn().Err(err).Msg("failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	yearRepo := repository.NewAcademicYearRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	feeTypeRepo := repository.NewFeeTypeRepository(db)
	studentFeeRepo := repository.NewStudentFeeRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	waiverRepo := repository.NewWaiverRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	cashCountRepo := repository.NewCashCountRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	feeRuleRepo := repository.NewFeeRuleRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	numberingService := service.NewNumberingService(settingsRepo, yearRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	studentService := service.NewStudentService(studentRepo, feeTypeRepo, studentFeeRepo, auditService)
	feeTypeService := service.NewFeeTypeService(feeTypeRepo)
	ledgerService := service.NewLedgerService(ledgerRepo, studentRepo)
	receiptService := service.NewReceiptService(receiptRepo, studentRepo, feeTypeRepo, numberingService, auditService)
	waiverService := service.NewWaiverService(waiverRepo, studentRepo, feeTypeRepo, studentFeeRepo, auditService)
	refundService := service.NewRefundService(refundRepo, studentRepo, auditService)
	reconService := service.NewReconService(cashCountRepo, settlementRepo, feeRuleRepo, receiptRepo, auditService)
	reportService := service.NewReportService(ledgerService, studentRepo, receiptRepo)
	settingsService := service.NewSettingsService(settingsRepo, yearRepo, numberingService, auditService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Student:  handler.NewStudentHandler(studentService, ledgerService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Waiver:   handler.NewWaiverHandler(waiverService),
		Refund:   handler.NewRefundHandler(refundService),
		Recon:    handler.NewReconHandler(reconService),
		Report:   handler.NewReportHandler(reportService, ledgerService),
		Settings: handler.NewSettingsHandler(settingsService, feeTypeService, auditService),
	}

	// Setup routes and start the server
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	log.Info().Str("port", cfg.App.Port).Msg("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
