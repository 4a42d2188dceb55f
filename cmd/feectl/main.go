package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/schoolfin/feeledger-api/internal/application/service"
	"github.com/schoolfin/feeledger-api/internal/config"
	"github.com/schoolfin/feeledger-api/internal/infrastructure/database"
	"github.com/schoolfin/feeledger-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "feectl",
		Short: "Administrative tool for the fee ledger",
	}
	rootCmd.AddCommand(migrateCmd(), addUserCmd(), activateYearCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() *gorm.DB {
	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	return db
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run migrations and seed default settings",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			db := openDB()
			if err := database.AutoMigrate(db); err != nil {
				log.Fatal().Err(err).Msg("migration failed")
			}
			if err := database.SeedDefaultData(db, &cfg.Receipt); err != nil {
				log.Fatal().Err(err).Msg("seeding failed")
			}
			log.Info().Msg("database ready")
		},
	}
}

func addUserCmd() *cobra.Command {
	var username, fullName, password, role string

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a staff account",
		Run: func(cmd *cobra.Command, args []string) {
			db := openDB()
			authService := service.NewAuthService(repository.NewUserRepository(db), nil)

			user, err := authService.CreateUser(context.Background(), &service.CreateUserInput{
				Username: username,
				FullName: fullName,
				Password: password,
				Role:     role,
			})
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create user")
			}
			log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user created")
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", "DataEntry", "Owner, Manager, Cashier or DataEntry")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func activateYearCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "activate-year",
		Short: "Make an academic year the active one",
		Run: func(cmd *cobra.Command, args []string) {
			db := openDB()
			settingsRepo := repository.NewSettingsRepository(db)
			yearRepo := repository.NewAcademicYearRepository(db)
			auditService := service.NewAuditService(repository.NewAuditRepository(db))
			numbering := service.NewNumberingService(settingsRepo, yearRepo)
			settingsService := service.NewSettingsService(settingsRepo, yearRepo, numbering, auditService)

			year, err := settingsService.ActivateYear(context.Background(), name, nil, nil, "feectl")
			if err != nil {
				log.Fatal().Err(err).Msg("failed to activate year")
			}
			log.Info().Str("year", year.Name).Msg("year activated")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "year name, e.g. 2025-26")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
