package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/cost-manager/internal/core/events"
	"github.com/frahmantamala/cost-manager/internal/expense"
	expensePostgres "github.com/frahmantamala/cost-manager/internal/expense/postgres"
	"github.com/frahmantamala/cost-manager/internal/logclient"
	"github.com/frahmantamala/cost-manager/internal/report"
	reportPostgres "github.com/frahmantamala/cost-manager/internal/report/postgres"
	"github.com/frahmantamala/cost-manager/internal/transport/rest"
	"github.com/frahmantamala/cost-manager/internal/userclient"
	"github.com/frahmantamala/cost-manager/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Start the costs service",
	Long:  `Expense entry, per-user totals and cached monthly reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		startCostsService()
	},
}

func startCostsService() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Env)
	lg := logger.L()

	db, err := initGorm(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	sqlDB, _ := db.DB()

	bus := events.NewEventBus(lg)
	logclient.NewShipper(cfg.Services.LogsURL, cfg.Services.LogTimeout, lg).Register(bus)

	verifier := userclient.NewClient(cfg.Services.UsersURL, cfg.Services.VerifyTimeout, lg)

	expenseRepo := expensePostgres.NewExpenseRepository(db)
	reportCache := reportPostgres.NewReportCache(db)

	expenseService := expense.NewService(expenseRepo, verifier, lg)
	reportService := report.NewService(expenseRepo, reportCache, verifier, lg)

	router := chi.NewRouter()
	rest.RegisterCostsRoutes(router, sqlDB,
		expense.NewHandler(expenseService, bus),
		report.NewHandler(reportService, bus),
		lg)

	serve(cfg.Server.CostsPort, router, cfg.Server, lg, sqlDB.Close)
}
