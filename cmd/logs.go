package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/cost-manager/internal/logentry"
	logPostgres "github.com/frahmantamala/cost-manager/internal/logentry/postgres"
	"github.com/frahmantamala/cost-manager/internal/transport/rest"
	"github.com/frahmantamala/cost-manager/pkg/logger"
	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Start the logs service",
	Run: func(cmd *cobra.Command, args []string) {
		startLogsService()
	},
}

func startLogsService() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Env)
	lg := logger.L()

	db, err := sqlx.Connect("pgx", cfg.Database.Source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	logService := logentry.NewService(logPostgres.NewLogRepository(db), lg)

	router := chi.NewRouter()
	rest.RegisterLogsRoutes(router, db.DB, logentry.NewHandler(logService), lg)

	serve(cfg.Server.LogsPort, router, cfg.Server, lg, db.Close)
}
