package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/cost-manager/internal/core/events"
	expensePostgres "github.com/frahmantamala/cost-manager/internal/expense/postgres"
	"github.com/frahmantamala/cost-manager/internal/logclient"
	"github.com/frahmantamala/cost-manager/internal/transport/rest"
	"github.com/frahmantamala/cost-manager/internal/user"
	userPostgres "github.com/frahmantamala/cost-manager/internal/user/postgres"
	"github.com/frahmantamala/cost-manager/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Start the users service",
	Run: func(cmd *cobra.Command, args []string) {
		startUsersService()
	},
}

func startUsersService() {
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

	userRepo := userPostgres.NewUserRepository(db)
	expenseRepo := expensePostgres.NewExpenseRepository(db)

	userService := user.NewService(userRepo, expenseRepo, lg)

	router := chi.NewRouter()
	rest.RegisterUsersRoutes(router, sqlDB, user.NewHandler(userService, bus), lg)

	serve(cfg.Server.UsersPort, router, cfg.Server, lg, sqlDB.Close)
}
