package cmd

import (
	"fmt"
	"os"

	"github.com/frahmantamala/cost-manager/internal/about"
	"github.com/frahmantamala/cost-manager/internal/transport/rest"
	"github.com/frahmantamala/cost-manager/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Start the admin service",
	Run: func(cmd *cobra.Command, args []string) {
		startAdminService()
	},
}

func startAdminService() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Env)
	lg := logger.L()

	router := chi.NewRouter()
	rest.RegisterAdminRoutes(router, about.NewHandler(), lg)

	serve(cfg.Server.AdminPort, router, cfg.Server, lg)
}
