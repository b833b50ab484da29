package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/cmd/cli/commands"
	"github.com/rfogaca/vigia/internal/config"
	"github.com/rfogaca/vigia/pkg/db/memstore"
	"github.com/rfogaca/vigia/pkg/postgres"
	"github.com/rfogaca/vigia/pkg/utils/logging"
)

var (
	memory     bool
	configPath string
	pg         *postgres.DB

	// Commands capture app at construction; initApp fills it in before any
	// RunE executes.
	app = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vigia",
		Short: "Vigia CLI - Manage guard shift schedules",
		Long:  `A CLI tool for managing guard shift schedules, allocations, swap requests and time banks.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pg != nil {
				pg.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&memory, "memory", false, "Use the in-memory store instead of Postgres (development only)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (defaults to vigia_config.yaml lookup)")

	rootCmd.AddCommand(commands.GenerateShiftsCmd(app))
	rootCmd.AddCommand(commands.AutoFillCmd(app))
	rootCmd.AddCommand(commands.AllocateCmd(app))
	rootCmd.AddCommand(commands.DeallocateCmd(app))
	rootCmd.AddCommand(commands.PlaceShiftCmd(app))
	rootCmd.AddCommand(commands.RequestSwapCmd(app))
	rootCmd.AddCommand(commands.RespondSwapCmd(app))
	rootCmd.AddCommand(commands.ListSwapsCmd(app))
	rootCmd.AddCommand(commands.ViewScheduleCmd(app))
	rootCmd.AddCommand(commands.MyScheduleCmd(app))
	rootCmd.AddCommand(commands.SummaryCmd(app))
	rootCmd.AddCommand(commands.TimeBankCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the store
func initApp() error {
	var err error

	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger("cli")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	if memory {
		app.Logger.Warn("Using the in-memory store, nothing will be persisted")
		app.Database = memstore.New()
		return nil
	}

	app.Logger.Info("Connecting to database")
	pg, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pg.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database initialized successfully", zap.String("store", "postgres"))

	app.Database = pg
	return nil
}
