package main

import (
	"context"
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/book-circle/lending/app"
	"github.com/Astemirdum/book-circle/lending/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	return config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lending",
		Short:         "Book lending and handoff coordination service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the stale handoff sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(loadConfig())
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Migrate(context.Background(), loadConfig())
		},
	}

	var remind bool
	stale := &cobra.Command{
		Use:   "stale-handoffs",
		Short: "List handoffs left open longer than LENDING_STALE_AFTER",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ReportStale(cmd.Context(), loadConfig(), remind, cmd.OutOrStdout())
		},
	}
	stale.Flags().BoolVar(&remind, "remind", false, "notify both parties of every stale handoff")

	root.RunE = serve.RunE
	root.AddCommand(serve, migrate, stale)
	return root
}
