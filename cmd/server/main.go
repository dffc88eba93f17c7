package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "property-service",
		Short:         "Property listing and enquiry API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and gRPC health server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "ensure-indexes",
			Short: "Create MongoDB indexes and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return ensureIndexes(cmd.Context())
			},
		},
	)
	return root
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	appLogger := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputFile: cfg.LogOutputFile,
	}).Named(cfg.ServiceName)
	return cfg, appLogger, nil
}

func ensureIndexes(ctx context.Context) error {
	cfg, appLogger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Sync() }()

	client, err := mongodb.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer disconnect(client, appLogger)

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := mongodb.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
		return err
	}
	appLogger.Info("MongoDB indexes ensured", zap.String("database", cfg.MongoDatabase))
	return nil
}
