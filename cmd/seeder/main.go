// cmd/seeder/main.go
//
// Seeds the catalog from a CSV file on disk, running the same ingestion
// pipeline the worker uses but synchronously. Useful for local
// development and for bootstrapping a fresh environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fusioncl/inventoryms/internal/adapters/db"
	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
	"github.com/fusioncl/inventoryms/internal/core/services"
	"github.com/fusioncl/inventoryms/internal/pkg/config"
	"github.com/fusioncl/inventoryms/internal/pkg/logger"
)

func main() {
	var (
		filePath = flag.String("file", "", "path to the CSV file to ingest")
		encoding = flag.String("encoding", "utf-8", "IANA charset of the file")
		migrate  = flag.Bool("migrate", true, "run database migrations before seeding")
		verbose  = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	slogger := logger.SetupLogger(level, "text")

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: seeder -file <path.csv> [-encoding utf-8] [-migrate=false]")
		os.Exit(2)
	}

	if err := run(slogger, *filePath, *encoding, *migrate); err != nil {
		slogger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(slogger *slog.Logger, filePath, encoding string, migrate bool) error {
	cfg, err := config.Load(slogger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	ctx := context.Background()

	if migrate {
		migrationConfig := &db.MigrationConfig{
			DatabaseURL: cfg.GetDatabaseURL(),
			SourcePath:  cfg.Database.MigrationPath,
			TableName:   "schema_migrations",
			SchemaName:  "public",
		}
		if err := db.RunMigrationsWithRetry(ctx, migrationConfig, slogger, 3); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
	}, slogger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	repo := db.NewCatalogRepository(database, slogger)
	catalog := services.NewCatalogService(repo, noopNotifier{}, slogger)
	importer := services.NewImportService(catalog, slogger)

	slogger.Info("seeding catalog",
		slog.String("file", filePath),
		slog.String("encoding", encoding))

	result := importer.ImportCSV(ctx, content, encoding)

	slogger.Info("seeding finished",
		slog.Int("processed", result.Processed),
		slog.Int("errors", len(result.Errors)))

	for _, rowErr := range result.Errors {
		fmt.Fprintln(os.Stderr, rowErr)
	}
	if result.Processed == 0 && len(result.Errors) > 0 {
		return fmt.Errorf("no rows ingested")
	}

	return nil
}

// noopNotifier drops low-stock events; the seeder runs without a queue.
type noopNotifier struct{}

var _ ports.Notifier = noopNotifier{}

func (noopNotifier) NotifyLowStock(ctx context.Context, event domain.LowStockEvent) {}
