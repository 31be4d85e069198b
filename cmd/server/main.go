package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/NamanGarg4/procurement/internal/application/dispatcher"
	"github.com/NamanGarg4/procurement/internal/application/service"
	"github.com/NamanGarg4/procurement/internal/config"
	"github.com/NamanGarg4/procurement/internal/domain/event"
	"github.com/NamanGarg4/procurement/internal/export"
	"github.com/NamanGarg4/procurement/internal/i18n"
	"github.com/NamanGarg4/procurement/internal/infrastructure/persistence/repository"
	httpserver "github.com/NamanGarg4/procurement/internal/interfaces/http"
	"github.com/NamanGarg4/procurement/pkg/database"
	"github.com/NamanGarg4/procurement/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting procurement list-view service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	kvLogger := utils.NewKVLogger(logger)

	// Repositories
	quotationRepo := repository.NewSupplierQuotationRepository(db.DB, logger)
	orderRepo := repository.NewPurchaseOrderRepository(db.DB, logger)
	rfqRepo := repository.NewRFQRepository(db.DB, logger)

	// Domain events: log every status change
	events := dispatcher.NewDispatcher(kvLogger)
	events.Subscribe(event.TypeStatusChanged, "status-change-log", func(ctx context.Context, evt *event.Event) error {
		kvLogger.Info("Document status changed",
			"doctype", evt.Doctype,
			"doc", evt.DocName,
			"old_status", evt.GetPayloadString("old_status"),
			"new_status", evt.GetPayloadString("new_status"))
		return nil
	})
	defer events.Close()

	// Translation catalog for indicator labels
	translator := i18n.NewCatalog(cfg.I18n.Lang, cfg.I18n.Messages)

	// Services
	listViewService := service.NewListViewService(quotationRepo, orderRepo, translator, kvLogger)
	quotationService := service.NewQuotationService(quotationRepo, events, kvLogger)
	orderService := service.NewOrderService(orderRepo, quotationRepo, rfqRepo, events, kvLogger)
	exporter := export.NewExcelExporter(logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		DefaultPageSize: cfg.List.DefaultPageSize,
		MaxPageSize:     cfg.List.MaxPageSize,
	}, listViewService, quotationService, orderService, exporter, kvLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}
