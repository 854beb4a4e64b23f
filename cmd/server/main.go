package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/api"
	"github.com/techcorp/payroll-engine/internal/config"
	"github.com/techcorp/payroll-engine/internal/payroll"
	"github.com/techcorp/payroll-engine/internal/payslip"
	"github.com/techcorp/payroll-engine/internal/storage"
	"github.com/techcorp/payroll-engine/internal/timesheet"
	"github.com/techcorp/payroll-engine/internal/worker"
	"github.com/techcorp/payroll-engine/internal/workflow"
	"github.com/techcorp/payroll-engine/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
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

	logger.Info("Starting Payroll Engine",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Create document directories
	if err := os.MkdirAll(cfg.Storage.TimesheetDir, 0755); err != nil {
		logger.Fatal("Failed to create timesheet directory", zap.Error(err))
	}
	if err := os.MkdirAll(cfg.Storage.PayslipDir, 0755); err != nil {
		logger.Fatal("Failed to create payslip directory", zap.Error(err))
	}

	// Wire the pipeline
	extractor := timesheet.NewExtractor(logger)

	calculator, err := payroll.NewCalculator(cfg.Payroll.CalculatorConfig(), logger)
	if err != nil {
		logger.Fatal("Invalid pay policy configuration", zap.Error(err))
	}

	renderer := payslip.NewRenderer(payslip.Config{OutputDir: cfg.Storage.PayslipDir}, logger)

	engine := workflow.NewEngine(extractor, calculator, renderer, cfg.Company.Name, cfg.Company.Address, logger)

	batch := worker.NewBatchProcessor(engine, cfg.Worker.Concurrency, logger)

	timesheets := storage.NewTimesheetStore(cfg.Storage.TimesheetDir, logger)
	payslips := storage.NewPayslipLibrary(cfg.Storage.PayslipDir, logger)

	server := api.NewServer(api.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, timesheets, payslips, batch, logger)

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
