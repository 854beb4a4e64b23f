// Command batch runs timesheet workbooks through the payroll pipeline from
// the command line, without the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/techcorp/payroll-engine/internal/config"
	"github.com/techcorp/payroll-engine/internal/payroll"
	"github.com/techcorp/payroll-engine/internal/payslip"
	"github.com/techcorp/payroll-engine/internal/timesheet"
	"github.com/techcorp/payroll-engine/internal/worker"
	"github.com/techcorp/payroll-engine/internal/workflow"
	"github.com/techcorp/payroll-engine/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	dir := flag.String("dir", "", "directory of .xlsx timesheets to process")
	file := flag.String("file", "", "single .xlsx timesheet to process")
	flag.Parse()

	if *dir == "" && *file == "" {
		fmt.Fprintln(os.Stderr, "usage: batch -dir <timesheet-dir> | -file <timesheet.xlsx> [-config <config.yaml>]")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
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

	extractor := timesheet.NewExtractor(logger)

	calculator, err := payroll.NewCalculator(cfg.Payroll.CalculatorConfig(), logger)
	if err != nil {
		logger.Fatal("Invalid pay policy configuration", zap.Error(err))
	}

	renderer := payslip.NewRenderer(payslip.Config{OutputDir: cfg.Storage.PayslipDir}, logger)
	engine := workflow.NewEngine(extractor, calculator, renderer, cfg.Company.Name, cfg.Company.Address, logger)
	batch := worker.NewBatchProcessor(engine, cfg.Worker.Concurrency, logger)

	ctx := context.Background()

	var report *worker.Report
	if *file != "" {
		report = batch.ProcessFiles(ctx, []string{*file})
	} else {
		report, err = batch.ProcessDir(ctx, *dir)
		if err != nil {
			logger.Fatal("Failed to scan timesheet directory", zap.Error(err))
		}
	}

	printReport(report)

	if report.Failed > 0 {
		os.Exit(1)
	}
}

func printReport(report *worker.Report) {
	fmt.Printf("\nBatch run %s\n", report.RunID)
	fmt.Printf("  Documents: %d  Succeeded: %d  Failed: %d\n", report.Total, report.Succeeded, report.Failed)
	fmt.Printf("  Total net pay: $%.2f\n\n", report.TotalNetPay)

	for _, result := range report.Results {
		if result.Error != "" {
			fmt.Printf("  FAIL %-40s %s: %s\n", result.File, result.Status, result.Error)
			continue
		}
		fmt.Printf("  OK   %-40s %s  net $%.2f  -> %s\n",
			result.File, result.EmployeeName, result.NetSalary, result.PayslipPath)
	}
}
