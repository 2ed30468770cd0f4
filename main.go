package main

import (
	"fmt"
	"os"

	"robot-order-bot/artifacts"
	"robot-order-bot/bot/robotspare"
	"robot-order-bot/config"
	"robot-order-bot/orders"
	"robot-order-bot/services"
	"robot-order-bot/storage"
	"robot-order-bot/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Robot Order Bot starting ===")
	logger.Info("Config — slow-mo: %dms | submit attempts: %d | headless: %v",
		cfg.SlowMoMs, cfg.SubmitMaxAttempts, cfg.Headless)

	if err := orders.Download(cfg.OrdersCSVURL, cfg.OrdersCSVPath); err != nil {
		logger.Error("Orders download failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Orders file saved to %s", cfg.OrdersCSVPath)

	rows, err := orders.ReadFile(cfg.OrdersCSVPath)
	if err != nil {
		logger.Error("Orders parse failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Parsed %d order rows", len(rows))

	validator := services.NewValidator(logger)
	orderList := validator.Validate(rows)

	if len(orderList) == 0 {
		logger.Error("No submittable orders after validation. Exiting.")
		os.Exit(1)
	}

	orderBot := robotspare.New(cfg, logger)
	results, err := orderBot.Run(orderList)
	if err != nil {
		logger.Error("Order run aborted: %v", err)
	}

	if len(results) == 0 {
		logger.Error("No orders were processed. Exiting.")
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.ResultsCSVPath)
	if err != nil {
		logger.Error("Failed to create results CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	if err := csvWriter.Write(results); err != nil {
		logger.Error("Results CSV write failed: %v", err)
	} else {
		logger.Info("Results saved to %s", cfg.ResultsCSVPath)
	}

	if cfg.StoreResults {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("PostgreSQL unavailable, results not stored in DB: %v", err)
		} else {
			defer pgWriter.Close()
			if err := pgWriter.Write(results); err != nil {
				logger.Error("PostgreSQL write failed: %v", err)
			} else {
				logger.Info("Results stored in PostgreSQL (table: order_results)")
			}
		}
	}

	if err := artifacts.ZipDirectory(cfg.ReceiptsDir, cfg.ArchivePath); err != nil {
		logger.Error("Receipt archival failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Receipts archived to %s", cfg.ArchivePath)

	if err := artifacts.Cleanup(cfg.ReceiptsDir, cfg.ScreenshotsDir); err != nil {
		logger.Error("Cleanup failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Intermediate directories removed")

	summarySvc := services.NewSummaryService(logger)
	report := summarySvc.Generate(results)
	summarySvc.Print(report)

	fmt.Printf("  Done. Archive → %s | Results → %s\n\n",
		cfg.ArchivePath, cfg.ResultsCSVPath)
}
