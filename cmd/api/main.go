package main

import (
	"context"
	"log"

	"gotips/adapters/tipsdata"
	"gotips/internal"
	"gotips/internal/analysis"
	"gotips/internal/api"
	"gotips/internal/config"
	"gotips/internal/dataset"

	"github.com/joho/godotenv"
)

// Standalone JSON API without the HTML dashboard or sessions.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.DefaultLogger
	logger.SetLevel(internal.ParseLogLevel(appConfig.LogLevel))

	preparer := dataset.NewPreparer(tipsdata.NewEmbeddedSource(), logger)
	if _, err := preparer.Prepare(context.Background()); err != nil {
		log.Fatalf("Failed to prepare dataset: %v", err)
	}

	server := api.New(api.Config{
		Tables: preparer,
		Options: analysis.Options{
			TopN:          appConfig.Dashboard.TopN,
			HistogramBins: appConfig.Dashboard.HistogramBins,
		},
		Logger:         logger,
		RequestLogging: true,
	})
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
