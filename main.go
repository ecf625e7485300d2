package main

import (
	"context"
	"embed"
	"log"
	"time"

	"gotips/adapters/tipsdata"
	"gotips/domain/core"
	"gotips/internal"
	"gotips/internal/config"
	"gotips/internal/dataset"
	"gotips/ui"

	"github.com/joho/godotenv"
)

//go:embed ui/templates/* ui/static/*
var embeddedFiles embed.FS

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

	// The dataset is prepared before serving; a broken source is fatal.
	preparer := dataset.NewPreparer(tipsdata.NewEmbeddedSource(), logger)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := preparer.Prepare(ctx); err != nil {
		if core.IsPreparationError(err) {
			log.Fatalf("Dataset is unusable: %v", err)
		}
		log.Fatalf("Failed to prepare dataset: %v", err)
	}

	server, err := ui.NewServer(appConfig, preparer, embeddedFiles, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
