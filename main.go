package main

import (
	"flag"
	"log"

	"bashaway_backend/internal/app"
	"bashaway_backend/internal/config"
	"bashaway_backend/pkg/configwatcher"
	"bashaway_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", application.ReloadConfig)

	application.Run()
}
