package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/m04kA/SMC-StudioBooking/internal/config"
	"github.com/m04kA/SMC-StudioBooking/migrations"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	action := migrations.ActionUp
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level, logger.WithConsole())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Running migrations %q on %s:%d/%s", action, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := migrations.Run(cfg.Database.URL(), action, log); err != nil {
		log.Fatal("Migrations failed: %v", err)
	}
}
