package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"dailynews/internal/app"
	"dailynews/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (overrides CONFIG_PATH)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("FATAL: could not load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("FATAL: could not load config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: could not init app: %v", err)
	}
	if err := application.Run(); err != nil {
		log.Fatalf("FATAL: application stopped with error: %v", err)
	}
}
