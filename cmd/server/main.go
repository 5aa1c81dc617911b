package main

import (
	"log"

	"github.com/joho/godotenv"

	"salesboard/internal/config"
	"salesboard/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := ui.NewApp(cfg)
	log.Printf("Starting salesboard on http://localhost:%s", cfg.Server.Port)
	log.Fatal(app.Start())
}
