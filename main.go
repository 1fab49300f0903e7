package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/FACorreiaa/go-dinner-planner/internal/cli"
)

// @title           Dinner Planner API
// @version         1.0
// @description     Validates dinner plan requests and relays them to the meal-planning webhook.
// @host            localhost:8000
// @BasePath        /api
func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
