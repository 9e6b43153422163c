package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"hrboard/internal/app/server"
)

func main() {
	// Local development convenience; production sets real env vars.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	server.Run()
}
