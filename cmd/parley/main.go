package main

import (
	"os"

	"github.com/joho/godotenv"

	"parley/cmd/parley/commands"
)

func main() {
	// Optional .env for PARLEY_* settings; absence is fine.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
