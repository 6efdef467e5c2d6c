package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/dreamshare/dreams-backend/dreamservice"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	_ = godotenv.Load()

	if err := dreamservice.Run(); err != nil {
		os.Exit(1)
	}
}
