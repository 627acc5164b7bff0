// Command provision creates the application database and applies schema
// migrations without starting the API server. The server does the same on
// startup; this tool exists for deploy pipelines that migrate separately.
// Safe to run repeatedly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cloudnotes/api/internal/config"
	"github.com/cloudnotes/api/internal/database"
	"github.com/joho/godotenv"
)

func main() {
	url := flag.String("url", "", "Database URL (defaults to DATABASE_URL)")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	_ = godotenv.Load()

	target := *url
	if target == "" {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		target = cfg.Database.URL
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := database.EnsureDatabase(ctx, target); err != nil {
		fmt.Fprintf(os.Stderr, "Error ensuring database: %v\n", err)
		os.Exit(1)
	}
	if err := database.Migrate(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying migrations: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database provisioned and schema up to date")
}
