// Command seed drops and recreates the schema, then loads the development
// data set.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/music-request-api/internal/config"
	"github.com/iliyamo/music-request-api/internal/database"
)

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if cfg.DBDriver == database.DriverSQLite && cfg.DBPath == "" {
		log.Fatal("seed: set DB_PATH, an in-memory database would be discarded on exit")
	}

	db, err := database.Open(cfg.DatabaseOptions())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Reset(ctx, db, cfg.DBDriver); err != nil {
		log.Fatalf("reset: %v", err)
	}
	data := database.SampleData()
	if err := database.Seed(ctx, db, data, cfg.BcryptCost); err != nil {
		log.Fatalf("seed: %v", err)
	}
	slog.Info("seeded",
		"users", len(data.Users),
		"sessions", len(data.Sessions),
		"requests", len(data.Requests),
		"comments", len(data.Comments))
}
