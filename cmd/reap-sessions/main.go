package main

import (
	"context"
	"log"

	"github.com/ttgrab/tiktok-dl-go/internal/config"
	"github.com/ttgrab/tiktok-dl-go/internal/db"
	"github.com/ttgrab/tiktok-dl-go/internal/repository/mariadb"
	dlSvc "github.com/ttgrab/tiktok-dl-go/internal/usecase/download"
)

// One-shot cleanup of bulk sessions stranded in processing by a crashed
// run. Meant to be invoked from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	sessionRepo := mariadb.NewSessionRepository(database.DB)

	reaper := dlSvc.NewSessionReaper(sessionRepo, cfg.ReapStaleAfter, nil)
	n, err := reaper.ReapStaleSessions(context.Background())
	if err != nil {
		log.Fatalf("❌  Session reaping failed: %v", err)
	}
	log.Printf("✅  Session reaping completed, %d sessions marked failed", n)
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}
