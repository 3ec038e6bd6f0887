package main

import (
	"attractions-walker/internal/adapters/repositories"
	"attractions-walker/internal/config"
	"attractions-walker/internal/platform/db"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
)

// dbtool prepares the walk log schema ahead of deployment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	sqlite := flag.Bool("sqlite", false, "initialize the local SQLite walk log at DB_PATH instead of Postgres")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *sqlite {
		dbPath := config.Get("DB_PATH", "data/walks.db")
		conn, err := db.OpenSqlite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := initSchema(conn, func() error { return repositories.InitSchema(conn) }); err != nil {
			log.Fatal(err)
		}
		return
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initSchema(conn, func() error { return repositories.InitPostgresSchema(ctx, conn) }); err != nil {
		log.Fatal(err)
	}
}

func initSchema(conn *sql.DB, apply func() error) error {
	log.Println("Initializing walk log schema...")
	if err := apply(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM walk_log").Scan(&n); err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}
	log.Printf("Schema ready. walk_log rows=%d", n)

	return nil
}
