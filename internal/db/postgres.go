package db

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB is the shared sqlx handle for the read-path repositories.
var DB *sqlx.DB

// dsnFromEnv assembles the Postgres connection string from the PG_* variables.
// Both the sqlx and the GORM connections use the same database.
func dsnFromEnv() string {
	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
}

// InitPostgres connects sqlx to Postgres, retrying while the database comes up
// (compose starts the app and the database together).
func InitPostgres() error {
	dsn := dsnFromEnv()

	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("postgres unreachable after retries: %w", err)
}
