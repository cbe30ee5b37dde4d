package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Register the "postgres" database/sql driver
)

// NewSQLConnection opens a database/sql pool on the lib/pq driver, for
// deployments that pin DB_DRIVER=pq.
func NewSQLConnection(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
