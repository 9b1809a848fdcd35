package database

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pratik0133/alumni-connect-api/pkg/config"
)

// Open connects to the configured store. A DATABASE_URL selects postgres;
// without one the service runs against a local SQLite file, which keeps
// single-node deployments and development zero-config.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	driver := "sqlite3"
	dsn := cfg.SQLitePath
	if cfg.URL != "" {
		driver = "postgres"
		dsn = cfg.URL
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
