package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
)

// New opens the pgx-backed handle shared by every store, sized from the DB pool settings.
// The caller owns it and must Close it.
func New(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return open(ctx, "pgx", cfg.ConnectionString(), cfg)
}

func open(ctx context.Context, driver, dsn string, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DB.ConnMaxIdleTime)

	if cfg.DB.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DB.ConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database %s: %w", cfg.DB.Name, err)
	}

	return db, nil
}
