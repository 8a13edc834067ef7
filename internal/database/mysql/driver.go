// Package mysql implements database.DB on go-sql-driver/mysql.
package mysql

import (
	"context"
	"database/sql"

	"github.com/koustreak/bootprofile/internal/database"
	"github.com/koustreak/bootprofile/internal/errs"
)

// Driver is a MySQL implementation of database.DB backed by database/sql.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	db *sql.DB
}

// New opens a MySQL connection pool using the provided Config and returns a Driver.
// It calls Ping to validate the connection before returning.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid DSN", err)
	}

	db.SetMaxOpenConns(withDefault(int(cfg.MaxConns), defaultMaxOpenConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	d := &Driver{db: db}

	pingCtx, cancel := context.WithTimeout(ctx, withDefaultDuration(cfg.ConnectTimeout))
	defer cancel()

	if err := d.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return d, nil
}

// --- database.DB implementation ---

func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Exec runs statements; the DSN enables multiStatements so a whole script
// can be sent at once.
func (d *Driver) Exec(ctx context.Context, query string) error {
	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return mapError(err, "exec failed")
	}
	return nil
}

func (d *Driver) Close() {
	_ = d.db.Close()
}
