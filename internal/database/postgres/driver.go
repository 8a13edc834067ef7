// Package postgres implements database.DB on pgx/v5.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/koustreak/bootprofile/internal/database"
)

// Driver is a PostgreSQL implementation of database.DB backed by pgxpool.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL using the provided Config and returns a Driver.
// It calls Ping to validate the connection before returning.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	pool, err := buildPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	d := &Driver{pool: pool}

	pingCtx, cancel := context.WithTimeout(ctx, withDefaultDuration(cfg.ConnectTimeout))
	defer cancel()

	if err := d.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return d, nil
}

// --- database.DB implementation ---

// Ping verifies the database is reachable by acquiring and releasing a connection.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Exec runs statements. Without arguments pgx uses the simple protocol,
// which accepts a whole script in one call.
func (d *Driver) Exec(ctx context.Context, sql string) error {
	if _, err := d.pool.Exec(ctx, sql); err != nil {
		return mapError(err, "exec failed")
	}
	return nil
}

// Close drains the connection pool.
func (d *Driver) Close() {
	d.pool.Close()
}
