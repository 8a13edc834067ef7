package postgres

import (
	"context"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/koustreak/bootprofile/internal/database"
	"github.com/koustreak/bootprofile/internal/errs"
)

const (
	defaultMaxConns       = 2
	defaultConnectTimeout = 10 * time.Second
)

// buildPool creates a pgxpool from the given config
func buildPool(ctx context.Context, cfg *database.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(buildDSN(cfg))
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid postgres config", err)
	}

	poolCfg.MaxConns = withDefault(cfg.MaxConns, defaultMaxConns)
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.ConnConfig.ConnectTimeout = withDefaultDuration(cfg.ConnectTimeout)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, mapError(err, "failed to create connection pool")
	}

	return pool, nil
}

// buildDSN constructs the postgres connection URL,
// e.g. postgres://filiale:p@localhost:5432/filiale?sslmode=disable
func buildDSN(cfg *database.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Addr(),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {"disable"}}.Encode(),
	}
	return u.String()
}

// withDefault returns val if non-zero, otherwise returns def
func withDefault(val, def int32) int32 {
	if val == 0 {
		return def
	}
	return val
}

func withDefaultDuration(d time.Duration) time.Duration {
	if d == 0 {
		return defaultConnectTimeout
	}
	return d
}
