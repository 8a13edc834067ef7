package database

import "context"

// DB is the contract the script runner and the CLI use for a database.
// The mysql and postgres packages implement it; callers never import a
// driver package beyond construction.
type DB interface {
	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Exec runs one or more SQL statements that return no rows.
	Exec(ctx context.Context, sql string) error

	// Close releases all resources held by the connection pool.
	Close()
}
