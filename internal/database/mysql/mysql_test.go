package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/koustreak/bootprofile/internal/database"
	"github.com/koustreak/bootprofile/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverRegistered(t *testing.T) {
	assert.Contains(t, sql.Drivers(), "mysql")
}

func TestBuildDSN(t *testing.T) {
	cfg, err := database.ConfigFromURL("jdbc:mysql://localhost/filiale", "filiale", "p")
	require.NoError(t, err)
	cfg.ConnectTimeout = 5 * time.Second

	dsn := buildDSN(cfg)

	parsed, err := gomysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "filiale", parsed.User)
	assert.Equal(t, "p", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "localhost:3306", parsed.Addr)
	assert.Equal(t, "filiale", parsed.DBName)
	assert.True(t, parsed.MultiStatements)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, 5*time.Second, parsed.Timeout)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind errs.ErrKind
	}{
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout},
		{"wrapped cancel", fmt.Errorf("x: %w", context.Canceled), errs.ErrKindTimeout},
		{"access denied", &gomysql.MySQLError{Number: errAccessDenied, Message: "denied"}, errs.ErrKindPermissionDenied},
		{"unknown database", &gomysql.MySQLError{Number: errUnknownDatabase}, errs.ErrKindConnectionFailed},
		{"syntax", &gomysql.MySQLError{Number: errParse}, errs.ErrKindQueryFailed},
		{"network", errors.New("dial tcp: connection refused"), errs.ErrKindConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "exec failed")
			require.NotNil(t, got)
			assert.Equal(t, tt.kind, got.Kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, mapError(nil, "nothing"))
}
