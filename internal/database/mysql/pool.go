package mysql

import (
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/koustreak/bootprofile/internal/database"
)

const (
	defaultMaxOpenConns   = 2
	defaultConnectTimeout = 10 * time.Second
)

// buildDSN constructs the go-sql-driver DSN, e.g.
// user:pass@tcp(localhost:3306)/filiale?multiStatements=true&parseTime=true
func buildDSN(cfg *database.Config) string {
	mc := gomysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.MultiStatements = true
	mc.Timeout = withDefaultDuration(cfg.ConnectTimeout)
	return mc.FormatDSN()
}

func withDefault(val, def int) int {
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
