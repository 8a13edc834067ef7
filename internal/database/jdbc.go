package database

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/koustreak/bootprofile/internal/errs"
)

var jdbcPrefixes = []struct {
	prefix string
	driver Driver
}{
	{"jdbc:mysql://", DriverMySQL},
	{"jdbc:postgresql://", DriverPostgres},
	{"jdbc:oracle:thin:@", DriverOracle},
}

// ConfigFromURL translates a JDBC URL into a Config with DefaultConfig pool
// settings. Supported forms:
//
//	jdbc:mysql://host[:port]/database
//	jdbc:postgresql://host[:port]/database
//	jdbc:oracle:thin:@[//]host[:port]/service
func ConfigFromURL(jdbcURL, user, password string) (*Config, error) {
	for _, p := range jdbcPrefixes {
		rest, ok := strings.CutPrefix(jdbcURL, p.prefix)
		if !ok {
			continue
		}
		if p.driver == DriverOracle {
			rest = strings.TrimPrefix(rest, "//")
		}

		u, err := url.Parse("db://" + rest)
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid JDBC URL "+strconv.Quote(jdbcURL), err)
		}

		cfg := DefaultConfig()
		cfg.Driver = p.driver
		cfg.Host = u.Hostname()
		cfg.Database = strings.TrimPrefix(u.Path, "/")
		cfg.User = user
		cfg.Password = password

		if port := u.Port(); port != "" {
			n, err := strconv.Atoi(port)
			if err != nil {
				return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid port in JDBC URL "+strconv.Quote(jdbcURL), err)
			}
			cfg.Port = n
		}

		if cfg.Host == "" || cfg.Database == "" {
			return nil, errs.Newf(errs.ErrKindInvalidInput, "JDBC URL %q needs a host and a database", jdbcURL)
		}
		return cfg, nil
	}

	return nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported JDBC URL %q", jdbcURL)
}
