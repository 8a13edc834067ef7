package database

import (
	"net"
	"strconv"
	"time"
)

// Driver identifies the database engine.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
	DriverOracle   Driver = "oracle"
)

// DefaultPort returns the engine's standard listening port.
func (d Driver) DefaultPort() int {
	switch d {
	case DriverMySQL:
		return 3306
	case DriverOracle:
		return 1521
	default:
		return 5432
	}
}

// ScriptDir is the directory holding the engine's drop/create/insert scripts.
func (d Driver) ScriptDir() string {
	return string(d)
}

// Config holds all settings needed to connect to and pool a database.
type Config struct {
	// Driver is the database engine (e.g. DriverMySQL).
	Driver Driver

	Host     string
	Port     int // 0 means Driver.DefaultPort
	Database string
	User     string
	Password string

	// Pool tuning
	MaxConns        int32         // maximum number of connections in the pool
	MinConns        int32         // minimum number of idle connections kept alive
	MaxConnLifetime time.Duration // maximum time a connection may be reused
	MaxConnIdleTime time.Duration // maximum time a connection may sit idle

	// ConnectTimeout bounds establishing a connection and the initial ping.
	ConnectTimeout time.Duration
}

// DefaultConfig returns pool settings sized for a one-shot tooling run:
// a couple of connections, short lifetimes.
func DefaultConfig() *Config {
	return &Config{
		Driver:          DriverPostgres,
		Host:            "localhost",
		MaxConns:        2,
		MinConns:        0,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
}

// Addr returns host:port, filling in the driver's default port.
func (c *Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = c.Driver.DefaultPort()
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}
