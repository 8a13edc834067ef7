package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/koustreak/bootprofile/internal/database"
	"github.com/koustreak/bootprofile/internal/filestore"
	"github.com/koustreak/bootprofile/internal/logger"
	"github.com/koustreak/bootprofile/internal/profile"
	"github.com/spf13/viper"
)

// Config represents the root configuration structure
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Project   ProjectConfig   `mapstructure:"project"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Filestore FilestoreConfig `mapstructure:"filestore"`
}

// LogConfig controls the CLI's own logging.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// ProjectConfig identifies the application whose profiles are resolved.
type ProjectConfig struct {
	Name            string `mapstructure:"name"`
	Version         string `mapstructure:"version"`
	ImageRepository string `mapstructure:"image_repository"`
}

// ServerConfig holds the HTTP listener settings for `bootprofile serve`.
type ServerConfig struct {
	Listen          string        `mapstructure:"listen"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds credentials for the database tooling. The URL itself
// comes from the resolved profile, except for the application default.
type DatabaseConfig struct {
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	PostgresURL    string        `mapstructure:"postgres_url"`
	ScriptRoot     string        `mapstructure:"script_root"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// FilestoreConfig holds the object storage target for `bootprofile publish`.
type FilestoreConfig struct {
	Endpoint   string        `mapstructure:"endpoint"`
	AccessKey  string        `mapstructure:"access_key"`
	SecretKey  string        `mapstructure:"secret_key"`
	UseSSL     bool          `mapstructure:"use_ssl"`
	Region     string        `mapstructure:"region"`
	Bucket     string        `mapstructure:"bucket"`
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

// LoadConfig loads configuration from bootprofile.yaml in
// $HOME/.config/bootprofile or the working directory, plus BOOTPROFILE_*
// environment variables. A missing file is not an error.
func LoadConfig() (*Config, error) {
	v := newViper()
	v.SetConfigName("bootprofile")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/bootprofile")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadConfigFromPath loads configuration from an explicit file path.
func LoadConfigFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BOOTPROFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	applyDefaults(v)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	project := profile.DefaultProject()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("project.name", project.Name)
	v.SetDefault("project.version", project.Version)
	v.SetDefault("project.image_repository", project.ImageRepository)

	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.user", "filiale")
	v.SetDefault("database.password", "p")
	v.SetDefault("database.postgres_url", "jdbc:postgresql://localhost/filiale")
	v.SetDefault("database.script_root", "./src/main/resources")
	v.SetDefault("database.connect_timeout", "10s")

	v.SetDefault("filestore.endpoint", "localhost:9000")
	v.SetDefault("filestore.access_key", "minioadmin")
	v.SetDefault("filestore.secret_key", "minioadmin")
	v.SetDefault("filestore.use_ssl", false)
	v.SetDefault("filestore.region", "")
	v.SetDefault("filestore.bucket", "build-profiles")
	v.SetDefault("filestore.presign_ttl", "24h")
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if !logger.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", cfg.Log.Format)
	}

	if cfg.Project.Name == "" {
		return fmt.Errorf("project.name cannot be empty")
	}
	if cfg.Project.Version == "" {
		return fmt.Errorf("project.version cannot be empty")
	}

	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen cannot be empty")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", cfg.Server.ShutdownTimeout)
	}

	if cfg.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("database.connect_timeout must be positive, got %v", cfg.Database.ConnectTimeout)
	}

	if cfg.Filestore.Bucket == "" {
		return fmt.Errorf("filestore.bucket cannot be empty")
	}
	if cfg.Filestore.PresignTTL < 0 || cfg.Filestore.PresignTTL > 7*24*time.Hour {
		return fmt.Errorf("filestore.presign_ttl must be between 0 and 168h, got %v", cfg.Filestore.PresignTTL)
	}

	return nil
}

// ProjectInfo converts the project section for the resolver.
func (c *Config) ProjectInfo() profile.Project {
	return profile.Project{
		Name:            c.Project.Name,
		Version:         c.Project.Version,
		ImageRepository: c.Project.ImageRepository,
	}
}

// LoggerConfig converts the log section for the logger package.
func (c *Config) LoggerConfig() *logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	lc.File = c.Log.File
	lc.MaxSizeMB = c.Log.MaxSizeMB
	lc.MaxBackups = c.Log.MaxBackups
	return lc
}

// FilestoreConfig converts the filestore section for the filestore package.
func (c *Config) FilestoreConfig() *filestore.Config {
	fc := filestore.DefaultConfig(c.Filestore.Endpoint, c.Filestore.AccessKey, c.Filestore.SecretKey)
	fc.UseSSL = c.Filestore.UseSSL
	fc.Region = c.Filestore.Region
	fc.Bucket = c.Filestore.Bucket
	fc.PresignTTL = c.Filestore.PresignTTL
	return fc
}

// DatabaseFor returns connection settings for a resolved datasource URL.
// An empty URL means no selector was given and the application default,
// PostgreSQL, is used.
func (c *Config) DatabaseFor(jdbcURL string) (*database.Config, error) {
	if jdbcURL == "" {
		jdbcURL = c.Database.PostgresURL
	}
	dc, err := database.ConfigFromURL(jdbcURL, c.Database.User, c.Database.Password)
	if err != nil {
		return nil, err
	}
	dc.ConnectTimeout = c.Database.ConnectTimeout
	return dc, nil
}
