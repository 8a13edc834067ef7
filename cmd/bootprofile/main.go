package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/koustreak/bootprofile/internal/config"
	"github.com/koustreak/bootprofile/internal/errs"
	"github.com/koustreak/bootprofile/internal/logger"
	"github.com/spf13/cobra"
)

// Version info (set by ldflags)
var version = "dev"

// app carries what every subcommand needs once the root command has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *logger.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(errs.ExitCode(err))
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "bootprofile",
		Short: "Resolve build profiles for the filiale service",
		Long: `bootprofile turns the sparse build parameters db, tls, port, fork and tag
into the complete configuration handed to the launcher, the test runner
and the image builder.

Examples:
  bootprofile resolve --db mysql --tls false
  bootprofile resolve test --db oracle --fork 4 -o jvm
  bootprofile db init --db mysql
  bootprofile publish image --tag 1.1.0
  bootprofile serve --listen :8080`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.log != nil {
				return a.log.Close()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file path (default ~/.config/bootprofile/bootprofile.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: console or json")

	rootCmd.AddCommand(
		newResolveCmd(a),
		newServeCmd(a),
		newDBCmd(a),
		newPublishCmd(a),
	)

	return rootCmd
}

// init loads configuration and builds the logger. Flags win over the file.
func (a *app) init() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadConfigFromPath(a.configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(cfg.LoggerConfig())
	return nil
}
