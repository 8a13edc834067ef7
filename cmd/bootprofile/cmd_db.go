package main

import (
	"context"
	"fmt"

	"github.com/koustreak/bootprofile/internal/database"
	"github.com/koustreak/bootprofile/internal/database/mysql"
	"github.com/koustreak/bootprofile/internal/database/postgres"
	"github.com/koustreak/bootprofile/internal/errs"
	"github.com/koustreak/bootprofile/internal/profile"
	"github.com/spf13/cobra"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Work with the database the profile selects",
	}
	cmd.AddCommand(newDBPingCmd(a), newDBInitCmd(a))
	return cmd
}

func newDBPingCmd(a *app) *cobra.Command {
	var params paramFlags

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the selected database is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dc, err := a.databaseConfig(&params)
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), dc)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s at %s/%s is reachable\n", dc.Driver, dc.Addr(), dc.Database)
			return nil
		},
	}

	params.register(cmd)
	return cmd
}

func newDBInitCmd(a *app) *cobra.Command {
	var (
		params     paramFlags
		scriptRoot string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Run the drop, create and insert scripts against the selected database",
		Long: `Run <scripts>/<db>/drop.sql, create.sql and insert.sql in that order,
the same scripts the resolved profile points the schema generator at.
Without --db the application default, PostgreSQL, is initialised from
<scripts>/postgres.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dc, err := a.databaseConfig(&params)
			if err != nil {
				return err
			}

			root := a.cfg.Database.ScriptRoot
			if scriptRoot != "" {
				root = scriptRoot
			}
			scripts, err := database.LoadScripts(root, dc.Driver.ScriptDir())
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), dc)
			if err != nil {
				return err
			}
			defer db.Close()

			log := a.log.With().Str("driver", string(dc.Driver)).Str("database", dc.Database).Logger()
			if err := database.ApplyScripts(cmd.Context(), db, scripts, log); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %d scripts from %s\n", len(scripts.List), scripts.Dir)
			return nil
		},
	}

	params.register(cmd)
	cmd.Flags().StringVar(&scriptRoot, "scripts", "", "script root directory (default from config)")
	return cmd
}

// databaseConfig resolves the parameters and derives connection settings
// from the resolved datasource URL.
func (a *app) databaseConfig(params *paramFlags) (*database.Config, error) {
	cfg, err := params.resolve(a.cfg.ProjectInfo())
	if err != nil {
		return nil, err
	}

	url := cfg.Get(profile.KeyDatasourceURL)
	if url == "" {
		a.log.Warnf("no database selector given, using the %s default", database.DriverPostgres)
	}
	dc, err := a.cfg.DatabaseFor(url)
	if err != nil {
		return nil, err
	}
	a.log.Debugf("datasource %s at %s/%s", dc.Driver, dc.Addr(), dc.Database)
	return dc, nil
}

func openDatabase(ctx context.Context, dc *database.Config) (database.DB, error) {
	switch dc.Driver {
	case database.DriverMySQL:
		return mysql.New(ctx, dc)
	case database.DriverPostgres:
		return postgres.New(ctx, dc)
	default:
		return nil, errs.Newf(errs.ErrKindInvalidInput, "no database driver available for %s", dc.Driver)
	}
}
