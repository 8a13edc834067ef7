package main

import (
	"github.com/koustreak/bootprofile/internal/profile"
	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		params paramFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "resolve [run|test|image]",
		Short: "Print the resolved profile",
		Long: `Resolve the build parameters and print the result. Without a task the
plain resolved configuration is printed; with a task, the properties,
JVM arguments and environment that task receives.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: taskNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := profile.ParseFormat(output)
			if err != nil {
				return err
			}

			var task string
			if len(args) == 1 {
				task = args[0]
			}

			tp, err := params.taskProfile(a.cfg.ProjectInfo(), task)
			if err != nil {
				a.log.ErrorWith("resolve failed", err, map[string]any{"db": params.DB, "task": task})
				return err
			}

			a.log.With().
				Str("task", task).
				Bool("tls", tp.Properties.Get(profile.KeySSLEnabled) == "true").
				Int("properties", tp.Properties.Len()).
				Logger().
				Debug("profile resolved")
			return profile.Render(cmd.OutOrStdout(), tp, format)
		},
	}

	params.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", string(profile.FormatProperties), "output format: properties, json, yaml, jvm, env")

	return cmd
}
