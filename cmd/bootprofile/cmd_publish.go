package main

import (
	"bytes"
	"fmt"

	"github.com/koustreak/bootprofile/internal/filestore"
	"github.com/koustreak/bootprofile/internal/filestore/minio"
	"github.com/koustreak/bootprofile/internal/profile"
	"github.com/spf13/cobra"
)

func newPublishCmd(a *app) *cobra.Command {
	var (
		params paramFlags
		output string
		bucket string
	)

	cmd := &cobra.Command{
		Use:   "publish [run|test|image]",
		Short: "Upload the rendered profile to object storage",
		Long: `Render the profile and upload it to <bucket>/<project>/<tag>/<task>.<ext>.
Prints a presigned download URL for CI jobs that fetch it later.`,
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

			project := a.cfg.ProjectInfo()
			tp, err := params.taskProfile(project, task)
			if err != nil {
				return err
			}

			var body bytes.Buffer
			if err := profile.Render(&body, tp, format); err != nil {
				return err
			}
			a.log.DebugWith("profile rendered", map[string]any{"format": string(format), "bytes": body.Len()})

			fc := a.cfg.FilestoreConfig()
			if bucket != "" {
				fc.Bucket = bucket
			}

			store, err := minio.New(cmd.Context(), fc)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := filestore.Publish(cmd.Context(), store, filestore.PublishRequest{
				Bucket:      fc.Bucket,
				Key:         filestore.ObjectKey(project.Name, params.tag(project), task, format.Extension()),
				Body:        body.Bytes(),
				ContentType: format.ContentType(),
				TTL:         fc.PresignTTL,
			})
			if err != nil {
				return err
			}

			a.log.InfoWith("profile published", map[string]any{
				"bucket": res.Bucket,
				"key":    res.Info.Key,
				"size":   res.Info.Size,
				"etag":   res.Info.ETag,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s/%s\n", res.Bucket, res.Info.Key)
			if res.URL != "" {
				fmt.Fprintln(out, res.URL)
			}
			return nil
		},
	}

	params.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", string(profile.FormatProperties), "output format: properties, json, yaml, jvm, env")
	cmd.Flags().StringVar(&bucket, "bucket", "", "target bucket (default from config)")
	return cmd
}
