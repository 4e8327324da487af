package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studentadmin/coordinator"
	"studentadmin/journal"
	"studentadmin/parser"
	"studentadmin/remote"
)

func newDeleteCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "delete [student-id...]",
		Short: "Delete one or more students",
		Long: `Delete students on the backend.

A single id is deleted on its own. Several ids are deleted concurrently and
followed by one summary; when STUDENTCTL_JOURNAL is set the batch report is
appended to that file. Use --file to read ids from a file, or "-" for stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ids := append([]string(nil), args...)
			if file != "" {
				fromFile, err := readIDs(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				ids = append(ids, fromFile...)
			}
			if len(ids) == 0 {
				return errors.New("no student ids given")
			}

			ctx := cmd.Context()
			sink, release, err := a.buildSink(ctx, cfg)
			if err != nil {
				return err
			}
			defer release()

			client := remote.New(cfg.APIURL,
				remote.WithToken(cfg.APIToken),
				remote.WithTimeout(cfg.Timeout),
				remote.WithUserAgent("studentctl/"+version),
			)
			c := coordinator.New(client, sink, coordinator.WithLogger(a.logger))

			if len(ids) == 1 {
				if !c.DeleteOne(ctx, ids[0]) {
					return errNotAllDeleted
				}
				return nil
			}

			report := c.DeleteManyReport(ctx, ids)
			if cfg.JournalPath != "" {
				if err := journal.New(cfg.JournalPath).Append(report); err != nil {
					a.logger.Error("journal append failed", zap.String("path", cfg.JournalPath), zap.Error(err))
				}
			}
			if !report.OK {
				return errNotAllDeleted
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `read student ids from a file ("-" for stdin)`)
	return cmd
}

func readIDs(stdin io.Reader, path string) ([]string, error) {
	if path == "-" {
		return parser.ParseIDs(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open id file: %w", err)
	}
	defer f.Close()
	return parser.ParseIDs(f)
}
