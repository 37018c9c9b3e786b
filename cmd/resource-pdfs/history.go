// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resource-pdfs/internal/manifest"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded generation runs",
	Long: `History lists the runs recorded in the manifest, newest first. Given a run
id it lists the documents that run wrote, with page counts and digests.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Manifest == "" {
			return errors.New("no manifest configured: pass --manifest or set manifest in the config file")
		}

		store, err := manifest.Open(cfg.Manifest)
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			docs, err := store.Documents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				return fmt.Errorf("run %s not found", args[0])
			}
			for _, d := range docs {
				if d.Error != "" {
					fmt.Fprintf(out, "FAIL  %-22s  %s\n", d.TemplateID, d.Error)
					continue
				}
				digest := d.SHA256
				if digest == "" {
					digest = "no digest: " + d.DigestError
				}
				fmt.Fprintf(out, "ok    %-22s  %d page(s)  %8d bytes  %s\n", d.TemplateID, d.Pages, d.Bytes, digest)
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.Runs(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded.")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-20s  %-9s  %-6s  %s\n", "Run", "Started", "Generated", "Failed", "Output")
		fmt.Fprintln(out, strings.Repeat("-", 100))
		for _, r := range runs {
			fmt.Fprintf(out, "%-36s  %-20s  %-9d  %-6d  %s\n",
				r.ID, r.StartedAt.Local().Format(time.DateTime), r.Generated, r.Failed, r.OutputDir)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}
