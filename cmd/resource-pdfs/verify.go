// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resource-pdfs/internal/inspect"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every template PDF exists and parses",
	Long: `Verify reads each template's file back from the output directory and checks
that it exists, is non-empty, parses as a PDF and carries its title.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		templates, err := loadTemplates(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, c := range inspect.Dir(cfg.OutputDir, templates) {
			if !c.OK() {
				failed++
				fmt.Fprintf(out, "FAIL  %-22s  %v\n", c.TemplateID, c.Err)
				continue
			}
			fmt.Fprintf(out, "ok    %-22s  %d page(s), %d bytes\n", c.TemplateID, c.Report.Pages, c.Report.Size)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d template PDF(s) failed verification", failed, len(templates))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
