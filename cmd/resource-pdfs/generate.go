// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resource-pdfs/internal/catalog"
	"github.com/pdiddy/resource-pdfs/internal/generate"
	"github.com/pdiddy/resource-pdfs/internal/manifest"
	"github.com/pdiddy/resource-pdfs/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [template...]",
	Short: "Generate template PDFs (all of them by default)",
	Long: `Generate renders the named templates, by id or file name, into the output
directory. With no arguments every template in the catalog is generated in
catalog order, the same as running resource-pdfs with no command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, keys []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	all, err := loadTemplates(cfg)
	if err != nil {
		return err
	}
	templates, err := catalog.Select(all, keys)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	opts := []generate.Option{
		generate.WithLogger(logger),
		generate.WithProgress(func(r types.Result) { printResult(out, errOut, r) }),
	}

	if cfg.Manifest != "" {
		store, err := manifest.Open(cfg.Manifest)
		if err != nil {
			fmt.Fprintf(errOut, "warning: manifest disabled: %v\n", err)
		} else {
			defer store.Close()
			opts = append(opts, generate.WithRecorder(store))
		}
	}

	fmt.Fprintln(out, "Generating PR template PDFs...")
	fmt.Fprintln(out)

	summary, err := generate.New(cfg, opts...).Run(cmd.Context(), templates)
	fmt.Fprintln(out)
	printSummary(out, summary, len(templates))
	return err
}

func printResult(out, errOut io.Writer, r types.Result) {
	if r.OK() {
		fmt.Fprintf(out, "✓ Created %s\n", filepath.Base(r.Path))
		return
	}
	fmt.Fprintf(errOut, "✗ Failed %s: %v\n", filepath.Base(r.Path), r.Err)
}

func printSummary(out io.Writer, s types.Summary, want int) {
	if s.Generated == want && !s.HasFailures() {
		fmt.Fprintf(out, "✅ All %d template PDFs created successfully!\n", s.Generated)
	} else {
		fmt.Fprintf(out, "Created %d of %d template PDFs (%d failed)\n", s.Generated, want, s.Failed)
	}
	fmt.Fprintf(out, "📁 Location: %s\n", s.OutputDir)
}
