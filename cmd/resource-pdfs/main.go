// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the resource-pdfs CLI. Run with no
// arguments it generates every downloadable template PDF for the website's
// resources page.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/resource-pdfs/internal/catalog"
	"github.com/pdiddy/resource-pdfs/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics; progress goes to the command's output.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// rootCmd is the base command. With no subcommand it generates all templates.
var rootCmd = &cobra.Command{
	Use:   "resource-pdfs",
	Short: "Generate the downloadable PR template PDFs",
	Long: `resource-pdfs renders the press release, media pitch, campaign checklist,
social media calendar, press kit and crisis communication templates as
branded PDFs in the website's public templates directory.

Run without arguments to regenerate all six documents. Existing files with
the same names are overwritten.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, nil)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: resource-pdfs.yaml in . or ~/.config/resource-pdfs)")
	flags.String("output-dir", types.DefaultOutputDir, "directory the PDFs are written to")
	flags.String("templates-dir", "", "read templates from this directory instead of the built-in catalog")
	flags.Bool("continue-on-error", false, "keep generating remaining documents after one fails")
	flags.String("manifest", "", "SQLite file recording each generation run")
	flags.BoolP("verbose", "v", false, "log diagnostics to stderr")

	bindConfig()
}

// bindConfig binds the persistent flags to their configuration keys and
// registers the defaults.
func bindConfig() {
	flags := rootCmd.PersistentFlags()
	for key, flag := range map[string]string{
		"output_dir":        "output-dir",
		"templates_dir":     "templates-dir",
		"continue_on_error": "continue-on-error",
		"manifest":          "manifest",
		"verbose":           "verbose",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	setDefaults(types.DefaultConfig())
}

// setDefaults registers every configuration key so that environment
// variables and config files can override nested settings.
func setDefaults(cfg types.GeneratorConfig) {
	viper.SetDefault("output_dir", cfg.OutputDir)
	viper.SetDefault("templates_dir", cfg.TemplatesDir)
	viper.SetDefault("continue_on_error", cfg.ContinueOnError)
	viper.SetDefault("manifest", cfg.Manifest)

	b := cfg.Brand
	viper.SetDefault("brand.name", b.Name)
	viper.SetDefault("brand.author", b.Author)
	for name, c := range map[string]types.RGB{"brand.color": b.Color, "brand.footer_color": b.FooterColor} {
		viper.SetDefault(name+".r", c.R)
		viper.SetDefault(name+".g", c.G)
		viper.SetDefault(name+".b", c.B)
	}

	l := cfg.Layout
	viper.SetDefault("layout.page_size", l.PageSize)
	viper.SetDefault("layout.font_family", l.FontFamily)
	for key, v := range map[string]float64{
		"margin_left":   l.MarginLeft,
		"margin_top":    l.MarginTop,
		"margin_right":  l.MarginRight,
		"break_margin":  l.BreakMargin,
		"header_size":   l.HeaderSize,
		"chapter_size":  l.ChapterSize,
		"section_size":  l.SectionSize,
		"body_size":     l.BodySize,
		"footer_size":   l.FooterSize,
		"line_height":   l.LineHeight,
		"bullet_indent": l.BulletIndent,
	} {
		viper.SetDefault("layout."+key, v)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("resource-pdfs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "resource-pdfs"))
		}
	}

	viper.SetEnvPrefix("RESOURCE_PDFS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration from flags, environment,
// config file and defaults.
func loadConfig() (types.GeneratorConfig, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// loadTemplates returns the configured catalog.
func loadTemplates(cfg types.GeneratorConfig) ([]types.Template, error) {
	if cfg.TemplatesDir != "" {
		return catalog.LoadDir(cfg.TemplatesDir)
	}
	return catalog.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
