// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R int `json:"r" yaml:"r" mapstructure:"r"`
	G int `json:"g" yaml:"g" mapstructure:"g"`
	B int `json:"b" yaml:"b" mapstructure:"b"`
}

// BrandConfig holds the branding chrome applied to every page.
type BrandConfig struct {
	// Name is printed in the page header (e.g. "UpsurgeIQ").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Color is the header and chapter title color.
	Color RGB `json:"color" yaml:"color" mapstructure:"color"`

	// FooterColor is the page number color.
	FooterColor RGB `json:"footer_color" yaml:"footer_color" mapstructure:"footer_color"`

	// Author is written to the PDF document information dictionary.
	Author string `json:"author" yaml:"author" mapstructure:"author"`
}

// LayoutConfig holds page geometry and typography. Lengths are millimetres,
// font sizes are points.
type LayoutConfig struct {
	// PageSize is a renderer page size name: A4, Letter, Legal, A5.
	PageSize string `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	MarginLeft  float64 `json:"margin_left" yaml:"margin_left" mapstructure:"margin_left"`
	MarginTop   float64 `json:"margin_top" yaml:"margin_top" mapstructure:"margin_top"`
	MarginRight float64 `json:"margin_right" yaml:"margin_right" mapstructure:"margin_right"`

	// BreakMargin is the distance from the bottom edge at which content
	// triggers a page break. The footer lives inside it.
	BreakMargin float64 `json:"break_margin" yaml:"break_margin" mapstructure:"break_margin"`

	// FontFamily is a core font family (Helvetica, Arial, Times, Courier).
	FontFamily string `json:"font_family" yaml:"font_family" mapstructure:"font_family"`

	HeaderSize  float64 `json:"header_size" yaml:"header_size" mapstructure:"header_size"`
	ChapterSize float64 `json:"chapter_size" yaml:"chapter_size" mapstructure:"chapter_size"`
	SectionSize float64 `json:"section_size" yaml:"section_size" mapstructure:"section_size"`
	BodySize    float64 `json:"body_size" yaml:"body_size" mapstructure:"body_size"`
	FooterSize  float64 `json:"footer_size" yaml:"footer_size" mapstructure:"footer_size"`

	// LineHeight is the height of one wrapped line of body or bullet text.
	LineHeight float64 `json:"line_height" yaml:"line_height" mapstructure:"line_height"`

	// BulletIndent is the width of the cell holding the bullet glyph.
	BulletIndent float64 `json:"bullet_indent" yaml:"bullet_indent" mapstructure:"bullet_indent"`
}

// GeneratorConfig holds settings for a generation run.
type GeneratorConfig struct {
	// OutputDir is the directory the PDFs are written to. It is created if
	// missing; unrelated files in it are left alone.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// TemplatesDir optionally replaces the built-in catalog with YAML
	// templates read from a directory.
	TemplatesDir string `json:"templates_dir,omitempty" yaml:"templates_dir,omitempty" mapstructure:"templates_dir"`

	// ContinueOnError keeps generating the remaining documents after one fails.
	ContinueOnError bool `json:"continue_on_error" yaml:"continue_on_error" mapstructure:"continue_on_error"`

	// Manifest is the path of the SQLite run ledger. Empty disables it.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty" mapstructure:"manifest"`

	Brand  BrandConfig  `json:"brand" yaml:"brand" mapstructure:"brand"`
	Layout LayoutConfig `json:"layout" yaml:"layout" mapstructure:"layout"`
}

// DefaultOutputDir is where the website serves downloadable templates from.
const DefaultOutputDir = "client/public/templates"

// DefaultBrand returns the UpsurgeIQ branding.
func DefaultBrand() BrandConfig {
	return BrandConfig{
		Name:        "UpsurgeIQ",
		Color:       RGB{R: 0, G: 128, B: 128},
		FooterColor: RGB{R: 128, G: 128, B: 128},
		Author:      "UpsurgeIQ",
	}
}

// DefaultLayout returns the A4 layout every template is authored against.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		PageSize:     "A4",
		MarginLeft:   15,
		MarginTop:    10,
		MarginRight:  15,
		BreakMargin:  18,
		FontFamily:   "Helvetica",
		HeaderSize:   16,
		ChapterSize:  16,
		SectionSize:  12,
		BodySize:     10,
		FooterSize:   8,
		LineHeight:   5,
		BulletIndent: 6,
	}
}

// DefaultConfig returns the configuration used when no file, flag or
// environment variable overrides it.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir: DefaultOutputDir,
		Brand:     DefaultBrand(),
		Layout:    DefaultLayout(),
	}
}

// WithDefaults fills zero-valued layout and brand fields from the defaults.
func (c GeneratorConfig) WithDefaults() GeneratorConfig {
	d := DefaultConfig()
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.Brand.Name == "" {
		c.Brand.Name = d.Brand.Name
	}
	if c.Brand.Author == "" {
		c.Brand.Author = c.Brand.Name
	}

	l, dl := &c.Layout, d.Layout
	if l.PageSize == "" {
		l.PageSize = dl.PageSize
	}
	if l.FontFamily == "" {
		l.FontFamily = dl.FontFamily
	}
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&l.MarginLeft, dl.MarginLeft)
	fill(&l.MarginTop, dl.MarginTop)
	fill(&l.MarginRight, dl.MarginRight)
	fill(&l.BreakMargin, dl.BreakMargin)
	fill(&l.HeaderSize, dl.HeaderSize)
	fill(&l.ChapterSize, dl.ChapterSize)
	fill(&l.SectionSize, dl.SectionSize)
	fill(&l.BodySize, dl.BodySize)
	fill(&l.FooterSize, dl.FooterSize)
	fill(&l.LineHeight, dl.LineHeight)
	fill(&l.BulletIndent, dl.BulletIndent)
	return c
}
