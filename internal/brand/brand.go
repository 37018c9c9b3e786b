// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package brand renders the header and footer chrome shared by every
// generated document.
package brand

import (
	"fmt"

	"github.com/pdiddy/resource-pdfs/internal/compose"
	"github.com/pdiddy/resource-pdfs/pkg/types"
)

const (
	headerCell = 8.0
	headerGap  = 4.0
	footerCell = 10.0

	// footerOffset is the footer's distance from the bottom edge.
	footerOffset = 15.0
)

// Header prints the brand name at the top of each page.
type Header struct {
	Name  string
	Color types.RGB
	Size  float64
}

// RenderHeader implements compose.HeaderRenderer.
func (h Header) RenderHeader(p compose.Page) {
	c := p.Canvas
	c.SetFont(p.Font, "B", h.Size)
	c.SetTextColor(h.Color.R, h.Color.G, h.Color.B)
	c.CellFormat(0, headerCell, p.Translate(h.Name), "", 1, "L", false, 0, "")
	c.SetTextColor(0, 0, 0)
	c.Ln(headerGap)
}

// Footer prints "Page N" centered near the bottom of each page.
type Footer struct {
	Color types.RGB
	Size  float64
}

// RenderFooter implements compose.FooterRenderer.
func (f Footer) RenderFooter(p compose.Page) {
	c := p.Canvas
	c.SetY(-footerOffset)
	c.SetFont(p.Font, "I", f.Size)
	c.SetTextColor(f.Color.R, f.Color.G, f.Color.B)
	c.CellFormat(0, footerCell, PageLabel(p.Number), "", 0, "C", false, 0, "")
}

// PageLabel is the footer text for page n.
func PageLabel(n int) string {
	return fmt.Sprintf("Page %d", n)
}

// Options returns the composer options that apply cfg's chrome, accent color
// and document metadata.
func Options(cfg types.BrandConfig, layout types.LayoutConfig, title string) []compose.Option {
	return []compose.Option{
		compose.WithHeader(Header{Name: cfg.Name, Color: cfg.Color, Size: layout.HeaderSize}),
		compose.WithFooter(Footer{Color: cfg.FooterColor, Size: layout.FooterSize}),
		compose.WithAccent(cfg.Color),
		compose.WithMetadata(title, cfg.Author, cfg.Name+" resource-pdfs"),
	}
}
