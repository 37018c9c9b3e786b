// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose builds paginated PDF documents from a stream of styled
// content blocks. A Composer wraps the fpdf canvas, applies injected header
// and footer chrome to every page, and breaks pages before any block that
// would not fit in the remaining printable area.
package compose

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/resource-pdfs/pkg/types"
)

const (
	chapterHeight = 10.0
	chapterGap    = 3.0
	sectionHeight = 7.0
	sectionGap    = 1.0
	bodyGap       = 2.0

	bulletGlyph = "•"
)

var (
	// ErrNoPage is recorded when content is emitted before NewPage.
	ErrNoPage = errors.New("no page started")

	// ErrFinalized is recorded when content is emitted after the document
	// was serialized.
	ErrFinalized = errors.New("document already finalized")
)

// Canvas is the subset of the fpdf drawing API that chrome renderers use.
type Canvas interface {
	SetFont(familyStr, styleStr string, size float64)
	SetTextColor(r, g, b int)
	CellFormat(w, h float64, txtStr, borderStr string, ln int, alignStr string, fill bool, link int, linkStr string)
	Ln(h float64)
	SetY(y float64)
}

// Page is passed to chrome renderers at page start and page end.
type Page struct {
	Canvas Canvas

	// Number is the 1-based page number.
	Number int

	// Font is the layout's font family.
	Font string

	// Translate converts UTF-8 text to the core font encoding.
	Translate func(string) string
}

// HeaderRenderer draws the top-of-page chrome. It runs when a page starts,
// including pages started by an automatic break.
type HeaderRenderer interface {
	RenderHeader(p Page)
}

// FooterRenderer draws the bottom-of-page chrome. It runs when a page is
// completed, either by the next page starting or by finalization.
type FooterRenderer interface {
	RenderFooter(p Page)
}

// HeaderFunc adapts a function to HeaderRenderer.
type HeaderFunc func(p Page)

// RenderHeader calls f(p).
func (f HeaderFunc) RenderHeader(p Page) { f(p) }

// FooterFunc adapts a function to FooterRenderer.
type FooterFunc func(p Page)

// RenderFooter calls f(p).
func (f FooterFunc) RenderFooter(p Page) { f(p) }

// Placement records where an emitted block landed.
type Placement struct {
	Kind types.BlockKind
	Text string

	// Page is the 1-based page the block starts on.
	Page int

	// Y is the vertical position the block starts at, in millimetres from
	// the top edge.
	Y float64
}

// Option configures a Composer.
type Option func(*Composer)

// WithHeader sets the header renderer.
func WithHeader(h HeaderRenderer) Option {
	return func(c *Composer) { c.header = h }
}

// WithFooter sets the footer renderer.
func WithFooter(f FooterRenderer) Option {
	return func(c *Composer) { c.footer = f }
}

// WithAccent sets the chapter title color.
func WithAccent(rgb types.RGB) Option {
	return func(c *Composer) { c.accent = rgb }
}

// WithMetadata sets the document information dictionary entries.
func WithMetadata(title, author, creator string) Option {
	return func(c *Composer) {
		c.title, c.author, c.creator = title, author, creator
	}
}

// WithCreationDate pins the creation date written to the file.
func WithCreationDate(t time.Time) Option {
	return func(c *Composer) { c.created = t }
}

// Composer accumulates content blocks into pages. Errors are sticky: the
// first failure is kept, later operations become no-ops, and the error is
// returned by Err, WriteTo and Finalize.
type Composer struct {
	pdf    *fpdf.Fpdf
	layout types.LayoutConfig
	tr     func(string) string

	header HeaderRenderer
	footer FooterRenderer
	accent types.RGB

	title, author, creator string
	created                time.Time

	placements []Placement
	pageTop    float64
	err        error
	out        []byte
}

// New creates a composer for the given layout. Zero layout fields take the
// defaults.
func New(layout types.LayoutConfig, opts ...Option) *Composer {
	layout = types.GeneratorConfig{Layout: layout}.WithDefaults().Layout

	c := &Composer{
		layout: layout,
		accent: types.DefaultBrand().Color,
	}
	for _, opt := range opts {
		opt(c)
	}

	pdf := fpdf.New("P", "mm", layout.PageSize, "")
	pdf.SetMargins(layout.MarginLeft, layout.MarginTop, layout.MarginRight)
	pdf.SetAutoPageBreak(true, layout.BreakMargin)
	c.pdf = pdf
	c.tr = pdf.UnicodeTranslatorFromDescriptor("")

	if c.title != "" {
		pdf.SetTitle(c.title, true)
	}
	if c.author != "" {
		pdf.SetAuthor(c.author, true)
	}
	if c.creator != "" {
		pdf.SetCreator(c.creator, true)
	}
	if !c.created.IsZero() {
		pdf.SetCreationDate(c.created)
	}

	pdf.SetHeaderFunc(func() {
		if c.header != nil {
			c.header.RenderHeader(c.page())
		}
		c.pageTop = pdf.GetY()
	})
	pdf.SetFooterFunc(func() {
		if c.footer != nil {
			c.footer.RenderFooter(c.page())
		}
	})
	return c
}

func (c *Composer) page() Page {
	return Page{
		Canvas:    c.pdf,
		Number:    c.pdf.PageNo(),
		Font:      c.layout.FontFamily,
		Translate: c.tr,
	}
}

// NewPage starts a page. The header renderer runs as a side effect.
func (c *Composer) NewPage() {
	if !c.writable(false) {
		return
	}
	c.pdf.AddPage()
}

// ChapterTitle emits a document-level heading in the accent color.
func (c *Composer) ChapterTitle(text string) {
	if !c.writable(true) {
		return
	}
	c.heading(types.BlockChapter, text, c.layout.ChapterSize, chapterHeight, chapterGap, true)
}

// SectionTitle emits a section heading.
func (c *Composer) SectionTitle(text string) {
	if !c.writable(true) {
		return
	}
	c.heading(types.BlockSection, text, c.layout.SectionSize, sectionHeight, sectionGap, false)
}

func (c *Composer) heading(kind types.BlockKind, text string, size, h, gap float64, accent bool) {
	c.pdf.SetFont(c.layout.FontFamily, "B", size)
	c.ensureRoom(h)
	c.place(kind, text)
	if accent {
		c.pdf.SetTextColor(c.accent.R, c.accent.G, c.accent.B)
	}
	c.pdf.CellFormat(0, h, c.tr(text), "", 1, "L", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.Ln(gap)
}

// BodyText emits a paragraph. Embedded newlines are hard wraps.
func (c *Composer) BodyText(text string) {
	if !c.writable(true) {
		return
	}
	lh := c.layout.LineHeight
	c.pdf.SetFont(c.layout.FontFamily, "", c.layout.BodySize)
	c.ensureRoom(float64(c.lineCount(text, c.textWidth())) * lh)
	c.place(types.BlockBody, text)
	c.pdf.MultiCell(0, lh, c.tr(text), "", "L", false)
	c.pdf.Ln(bodyGap)
}

// Bullet emits a single bulleted item: a fixed-width glyph cell followed by
// wrapped text.
func (c *Composer) Bullet(text string) {
	if !c.writable(true) {
		return
	}
	lh := c.layout.LineHeight
	indent := c.layout.BulletIndent
	c.pdf.SetFont(c.layout.FontFamily, "", c.layout.BodySize)
	c.ensureRoom(float64(c.lineCount(text, c.textWidth()-indent)) * lh)
	c.place(types.BlockBullet, text)
	c.pdf.CellFormat(indent, lh, c.tr(bulletGlyph), "", 0, "L", false, 0, "")
	c.pdf.MultiCell(0, lh, c.tr(text), "", "L", false)
}

// Advance inserts vertical space. It never starts a new page.
func (c *Composer) Advance(h float64) {
	if !c.writable(true) || h <= 0 {
		return
	}
	c.pdf.Ln(h)
}

// Emit dispatches a catalog block to the matching emitter.
func (c *Composer) Emit(b types.Block) {
	switch b.Kind {
	case types.BlockChapter:
		c.ChapterTitle(b.Text)
	case types.BlockSection:
		c.SectionTitle(b.Text)
	case types.BlockBody:
		c.BodyText(b.Text)
	case types.BlockBullet:
		c.Bullet(b.Text)
	case types.BlockSpace:
		c.Advance(b.Space)
	default:
		c.setErr(fmt.Errorf("unknown block kind %q", b.Kind))
	}
}

// PageCount returns the number of pages started so far.
func (c *Composer) PageCount() int {
	return c.pdf.PageCount()
}

// Placements returns the emitted blocks in emission order.
func (c *Composer) Placements() []Placement {
	out := make([]Placement, len(c.placements))
	copy(out, c.placements)
	return out
}

// Err returns the first error recorded by the composer or the renderer.
func (c *Composer) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.pdf.Error()
}

// Bytes closes the document and returns its serialized form. The document
// is immutable afterwards.
func (c *Composer) Bytes() ([]byte, error) {
	if c.out != nil {
		return c.out, nil
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if c.pdf.PageNo() == 0 {
		return nil, ErrNoPage
	}
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	c.out = buf.Bytes()
	return c.out, nil
}

// WriteTo finalizes the document and writes it to w.
func (c *Composer) WriteTo(w io.Writer) (int64, error) {
	data, err := c.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Finalize serializes the document and writes it to path, replacing any
// existing file. The write goes through a temporary file in the same
// directory so a failed write never leaves a truncated document behind.
func (c *Composer) Finalize(path string) error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writable reports whether content may be emitted, recording the reason
// when it may not.
func (c *Composer) writable(needPage bool) bool {
	if c.Err() != nil {
		return false
	}
	if c.out != nil {
		c.setErr(ErrFinalized)
		return false
	}
	if needPage && c.pdf.PageNo() == 0 {
		c.setErr(ErrNoPage)
		return false
	}
	return true
}

func (c *Composer) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

// ensureRoom starts a new page when a block of height h would cross the
// page break line. A block taller than an empty page starts where it is and
// is left to the renderer's line-level break.
func (c *Composer) ensureRoom(h float64) {
	_, pageH := c.pdf.GetPageSize()
	limit := pageH - c.layout.BreakMargin
	y := c.pdf.GetY()
	if y+h <= limit || y <= c.pageTop || h > limit-c.pageTop {
		return
	}
	c.pdf.AddPage()
}

func (c *Composer) place(kind types.BlockKind, text string) {
	c.placements = append(c.placements, Placement{
		Kind: kind,
		Text: text,
		Page: c.pdf.PageNo(),
		Y:    c.pdf.GetY(),
	})
}

func (c *Composer) textWidth() float64 {
	pageW, _ := c.pdf.GetPageSize()
	return pageW - c.layout.MarginLeft - c.layout.MarginRight
}

// lineCount returns how many lines MultiCell renders text in at width w in
// the current core font. The loop follows MultiCell's wrap rules: only one
// trailing newline is dropped, only spaces are break points, and a word
// wider than the line is cut at the byte that overflows.
func (c *Composer) lineCount(text string, w float64) int {
	s := strings.ReplaceAll(c.tr(text), "\r", "")
	s = strings.TrimSuffix(s, "\n")

	_, unit := c.pdf.GetFontSize()
	wmax := int(math.Ceil((w - 2*c.pdf.GetCellMargin()) * 1000 / unit))
	missing := c.pdf.GetFontDesc("", "").MissingWidth

	lines := 1
	sep, i, j, l := -1, 0, 0, 0
	for i < len(s) {
		ch := s[i]
		if ch == '\n' {
			i++
			sep, j, l = -1, i, 0
			lines++
			continue
		}
		if ch == ' ' {
			sep = i
		}
		switch cw := c.pdf.GetStringSymbolWidth(s[i : i+1]); cw {
		case 0:
			l += missing
		case 65535:
		default:
			l += cw
		}
		if l <= wmax {
			i++
			continue
		}
		if sep == -1 {
			if i == j {
				i++
			}
		} else {
			i = sep + 1
		}
		sep, j, l = -1, i, 0
		lines++
	}
	return lines
}
