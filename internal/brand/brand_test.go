// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package brand

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/resource-pdfs/internal/compose"
	"github.com/pdiddy/resource-pdfs/pkg/types"
)

// fakeCanvas records drawing calls as strings.
type fakeCanvas struct {
	calls []string
}

func (f *fakeCanvas) SetFont(family, style string, size float64) {
	f.calls = append(f.calls, fmt.Sprintf("font %s %s %g", family, style, size))
}

func (f *fakeCanvas) SetTextColor(r, g, b int) {
	f.calls = append(f.calls, fmt.Sprintf("color %d,%d,%d", r, g, b))
}

func (f *fakeCanvas) CellFormat(w, h float64, txt, border string, ln int, align string, fill bool, link int, linkStr string) {
	f.calls = append(f.calls, fmt.Sprintf("cell %q %s ln=%d", txt, align, ln))
}

func (f *fakeCanvas) Ln(h float64) {
	f.calls = append(f.calls, fmt.Sprintf("ln %g", h))
}

func (f *fakeCanvas) SetY(y float64) {
	f.calls = append(f.calls, fmt.Sprintf("y %g", y))
}

func page(c compose.Canvas, n int) compose.Page {
	return compose.Page{
		Canvas:    c,
		Number:    n,
		Font:      "Helvetica",
		Translate: func(s string) string { return s },
	}
}

func TestHeader(t *testing.T) {
	c := &fakeCanvas{}
	h := Header{Name: "UpsurgeIQ", Color: types.RGB{R: 0, G: 128, B: 128}, Size: 16}
	h.RenderHeader(page(c, 1))

	assert.Equal(t, []string{
		"font Helvetica B 16",
		"color 0,128,128",
		`cell "UpsurgeIQ" L ln=1`,
		"color 0,0,0",
		"ln 4",
	}, c.calls)
}

func TestFooter(t *testing.T) {
	c := &fakeCanvas{}
	f := Footer{Color: types.RGB{R: 128, G: 128, B: 128}, Size: 8}
	f.RenderFooter(page(c, 3))

	assert.Equal(t, []string{
		"y -15",
		"font Helvetica I 8",
		"color 128,128,128",
		`cell "Page 3" C ln=0`,
	}, c.calls)
}

func TestPageLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "Page 1"},
		{2, "Page 2"},
		{12, "Page 12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageLabel(tt.n))
	}
}

func TestOptionsApplyChrome(t *testing.T) {
	cfg := types.DefaultConfig()
	c := compose.New(cfg.Layout, Options(cfg.Brand, cfg.Layout, "Chrome")...)
	c.NewPage()
	c.ChapterTitle("Chrome")

	data, err := c.Bytes()
	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, 1, c.PageCount())
}
