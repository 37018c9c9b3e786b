// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect reads generated PDFs back to check that they are
// structurally valid documents.
package inspect

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/pdiddy/resource-pdfs/pkg/types"
)

// ErrEmpty is returned for a zero-length file.
var ErrEmpty = errors.New("file is empty")

// Report describes a parsed PDF.
type Report struct {
	Path string
	Size int64

	// Pages is the page count from the page tree.
	Pages int

	// Text holds the extracted plain text of each page, in page order.
	Text []string
}

// Contains reports whether any page's text contains s.
func (r Report) Contains(s string) bool {
	for _, t := range r.Text {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

// File parses the PDF at path.
func File(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading %s: %w", path, err)
	}
	r, err := Bytes(data)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", path, err)
	}
	r.Path = path
	return r, nil
}

// Bytes parses an in-memory PDF. The reader panics on some malformed
// objects; those panics are returned as parse errors.
func Bytes(data []byte) (rep Report, err error) {
	if len(data) == 0 {
		return Report{}, ErrEmpty
	}
	defer func() {
		if r := recover(); r != nil {
			rep, err = Report{Size: int64(len(data))}, fmt.Errorf("parsing pdf: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Report{}, fmt.Errorf("parsing pdf: %w", err)
	}

	rep = Report{Size: int64(len(data)), Pages: reader.NumPage()}
	if rep.Pages == 0 {
		return rep, errors.New("parsing pdf: document has no pages")
	}
	for i := 1; i <= rep.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			rep.Text = append(rep.Text, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return rep, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		rep.Text = append(rep.Text, text)
	}
	return rep, nil
}

// Check is the inspection outcome for one template's output file.
type Check struct {
	TemplateID string
	Report     Report
	Err        error
}

// OK reports whether the file exists, is non-empty and parses.
func (c Check) OK() bool { return c.Err == nil }

// Dir inspects the output file of each template in dir.
func Dir(dir string, templates []types.Template) []Check {
	checks := make([]Check, 0, len(templates))
	for _, t := range templates {
		rep, err := File(filepath.Join(dir, t.Filename))
		if err == nil && !rep.Contains(t.Title) {
			err = fmt.Errorf("%s: title %q not found in document text", t.Filename, t.Title)
		}
		checks = append(checks, Check{TemplateID: t.ID, Report: rep, Err: err})
	}
	return checks
}
