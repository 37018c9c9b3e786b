// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Result is the outcome of generating one document.
type Result struct {
	TemplateID string
	Title      string

	// Path is the file written, or the file that failed to be written.
	Path string

	// Pages is the page count of the finalized document.
	Pages int

	// Bytes is the size of the written file.
	Bytes int64

	Duration time.Duration

	// Err is nil when the document was written.
	Err error
}

// OK reports whether the document was written.
func (r Result) OK() bool { return r.Err == nil }

// Summary holds the outcome of a generation run.
type Summary struct {
	// RunID uniquely identifies the run in the manifest.
	RunID string

	OutputDir string
	StartedAt time.Time
	Results   []Result
	Generated int
	Failed    int
}

// Total returns the number of documents attempted.
func (s Summary) Total() int {
	return s.Generated + s.Failed
}

// HasFailures reports whether any document failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}
