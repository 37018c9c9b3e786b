// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate renders catalog templates to PDF files in an output
// directory. Documents are produced one at a time, in catalog order, each by
// its own composer; nothing is shared between them except the directory.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/resource-pdfs/internal/brand"
	"github.com/pdiddy/resource-pdfs/internal/compose"
	"github.com/pdiddy/resource-pdfs/pkg/types"
)

// ErrOutputDir is wrapped when the output directory cannot be created.
var ErrOutputDir = errors.New("creating output directory")

// Recorder persists the outcome of a run.
type Recorder interface {
	Record(ctx context.Context, s types.Summary) error
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithRecorder records each run's summary.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithProgress registers a callback invoked with each document's result as
// soon as it is known.
func WithProgress(fn func(types.Result)) Option {
	return func(g *Generator) { g.progress = fn }
}

// WithClock overrides the time source used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator renders templates according to a GeneratorConfig.
type Generator struct {
	cfg      types.GeneratorConfig
	log      *slog.Logger
	recorder Recorder
	progress func(types.Result)
	now      func() time.Time
}

// New returns a Generator. Zero config fields take the defaults.
func New(cfg types.GeneratorConfig, opts ...Option) *Generator {
	g := &Generator{
		cfg: cfg.WithDefaults(),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the effective configuration.
func (g *Generator) Config() types.GeneratorConfig {
	return g.cfg
}

// Path returns the output path for t.
func (g *Generator) Path(t types.Template) string {
	return filepath.Join(g.cfg.OutputDir, t.Filename)
}

// Render builds t in memory: one page, the chapter title, then every block
// in order.
func (g *Generator) Render(t types.Template) (*compose.Composer, error) {
	opts := brand.Options(g.cfg.Brand, g.cfg.Layout, t.Title)
	c := compose.New(g.cfg.Layout, opts...)
	c.NewPage()
	c.ChapterTitle(t.Title)
	for _, b := range t.Blocks {
		c.Emit(b)
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", t.ID, err)
	}
	return c, nil
}

// Generate renders t and writes it to its output path, replacing any
// previous version. The output directory must already exist.
func (g *Generator) Generate(ctx context.Context, t types.Template) types.Result {
	start := g.now()
	res := types.Result{
		TemplateID: t.ID,
		Title:      t.Title,
		Path:       g.Path(t),
	}
	finish := func(err error) types.Result {
		res.Err = err
		res.Duration = g.now().Sub(start)
		return res
	}

	if err := ctx.Err(); err != nil {
		return finish(err)
	}
	c, err := g.Render(t)
	if err != nil {
		return finish(err)
	}
	if err := c.Finalize(res.Path); err != nil {
		return finish(err)
	}
	res.Pages = c.PageCount()
	if info, err := os.Stat(res.Path); err == nil {
		res.Bytes = info.Size()
	}
	g.log.Debug("document written", "template", t.ID, "path", res.Path, "pages", res.Pages, "bytes", res.Bytes)
	return finish(nil)
}

// Run generates templates in order. A failure to create the output directory
// aborts before any document is attempted. A document failure aborts the
// rest of the run unless ContinueOnError is set; the returned error names
// the first failing document. The summary covers every attempted document
// in both cases.
func (g *Generator) Run(ctx context.Context, templates []types.Template) (types.Summary, error) {
	summary := types.Summary{
		RunID:     uuid.NewString(),
		OutputDir: g.cfg.OutputDir,
		StartedAt: g.now().UTC(),
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("%w %s: %w", ErrOutputDir, g.cfg.OutputDir, err)
	}
	g.log.Debug("generating", "run", summary.RunID, "dir", g.cfg.OutputDir, "templates", len(templates))

	var firstErr error
	for _, t := range templates {
		if err := ctx.Err(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			break
		}

		res := g.Generate(ctx, t)
		summary.Results = append(summary.Results, res)
		if g.progress != nil {
			g.progress(res)
		}

		if res.OK() {
			summary.Generated++
			continue
		}
		summary.Failed++
		g.log.Warn("document failed", "template", t.ID, "path", res.Path, "error", res.Err)
		if firstErr == nil {
			firstErr = fmt.Errorf("generating %s: %w", t.ID, res.Err)
		}
		if !g.cfg.ContinueOnError {
			break
		}
	}

	g.record(ctx, summary)
	return summary, firstErr
}

func (g *Generator) record(ctx context.Context, s types.Summary) {
	if g.recorder == nil || len(s.Results) == 0 {
		return
	}
	if err := g.recorder.Record(context.WithoutCancel(ctx), s); err != nil {
		g.log.Warn("recording run failed", "run", s.RunID, "error", err)
	}
}
