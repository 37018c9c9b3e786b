// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resource-pdfs/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "state", "manifest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func TestRecordAndQuery(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()

	written := filepath.Join(dir, "press-release-template.pdf")
	content := []byte("%PDF-1.3 fake")
	require.NoError(t, os.WriteFile(written, content, 0o644))
	sum := sha256.Sum256(content)

	run := types.Summary{
		RunID:     "run-1",
		OutputDir: dir,
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Generated: 1,
		Failed:    1,
		Results: []types.Result{
			{TemplateID: "press-release", Path: written, Pages: 1, Bytes: int64(len(content))},
			{TemplateID: "media-pitch", Path: filepath.Join(dir, "media-pitch-template.pdf"), Err: errors.New("permission denied")},
		},
	}
	require.NoError(t, store.Record(ctx, run))

	runs, err := store.Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, dir, runs[0].OutputDir)
	assert.Equal(t, 1, runs[0].Generated)
	assert.Equal(t, 1, runs[0].Failed)
	assert.True(t, run.StartedAt.Equal(runs[0].StartedAt))

	docs, err := store.Documents(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "press-release", docs[0].TemplateID)
	assert.Equal(t, 1, docs[0].Pages)
	assert.Equal(t, int64(len(content)), docs[0].Bytes)
	assert.Equal(t, hex.EncodeToString(sum[:]), docs[0].SHA256)
	assert.Empty(t, docs[0].Error)

	assert.Equal(t, "media-pitch", docs[1].TemplateID)
	assert.Empty(t, docs[1].SHA256)
	assert.Equal(t, "permission denied", docs[1].Error)
}

func TestRecordKeepsDigestError(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()

	gone := filepath.Join(dir, "removed-after-write.pdf")
	require.NoError(t, store.Record(ctx, types.Summary{
		RunID:     "run-gone",
		OutputDir: dir,
		StartedAt: time.Now(),
		Generated: 1,
		Results:   []types.Result{{TemplateID: "press-kit", Path: gone, Pages: 1, Bytes: 10}},
	}))

	docs, err := store.Documents(ctx, "run-gone")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].SHA256)
	assert.Contains(t, docs[0].DigestError, "removed-after-write.pdf")
	assert.Empty(t, docs[0].Error, "the document itself was written")
}

func TestRunsBadTimestamp(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, output_dir, generated, failed) VALUES (?, ?, ?, 0, 0)`,
		"mangled", "yesterday", dir)
	require.NoError(t, err)

	_, err = store.Runs(ctx, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mangled")
}

func TestRunsNewestFirst(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, store.Record(ctx, types.Summary{
			RunID:     id,
			OutputDir: dir,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := store.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "newest", runs[0].ID)
	assert.Equal(t, "middle", runs[1].ID)

	all, err := store.Runs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecordDuplicateRun(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()
	run := types.Summary{RunID: "same", OutputDir: dir, StartedAt: time.Now()}

	require.NoError(t, store.Record(ctx, run))
	assert.Error(t, store.Record(ctx, run))
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, types.Summary{RunID: "kept", OutputDir: "out", StartedAt: time.Now()}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "kept", runs[0].ID)

	docs, err := store.Documents(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
