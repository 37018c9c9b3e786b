// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/resource-pdfs/pkg/types"
)

func TestLoadBuiltin(t *testing.T) {
	templates, err := Load()
	require.NoError(t, err)
	require.Len(t, templates, 6)

	want := []struct {
		id, file, title string
	}{
		{"press-release", "press-release-template.pdf", "Press Release Template"},
		{"media-pitch", "media-pitch-template.pdf", "Media Pitch Template"},
		{"campaign-checklist", "campaign-planning-checklist.pdf", "Campaign Planning Checklist"},
		{"social-calendar", "social-media-calendar-template.pdf", "Social Media Content Calendar Template"},
		{"press-kit-guide", "press-kit-guide.pdf", "Press Kit Guide"},
		{"crisis-communication", "crisis-communication-template.pdf", "Crisis Communication Template"},
	}
	for i, w := range want {
		assert.Equal(t, w.id, templates[i].ID)
		assert.Equal(t, w.file, templates[i].Filename)
		assert.Equal(t, w.title, templates[i].Title)
		assert.NotEmpty(t, templates[i].CardTitle, w.id)
		assert.NotEmpty(t, templates[i].Description, w.id)
		assert.Len(t, templates[i].Highlights, 4, w.id)
		assert.NotEmpty(t, templates[i].Blocks, w.id)
	}
}

func TestLoadBuiltinBlocks(t *testing.T) {
	templates, err := Load()
	require.NoError(t, err)

	pr, ok := Find(templates, "press-release")
	require.True(t, ok)
	assert.Equal(t, types.Block{Kind: types.BlockBody, Text: "Use this template to create professional press releases that capture media attention."}, pr.Blocks[0])
	assert.Equal(t, types.Block{Kind: types.BlockSpace, Space: 3}, pr.Blocks[1])
	assert.Equal(t, types.Block{Kind: types.BlockSection, Text: "FOR IMMEDIATE RELEASE"}, pr.Blocks[2])

	contact := pr.Blocks[5]
	assert.Equal(t, types.BlockBody, contact.Kind)
	assert.Equal(t, "[Your Name]\n[Your Title]\n[Company Name]\n[Phone Number]\n[Email Address]\n[Website]", contact.Text)

	last := pr.Blocks[len(pr.Blocks)-1]
	assert.Equal(t, "[This symbol indicates the end of the press release]", last.Text)

	pitch, ok := Find(templates, "media-pitch-template.pdf")
	require.True(t, ok)
	var bullets []string
	for _, b := range pitch.Blocks {
		if b.Kind == types.BlockBullet {
			bullets = append(bullets, b.Text)
		}
	}
	assert.Equal(t, []string{
		"Keep it under 150 words",
		"Personalize every pitch - no mass emails",
		"Send Tuesday-Thursday, 10am-2pm for best response rates",
		"Follow up once after 3-4 days if no response",
	}, bullets)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: `id: demo
order: 1
filename: demo.pdf
title: Demo
blocks:
  - section: Heading
  - body: Text
  - space: 2.5
  - bullet: Item
`,
		},
		{
			name:    "missing id",
			yaml:    "title: Demo\nfilename: demo.pdf\nblocks:\n  - body: x\n",
			wantErr: "missing id",
		},
		{
			name:    "missing filename",
			yaml:    "id: demo\ntitle: Demo\nblocks:\n  - body: x\n",
			wantErr: "missing filename",
		},
		{
			name:    "wrong extension",
			yaml:    "id: demo\ntitle: Demo\nfilename: demo.docx\nblocks:\n  - body: x\n",
			wantErr: "must end in .pdf",
		},
		{
			name:    "path in filename",
			yaml:    "id: demo\ntitle: Demo\nfilename: ../demo.pdf\nblocks:\n  - body: x\n",
			wantErr: "path separator",
		},
		{
			name:    "no blocks",
			yaml:    "id: demo\ntitle: Demo\nfilename: demo.pdf\n",
			wantErr: "no blocks",
		},
		{
			name:    "unknown kind",
			yaml:    "id: demo\ntitle: Demo\nfilename: demo.pdf\nblocks:\n  - table: x\n",
			wantErr: `unknown block kind "table"`,
		},
		{
			name:    "two keys in a block",
			yaml:    "id: demo\ntitle: Demo\nfilename: demo.pdf\nblocks:\n  - body: x\n    bullet: y\n",
			wantErr: "single-key mapping",
		},
		{
			name:    "non-numeric space",
			yaml:    "id: demo\ntitle: Demo\nfilename: demo.pdf\nblocks:\n  - space: wide\n",
			wantErr: "space must be a number",
		},
		{
			name:    "negative space",
			yaml:    "id: demo\ntitle: Demo\nfilename: demo.pdf\nblocks:\n  - space: -1\n",
			wantErr: "negative space",
		},
		{
			name:    "empty body",
			yaml:    "id: demo\ntitle: Demo\nfilename: demo.pdf\nblocks:\n  - body: \"  \"\n",
			wantErr: "empty body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTemplate)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "demo", tmpl.ID)
			assert.Equal(t, []types.Block{
				{Kind: types.BlockSection, Text: "Heading"},
				{Kind: types.BlockBody, Text: "Text"},
				{Kind: types.BlockSpace, Space: 2.5},
				{Kind: types.BlockBullet, Text: "Item"},
			}, tmpl.Blocks)
		})
	}
}

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "b.yaml", "id: second\norder: 2\nfilename: second.pdf\ntitle: Second\nblocks:\n  - body: two\n")
	writeTemplate(t, dir, "a.yaml", "id: first\norder: 1\nfilename: first.pdf\ntitle: First\nblocks:\n  - body: one\n")
	writeTemplate(t, dir, "notes.txt", "ignored")

	templates, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "first", templates[0].ID)
	assert.Equal(t, "second", templates[1].ID)
}

func TestLoadDirErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := LoadDir(t.TempDir())
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("duplicate filename", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "a.yaml", "id: a\norder: 1\nfilename: same.pdf\ntitle: A\nblocks:\n  - body: x\n")
		writeTemplate(t, dir, "b.yaml", "id: b\norder: 2\nfilename: same.pdf\ntitle: B\nblocks:\n  - body: y\n")
		_, err := LoadDir(dir)
		require.ErrorIs(t, err, ErrInvalidTemplate)
		assert.Contains(t, err.Error(), "duplicate filename")
	})

	t.Run("bad file is named", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "broken.yaml", "id: [unterminated\n")
		_, err := LoadDir(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken.yaml")
	})
}

func TestSelect(t *testing.T) {
	templates, err := Load()
	require.NoError(t, err)

	all, err := Select(templates, nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	// Catalog order wins over argument order.
	some, err := Select(templates, []string{"crisis-communication", "press-kit-guide.pdf"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "press-kit-guide", some[0].ID)
	assert.Equal(t, "crisis-communication", some[1].ID)

	_, err = Select(templates, []string{"annual-report"})
	assert.Error(t, err)
}
