// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads the downloadable document templates. The built-in
// catalog is embedded from templates/*.yaml; LoadDir reads the same format
// from disk so copy can be edited without a rebuild.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/resource-pdfs/pkg/types"
)

//go:embed templates/*.yaml
var builtin embed.FS

// ErrInvalidTemplate is wrapped by every template validation error.
var ErrInvalidTemplate = errors.New("invalid template")

// templateFile is the on-disk form of a template. Blocks are one-key maps
// (kind: payload) so the files read like the documents they produce.
type templateFile struct {
	types.Template `yaml:",inline"`
	Blocks         []rawBlock `yaml:"blocks"`
}

type rawBlock struct {
	block types.Block
}

// UnmarshalYAML decodes "- section: Headline" or "- space: 3".
func (r *rawBlock) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: block must be a single-key mapping", value.Line)
	}
	key, val := value.Content[0], value.Content[1]
	kind := types.BlockKind(key.Value)
	if !kind.Valid() {
		return fmt.Errorf("line %d: unknown block kind %q", key.Line, key.Value)
	}
	r.block.Kind = kind
	if kind == types.BlockSpace {
		if err := val.Decode(&r.block.Space); err != nil {
			return fmt.Errorf("line %d: space must be a number: %w", val.Line, err)
		}
		return nil
	}
	return val.Decode(&r.block.Text)
}

// Load returns the built-in templates in generation order.
func Load() ([]types.Template, error) {
	sub, err := fs.Sub(builtin, "templates")
	if err != nil {
		return nil, err
	}
	return loadFS(sub)
}

// LoadDir returns the templates defined by *.yaml files in dir, in
// generation order.
func LoadDir(dir string) ([]types.Template, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}
	return loadFS(os.DirFS(dir))
}

func loadFS(fsys fs.FS) ([]types.Template, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no *.yaml templates found", ErrInvalidTemplate)
	}
	sort.Strings(names)

	templates := make([]types.Template, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		templates = append(templates, t)
	}

	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Order < templates[j].Order
	})
	if err := checkUnique(templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Parse decodes and validates a single YAML template.
func Parse(data []byte) (types.Template, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return types.Template{}, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	t := f.Template
	t.Blocks = make([]types.Block, len(f.Blocks))
	for i, b := range f.Blocks {
		t.Blocks[i] = b.block
	}
	if err := Validate(t); err != nil {
		return types.Template{}, err
	}
	return t, nil
}

// Validate checks the fields generation depends on.
func Validate(t types.Template) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidTemplate, t.ID, fmt.Sprintf(format, args...))
	}
	switch {
	case t.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidTemplate)
	case t.Title == "":
		return invalid("missing title")
	case t.Filename == "":
		return invalid("missing filename")
	case path.Ext(t.Filename) != ".pdf":
		return invalid("filename %q must end in .pdf", t.Filename)
	case strings.ContainsAny(t.Filename, `/\`):
		return invalid("filename %q must not contain a path separator", t.Filename)
	case len(t.Blocks) == 0:
		return invalid("no blocks")
	}
	for i, b := range t.Blocks {
		if !b.Kind.Valid() {
			return invalid("block %d: unknown kind %q", i, b.Kind)
		}
		if b.Kind == types.BlockSpace && b.Space < 0 {
			return invalid("block %d: negative space %v", i, b.Space)
		}
		if b.Kind != types.BlockSpace && strings.TrimSpace(b.Text) == "" {
			return invalid("block %d: empty %s", i, b.Kind)
		}
	}
	return nil
}

func checkUnique(templates []types.Template) error {
	ids := make(map[string]bool)
	files := make(map[string]bool)
	for _, t := range templates {
		if ids[t.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidTemplate, t.ID)
		}
		if files[t.Filename] {
			return fmt.Errorf("%w: duplicate filename %q", ErrInvalidTemplate, t.Filename)
		}
		ids[t.ID] = true
		files[t.Filename] = true
	}
	return nil
}

// Find returns the template whose id or filename matches key.
func Find(templates []types.Template, key string) (types.Template, bool) {
	for _, t := range templates {
		if t.ID == key || t.Filename == key {
			return t, true
		}
	}
	return types.Template{}, false
}

// Select returns the templates named by keys, in catalog order. An empty
// keys slice selects every template.
func Select(templates []types.Template, keys []string) ([]types.Template, error) {
	if len(keys) == 0 {
		return templates, nil
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := Find(templates, k); !ok {
			return nil, fmt.Errorf("unknown template %q", k)
		}
		want[k] = true
	}
	var out []types.Template
	for _, t := range templates {
		if want[t.ID] || want[t.Filename] {
			out = append(out, t)
		}
	}
	return out, nil
}
