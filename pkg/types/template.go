// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BlockKind identifies one of the content block styles a document is built from.
type BlockKind string

const (
	BlockChapter BlockKind = "chapter"
	BlockSection BlockKind = "section"
	BlockBody    BlockKind = "body"
	BlockBullet  BlockKind = "bullet"
	BlockSpace   BlockKind = "space"
)

// Valid reports whether k is a known block kind.
func (k BlockKind) Valid() bool {
	switch k {
	case BlockChapter, BlockSection, BlockBody, BlockBullet, BlockSpace:
		return true
	}
	return false
}

// Block is one atomic unit of document content. Blocks are emitted in slice
// order; that order is the reading order.
type Block struct {
	// Kind selects the style.
	Kind BlockKind `json:"kind" yaml:"kind"`

	// Text is the payload. Body text may contain "\n" hard wraps.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Space is the vertical gap in millimetres for BlockSpace.
	Space float64 `json:"space,omitempty" yaml:"space,omitempty"`
}

// Template describes one downloadable document: where it is written, how it
// is presented on the resources page, and the blocks it is made of.
type Template struct {
	// ID is a stable slug (e.g. "press-release").
	ID string `json:"id" yaml:"id"`

	// Order fixes the generation order.
	Order int `json:"order" yaml:"order"`

	// Filename is the output file name inside the output directory.
	Filename string `json:"filename" yaml:"filename"`

	// Title is the chapter title the document opens with.
	Title string `json:"title" yaml:"title"`

	// CardTitle is the resources page card heading. Empty means Title.
	CardTitle string `json:"card_title,omitempty" yaml:"card_title,omitempty"`

	// Description is the resources page card copy.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Highlights lists what the template includes, for the resources page.
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`

	// Blocks is the document body following the chapter title.
	Blocks []Block `json:"blocks" yaml:"-"`
}
