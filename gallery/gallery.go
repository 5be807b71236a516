// Package gallery projects scroll state onto displayable blocks.
package gallery

import (
	"defile/scroll"
	"defile/sensor"
)

const (
	// ImageWidth and ImageHeight are the logical size of every image block.
	ImageWidth  = 300
	ImageHeight = 200

	RoleImage  = "img"
	RoleButton = "button"

	SentinelID = "bottom-border"

	LoadingText = "Loading..."
	EndText     = "There aren't more images"
	RetryText   = "Error! Click to try again"
)

// Kind tells blocks apart.
type Kind int

const (
	ImageBlock Kind = iota
	RetryBlock
	LoadingBlock
	EndBlock
	SentinelBlock
)

// Block is one displayed element.
type Block struct {
	Kind   Kind
	Role   string
	Text   string
	TestID string
	Ref    string // image locator, ImageBlock only
	Width  int
	Height int
}

// Render is a pure projection of st: the images in order, at most one
// status element, and the sentinel last.
func Render(st scroll.State) []Block {

	blocks := make([]Block, 0, len(st.Refs)+2)
	for _, ref := range st.Refs {
		blocks = append(blocks, Block{
			Kind:   ImageBlock,
			Role:   RoleImage,
			Ref:    ref,
			Width:  ImageWidth,
			Height: ImageHeight,
		})
	}

	switch st.Status {
	case scroll.Error:
		blocks = append(blocks, Block{Kind: RetryBlock, Role: RoleButton, Text: RetryText})
	case scroll.Loading:
		blocks = append(blocks, Block{Kind: LoadingBlock, Text: LoadingText})
	case scroll.Finished:
		blocks = append(blocks, Block{Kind: EndBlock, Text: EndText})
	}

	return append(blocks, Block{Kind: SentinelBlock, TestID: SentinelID})
}

// ByRole returns the blocks with role.
func ByRole(blocks []Block, role string) []Block {
	return filter(blocks, func(blk Block) bool { return blk.Role == role })
}

// ByText returns the blocks whose text is exactly text.
func ByText(blocks []Block, text string) []Block {
	return filter(blocks, func(blk Block) bool { return blk.Text != "" && blk.Text == text })
}

// ByTestID returns the blocks carrying id.
func ByTestID(blocks []Block, id string) []Block {
	return filter(blocks, func(blk Block) bool { return blk.TestID == id })
}

// Sentinel is the node instance the visibility sensor watches.
// The host places it each time the blocks are laid out.
type Sentinel struct {
	rect sensor.Rect
}

// Bounds implements sensor.Node.
func (snt *Sentinel) Bounds() sensor.Rect {
	return snt.rect
}

// Place records where the sentinel landed.
func (snt *Sentinel) Place(top, height int) {
	snt.rect = sensor.Rect{Top: top, Height: height}
}

// unexported

func filter(blocks []Block, keep func(Block) bool) []Block {

	var out []Block
	for _, blk := range blocks {
		if keep(blk) {
			out = append(out, blk)
		}
	}
	return out
}
