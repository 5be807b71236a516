package gallery

import (
	"fmt"
	"strings"

	"defile/style"
)

// Cells is the logical size of one terminal cell.
type Cells struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultCells maps an image block to 30 columns by 10 rows.
var DefaultCells = Cells{Width: 10, Height: 20}

// Laid is a block list turned into terminal rows.
type Laid struct {
	Rows    []string
	Tops    []int // first row of each block
	Heights []int // rows taken by each block
}

// Layout renders blocks top to bottom, highlighting the selected image.
func Layout(blocks []Block, cells Cells, width, selected int) Laid {

	if cells.Width <= 0 || cells.Height <= 0 {
		cells = DefaultCells
	}

	laid := Laid{
		Tops:    make([]int, len(blocks)),
		Heights: make([]int, len(blocks)),
	}

	image := 0
	for i, blk := range blocks {
		var rendered string

		switch blk.Kind {
		case ImageBlock:
			rendered = renderImage(blk, cells, image, image == selected)
			image++
		case RetryBlock:
			rendered = style.ButtonStyle.Render(blk.Text)
		case LoadingBlock, EndBlock:
			rendered = style.MutedStyle.Render(blk.Text)
		case SentinelBlock:
			rendered = style.BorderStyle.Render(strings.Repeat("─", max(width, 1)))
		default:
			continue
		}

		rows := strings.Split(rendered, "\n")
		laid.Tops[i] = len(laid.Rows)
		laid.Heights[i] = len(rows)
		laid.Rows = append(laid.Rows, rows...)
	}

	return laid
}

// unexported

func renderImage(blk Block, cells Cells, idx int, selected bool) string {

	cols := max(blk.Width/cells.Width, 4)
	rows := max(blk.Height/cells.Height, 3)
	inner := max(cols-2, 1)

	body := []string{
		fmt.Sprintf("#%d", idx+1),
		truncate(blk.Ref, inner),
	}

	frame := style.ImageStyle
	if selected {
		frame = style.SelectedImageStyle
	}

	return frame.
		Width(inner).
		Height(max(rows-2, 1)).
		Render(strings.Join(body, "\n"))
}

func truncate(text string, width int) string {

	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
