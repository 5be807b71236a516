package detail

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	nt "defile/entity"
)

// DetailPanel shows the full record of one photo
type DetailPanel struct {
	style string // glamour standard style

	ref          string
	photo        *nt.Photo
	page         int
	contentLines []string // rendered content split into lines (cached)

	// Display state
	Width        int
	height       int
	Focused      bool
	ScrollOffset int
}

func NewDetailPanel(style string) DetailPanel {
	if style == "" {
		style = "dark"
	}
	return DetailPanel{
		style: style,
	}
}

func (pnl DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case PhotoMsg:
		pnl.ref = msg.Ref
		pnl.ScrollOffset = 0
		pnl.photo, pnl.page = nil, 0
		if msg.Err != nil {
			pnl.contentLines = []string{"No record for " + msg.Ref + ": " + msg.Err.Error()}
			return pnl, nil
		}
		photo, page, err := decodePhoto(msg.Data)
		if err != nil {
			pnl.contentLines = []string{"Error decoding record: " + err.Error()}
			return pnl, nil
		}
		pnl.photo, pnl.page = &photo, page
		pnl.computeContentLines()

	case SizeMsg:
		pnl.Width = msg.Width
		pnl.height = msg.Height
		pnl.ScrollOffset = 0
		if pnl.photo != nil {
			pnl.computeContentLines()
		}

	case tea.KeyPressMsg:
		if !pnl.Focused {
			return pnl, nil
		}

		switch msg.String() {
		case "up", "k":
			if pnl.ScrollOffset > 0 {
				pnl.ScrollOffset--
			}

		case "down", "j":
			if pnl.height > 0 && len(pnl.contentLines) > pnl.height {
				maxScroll := len(pnl.contentLines) - pnl.height
				if pnl.ScrollOffset < maxScroll {
					pnl.ScrollOffset++
				}
			}
		}
	}

	return pnl, nil
}

// Render renders the visible part of the detail view
func (pnl DetailPanel) Render() string {
	if pnl.contentLines == nil {
		return "Loading full record..."
	}

	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.height > 0 && len(visibleLines) > pnl.height {
		visibleLines = visibleLines[:pnl.height]
	}

	return strings.Join(visibleLines, "\n")
}

// Photo returns the decoded record, if any
func (pnl DetailPanel) Photo() (nt.Photo, bool) {
	if pnl.photo == nil {
		return nt.Photo{}, false
	}
	return *pnl.photo, true
}

// unexported

func (pnl *DetailPanel) computeContentLines() {

	out, err := renderMarkdown(markdown(*pnl.photo, pnl.page), pnl.style, pnl.Width)
	if err != nil {
		pnl.contentLines = []string{"Error rendering record: " + err.Error()}
		return
	}

	content := strings.Trim(out, "\n")
	pnl.contentLines = strings.Split(content, "\n")
}

// decodePhoto maps a catalog row onto a Photo
func decodePhoto(data map[string]any) (photo nt.Photo, page int, err error) {

	if data == nil {
		err = errors.New("empty record")
		return
	}

	err = mapstructure.Decode(data, &photo)
	if err != nil {
		err = errors.Wrapf(err, "failed to decode photo")
		return
	}

	if raw, ok := data["page"]; ok {
		err = mapstructure.Decode(raw, &page)
		err = errors.Wrapf(err, "failed to decode page")
	}
	return
}

func markdown(photo nt.Photo, page int) string {

	var bld strings.Builder
	fmt.Fprintf(&bld, "# Photo %s\n\n", photo.Id)
	fmt.Fprintf(&bld, "by **%s**\n\n", photo.Author)
	bld.WriteString("| field | value |\n|---|---|\n")
	fmt.Fprintf(&bld, "| size | %d × %d |\n", photo.Width, photo.Height)
	if page > 0 {
		fmt.Fprintf(&bld, "| page | %d |\n", page)
	}
	fmt.Fprintf(&bld, "| source | %s |\n", photo.Url)
	fmt.Fprintf(&bld, "| download | %s |\n", photo.DownloadUrl)
	return bld.String()
}

func renderMarkdown(md, style string, width int) (string, error) {

	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	rdr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create renderer")
	}

	out, err := rdr.Render(md)
	err = errors.Wrapf(err, "failed to render markdown")
	return out, err
}
