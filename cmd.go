package defile

import (
	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"defile/detail"
	"defile/message"
)

// fetchPage requests page off the event loop; the outcome comes back as a scroll event.
func (m Model) fetchPage(page int) tea.Cmd {

	co, ctx := m.coordinator, m.ctx
	return func() tea.Msg {
		return co.Fetch(ctx, page)
	}
}

// getPhoto gets a full record from the catalog; a failed lookup also
// reaches the footer.
func (m Model) getPhoto(ref string) tea.Cmd {

	catalog := m.catalog
	return func() tea.Msg {
		if catalog == nil {
			return detail.PhotoMsg{Ref: ref, Err: errors.New("catalog disabled")}
		}

		data, err := catalog.GetPhoto(ref)
		if err != nil {
			err = errors.Wrapf(err, "failed to get photo")
			return tea.BatchMsg{
				func() tea.Msg { return detail.PhotoMsg{Ref: ref, Err: err} },
				message.ErrorCmd(err),
			}
		}
		return detail.PhotoMsg{Ref: ref, Data: data}
	}
}
