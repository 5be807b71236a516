package defile

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"defile/scroll"
	"defile/style"
)

// RenderFooter renders a footer with where we are in the gallery.
func RenderFooter(current, total int, st scroll.State, source string, width int) string {

	left := fmt.Sprintf("%d/%d  page %d  %s", current, total, st.Page, st.Status)
	if st.Status == scroll.Error {
		left += "  r: retry"
	}
	right := source

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.FooterStyle.Render(left + strings.Repeat(" ", padding) + right)
}
