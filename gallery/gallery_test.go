package gallery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defile/scroll"
)

func TestRender(t *testing.T) {

	refs := []string{"u1", "u2", "u3"}

	tests := []struct {
		name    string
		status  scroll.Status
		texts   []string
		missing []string
	}{
		{
			name:    "idle",
			status:  scroll.Idle,
			missing: []string{LoadingText, EndText, RetryText},
		},
		{
			name:    "loading",
			status:  scroll.Loading,
			texts:   []string{LoadingText},
			missing: []string{EndText, RetryText},
		},
		{
			name:    "error",
			status:  scroll.Error,
			texts:   []string{RetryText},
			missing: []string{LoadingText, EndText},
		},
		{
			name:    "finished",
			status:  scroll.Finished,
			texts:   []string{EndText},
			missing: []string{LoadingText, RetryText},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := Render(scroll.State{Refs: refs, Page: 2, Status: tc.status})

			images := ByRole(blocks, RoleImage)
			require.Len(t, images, 3)
			for i, img := range images {
				assert.Equal(t, refs[i], img.Ref)
				assert.Equal(t, ImageWidth, img.Width)
				assert.Equal(t, ImageHeight, img.Height)
			}

			for _, text := range tc.texts {
				assert.Len(t, ByText(blocks, text), 1, text)
			}
			for _, text := range tc.missing {
				assert.Empty(t, ByText(blocks, text), text)
			}

			last := blocks[len(blocks)-1]
			assert.Equal(t, SentinelBlock, last.Kind)
			assert.Len(t, ByTestID(blocks, SentinelID), 1)
		})
	}
}

func TestRenderEmpty(t *testing.T) {

	blocks := Render(scroll.New())

	require.Len(t, blocks, 1)
	assert.Equal(t, SentinelID, blocks[0].TestID)
	assert.Empty(t, ByRole(blocks, RoleImage))
}

func TestRetryIsButton(t *testing.T) {

	blocks := Render(scroll.State{Page: 1, Status: scroll.Error})

	buttons := ByRole(blocks, RoleButton)
	require.Len(t, buttons, 1)
	assert.Equal(t, RetryText, buttons[0].Text)
}

func TestLayout(t *testing.T) {

	blocks := Render(scroll.State{
		Refs:   []string{"https://picsum.photos/id/0/5000/3333", "https://picsum.photos/id/1/5000/3333"},
		Page:   2,
		Status: scroll.Loading,
	})

	laid := Layout(blocks, DefaultCells, 40, 1)

	require.Len(t, laid.Tops, len(blocks))
	require.Len(t, laid.Heights, len(blocks))

	top := 0
	for i := range blocks {
		assert.Equal(t, top, laid.Tops[i], "block %d", i)
		assert.Positive(t, laid.Heights[i])
		top += laid.Heights[i]
	}
	assert.Len(t, laid.Rows, top)

	assert.GreaterOrEqual(t, laid.Heights[0], 3)
	assert.Equal(t, laid.Heights[0], laid.Heights[1])

	all := strings.Join(laid.Rows, "\n")
	assert.Contains(t, all, "#1")
	assert.Contains(t, all, "#2")
	assert.Contains(t, all, LoadingText)

	sentinel := len(blocks) - 1
	assert.Equal(t, 1, laid.Heights[sentinel])
	assert.Equal(t, len(laid.Rows)-1, laid.Tops[sentinel])
}

func TestLayoutDefaultsCells(t *testing.T) {

	blocks := Render(scroll.State{Refs: []string{"u1"}, Page: 2})

	assert.Equal(t, Layout(blocks, DefaultCells, 20, 0), Layout(blocks, Cells{}, 20, 0))
}

func TestTruncate(t *testing.T) {

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a", truncate("abc", 1))
}

func TestSentinelPlace(t *testing.T) {

	snt := &Sentinel{}
	snt.Place(12, 1)

	assert.Equal(t, 12, snt.Bounds().Top)
	assert.Equal(t, 1, snt.Bounds().Height)
}
