package defile

import (
	"context"
	"net/url"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"defile/detail"
	nt "defile/entity"
	"defile/fetch"
	"defile/gallery"
	"defile/message"
	"defile/scroll"
	"defile/sensor"
	"defile/style"
)

const (
	footerHeight = 1
	inboxSize    = 64
	wheelRows    = 3
)

// TransitionObserver is told of every applied event and may schedule work.
type TransitionObserver func(m Model, tr scroll.Transition) tea.Cmd

// Model is the bubbletea model for the gallery TUI.
type Model struct {
	logger      nt.Logger
	ctx         context.Context
	catalog     Catalog
	coordinator *fetch.Coordinator
	errorString string
	source      string

	// visibility
	observer sensor.Observer
	sentinel *gallery.Sentinel
	inbox    chan scroll.Event

	// fetch lifecycle
	state     scroll.State
	observers []TransitionObserver

	// layout
	blocks   []gallery.Block
	laid     gallery.Laid
	cells    gallery.Cells
	offset   int
	selected int

	CurrentScreen Screen
	DetailPanel   detail.DetailPanel

	Width  int
	Height int
}

// NewModel mounts a gallery: fresh state, and the sentinel observed once.
func NewModel(ctx context.Context, opt Options) (model Model, err error) {

	if opt.Logger == nil {
		err = errors.New("logger is required")
		return
	}

	requester := opt.Requester
	if requester == nil {
		requester = fetch.HTTP{}
	}
	construct := opt.Observer
	if construct == nil {
		construct = sensor.NewViewport
	}
	baseURL := opt.BaseURL
	if baseURL == "" {
		baseURL = fetch.DefaultBaseURL
	}

	if fielder, ok := opt.Logger.(Fielder); ok {
		ctx = fielder.WithFields(ctx, "session", uuid.NewString())
	}

	var recorder fetch.Recorder
	if opt.Catalog != nil {
		recorder = opt.Catalog
	}

	inbox := make(chan scroll.Event, inboxSize)
	sentinel := &gallery.Sentinel{}

	observer := construct(sensorCallback(inbox), sensor.Options{Threshold: 1})
	if observer == nil {
		err = errors.New("observer constructor returned nil")
		return
	}

	model = Model{
		logger:        opt.Logger,
		ctx:           ctx,
		catalog:       opt.Catalog,
		coordinator:   fetch.New(requester, baseURL, recorder, opt.Logger),
		source:        sourceName(baseURL),
		observer:      observer,
		sentinel:      sentinel,
		inbox:         inbox,
		state:         scroll.New(),
		observers:     []TransitionObserver{Model.fetchOnLoading, Model.logTransition},
		cells:         opt.Cells,
		CurrentScreen: GalleryScreen,
		DetailPanel:   detail.NewDetailPanel(opt.DetailStyle),
	}
	model = model.relayout()

	observer.Observe(sentinel)

	model.logger.Info(ctx, "mounted gallery", "source", baseURL)
	return
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	m, cmd := m.update(msg)

	m, drained := m.drain()
	return m, tea.Batch(cmd, drained)
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Starting...")
	}

	var screenContent string
	switch m.CurrentScreen {
	case DetailScreen:
		screenContent = m.DetailPanel.Render()
	case GalleryScreen:
		screenContent = m.renderGallery()
	}
	screenContent = fit(screenContent, m.viewHeight())

	footerContent := RenderFooter(m.selected+1, len(m.state.Refs), m.state, m.source, m.Width)
	if m.errorString != "" {
		footerContent = style.ErrorStyle.Render(m.errorString)
	}

	view := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, screenContent, footerContent))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	return view
}

// State returns the current fetch lifecycle state.
func (m Model) State() scroll.State {
	return m.state
}

// Blocks returns what is currently rendered.
func (m Model) Blocks() []gallery.Block {
	return m.blocks
}

// unexported

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {

	switch msg := msg.(type) {

	case scroll.Event:
		return m.dispatch(msg)

	case message.SensorMsg:
		return m, nil

	case detail.PhotoMsg:
		var cmd tea.Cmd
		m.DetailPanel, cmd = m.DetailPanel.Update(msg)
		return m, cmd

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		var cmd tea.Cmd
		m.DetailPanel, cmd = m.DetailPanel.Update(detail.SizeMsg{
			Width:  msg.Width,
			Height: m.viewHeight(),
		})
		return m.relayout(), cmd

	case tea.KeyPressMsg:
		if m.errorString != "" {
			m.errorString = ""
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc":
			if m.CurrentScreen != GalleryScreen {
				return m.switchToGallery()
			}
			return m, tea.Quit
		}

		if m.CurrentScreen == DetailScreen {
			return m.updateDetail(msg)
		}
		return m.updateGallery(msg)

	case tea.MouseClickMsg:
		if m.CurrentScreen != GalleryScreen || msg.Button != tea.MouseLeft {
			return m, nil
		}
		return m.click(msg.Y)

	case tea.MouseWheelMsg:
		if m.CurrentScreen != GalleryScreen {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseWheelUp:
			return m.scrollTo(m.offset - wheelRows), nil
		case tea.MouseWheelDown:
			return m.scrollTo(m.offset + wheelRows), nil
		}
	}

	return m, nil
}

func (m Model) updateGallery(msg tea.KeyPressMsg) (Model, tea.Cmd) {

	page := max(m.viewHeight()-1, 1)

	switch msg.String() {
	case "down", "j":
		return m.scrollTo(m.offset + 1), nil
	case "up", "k":
		return m.scrollTo(m.offset - 1), nil
	case "pgdown", "space", " ":
		return m.scrollTo(m.offset + page), nil
	case "pgup":
		return m.scrollTo(m.offset - page), nil
	case "home", "g":
		return m.scrollTo(0), nil
	case "end", "G":
		return m.scrollTo(len(m.laid.Rows)), nil

	case "r":
		return m.retry()

	case "enter", "right", "l":
		return m.switchToDetail()
	}

	return m, nil
}

func (m Model) updateDetail(msg tea.KeyPressMsg) (Model, tea.Cmd) {

	switch msg.String() {
	case "left", "h":
		return m.switchToGallery()
	}

	var cmd tea.Cmd
	m.DetailPanel, cmd = m.DetailPanel.Update(msg)
	return m, cmd
}

// retry activates the retry control, which exists only after a failed fetch.
func (m Model) retry() (Model, tea.Cmd) {

	if len(gallery.ByText(m.blocks, gallery.RetryText)) == 0 {
		return m, nil
	}
	return m.dispatch(scroll.StartFetch{})
}

func (m Model) switchToDetail() (Model, tea.Cmd) {

	images := gallery.ByRole(m.blocks, gallery.RoleImage)
	if m.selected < 0 || m.selected >= len(images) {
		return m, nil
	}
	return m.openDetail(images[m.selected].Ref)
}

func (m Model) openDetail(ref string) (Model, tea.Cmd) {

	m.CurrentScreen = DetailScreen
	m.DetailPanel.Focused = true
	return m, m.getPhoto(ref)
}

// click activates the block under screen row y: the retry control, or an image.
func (m Model) click(y int) (Model, tea.Cmd) {

	idx := m.blockAt(m.offset + y)
	if idx < 0 || y >= m.viewHeight() {
		return m, nil
	}

	blk := m.blocks[idx]
	switch blk.Kind {
	case gallery.RetryBlock:
		return m.retry()
	case gallery.ImageBlock:
		return m.openDetail(blk.Ref)
	}
	return m, nil
}

func (m Model) blockAt(row int) int {

	for i := range m.blocks {
		top := m.laid.Tops[i]
		if row >= top && row < top+m.laid.Heights[i] {
			return i
		}
	}
	return -1
}

func (m Model) switchToGallery() (Model, tea.Cmd) {

	m.CurrentScreen = GalleryScreen
	m.DetailPanel.Focused = false
	return m, nil
}

// dispatch applies ev and lets each transition observer react.
func (m Model) dispatch(ev scroll.Event) (Model, tea.Cmd) {

	tr := scroll.Step(m.state, ev)
	m.state = tr.To

	cmds := make([]tea.Cmd, 0, len(m.observers))
	for _, observe := range m.observers {
		cmds = append(cmds, observe(m, tr))
	}

	if tr.Changed() || len(tr.From.Refs) != len(tr.To.Refs) {
		m = m.relayout()
	}
	return m, tea.Batch(cmds...)
}

// drain dispatches the events queued by the sensor callback.
func (m Model) drain() (Model, tea.Cmd) {

	var cmds []tea.Cmd
	for {
		select {
		case ev := <-m.inbox:
			var cmd tea.Cmd
			m, cmd = m.dispatch(ev)
			cmds = append(cmds, cmd)
		default:
			return m, tea.Batch(cmds...)
		}
	}
}

func (m Model) fetchOnLoading(tr scroll.Transition) tea.Cmd {

	if !tr.EnteredLoading() {
		return nil
	}
	return m.fetchPage(tr.To.Page)
}

func (m Model) logTransition(tr scroll.Transition) tea.Cmd {

	if !tr.Changed() {
		return nil
	}

	kv := []any{
		"from", tr.From.Status.String(),
		"to", tr.To.Status.String(),
		"page", tr.To.Page,
		"images", len(tr.To.Refs),
	}
	if fe, ok := tr.Event.(scroll.FetchError); ok && fe.Err != nil {
		kv = append(kv, "cause", fe.Err.Error())
	}

	m.logger.Info(m.ctx, "status changed", kv...)
	return nil
}

// relayout renders the blocks, places the sentinel and tells the sensor
// where the viewport is.
func (m Model) relayout() Model {

	m.blocks = gallery.Render(m.state)
	m.laid = gallery.Layout(m.blocks, m.cells, m.Width, m.selected)
	m.offset = m.clampOffset(m.offset)

	selected := m.selectedAt(m.offset)
	if selected != m.selected {
		m.selected = selected
		m.laid = gallery.Layout(m.blocks, m.cells, m.Width, m.selected)
	}

	last := len(m.blocks) - 1
	m.sentinel.Place(m.laid.Tops[last], m.laid.Heights[last])

	tracker, ok := m.observer.(sensor.Tracker)
	if ok && m.viewHeight() > 0 {
		tracker.Track(m.offset, m.viewHeight())
	}
	return m
}

func (m Model) scrollTo(offset int) Model {

	m.offset = m.clampOffset(offset)
	return m.relayout()
}

func (m Model) clampOffset(offset int) int {

	maxOffset := max(len(m.laid.Rows)-m.viewHeight(), 0)
	return min(max(offset, 0), maxOffset)
}

// selectedAt finds the first image whose top is in view, or the last image
// starting above it.
func (m Model) selectedAt(offset int) int {

	selected := -1
	image := 0
	for i, blk := range m.blocks {
		if blk.Kind != gallery.ImageBlock {
			continue
		}
		if m.laid.Tops[i] >= offset {
			return image
		}
		selected = image
		image++
	}
	return selected
}

func (m Model) viewHeight() int {
	return max(m.Height-footerHeight, 0)
}

func (m Model) renderGallery() string {

	rows := m.laid.Rows
	end := min(m.offset+m.viewHeight(), len(rows))
	if m.offset >= end {
		return ""
	}
	return strings.Join(rows[m.offset:end], "\n")
}

func sensorCallback(inbox chan<- scroll.Event) sensor.Callback {

	return func(entries []sensor.Entry) {
		for _, entry := range entries {
			if entry.IntersectionRatio < 1 {
				continue
			}
			select {
			case inbox <- scroll.StartFetch{}:
			default:
			}
		}
	}
}

// fit pads or cuts content to exactly height rows.
func fit(content string, height int) string {

	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func sourceName(baseURL string) string {

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return baseURL
	}
	return parsed.Host
}
