// Package tui provides a Bubble Tea terminal user interface for musicbook.
//
// The book is shown as a horizontal strip of pages, one page per screen.
// Scrolling the strip, the page buttons, the table of contents and the
// simulated media element all drive the same player.Engine.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/book"
	"github.com/handiism/musicbook/internal/config"
	"github.com/handiism/musicbook/internal/debounce"
	ioutils "github.com/handiism/musicbook/internal/io"
	"github.com/handiism/musicbook/internal/media"
	"github.com/handiism/musicbook/internal/model"
	"github.com/handiism/musicbook/internal/player"
)

const (
	// thumbnailCols is the width of rendered page images.
	thumbnailCols = 24

	// scrollStep is the distance of one scroll key press, in pages.
	scrollStep = 1.0 / 3

	// chromeHeight is the number of lines around the page pane.
	chromeHeight = 11

	defaultWidth  = 80
	defaultHeight = 24

	imageTimeout = 30 * time.Second
	maxLogs      = 3
)

// ImageLoader returns the bytes of the image at location.
type ImageLoader func(ctx context.Context, location string) ([]byte, error)

// Level is the severity of a log message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelSuccess
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   Level
}

// Message types
type (
	// ReloadMsg replaces the book, for example after its manifest changed.
	// A reload with an error keeps the current book.
	ReloadMsg struct {
		Registry *book.Registry
		Err      error
	}

	// tickMsg advances the media clock.
	tickMsg struct{}

	// scrollSettledMsg is sent once scrolling has stopped.
	scrollSettledMsg struct{}

	// thumbnailMsg carries a rendered page image.
	thumbnailMsg struct {
		URL string
		Art string
		Err error
	}
)

// session is one book being played. It is replaced on reload.
type session struct {
	reg    *book.Registry
	media  *media.ClockPlayer
	engine *player.Engine
	strip  *Strip
	state  player.UIState
}

// programRef lets timer goroutines post messages to the running program.
type programRef struct {
	p *tea.Program
}

func (r *programRef) send(msg tea.Msg) {
	if r.p != nil {
		r.p.Send(msg)
	}
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The console must not be one of its outputs
// while the program runs.
func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithImageLoader sets how page images are fetched. By default only local
// files are read.
func WithImageLoader(load ImageLoader) Option {
	return func(m *Model) {
		if load != nil {
			m.loadImage = load
		}
	}
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	settings  *config.Settings
	log       *zap.Logger
	loadImage ImageLoader
	images    *ioutils.ImageService

	s        *session
	debounce *debounce.Debouncer
	program  *programRef

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model
	pane     viewport.Model

	thumbnails map[string]string
	cursor     int
	credits    bool
	logs       []LogEntry

	width  int
	height int
}

// NewModel creates a player for reg showing the cover page.
func NewModel(reg *book.Registry, settings *config.Settings, opts ...Option) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	images := ioutils.NewImageService()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50
	prog.ShowPercentage = false

	program := &programRef{}
	m := Model{
		settings: settings,
		log:      zap.NewNop(),
		loadImage: func(_ context.Context, location string) ([]byte, error) {
			return images.ReadImage(location)
		},
		images:     images,
		program:    program,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		progress:   prog,
		pane:       viewport.New(defaultWidth, defaultHeight-chromeHeight),
		thumbnails: make(map[string]string),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.debounce = debounce.New(settings.ScrollSettleDelay(), func() {
		program.send(scrollSettledMsg{})
	})
	m.s = m.newSession(reg)
	m.refreshPane()
	return m
}

func (m *Model) newSession(reg *book.Registry) *session {
	s := &session{
		reg: reg,
		media: media.NewClockPlayer(
			media.WithLoadLatency(m.settings.LoadLatency()),
			media.WithDefaultDuration(m.settings.DefaultDuration()),
			media.WithLogger(m.log.Named("media")),
		),
		strip: NewStrip(reg.Len(), m.width),
	}
	for _, p := range reg.Pages() {
		s.media.SetDuration(p.AudioURL, p.Duration)
	}
	s.engine = player.New(reg, s.media,
		player.WithViewport(s.strip),
		player.WithStateListener(func(st player.UIState) { s.state = st }),
		player.WithRestartThreshold(m.settings.RestartThreshold),
		player.WithLogger(m.log.Named("engine")),
	)
	s.engine.Start()
	s.media.Dispatch()
	return s
}

// NewProgram creates the program running m.
func NewProgram(m Model) *tea.Program {
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.program.p = p
	return p
}

// Run starts the TUI application. If start is not nil, it is called with
// the program before it runs, so other goroutines can post messages such as
// ReloadMsg.
func Run(m Model, start func(p *tea.Program)) error {
	p := NewProgram(m)
	if start != nil {
		start(p)
	}
	_, err := p.Run()
	m.debounce.Stop()
	return err
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.s.reg.Book().WindowTitle()),
		m.spinner.Tick,
		m.tick(),
		m.loadThumbnails(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.s.strip.Resize(msg.Width)
		m.progress.Width = max(20, min(msg.Width-30, 80))
		m.help.Width = msg.Width
		m.pane.Width = msg.Width
		m.pane.Height = max(3, msg.Height-chromeHeight)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.debounce.Stop()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case tickMsg:
		m.s.media.Advance(m.settings.TickInterval())
		m.s.media.Dispatch()
		cmds = append(cmds, m.tick())

	case scrollSettledMsg:
		m.s.engine.HandleScroll()
		m.s.media.Dispatch()
		m.s.strip.Snap()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case thumbnailMsg:
		if msg.Err != nil {
			m.log.Warn("Cannot render image", zap.String("url", msg.URL), zap.Error(msg.Err))
			m.addLog(LevelWarning, fmt.Sprintf("Image %s: %v", msg.URL, msg.Err))
		} else {
			m.thumbnails[msg.URL] = msg.Art
		}

	case ReloadMsg:
		if msg.Err != nil {
			m.addLog(LevelError, fmt.Sprintf("Reload failed: %v", msg.Err))
			break
		}
		cmds = append(cmds, m.reload(msg.Registry))
	}

	m.refreshPane()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.s
	onContents := s.reg.IsTableOfContents(s.strip.Visible())

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Credits):
		m.credits = !m.credits

	case key.Matches(msg, m.keys.ScrollLeft):
		s.strip.ScrollBy(-scrollStep)
		m.debounce.Trigger()

	case key.Matches(msg, m.keys.ScrollRight):
		s.strip.ScrollBy(scrollStep)
		m.debounce.Trigger()

	case key.Matches(msg, m.keys.Prev):
		s.engine.Previous(player.PlayKeep)

	case key.Matches(msg, m.keys.Next):
		s.engine.Next(player.PlayKeep)

	case key.Matches(msg, m.keys.PlayPause):
		if s.media.Paused() {
			s.media.Play()
		} else {
			s.media.Pause()
		}

	case key.Matches(msg, m.keys.Contents):
		s.engine.GotoContents()
		m.selectEntry(s.engine.CurrentPageID())

	case onContents && key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)

	case onContents && key.Matches(msg, m.keys.Down):
		m.cursor = min(len(m.entries())-1, m.cursor+1)

	case onContents && key.Matches(msg, m.keys.Open):
		entries := m.entries()
		if m.cursor < 0 || m.cursor >= len(entries) {
			break
		}
		e := entries[m.cursor]
		mode := player.PlayPause
		if e.Play {
			mode = player.PlayStart
		}
		s.engine.GotoFromContents(e.PageID, mode)

	default:
		var cmd tea.Cmd
		m.pane, cmd = m.pane.Update(msg)
		return cmd
	}

	s.media.Dispatch()
	return nil
}

// entries returns the navigable table of contents entries.
func (m *Model) entries() []book.Entry {
	var entries []book.Entry
	for _, e := range m.s.reg.Contents().Entries {
		if e.Navigable() {
			entries = append(entries, e)
		}
	}
	return entries
}

// selectEntry moves the contents cursor to the entry of pageID.
func (m *Model) selectEntry(pageID int) {
	for i, e := range m.entries() {
		if e.PageID == pageID {
			m.cursor = i
			return
		}
	}
}

func (m *Model) reload(reg *book.Registry) tea.Cmd {
	prev := m.s.engine.CurrentPageID()
	m.s = m.newSession(reg)
	if prev > 0 {
		m.s.engine.Goto(min(prev, reg.Len()-1), player.PlayPause)
		m.s.media.Dispatch()
	}
	m.cursor = 0
	m.addLog(LevelSuccess, fmt.Sprintf("Reloaded %s (%d pages)", reg.Book().Title, reg.Len()))
	return tea.Batch(tea.SetWindowTitle(reg.Book().WindowTitle()), m.loadThumbnails())
}

func (m *Model) addLog(level Level, message string) {
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// tick returns a command advancing the media clock.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.settings.TickInterval(), func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadThumbnails renders every page image not rendered yet.
func (m Model) loadThumbnails() tea.Cmd {
	seen := make(map[string]bool)
	var cmds []tea.Cmd
	for _, p := range m.s.reg.Pages() {
		if !p.HasImage() || seen[p.ImageURL] {
			continue
		}
		seen[p.ImageURL] = true
		if _, ok := m.thumbnails[p.ImageURL]; ok {
			continue
		}
		url := p.ImageURL
		load, images := m.loadImage, m.images
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
			defer cancel()
			data, err := load(ctx, url)
			if err != nil {
				return thumbnailMsg{URL: url, Err: err}
			}
			art, err := images.Thumbnail(ctx, data, thumbnailCols)
			return thumbnailMsg{URL: url, Art: art, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

// refreshPane renders the visible page into the pane.
func (m *Model) refreshPane() {
	m.pane.SetContent(m.renderPage(m.s.strip.Visible()))
}

func (m Model) renderPage(pageID int) string {
	if m.credits {
		return m.renderCredits()
	}

	s := m.s
	page, ok := s.reg.Page(pageID)
	if !ok {
		return ""
	}

	var b strings.Builder
	if art := m.thumbnails[page.ImageURL]; page.HasImage() && art != "" {
		b.WriteString(art)
		b.WriteString("\n\n")
	}

	switch {
	case s.reg.IsCover(pageID):
		b.WriteString(titleStyle.Render(page.Title))
		b.WriteString("\n")
		if page.Artist != "" {
			b.WriteString(subtitleStyle.Render(page.Artist))
			b.WriteString("\n")
		}

	case s.reg.IsTableOfContents(pageID):
		b.WriteString(titleStyle.Render(page.Title))
		b.WriteString("\n\n")
		b.WriteString(m.renderContents())
		return b.String()

	default:
		b.WriteString(trackStyle.Render(fmt.Sprintf("%02d", page.TrackID)))
		b.WriteString("  ")
		b.WriteString(titleStyle.Render(page.Title))
		b.WriteString("\n")
		if page.PartTitle != "" {
			b.WriteString(subtitleStyle.Render(page.PartTitle))
			b.WriteString("\n")
		}
		b.WriteString(infoStyle.Render(page.Artist))
		b.WriteString("\n")
	}

	if page.Description != "" {
		b.WriteString("\n")
		b.WriteString(page.Description)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderContents() string {
	var b strings.Builder
	current := m.s.engine.CurrentPageID()
	selected := -1
	if entries := m.entries(); m.cursor >= 0 && m.cursor < len(entries) {
		selected = entries[m.cursor].PageID
	}

	for _, e := range m.s.reg.Contents().Entries {
		cursor := "  "
		if e.Navigable() && e.PageID == selected {
			cursor = selectedStyle.Render("› ")
		}
		mark := " "
		if e.Navigable() && e.PageID == current {
			mark = currentMarkStyle.Render("♪")
		}

		text := e.Text()
		if e.Kind == book.EntryContinuation {
			text = "  " + text
		}
		style := lipgloss.NewStyle()
		switch {
		case e.Kind == book.EntryCredits:
			style = dimStyle
		case e.PageID == selected:
			style = selectedStyle
		}

		b.WriteString(fmt.Sprintf("%s%s %s   %s\n",
			cursor, mark, trackStyle.Render(fmt.Sprintf("%-2s", e.TrackNumber)), style.Render(text)))
	}
	return b.String()
}

func (m Model) renderCredits() string {
	b := m.s.reg.Book()
	return boxStyle.Render(fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%d pages",
		book.CreditsText,
		b.Title,
		b.Artist,
		m.s.reg.Len(),
	))
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder
	s := m.s
	st := s.state

	// Header
	b.WriteString(titleStyle.Render(s.reg.Book().WindowTitle()))
	b.WriteString("\n")
	b.WriteString(m.renderStrip())
	b.WriteString("\n\n")

	b.WriteString(m.pane.View())
	b.WriteString("\n\n")

	// Now playing
	if st.Error {
		b.WriteString(errorStyle.Render(player.ErrorAlbumTitle))
		b.WriteString(dimStyle.Render("  no page plays " + s.media.Source()))
	} else {
		b.WriteString(subtitleStyle.Render(st.AlbumTitle))
		if st.AlbumArtist != "" {
			b.WriteString(dimStyle.Render(" · " + st.AlbumArtist))
		}
		b.WriteString("\n")
		b.WriteString(m.renderNowPlaying(st))
	}
	b.WriteString("\n")
	b.WriteString(m.renderPlayback(st))
	b.WriteString("\n")

	b.WriteString(m.renderLogs())

	// Footer
	keys := m.keys
	keys.Prev.SetEnabled(st.EnablePrev)
	keys.Next.SetEnabled(st.EnableNext)
	keys.Contents.SetEnabled(st.EnableContents)
	b.WriteString(m.help.View(keys))

	return b.String()
}

// renderStrip shows one mark per page: the visible page as a dot, the
// current page highlighted.
func (m Model) renderStrip() string {
	s := m.s
	visible := s.strip.Visible()
	current := s.engine.CurrentPageID()

	var b strings.Builder
	for i := 0; i < s.reg.Len(); i++ {
		mark := "·"
		if i == visible {
			mark = "●"
		}
		if i == current {
			mark = currentMarkStyle.Render(mark)
		} else {
			mark = dimStyle.Render(mark)
		}
		b.WriteString(mark)
	}
	return b.String()
}

func (m Model) renderNowPlaying(st player.UIState) string {
	var parts []string
	if st.TrackNumberText != "" {
		parts = append(parts, trackStyle.Render(st.TrackNumberText))
	}
	if st.TrackTitleText != "" {
		parts = append(parts, st.TrackTitleText)
	}
	if st.PartTitleText != "" {
		parts = append(parts, dimStyle.Render(st.PartTitleText))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderPlayback(st player.UIState) string {
	p := m.s.media

	icon := "▶"
	if !st.Paused {
		icon = "❚❚"
	}
	if !st.PlayReady && !st.Paused {
		icon = m.spinner.View()
	}

	var percent float64
	if d := p.Duration(); d > 0 {
		percent = p.CurrentTime() / d
	}
	return fmt.Sprintf("%s %s %s / %s",
		icon,
		m.progress.ViewAs(percent),
		formatTime(p.CurrentTime()),
		formatTime(p.Duration()))
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case LevelError:
			style = errorStyle
			prefix = "✗"
		case LevelWarning:
			style = warningStyle
			prefix = "!"
		case LevelSuccess:
			style = successStyle
			prefix = "✓"
		default:
			style = infoStyle
			prefix = "›"
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// formatTime formats seconds as m:ss.
func formatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Book returns the book being played.
func (m Model) Book() model.Book {
	return m.s.reg.Book()
}
