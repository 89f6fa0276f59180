package tui

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/musicbook/internal/book"
	"github.com/handiism/musicbook/internal/config"
	ioutils "github.com/handiism/musicbook/internal/io"
	"github.com/handiism/musicbook/internal/model"
)

// newTestBook returns cover(0), contents(1), X(2), Y part 0 (3),
// Y part 30 (4), Z(5).
func newTestBook(t *testing.T) *book.Registry {
	t.Helper()
	reg, err := book.New(model.Book{Title: "Album", Artist: "Band"})
	if err != nil {
		t.Fatalf("book.New() error = %v", err)
	}
	reg.AddTableOfContentsPage()
	specs := []model.PageSpec{
		model.Track("X", "x.mp3"),
		model.Track("Y", "y.mp3").WithPart("I"),
		model.Part(30).WithPart("II"),
		model.Track("Z", "z.mp3").WithArtist("Guest"),
	}
	for _, s := range specs {
		if _, err := reg.AddPage(s); err != nil {
			t.Fatalf("AddPage() error = %v", err)
		}
	}
	return reg
}

func testSettings() *config.Settings {
	s := config.DefaultSettings()
	s.TickIntervalMS = 1000
	s.LoadLatencyMS = 0
	return s
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = send(m, msg)
	}
	return m
}

func send(m Model, msg tea.Msg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func (m Model) current() int { return m.s.engine.CurrentPageID() }
func (m Model) visible() int { return m.s.strip.Visible() }

func TestModel_Navigation(t *testing.T) {
	m := NewModel(newTestBook(t), testSettings())
	if m.current() != 0 || m.visible() != 0 {
		t.Fatalf("start: current %d, visible %d", m.current(), m.visible())
	}

	m = press(t, m, "n")
	if m.current() != 1 || m.visible() != 1 {
		t.Errorf("next: current %d, visible %d, want contents", m.current(), m.visible())
	}

	m = press(t, m, "n")
	if m.current() != 2 || m.visible() != 2 {
		t.Errorf("next from contents: current %d, visible %d, want 2", m.current(), m.visible())
	}
	if m.s.state.TrackTitleText != "X" || m.s.state.TrackNumberText != "01" {
		t.Errorf("state = %+v", m.s.state)
	}

	m = press(t, m, "p")
	if m.current() != 1 {
		t.Errorf("previous: current %d, want 1", m.current())
	}
}

func TestModel_ContentsAndPlayback(t *testing.T) {
	m := NewModel(newTestBook(t), testSettings())
	m = press(t, m, "n", "n", "c")

	if m.visible() != 1 || m.current() != 2 {
		t.Fatalf("contents: current %d, visible %d", m.current(), m.visible())
	}
	if e := m.entries()[m.cursor]; e.PageID != 2 {
		t.Errorf("cursor on page %d, want the current page", e.PageID)
	}
	if !strings.Contains(m.View(), "Contents") {
		t.Error("contents page not rendered")
	}

	m = press(t, m, "down", "enter")
	if m.current() != 3 || m.visible() != 3 {
		t.Fatalf("open entry: current %d, visible %d, want 3", m.current(), m.visible())
	}
	if m.s.state.Paused {
		t.Error("opening a contents entry should start playback")
	}

	for i := 0; i < 31; i++ {
		m = send(m, tickMsg{})
	}
	if m.current() != 4 || m.visible() != 4 {
		t.Errorf("after 31s: current %d, visible %d, want second part", m.current(), m.visible())
	}
	if m.s.state.PartTitleText != "II" {
		t.Errorf("PartTitleText = %q", m.s.state.PartTitleText)
	}

	m = press(t, m, " ")
	if !m.s.state.Paused {
		t.Error("space should pause")
	}
}

func TestModel_ContentsCoverPauses(t *testing.T) {
	m := NewModel(newTestBook(t), testSettings())
	m = press(t, m, "n", "n", " ", "c")
	if m.s.state.Paused || m.visible() != 1 {
		t.Fatalf("setup: paused %v, visible %d", m.s.state.Paused, m.visible())
	}

	m = press(t, m, "up", "up", "up", "up", "up")
	if e := m.entries()[m.cursor]; e.Kind != book.EntryCover {
		t.Fatalf("cursor on %v, want the cover", e.Kind)
	}
	m = press(t, m, "enter")
	m = send(m, tickMsg{})

	if m.current() != 0 || m.visible() != 0 {
		t.Errorf("current %d, visible %d, want the cover", m.current(), m.visible())
	}
	if !m.s.state.Paused {
		t.Error("choosing the cover should pause playback")
	}
}

func TestModel_AutoplayThroughContents(t *testing.T) {
	reg, err := book.New(model.Book{Title: "Album", Artist: "Band"})
	if err != nil {
		t.Fatalf("book.New() error = %v", err)
	}
	if _, err := reg.AddPage(model.Track("X", "x.mp3").WithDuration(2)); err != nil {
		t.Fatal(err)
	}
	reg.AddTableOfContentsPage()
	if _, err := reg.AddPage(model.Track("Y", "y.mp3")); err != nil {
		t.Fatal(err)
	}

	m := NewModel(reg, testSettings())
	m = press(t, m, "n", " ")
	m = send(m, tickMsg{})
	m = send(m, tickMsg{})
	if m.current() != 2 || m.visible() != 2 {
		t.Fatalf("after X: current %d, visible %d, want contents", m.current(), m.visible())
	}

	// The contents page has no duration and ends on the next tick. The
	// view stays parked on it while Y plays.
	m = send(m, tickMsg{})
	if m.current() != 3 {
		t.Errorf("current %d, want Y", m.current())
	}
	if m.visible() != 2 {
		t.Errorf("visible %d, want the contents page", m.visible())
	}
	if m.s.state.Paused {
		t.Error("Y should play")
	}
}

func TestModel_Scroll(t *testing.T) {
	m := NewModel(newTestBook(t), testSettings())

	m = press(t, m, "l", "l")
	if m.visible() != 1 {
		t.Fatalf("visible %d, want contents", m.visible())
	}
	m = send(m, scrollSettledMsg{})
	if m.current() != 0 {
		t.Errorf("scrolling to the contents navigated to %d", m.current())
	}
	if m.s.strip.ScrollOffset() != 80 {
		t.Errorf("offset = %v, want snapped to the contents page", m.s.strip.ScrollOffset())
	}

	m = press(t, m, "l", "l")
	m = send(m, scrollSettledMsg{})
	if m.current() != 2 || m.visible() != 2 {
		t.Errorf("current %d, visible %d, want 2", m.current(), m.visible())
	}
	m.debounce.Stop()
}

func TestModel_Reload(t *testing.T) {
	m := NewModel(newTestBook(t), testSettings())
	m = press(t, m, "n", "n")

	old := m.s
	m = send(m, ReloadMsg{Err: errors.New("bad manifest")})
	if m.s != old {
		t.Error("failed reload replaced the book")
	}
	if len(m.logs) != 1 || m.logs[0].Level != LevelError {
		t.Errorf("logs = %+v", m.logs)
	}

	m = send(m, ReloadMsg{Registry: newTestBook(t)})
	if m.s == old {
		t.Fatal("book not replaced")
	}
	if m.current() != 2 {
		t.Errorf("current %d, want the page before the reload", m.current())
	}
	if last := m.logs[len(m.logs)-1]; last.Level != LevelSuccess {
		t.Errorf("last log = %+v", last)
	}
}

func TestModel_CreditsAndQuit(t *testing.T) {
	m := NewModel(newTestBook(t), testSettings())

	if !strings.Contains(m.View(), ":: ALBUM :: Band") {
		t.Error("window title missing")
	}

	m = press(t, m, "i")
	if !strings.Contains(m.View(), book.CreditsText) {
		t.Error("credits not shown")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not return tea.Quit")
	}
}

func TestModel_Thumbnail(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "cover.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	base, err := ioutils.FileURL(dir)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := book.New(model.Book{MediaBaseURI: base + "/", Title: "Album", Image: "cover.png"})
	if err != nil {
		t.Fatal(err)
	}

	m := NewModel(reg, testSettings())
	cmd := m.loadThumbnails()
	if cmd == nil {
		t.Fatal("no thumbnail loaded")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		msg = batch[0]()
	}
	thumb, ok := msg.(thumbnailMsg)
	if !ok || thumb.Err != nil {
		t.Fatalf("msg = %#v", msg)
	}

	m = send(m, thumb)
	if !strings.Contains(m.View(), "▀") {
		t.Error("thumbnail not rendered on the cover")
	}
	if m.loadThumbnails() != nil {
		t.Error("rendered thumbnail loaded again")
	}
}

func TestStrip(t *testing.T) {
	s := NewStrip(4, 10)

	s.ScrollTo(2)
	if s.ScrollOffset() != 20 || s.Visible() != 2 {
		t.Errorf("ScrollTo(2): offset %v, visible %d", s.ScrollOffset(), s.Visible())
	}
	if s.ScrollExtent() != 40 {
		t.Errorf("ScrollExtent() = %v", s.ScrollExtent())
	}

	s.ScrollBy(0.4)
	if s.Visible() != 2 {
		t.Errorf("visible %d after a small scroll", s.Visible())
	}
	s.ScrollBy(0.2)
	if s.Visible() != 3 {
		t.Errorf("visible %d, want 3", s.Visible())
	}

	s.ScrollBy(5)
	if s.ScrollOffset() != 30 {
		t.Errorf("offset %v, want clamped to the last page", s.ScrollOffset())
	}

	s.Resize(20)
	if s.ScrollOffset() != 60 || s.Visible() != 3 {
		t.Errorf("Resize: offset %v, visible %d", s.ScrollOffset(), s.Visible())
	}

	s.SetPages(2)
	if s.Visible() != 1 {
		t.Errorf("SetPages: visible %d", s.Visible())
	}
}
