package media

import (
	"slices"
	"testing"
	"time"

	"github.com/handiism/musicbook/internal/book"
	"github.com/handiism/musicbook/internal/model"
	"github.com/handiism/musicbook/internal/player"
)

func record(p *ClockPlayer) *[]player.Event {
	var events []player.Event
	p.OnEvent(func(ev player.Event) { events = append(events, ev) })
	return &events
}

func TestClockPlayer_Load(t *testing.T) {
	p := NewClockPlayer(WithLoadLatency(100 * time.Millisecond))
	events := record(p)

	p.SetSource("a.mp3")
	if p.ReadyState() != player.HaveMetadata {
		t.Errorf("ReadyState() = %v, want HaveMetadata", p.ReadyState())
	}
	p.Play()
	p.Advance(50 * time.Millisecond)
	if p.ReadyState() != player.HaveMetadata || p.CurrentTime() != 0 {
		t.Error("player must not play before the load latency has passed")
	}
	p.Advance(60 * time.Millisecond)
	if p.ReadyState() != player.HaveEnoughData {
		t.Errorf("ReadyState() = %v, want HaveEnoughData", p.ReadyState())
	}

	if n := p.Dispatch(); n != len(*events) {
		t.Errorf("Dispatch() = %d, delivered %d", n, len(*events))
	}
	want := []player.Event{
		player.EventPlay,
		player.EventCanPlay,
		player.EventProgress,
		player.EventPlaying,
		player.EventTimeUpdate,
	}
	if !slices.Equal(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}
	if p.Pending() != 0 {
		t.Errorf("Pending() = %d after Dispatch()", p.Pending())
	}
}

func TestClockPlayer_EventsAreQueued(t *testing.T) {
	p := NewClockPlayer()
	events := record(p)

	p.SetSource("a.mp3")
	p.SetCurrentTime(10)
	if len(*events) != 0 {
		t.Fatalf("events delivered before Dispatch(): %v", *events)
	}
	p.Dispatch()
	want := []player.Event{player.EventCanPlay, player.EventProgress, player.EventTimeUpdate}
	if !slices.Equal(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}
}

func TestClockPlayer_PlaysToEnd(t *testing.T) {
	p := NewClockPlayer()
	p.SetSource("a.mp3")
	p.SetDuration("a.mp3", 2)
	p.Play()
	p.Dispatch()
	events := record(p)

	p.Advance(1500 * time.Millisecond)
	if got := p.CurrentTime(); got != 1.5 {
		t.Errorf("CurrentTime() = %v, want 1.5", got)
	}
	p.Advance(time.Second)
	if got := p.CurrentTime(); got != 2 {
		t.Errorf("CurrentTime() = %v, want 2", got)
	}
	if !p.Paused() || !p.Ended() {
		t.Error("player must be paused and ended at the end of the source")
	}

	p.Dispatch()
	want := []player.Event{player.EventTimeUpdate, player.EventTimeUpdate, player.EventPause, player.EventEnded}
	if !slices.Equal(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}

	p.Play()
	if p.CurrentTime() != 0 {
		t.Error("Play() on an ended source must restart it")
	}
}

func TestClockPlayer_SeekClamps(t *testing.T) {
	p := NewClockPlayer(WithDefaultDuration(time.Minute))
	p.SetSource("a.mp3")

	p.SetCurrentTime(90)
	if got := p.CurrentTime(); got != 60 {
		t.Errorf("CurrentTime() = %v, want 60", got)
	}
	p.SetCurrentTime(-5)
	if got := p.CurrentTime(); got != 0 {
		t.Errorf("CurrentTime() = %v, want 0", got)
	}

	p.SetSource(book.CoverAudioURL)
	if got := p.Duration(); got != 0 {
		t.Errorf("placeholder Duration() = %v, want 0", got)
	}
}

func TestClockPlayer_DrivesEngine(t *testing.T) {
	reg, err := book.New(model.Book{Title: "Album", Artist: "Band"})
	if err != nil {
		t.Fatal(err)
	}
	reg.AddTableOfContentsPage()
	for _, s := range []model.PageSpec{
		model.Track("X", "x.mp3"),
		model.Part(1).WithPart("II"),
		model.Track("Y", "y.mp3"),
	} {
		if _, err := reg.AddPage(s); err != nil {
			t.Fatal(err)
		}
	}

	p := NewClockPlayer()
	p.SetDuration("x.mp3", 2)
	p.SetDuration("y.mp3", 1)

	var visited []int
	eng := player.New(reg, p, player.WithStateListener(func(s player.UIState) {
		if n := len(visited); n == 0 || visited[n-1] != s.CurrentPageID {
			visited = append(visited, s.CurrentPageID)
		}
	}))
	eng.Start()
	p.Dispatch()
	eng.Goto(0, player.PlayStart)
	p.Dispatch()

	for i := 0; i < 20 && (eng.CurrentPageID() != 4 || !p.Paused()); i++ {
		p.Advance(500 * time.Millisecond)
		p.Dispatch()
	}

	want := []int{0, 1, 2, 3, 4}
	if !slices.Equal(visited, want) {
		t.Errorf("visited pages %v, want %v", visited, want)
	}
	if !p.Ended() || eng.CurrentPageID() != 4 {
		t.Errorf("playback must stop at the end of the book, page %d", eng.CurrentPageID())
	}
}
