package media

import (
	"time"

	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/book"
	"github.com/handiism/musicbook/internal/player"
)

// DefaultDuration is the length assumed for audio assets without a
// registered duration.
const DefaultDuration = 3 * time.Minute

// maxDispatch bounds the events delivered by one Dispatch call.
const maxDispatch = 1024

// ClockPlayer is a simulated media element. It implements player.Media and
// player.EventSource. A ClockPlayer is not safe for concurrent use.
type ClockPlayer struct {
	src       string
	time      float64
	paused    bool
	ready     player.ReadyState
	loadLeft  time.Duration
	durations map[string]float64

	defaultDuration float64
	loadLatency     time.Duration

	queue     []player.Event
	listeners []func(player.Event)
	log       *zap.Logger
}

// Option configures a ClockPlayer.
type Option func(*ClockPlayer)

// WithLoadLatency sets the time a new source needs to become playable.
func WithLoadLatency(d time.Duration) Option {
	return func(p *ClockPlayer) {
		if d >= 0 {
			p.loadLatency = d
		}
	}
}

// WithDefaultDuration sets the length of audio assets without a registered
// duration.
func WithDefaultDuration(d time.Duration) Option {
	return func(p *ClockPlayer) {
		if d > 0 {
			p.defaultDuration = d.Seconds()
		}
	}
}

// WithLogger sets the logger of the player.
func WithLogger(log *zap.Logger) Option {
	return func(p *ClockPlayer) {
		if log != nil {
			p.log = log
		}
	}
}

// NewClockPlayer creates a paused player without source.
func NewClockPlayer(opts ...Option) *ClockPlayer {
	p := &ClockPlayer{
		paused:          true,
		ready:           player.HaveNothing,
		durations:       make(map[string]float64),
		defaultDuration: DefaultDuration.Seconds(),
		log:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetDuration registers the length in seconds of an audio asset.
func (p *ClockPlayer) SetDuration(url string, seconds float64) {
	if seconds > 0 {
		p.durations[url] = seconds
	}
}

// Duration returns the length in seconds of the current source. The
// placeholder assets of the cover and the table of contents have none.
func (p *ClockPlayer) Duration() float64 {
	return p.durationOf(p.src)
}

func (p *ClockPlayer) durationOf(url string) float64 {
	switch {
	case url == "" || book.IsPlaceholder(url):
		return 0
	case p.durations[url] > 0:
		return p.durations[url]
	default:
		return p.defaultDuration
	}
}

// Source returns the URL of the loaded audio asset.
func (p *ClockPlayer) Source() string {
	return p.src
}

// SetSource loads an audio asset. Playback time is reset and the player
// becomes ready after the load latency.
func (p *ClockPlayer) SetSource(url string) {
	p.log.Debug("Set source", zap.String("url", url))
	p.src = url
	p.time = 0
	if url == "" {
		p.ready = player.HaveNothing
		return
	}
	p.ready = player.HaveMetadata
	p.loadLeft = p.loadLatency
	if p.loadLeft == 0 {
		p.becomeReady()
	}
}

func (p *ClockPlayer) becomeReady() {
	p.ready = player.HaveEnoughData
	p.emit(player.EventCanPlay)
	p.emit(player.EventProgress)
	if !p.paused {
		p.emit(player.EventPlaying)
	}
}

// CurrentTime returns the playback time in seconds.
func (p *ClockPlayer) CurrentTime() float64 {
	return p.time
}

// SetCurrentTime seeks, clamped to the duration of the source.
func (p *ClockPlayer) SetCurrentTime(seconds float64) {
	p.time = max(0, min(seconds, p.Duration()))
	p.emit(player.EventTimeUpdate)
}

// Play starts playback. An ended source restarts from the beginning.
func (p *ClockPlayer) Play() {
	if !p.paused {
		return
	}
	if p.Ended() {
		p.time = 0
	}
	p.paused = false
	p.emit(player.EventPlay)
	if p.ready >= player.HaveFutureData {
		p.emit(player.EventPlaying)
	}
}

// Pause pauses playback.
func (p *ClockPlayer) Pause() {
	if p.paused {
		return
	}
	p.paused = true
	p.emit(player.EventPause)
}

// Paused returns true unless the player is playing.
func (p *ClockPlayer) Paused() bool {
	return p.paused
}

// ReadyState returns the readiness of the player.
func (p *ClockPlayer) ReadyState() player.ReadyState {
	return p.ready
}

// Ended returns true if the playback time reached the end of the source.
func (p *ClockPlayer) Ended() bool {
	return p.src != "" && p.ready >= player.HaveMetadata && p.time >= p.Duration()
}

// OnEvent registers a listener. Listeners are called by Dispatch.
func (p *ClockPlayer) OnEvent(fn func(player.Event)) {
	p.listeners = append(p.listeners, fn)
}

// Advance moves the clock forward. A loading source becomes ready once the
// load latency has passed; a playing source advances its playback time and
// ends at its duration.
func (p *ClockPlayer) Advance(dt time.Duration) {
	if p.src == "" || dt <= 0 {
		return
	}
	if p.ready < player.HaveFutureData {
		p.loadLeft -= dt
		if p.loadLeft > 0 {
			return
		}
		p.becomeReady()
	}
	if p.paused {
		return
	}

	p.time = min(p.time+dt.Seconds(), p.Duration())
	p.emit(player.EventTimeUpdate)
	if p.Ended() {
		p.paused = true
		p.emit(player.EventPause)
		p.emit(player.EventEnded)
	}
}

// Pending returns the number of queued events.
func (p *ClockPlayer) Pending() int {
	return len(p.queue)
}

// Dispatch delivers queued events to the listeners in order, including the
// events the listeners cause. It returns the number of delivered events.
func (p *ClockPlayer) Dispatch() int {
	n := 0
	for len(p.queue) > 0 && n < maxDispatch {
		ev := p.queue[0]
		p.queue = p.queue[1:]
		for _, fn := range p.listeners {
			fn(ev)
		}
		n++
	}
	if len(p.queue) > 0 {
		p.log.Warn("Event queue not drained", zap.Int("pending", len(p.queue)))
	}
	return n
}

func (p *ClockPlayer) emit(ev player.Event) {
	p.queue = append(p.queue, ev)
}
