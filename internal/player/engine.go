package player

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/book"
	"github.com/handiism/musicbook/internal/model"
)

// DefaultRestartThreshold is the playback time, in seconds after the start
// of a page, from which Previous restarts the page instead of going back.
const DefaultRestartThreshold = 2.0

// ErrCurrentPageUndetermined is returned when the media source matches no
// page of the book.
var ErrCurrentPageUndetermined = errors.New("current page undetermined")

// Engine keeps page navigation, scroll position and playback consistent.
type Engine struct {
	reg       *book.Registry
	media     Media
	viewport  Viewport
	onState   func(UIState)
	threshold float64
	log       *zap.Logger

	current int
	state   UIState
	emitted bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithViewport sets the viewport the engine scrolls.
func WithViewport(v Viewport) Option {
	return func(e *Engine) {
		e.viewport = v
	}
}

// WithStateListener registers the listener notified about every change of
// the UI state.
func WithStateListener(fn func(UIState)) Option {
	return func(e *Engine) {
		e.onState = fn
	}
}

// WithRestartThreshold sets the restart threshold of Previous in seconds.
func WithRestartThreshold(seconds float64) Option {
	return func(e *Engine) {
		if seconds >= 0 {
			e.threshold = seconds
		}
	}
}

// WithLogger sets the logger of the engine.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an engine for the pages of reg playing through media.
//
// If media implements EventSource, the engine subscribes to its events.
// No page is current until Start or Goto is called.
func New(reg *book.Registry, media Media, opts ...Option) *Engine {
	e := &Engine{
		reg:       reg,
		media:     media,
		threshold: DefaultRestartThreshold,
		log:       zap.NewNop(),
		current:   -1,
	}
	for _, opt := range opts {
		opt(e)
	}

	if src, ok := media.(EventSource); ok {
		src.OnEvent(e.HandleEvent)
	}
	return e
}

// CurrentPageID returns the id of the current page, -1 if there is none.
func (e *Engine) CurrentPageID() int {
	return e.current
}

// State returns the last UI state sent to the listener.
func (e *Engine) State() UIState {
	return e.state
}

// Start shows the cover and loads its media.
func (e *Engine) Start() {
	if e.viewport != nil {
		e.viewport.ScrollTo(0)
	}
	e.Goto(0, PlayKeep)
}

// Goto navigates to a page. Out of range ids are clamped.
//
// The media switches to the page's audio asset if needed, seeks to the
// page's offset and plays or pauses according to mode. A reconciliation
// follows, so the viewport stays on the table of contents if it is parked
// there.
func (e *Engine) Goto(pageID int, mode PlayMode) {
	pageID = max(0, min(pageID, e.reg.Len()-1))
	page, _ := e.reg.Page(pageID)
	play := e.shouldPlay(mode)

	e.log.Debug("Goto",
		zap.Int("page", pageID),
		zap.Stringer("mode", mode),
		zap.Bool("play", play))

	if e.media.Source() != page.AudioURL {
		e.media.SetSource(page.AudioURL)
	}
	e.media.SetCurrentTime(page.Offset())
	if play {
		e.media.Play()
	} else {
		e.media.Pause()
	}

	e.Reconcile(false)
}

// Next navigates to the following page. It does nothing on the last page.
func (e *Engine) Next(mode PlayMode) {
	if e.current >= e.reg.Len()-1 {
		return
	}
	if e.reg.IsTableOfContents(e.current) && e.viewport != nil {
		e.viewport.ScrollTo(e.current + 1)
	}
	e.Goto(e.current+1, mode)
}

// Previous restarts the current page if playback is past the restart
// threshold, and navigates to the preceding page otherwise. Going back to
// the cover never starts playback.
func (e *Engine) Previous(mode PlayMode) {
	page, ok := e.reg.Page(e.current)
	if !ok {
		return
	}

	if e.media.CurrentTime() > page.Offset()+e.threshold {
		e.media.SetCurrentTime(page.Offset())
		return
	}
	if e.current == 0 {
		return
	}

	// The viewport stays parked on the contents page otherwise.
	if e.reg.IsTableOfContents(e.current) && e.viewport != nil {
		e.viewport.ScrollTo(e.current - 1)
	}
	if e.current <= 1 {
		mode = PlayPause
	}
	e.Goto(e.current-1, mode)
}

// GotoContents scrolls to the table of contents, or to the cover if the book
// has none. The current page and playback are left alone.
func (e *Engine) GotoContents() {
	if e.viewport == nil {
		return
	}
	target := e.reg.ContentsID()
	if target < 0 {
		target = 0
	}
	e.viewport.ScrollTo(target)
}

// GotoFromContents follows a table of contents link. It navigates if the
// table of contents or another page than pageID is current, and always
// scrolls to pageID. Following the link of the current page does not
// rewind it.
func (e *Engine) GotoFromContents(pageID int, mode PlayMode) {
	if e.reg.IsTableOfContents(e.current) || pageID != e.current {
		e.Goto(pageID, mode)
	}
	if e.viewport != nil {
		e.viewport.ScrollTo(pageID)
	}
}

// DetectCurrentPage maps the media source and playback time onto a page.
//
// Of the pages sharing the media source, it returns the last one whose part
// offset is not after the playback time, or the final part if there is
// none. It returns ErrCurrentPageUndetermined if no page uses the source.
func (e *Engine) DetectCurrentPage() (int, error) {
	return detectPage(e.reg.Pages(), e.media.Source(), e.media.CurrentTime())
}

func detectPage(pages []model.Page, source string, now float64) (int, error) {
	var candidates []model.Page
	for _, p := range pages {
		if p.AudioURL == source {
			candidates = append(candidates, p)
		}
	}

	switch len(candidates) {
	case 0:
		return -1, fmt.Errorf("%w: no page plays %q", ErrCurrentPageUndetermined, source)
	case 1:
		return candidates[0].ID, nil
	}

	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].Offset() <= now {
			return candidates[i].ID, nil
		}
	}
	return candidates[len(candidates)-1].ID, nil
}

// Reconcile brings the current page, the scroll position and the UI state
// in line with the media.
//
// If the detected page is the current one and force is not set, only the
// control state is refreshed, and listeners are only notified if it
// changed. Otherwise the detected page becomes current, the viewport
// scrolls to it unless it is parked on the table of contents and force is
// not set, and all texts are refreshed.
func (e *Engine) Reconcile(force bool) {
	pageID, err := e.DetectCurrentPage()
	if err != nil {
		if e.current != -1 || force {
			e.log.Warn("Cannot determine current page",
				zap.String("source", e.media.Source()),
				zap.Float64("time", e.media.CurrentTime()),
				zap.Error(err))
		}
		e.current = -1
		e.emit(UIState{
			CurrentPageID: -1,
			AlbumTitle:    ErrorAlbumTitle,
			Paused:        e.media.Paused(),
			Error:         true,
		}, force)
		return
	}

	next := e.state
	if e.current == -1 {
		next = UIState{}
	}
	next.Error = false
	next.EnablePrev = pageID > 0
	next.EnableNext = pageID < e.reg.Len()-1
	next.EnableContents = true
	next.PlayReady = e.media.ReadyState() >= HaveFutureData
	next.Paused = e.media.Paused()

	if pageID == e.current && !force {
		e.emit(next, false)
		return
	}

	if pageID != e.current {
		e.log.Debug("Current page changed",
			zap.Int("from", e.current),
			zap.Int("to", pageID))
	}
	e.current = pageID
	if e.viewport != nil && (force || !e.parkedOnContents()) {
		e.viewport.ScrollTo(pageID)
	}

	page, _ := e.reg.Page(pageID)
	next.CurrentPageID = pageID
	next.AlbumTitle = e.reg.Book().Title
	next.AlbumArtist = page.Artist
	next.TrackNumberText = ""
	next.TrackTitleText = ""
	next.PartTitleText = ""
	switch {
	case e.reg.IsCover(pageID):
	case e.reg.IsTableOfContents(pageID):
		next.TrackTitleText = page.Title
	default:
		next.TrackNumberText = fmt.Sprintf("%02d", page.TrackID)
		next.TrackTitleText = page.Title
		next.PartTitleText = page.PartTitle
	}
	e.emit(next, true)
}

// HandleEvent reconciles after a media event and moves on to the next page
// when a track has ended.
func (e *Engine) HandleEvent(ev Event) {
	e.Reconcile(false)
	if ev == EventEnded && e.current >= 0 && e.current < e.reg.Len()-1 {
		e.Goto(e.current+1, PlayStart)
	}
}

// HandleScroll navigates to the page scrolled into view, unless it is the
// current page or the table of contents. The caller debounces scroll
// notifications.
func (e *Engine) HandleScroll() {
	pageID := e.PageFromScroll()
	if pageID == e.current || e.reg.IsTableOfContents(pageID) {
		return
	}
	e.Goto(pageID, PlayKeep)
}

// PageFromScroll returns the page in view according to the viewport's
// scroll position. Without viewport it returns the current page.
func (e *Engine) PageFromScroll() int {
	if e.viewport == nil {
		return e.current
	}
	extent := e.viewport.ScrollExtent()
	if extent <= 0 {
		return 0
	}
	pos := math.Round(e.viewport.ScrollOffset() / extent * float64(e.reg.Len()))
	return max(0, min(int(pos), e.reg.Len()-1))
}

func (e *Engine) parkedOnContents() bool {
	return e.reg.ContentsID() >= 0 && e.PageFromScroll() == e.reg.ContentsID()
}

func (e *Engine) shouldPlay(mode PlayMode) bool {
	switch mode {
	case PlayStart:
		return true
	case PlayPause:
		return false
	default:
		return !e.media.Paused()
	}
}

func (e *Engine) emit(s UIState, force bool) {
	if e.emitted && !force && s == e.state {
		return
	}
	e.state = s
	e.emitted = true
	if e.onState != nil {
		e.onState(s)
	}
}
