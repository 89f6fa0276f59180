package player

// ReadyState is the readiness of a media element, following the HTML media
// element's readyState values.
type ReadyState int

const (
	HaveNothing ReadyState = iota
	HaveMetadata
	HaveCurrentData
	HaveFutureData
	HaveEnoughData
)

// String returns a human-readable representation of the ready state.
func (s ReadyState) String() string {
	switch s {
	case HaveNothing:
		return "HaveNothing"
	case HaveMetadata:
		return "HaveMetadata"
	case HaveCurrentData:
		return "HaveCurrentData"
	case HaveFutureData:
		return "HaveFutureData"
	case HaveEnoughData:
		return "HaveEnoughData"
	default:
		return "Unknown"
	}
}

// Event is a notification of a media element.
type Event int

const (
	EventPlay Event = iota
	EventPlaying
	EventPause
	EventCanPlay
	EventProgress
	EventTimeUpdate
	EventEnded
)

// String returns the HTML event name.
func (e Event) String() string {
	switch e {
	case EventPlay:
		return "play"
	case EventPlaying:
		return "playing"
	case EventPause:
		return "pause"
	case EventCanPlay:
		return "canplay"
	case EventProgress:
		return "progress"
	case EventTimeUpdate:
		return "timeupdate"
	case EventEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Media is the shared media element all pages play through.
//
// Times are in seconds. Source returns the absolute URL of the loaded audio
// asset.
type Media interface {
	Source() string
	SetSource(url string)
	CurrentTime() float64
	SetCurrentTime(seconds float64)
	Play()
	Pause()
	Paused() bool
	ReadyState() ReadyState
}

// EventSource is implemented by media elements that notify about state
// changes.
type EventSource interface {
	OnEvent(fn func(Event))
}

// Viewport is the horizontally scrolling strip showing one page at a time.
type Viewport interface {
	// ScrollOffset returns the current scroll offset.
	ScrollOffset() float64
	// ScrollExtent returns the total scrollable extent, all pages included.
	ScrollExtent() float64
	// ScrollTo brings a page into view.
	ScrollTo(pageID int)
}

// PlayMode tells a navigation what to do with playback.
type PlayMode int

const (
	// PlayKeep keeps playing if the media was playing, and stays paused
	// otherwise.
	PlayKeep PlayMode = iota
	// PlayStart starts playback.
	PlayStart
	// PlayPause pauses playback.
	PlayPause
)

// String returns a human-readable representation of the play mode.
func (m PlayMode) String() string {
	switch m {
	case PlayKeep:
		return "Keep"
	case PlayStart:
		return "Start"
	case PlayPause:
		return "Pause"
	default:
		return "Unknown"
	}
}
