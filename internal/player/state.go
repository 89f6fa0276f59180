package player

// ErrorAlbumTitle is the album title shown while the current page cannot be
// determined.
const ErrorAlbumTitle = "Error"

// UIState is everything the presentation shows about the current page and
// its controls. UIState is comparable; the engine only notifies listeners
// when it changes.
type UIState struct {
	// CurrentPageID is the page in view, -1 in the error state.
	CurrentPageID int

	EnablePrev     bool
	EnableNext     bool
	EnableContents bool

	// PlayReady is true once the media can play without stalling.
	PlayReady bool
	Paused    bool

	AlbumTitle  string
	AlbumArtist string

	// TrackNumberText is the two-digit track number, empty for the cover and
	// the table of contents.
	TrackNumberText string
	TrackTitleText  string
	PartTitleText   string

	// Error is true if the media source matches no page.
	Error bool
}
