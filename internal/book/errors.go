package book

import "errors"

// Sentinel errors returned when a page declaration cannot be resolved.
// They are wrapped with the id of the offending page; match with errors.Is.
var (
	// ErrMissingAudioAsset is returned when a page has no audio of its own
	// and there is no track it could continue.
	ErrMissingAudioAsset = errors.New("missing audio asset")

	// ErrMissingTitle is returned when a page starting a track has no title.
	ErrMissingTitle = errors.New("missing title")

	// ErrInvalidPartOffset is returned when a continuation part has no part
	// offset, or an offset that is not finite, negative, or not after the
	// previous part's offset.
	ErrInvalidPartOffset = errors.New("invalid or missing part offset")

	// ErrDuplicateAudioAsset is returned when a new track reuses the audio
	// asset of an earlier, unrelated track.
	ErrDuplicateAudioAsset = errors.New("audio asset already used by another track")
)
