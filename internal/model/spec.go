package model

// PageSpec is a declaration of a page to be added to a book.
//
// A spec with Audio starts a new track unless the audio equals the previous
// page's audio. A spec without Audio continues the previous page's track as
// another part and needs an Offset. Use Track and Part to create specs and
// the With* methods to refine them:
//
//	model.Track("Der Lindenbaum", "05.mp3")
//	model.Part(95.5).WithPart("Variation 2")
type PageSpec struct {
	Title       string
	Artist      string
	Audio       string
	Image       string
	Description string
	PartTitle   string

	// Offset is the part offset in seconds, nil if not declared.
	Offset *float64

	// Duration is the length of the audio asset in seconds, 0 if unknown.
	Duration float64
}

// Track declares a page starting a new track.
func Track(title, audio string) PageSpec {
	return PageSpec{Title: title, Audio: audio}
}

// Part declares a page continuing the previous page's track at the given
// offset in seconds.
func Part(offset float64) PageSpec {
	return PageSpec{Offset: &offset}
}

// StartsTrack returns true if the spec names its own audio asset.
func (s PageSpec) StartsTrack() bool {
	return s.Audio != ""
}

func (s PageSpec) WithTitle(title string) PageSpec {
	s.Title = title
	return s
}

func (s PageSpec) WithArtist(artist string) PageSpec {
	s.Artist = artist
	return s
}

func (s PageSpec) WithAudio(audio string) PageSpec {
	s.Audio = audio
	return s
}

func (s PageSpec) WithImage(image string) PageSpec {
	s.Image = image
	return s
}

func (s PageSpec) WithDescription(description string) PageSpec {
	s.Description = description
	return s
}

func (s PageSpec) WithPart(partTitle string) PageSpec {
	s.PartTitle = partTitle
	return s
}

func (s PageSpec) WithOffset(offset float64) PageSpec {
	s.Offset = &offset
	return s
}

func (s PageSpec) WithDuration(seconds float64) PageSpec {
	s.Duration = seconds
	return s
}
