package model

// Page represents one navigable unit of a music book.
//
// Pages are created and owned by book.Registry. Every field is resolved:
// inherited values (title, audio, track id) have already been copied from
// the previous page, and relative URLs have been made absolute.
//
// A page either starts a track (its audio differs from the previous page) or
// continues the previous page's track as another part. All pages of one
// track share AudioURL and TrackID and carry strictly increasing part offsets.
type Page struct {
	// ID is the zero-based position of the page in its registry.
	ID int

	// TrackID groups pages sharing one audio asset. The cover page is track 0.
	TrackID int

	// Title is the page title. Continuation parts inherit the track title.
	Title string

	// Artist defaults to the book artist.
	Artist string

	// AudioURL is the absolute URL of the page's audio asset.
	AudioURL string

	// PartOffset is the playback position, in seconds, at which the page's
	// content starts within AudioURL. Only meaningful if HasPartOffset is set.
	PartOffset float64

	// HasPartOffset marks the page as a part of a multi-part track.
	HasPartOffset bool

	// PartTitle is an optional subtitle shown together with the track title.
	PartTitle string

	// ImageURL is the absolute URL of the page image, if any.
	ImageURL string

	// Description is the page text.
	Description string

	// Duration is the length of the audio asset in seconds, 0 if unknown.
	Duration float64
}

// Offset returns the page's part offset, or 0 if the page is not a part.
func (p Page) Offset() float64 {
	if p.HasPartOffset {
		return p.PartOffset
	}
	return 0
}

// HasImage returns true if the page has an image.
func (p Page) HasImage() bool {
	return p.ImageURL != ""
}
