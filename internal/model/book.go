package model

import (
	"fmt"
	"strings"
)

// Book represents the properties a music book is created with.
//
// Book is the single property object handed to the page registry when a
// book is assembled. The registry turns it into the cover page (page 0).
//
// Example:
//
//	props := model.Book{
//	    MediaBaseURI: "https://example.com/winterreise/index.html",
//	    Title:        "Winterreise",
//	    Artist:       "Franz Schubert",
//	    Image:        "cover.jpg",
//	}
type Book struct {
	// MediaBaseURI is the base URI relative audio and image paths are
	// resolved against. A trailing HTML file name is ignored, so the URI of
	// the page hosting the book can be used directly.
	// Empty means paths are used as given.
	MediaBaseURI string

	// Title is the book title, shown on the cover page. Required.
	Title string

	// Artist is the book artist and the default artist of every page.
	Artist string

	// Image is the cover image, absolute or relative to MediaBaseURI.
	Image string

	// Description is the cover page text.
	Description string
}

// WindowTitle returns the title the presentation layer shows for the book,
// formatted as ":: TITLE :: artist".
//
// Missing values are replaced with "[UNKNOWN TITLE]" and "Unknown Artist".
func (b Book) WindowTitle() string {
	title := "[UNKNOWN TITLE]"
	if b.Title != "" {
		title = strings.ToUpper(b.Title)
	}
	artist := "Unknown Artist"
	if b.Artist != "" {
		artist = b.Artist
	}
	return fmt.Sprintf(":: %s :: %s", title, artist)
}
