// Package book implements the page registry of a music book.
//
// The Registry owns the ordered, append-only sequence of pages, validates
// page declarations, assigns page and track ids, classifies pages (cover,
// track, part, table of contents) and generates the table of contents.
//
// # Assembling a Book
//
//	reg, err := book.New(model.Book{Title: "Winterreise", Artist: "Schubert"})
//	if err != nil {
//	    return err
//	}
//	reg.AddTableOfContentsPage()
//	if _, err := reg.AddPage(model.Track("Gute Nacht", "01.mp3")); err != nil {
//	    return err // stop assembling, later pages may inherit from this one
//	}
//
// # Resolution Rules
//
// A declaration is resolved against the previous page:
//   - audio: declared (made absolute), else inherited, else ErrMissingAudioAsset
//   - title: declared, else inherited for the same audio, else ErrMissingTitle
//   - track id: incremented for a new audio asset, inherited otherwise
//   - part offset: required for the 2nd, 3rd, ... part of a track, strictly
//     increasing; the first part is set to 0 when the second one is added
//
// Every error aborts the single AddPage call and leaves the registry as it was.
package book
