// Package model defines the core data structures used throughout
// the musicbook application.
//
// # Book
//
// Book holds the properties a music book is created with:
//
//	props := model.Book{
//	    MediaBaseURI: "https://example.com/book/",
//	    Title:        "Winterreise",
//	    Artist:       "Franz Schubert",
//	    Image:        "cover.jpg",
//	}
//
// # Page
//
// Page is one navigable unit of a book: the cover, a whole track, one part of
// a multi-part track, or the table of contents. Pages are created by the
// registry in package book; user code only ever sees resolved copies.
//
// # PageSpec
//
// PageSpec is a page declaration. Build one with Track or Part:
//
//	model.Track("Gute Nacht", "01.mp3").WithDuration(330)
//	model.Part(0).WithTitle("Sonata").WithPart("I. Allegro").WithAudio("sonata.mp3")
//	model.Part(412).WithPart("II. Adagio")
//
// A spec without audio continues the previous page's track and must carry a
// part offset; see book.Resolve for the full resolution rules.
package model
