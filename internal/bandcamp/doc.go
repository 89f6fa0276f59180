// Package bandcamp imports Bandcamp releases as book manifests.
//
// # Album Pages
//
// Bandcamp embeds album data as JSON in the HTML page within a
// `data-tralbum` attribute. The Parser extracts and parses that JSON,
// handling Bandcamp's non-standard date format and fixing malformed JSON,
// and turns every streamable track into a page:
//
//	parser := bandcamp.NewParser(true)
//	m, err := parser.ParseAlbumPage(htmlContent)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s by %s, %d pages\n", m.Book.Title, m.Book.Artist, len(m.Pages))
//
// # Discographies
//
// Importer resolves an artist URL into the releases listed on the artist's
// music page and imports each of them:
//
//	imp := bandcamp.NewImporter(http.NewClient(), parser, log)
//	manifests, err := imp.Import(ctx, "https://artist.bandcamp.com")
//
// Releases that fail to import are skipped; Import returns the others
// together with the combined errors.
package bandcamp
