package bandcamp

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/handiism/musicbook/internal/bandcamp/dto"
	"github.com/handiism/musicbook/internal/manifest"
)

var (
	concatRegex = regexp.MustCompile(`(url: ".+)" \+ "(.+",)`)
	tagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// Parser turns Bandcamp album pages into book manifests.
//
// Bandcamp embeds album data as JSON within the HTML page in a data-tralbum
// attribute. The Parser extracts this JSON, fixes any malformed content,
// and converts it into a manifest with one page per streamable track.
//
// Example usage:
//
//	parser := NewParser(true)
//
//	html, _ := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
//	m, err := parser.ParseAlbumPage(html)
//	if err != nil {
//	    return err
//	}
//	m.Save("name.yaml")
type Parser struct {
	contents bool
}

// NewParser creates a new Parser. With contents set, every manifest gets a
// table of contents page after the cover.
func NewParser(contents bool) *Parser {
	return &Parser{contents: contents}
}

// ParseAlbumPage extracts a manifest from a Bandcamp album or track page.
//
// This method performs the following steps:
//  1. Extracts the data-tralbum JSON from the HTML
//  2. Fixes malformed JSON (e.g., URL concatenation issues)
//  3. Deserializes JSON into album/track data
//  4. Extracts lyrics from HTML elements when the JSON has none
//  5. Converts the album into a manifest
//
// Returns an error if:
//   - The data-tralbum attribute cannot be found
//   - The JSON is malformed and cannot be parsed
func (p *Parser) ParseAlbumPage(htmlContent string) (*manifest.Manifest, error) {
	albumData, err := extractAlbumData(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve album data: %w", err)
	}

	albumData = fixJSON(albumData)

	var jsonAlbum dto.JSONAlbum
	if err := json.Unmarshal([]byte(albumData), &jsonAlbum); err != nil {
		return nil, fmt.Errorf("failed to parse album JSON: %w", err)
	}

	extractLyrics(htmlContent, jsonAlbum.Tracks)

	return jsonAlbum.ToManifest(p.contents), nil
}

// extractAlbumData extracts the data-tralbum JSON string from HTML.
//
// Bandcamp embeds album data in the HTML like this:
//
//	<script ... data-tralbum="{...JSON...}">
//
// The JSON is HTML-unescaped since it is embedded in an attribute.
func extractAlbumData(htmlContent string) (string, error) {
	const startString = `data-tralbum="{`
	const stopString = `}"`

	startIndex := strings.Index(htmlContent, startString)
	if startIndex == -1 {
		return "", fmt.Errorf("could not find album data in HTML")
	}

	startIndex += len(startString) - 1 // Include the opening brace
	remaining := htmlContent[startIndex:]

	endIndex := strings.Index(remaining, stopString)
	if endIndex == -1 {
		return "", fmt.Errorf("could not find end of album data")
	}

	albumData := remaining[:endIndex+1]
	return html.UnescapeString(albumData), nil
}

// fixJSON removes JavaScript-style URL concatenation some Bandcamp pages
// have in their JSON:
//
//	url: "http://example.bandcamp.com" + "/album/name",
func fixJSON(albumData string) string {
	return concatRegex.ReplaceAllString(albumData, "${1}${2}")
}

// extractLyrics fills missing lyrics from elements with IDs like
// "lyrics_row_1", stripping HTML tags.
func extractLyrics(htmlContent string, tracks []dto.JSONTrack) {
	for i := range tracks {
		track := &tracks[i]
		if track.Lyrics != "" {
			continue
		}
		number := 1
		if track.Number != nil {
			number = *track.Number
		}

		lyricsID := fmt.Sprintf(`id="lyrics_row_%d"`, number)
		startIdx := strings.Index(htmlContent, lyricsID)
		if startIdx == -1 {
			continue
		}

		remaining := htmlContent[startIdx:]
		contentStart := strings.Index(remaining, ">")
		if contentStart == -1 {
			continue
		}
		contentEnd := strings.Index(remaining[contentStart:], "</div>")
		if contentEnd == -1 {
			continue
		}

		lyricsHTML := remaining[contentStart+1 : contentStart+contentEnd]
		lyrics := tagRegex.ReplaceAllString(lyricsHTML, "")
		track.Lyrics = strings.TrimSpace(html.UnescapeString(lyrics))
	}
}
