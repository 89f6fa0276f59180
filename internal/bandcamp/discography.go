package bandcamp

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// ErrNoAlbumFound is returned when no album or track URLs can be found on a page.
var ErrNoAlbumFound = errors.New("no album found on page")

var (
	releaseLinkRegex = regexp.MustCompile(`(?P<url>/(album|track)/.+?)("|&quot;)`)
	albumHrefRegex   = regexp.MustCompile(`href="(?P<url>/album/.+?)"`)
)

// Discography lists the releases on a Bandcamp artist's music page, so a
// whole discography can be imported as one book per release.
//
// Discography handles two cases:
//  1. Normal music pages with multiple releases listed
//  2. Single-album artists whose music page redirects to the album page
//
// Example usage:
//
//	html, _ := client.GetString(ctx, "https://artist.bandcamp.com/music")
//	urls, err := NewDiscography().GetAlbumURLs(html)
//	// "/album/first", "/album/second", "/track/single"
type Discography struct{}

// NewDiscography creates a new Discography service.
func NewDiscography() *Discography {
	return &Discography{}
}

// GetAlbumURLs extracts the unique album and track paths of a music page,
// such as "/album/my-album", in natural order.
//
// Returns ErrNoAlbumFound if there are none.
func (d *Discography) GetAlbumURLs(musicPageHTML string) ([]string, error) {
	if d.isSingleAlbumArtist(musicPageHTML) {
		albumURL, err := d.getSingleAlbumURL(musicPageHTML)
		if err != nil {
			return nil, err
		}
		return []string{albumURL}, nil
	}

	urls := uniqueMatches(releaseLinkRegex, musicPageHTML)
	if len(urls) == 0 {
		return nil, ErrNoAlbumFound
	}
	return urls, nil
}

// isSingleAlbumArtist detects an album page served in place of the music
// page. Only album pages carry the "discography" div.
func (d *Discography) isSingleAlbumArtist(html string) bool {
	return strings.Contains(html, `div id="discography"`)
}

// getSingleAlbumURL extracts the one album path of an album page.
func (d *Discography) getSingleAlbumURL(html string) (string, error) {
	urls := uniqueMatches(albumHrefRegex, html)
	switch len(urls) {
	case 0:
		return "", ErrNoAlbumFound
	case 1:
		return urls[0], nil
	default:
		return "", errors.New("found multiple album URLs, expected exactly one")
	}
}

// uniqueMatches returns the distinct first submatches of re in natural
// order.
func uniqueMatches(re *regexp.Regexp, s string) []string {
	seen := make(map[string]struct{})
	var urls []string
	for _, match := range re.FindAllStringSubmatch(s, -1) {
		if len(match) < 2 {
			continue
		}
		if _, ok := seen[match[1]]; ok {
			continue
		}
		seen[match[1]] = struct{}{}
		urls = append(urls, match[1])
	}
	sort.Sort(natural.StringSlice(urls))
	return urls
}
