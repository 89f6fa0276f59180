package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/handiism/musicbook/internal/manifest"
)

const (
	artworkURLStart = "https://f4.bcbits.com/img/a"
	artworkURLEnd   = "_0.jpg"
)

// BandcampTime is a custom time type that handles Bandcamp's date format.
type BandcampTime struct {
	time.Time
}

// UnmarshalJSON parses Bandcamp's date format: "01 Jan 2023 00:00:00 GMT"
func (bt *BandcampTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		bt.Time = time.Time{}
		return nil
	}

	// Try multiple formats
	formats := []string{
		"02 Jan 2006 15:04:05 MST",  // "01 Jan 2023 00:00:00 GMT"
		"2 Jan 2006 15:04:05 MST",   // "1 Jan 2023 00:00:00 GMT"
		time.RFC3339,                // Standard format
		"2006-01-02T15:04:05Z07:00", // ISO format
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			bt.Time = t
			return nil
		}
	}

	return fmt.Errorf("unable to parse date: %s", s)
}

// JSONAlbum represents the deserialized album data from Bandcamp's HTML.
type JSONAlbum struct {
	AlbumData   *JSONAlbumData `json:"current"`
	ArtID       *int64         `json:"art_id"`
	Artist      string         `json:"artist"`
	ReleaseDate *BandcampTime  `json:"album_release_date"`
	Tracks      []JSONTrack    `json:"trackinfo"`
}

// JSONAlbumData contains album metadata.
type JSONAlbumData struct {
	AlbumTitle  string        `json:"title"`
	About       string        `json:"about"`
	Credits     string        `json:"credits"`
	ReleaseDate *BandcampTime `json:"release_date"`
	PublishDate *BandcampTime `json:"publish_date"`
}

// ArtworkURL returns the URL of the album cover, empty if there is none.
func (ja *JSONAlbum) ArtworkURL() string {
	if ja.ArtID == nil {
		return ""
	}
	return fmt.Sprintf("%s%010d%s", artworkURLStart, *ja.ArtID, artworkURLEnd)
}

// Released returns the release date with fallbacks to the album's release
// and publish dates. It is zero if none is known.
func (ja *JSONAlbum) Released() time.Time {
	switch {
	case ja.ReleaseDate != nil:
		return ja.ReleaseDate.Time
	case ja.AlbumData != nil && ja.AlbumData.ReleaseDate != nil:
		return ja.AlbumData.ReleaseDate.Time
	case ja.AlbumData != nil && ja.AlbumData.PublishDate != nil:
		return ja.AlbumData.PublishDate.Time
	default:
		return time.Time{}
	}
}

// ToManifest converts JSONAlbum to a book manifest with one page per
// streamable track. With contents set, the table of contents follows the
// cover.
func (ja *JSONAlbum) ToManifest(contents bool) *manifest.Manifest {
	m := &manifest.Manifest{
		Book: manifest.BookInfo{
			Artist: ja.Artist,
			Image:  ja.ArtworkURL(),
		},
	}
	if ja.AlbumData != nil {
		m.Book.Title = ja.AlbumData.AlbumTitle
		m.Book.Description = ja.AlbumData.About
		if ja.AlbumData.Credits != "" {
			if m.Book.Description != "" {
				m.Book.Description += "\n\n"
			}
			m.Book.Description += ja.AlbumData.Credits
		}
	}
	if released := ja.Released(); !released.IsZero() {
		if m.Book.Description != "" {
			m.Book.Description += "\n\n"
		}
		m.Book.Description += "Released " + released.Format("January 2, 2006")
	}

	if contents {
		m.Pages = append(m.Pages, manifest.Entry{Contents: true})
	}
	// Tracks without file are not streamable and left out.
	for _, jt := range ja.Tracks {
		if jt.File != nil && jt.File.URL != "" {
			m.Pages = append(m.Pages, jt.ToEntry())
		}
	}

	return m
}
