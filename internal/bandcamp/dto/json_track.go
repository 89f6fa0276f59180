package dto

import (
	"strings"

	"github.com/handiism/musicbook/internal/manifest"
)

// JSONTrack represents a track from Bandcamp's JSON data.
type JSONTrack struct {
	Duration float64      `json:"duration"`
	File     *JSONMp3File `json:"file"`
	Lyrics   string       `json:"lyrics"`
	Number   *int         `json:"track_num"`
	Title    string       `json:"title"`
	Artist   string       `json:"artist"`
}

// JSONMp3File represents the MP3 file info.
type JSONMp3File struct {
	URL string `json:"mp3-128"`
}

// ToEntry converts JSONTrack to a manifest entry.
func (jt *JSONTrack) ToEntry() manifest.Entry {
	// Fix URL if it starts with "//"
	mp3URL := jt.File.URL
	if strings.HasPrefix(mp3URL, "//") {
		mp3URL = "https:" + mp3URL
	}

	return manifest.Entry{
		Title:       jt.Title,
		Artist:      jt.Artist,
		Audio:       mp3URL,
		Description: jt.Lyrics,
		Duration:    jt.Duration,
	}
}
