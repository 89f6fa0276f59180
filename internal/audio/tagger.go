package audio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
)

// Tags holds the ID3 metadata of an MP3 file relevant to a book.
type Tags struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string

	// Track is the track number (TRCK), 0 if absent.
	Track int

	// Duration in seconds (TLEN), 0 if absent.
	Duration float64

	// Picture is the front cover (APIC), nil if absent.
	Picture     []byte
	PictureMIME string
}

// TagReader reads ID3 tags from MP3 files.
//
// Example:
//
//	tags, err := NewTagReader().ReadTags("/music/Album/01.mp3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(tags.Track, tags.Title)
type TagReader struct {
	// Pictures enables reading attached pictures.
	Pictures bool
}

// NewTagReader creates a TagReader that skips attached pictures.
func NewTagReader() *TagReader {
	return &TagReader{}
}

// ReadTags parses the ID3v2 tag of the file at path. A file without tag
// yields empty Tags.
func (r *TagReader) ReadTags(path string) (*Tags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("read tags of %s: %w", path, err)
	}
	defer tag.Close()

	tags := &Tags{
		Title:       tag.Title(),
		Artist:      tag.Artist(),
		Album:       tag.Album(),
		AlbumArtist: textFrame(tag, "TPE2"),
		Track:       parseTrackNumber(textFrame(tag, "TRCK")),
	}
	if ms, err := strconv.Atoi(textFrame(tag, "TLEN")); err == nil && ms > 0 {
		tags.Duration = float64(ms) / 1000
	}

	if r.Pictures {
		r.readPicture(tag, tags)
	}
	return tags, nil
}

func (r *TagReader) readPicture(tag *id3v2.Tag, tags *Tags) {
	frames := tag.GetFrames(tag.CommonID("Attached picture"))
	for _, f := range frames {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		// Prefer the front cover, fall back to the first picture.
		if tags.Picture == nil || pic.PictureType == id3v2.PTFrontCover {
			tags.Picture = pic.Picture
			tags.PictureMIME = pic.MimeType
		}
		if pic.PictureType == id3v2.PTFrontCover {
			return
		}
	}
}

func textFrame(tag *id3v2.Tag, id string) string {
	return strings.TrimSpace(tag.GetTextFrame(id).Text)
}

// parseTrackNumber parses "3" and "3/12".
func parseTrackNumber(s string) int {
	s, _, _ = strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
