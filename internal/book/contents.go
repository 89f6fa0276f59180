package book

import (
	"fmt"
	"strings"

	"github.com/handiism/musicbook/internal/model"
)

// EntryKind classifies a table of contents entry.
type EntryKind int

const (
	// EntryCover is the header entry linking to the cover page.
	EntryCover EntryKind = iota
	// EntryTrack is a track consisting of a single page.
	EntryTrack
	// EntryFirstPart is the first page of a multi-part track.
	EntryFirstPart
	// EntryContinuation is the second, third, ... part of a track.
	EntryContinuation
	// EntryCredits is the trailing credits entry. It links to no page.
	EntryCredits
)

// String returns a human-readable representation of the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryCover:
		return "Cover"
	case EntryTrack:
		return "Track"
	case EntryFirstPart:
		return "FirstPart"
	case EntryContinuation:
		return "Continuation"
	case EntryCredits:
		return "Credits"
	default:
		return "Unknown"
	}
}

// CreditsText is the text of the credits entry.
const CreditsText = "musicbook: a page-turning player for albums"

// Entry is one line of the table of contents.
type Entry struct {
	Kind EntryKind

	// PageID is the page the entry links to, -1 for the credits.
	PageID int

	// TrackNumber is the two-digit track number, empty for the cover,
	// continuation parts and the credits.
	TrackNumber string

	// Title is the track title, empty for continuation parts.
	Title string

	// PartTitle is the subtitle of the page, if any.
	PartTitle string

	// Play is true if following the entry starts playback.
	Play bool
}

// ShowNumber returns true if the entry displays a track number.
func (e Entry) ShowNumber() bool {
	return e.Kind == EntryTrack || e.Kind == EntryFirstPart
}

// Navigable returns true if the entry links to a page.
func (e Entry) Navigable() bool {
	return e.PageID >= 0
}

// Text returns the entry as a single line, without the track number.
func (e Entry) Text() string {
	switch {
	case e.Kind == EntryContinuation:
		return e.PartTitle
	case e.PartTitle != "" && e.Title != "":
		return e.Title + " · " + e.PartTitle
	default:
		return e.Title
	}
}

// Contents is a generated table of contents.
type Contents struct {
	Entries []Entry
}

// Pages returns the entries of regular pages, without the cover header and
// the credits footer.
func (c Contents) Pages() []Entry {
	var entries []Entry
	for _, e := range c.Entries {
		if e.Kind != EntryCover && e.Kind != EntryCredits {
			entries = append(entries, e)
		}
	}
	return entries
}

// Find returns the entry linking to pageID.
func (c Contents) Find(pageID int) (Entry, bool) {
	for _, e := range c.Entries {
		if e.PageID == pageID && e.Navigable() {
			return e, true
		}
	}
	return Entry{}, false
}

// String renders the table of contents as plain text, one entry per line.
//
// Example:
//
//	     Cover
//	01   Gute Nacht
//	02   Sonata · I. Allegro
//	       II. Adagio
//	     musicbook: a page-turning player for albums
func (c Contents) String() string {
	var sb strings.Builder
	for _, e := range c.Entries {
		number := e.TrackNumber
		indent := ""
		if e.Kind == EntryContinuation {
			indent = "  "
		}
		fmt.Fprintf(&sb, "%-2s   %s%s\n", number, indent, e.Text())
	}
	return sb.String()
}

// GenerateContents builds the table of contents of pages. contentsID is the
// id of the table of contents page, which is left out, or -1.
func GenerateContents(pages []model.Page, contentsID int) Contents {
	c := Contents{}
	if len(pages) == 0 {
		return c
	}

	c.Entries = append(c.Entries, Entry{
		Kind:   EntryCover,
		PageID: 0,
		Title:  "Cover",
	})

	for i := 1; i < len(pages); i++ {
		if i == contentsID {
			continue
		}
		p := pages[i]
		e := Entry{
			PageID:    p.ID,
			Title:     p.Title,
			PartTitle: p.PartTitle,
			Play:      true,
		}
		switch {
		case isPart(pages, contentsID, i) && isTrack(pages, contentsID, i):
			e.Kind = EntryFirstPart
		case isPart(pages, contentsID, i):
			e.Kind = EntryContinuation
			e.Title = ""
		default:
			e.Kind = EntryTrack
		}
		if e.ShowNumber() {
			e.TrackNumber = fmt.Sprintf("%02d", p.TrackID)
		}
		c.Entries = append(c.Entries, e)
	}

	c.Entries = append(c.Entries, Entry{
		Kind:   EntryCredits,
		PageID: -1,
		Title:  CreditsText,
	})
	return c
}

func isTrack(pages []model.Page, contentsID, id int) bool {
	if id <= 0 || id >= len(pages) || id == contentsID {
		return false
	}
	if id == 1 {
		return true
	}
	return pages[id].AudioURL != pages[id-1].AudioURL
}

func isPart(pages []model.Page, contentsID, id int) bool {
	if id <= 0 || id >= len(pages) || id == contentsID {
		return false
	}
	return pages[id].HasPartOffset
}
