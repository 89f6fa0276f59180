package book

import (
	"fmt"
	"math"

	"github.com/handiism/musicbook/internal/model"
)

// Resolver resolves page declarations in the context of a book.
type Resolver struct {
	// MediaBaseURI is the folder relative audio and image paths are
	// resolved against. Empty means paths are taken as they are.
	MediaBaseURI string

	// Artist is the book artist, the default of every page.
	Artist string
}

// Resolution is the outcome of resolving one declaration.
type Resolution struct {
	// Page is the resolved page. Its ID is the one passed to Resolve.
	Page model.Page

	// StartsTrack is true if the page has its own audio asset.
	StartsTrack bool

	// MarkFirstPart is true if the previous page must become the first part
	// of the track, with offset 0.
	MarkFirstPart bool

	// IgnoredOffset is true if an offset was declared on a page starting a
	// new track.
	IgnoredOffset bool
}

// Resolve turns spec into the page with the given id, following prev.
// prev is nil for the very first page of a book.
//
// Resolve is pure: it neither changes prev nor any registry. The caller
// applies MarkFirstPart.
func (r Resolver) Resolve(id int, spec model.PageSpec, prev *model.Page) (Resolution, error) {
	var res Resolution
	page := model.Page{
		ID:          id,
		Title:       spec.Title,
		Artist:      spec.Artist,
		PartTitle:   spec.PartTitle,
		Description: spec.Description,
		Duration:    spec.Duration,
	}
	if page.Artist == "" {
		page.Artist = r.Artist
	}

	// Audio
	switch {
	case spec.Audio != "":
		audio, err := r.normalize(spec.Audio)
		if err != nil {
			return res, fmt.Errorf("page #%d: audio: %w", id, err)
		}
		page.AudioURL = audio
	case prev != nil && !IsPlaceholder(prev.AudioURL):
		page.AudioURL = prev.AudioURL
	default:
		return res, fmt.Errorf("page #%d: %w", id, ErrMissingAudioAsset)
	}
	continues := prev != nil && page.AudioURL == prev.AudioURL

	// Title
	if page.Title == "" {
		if !continues {
			return res, fmt.Errorf("page #%d: %w", id, ErrMissingTitle)
		}
		page.Title = prev.Title
	}

	if spec.Image != "" {
		image, err := r.normalize(spec.Image)
		if err != nil {
			return res, fmt.Errorf("page #%d: image: %w", id, err)
		}
		page.ImageURL = image
	}

	if !continues {
		if prev != nil {
			page.TrackID = prev.TrackID + 1
		}
		res.StartsTrack = true
		res.IgnoredOffset = spec.Offset != nil
		res.Page = page
		return res, nil
	}

	// Continuation part
	if IsPlaceholder(page.AudioURL) {
		return res, fmt.Errorf("page #%d: %w", id, ErrMissingAudioAsset)
	}
	if spec.Offset == nil {
		return res, fmt.Errorf("page #%d: %w: no offset for a part of %q", id, ErrInvalidPartOffset, prev.Title)
	}
	offset := *spec.Offset
	if math.IsNaN(offset) || math.IsInf(offset, 0) || offset < 0 {
		return res, fmt.Errorf("page #%d: %w: %v", id, ErrInvalidPartOffset, offset)
	}
	if offset <= prev.Offset() {
		return res, fmt.Errorf("page #%d: %w: %v is not after %v", id, ErrInvalidPartOffset, offset, prev.Offset())
	}

	page.TrackID = prev.TrackID
	page.PartOffset = offset
	page.HasPartOffset = true
	if page.Duration <= 0 {
		page.Duration = prev.Duration
	}
	res.MarkFirstPart = !prev.HasPartOffset
	res.Page = page
	return res, nil
}

func (r Resolver) normalize(resource string) (string, error) {
	if IsPlaceholder(resource) {
		return resource, nil
	}
	return NormalizeURL(r.MediaBaseURI, resource)
}
