package book

import (
	"fmt"
	"net/url"
	"strings"
)

// Placeholder audio assets of the synthetic pages. They never collide with
// real media URLs and are not resolved against the media base URI.
// ContentsAudioURL is not a new track: the contents page keeps the track
// number of the page before it, and track numbers stay contiguous across it.
const (
	CoverAudioURL    = "urn:musicbook:cover"
	ContentsAudioURL = "urn:musicbook:contents"
)

// IsPlaceholder returns true if audioURL is the placeholder asset of the
// cover or the table of contents page.
func IsPlaceholder(audioURL string) bool {
	return audioURL == CoverAudioURL || audioURL == ContentsAudioURL
}

// NormalizeURL resolves a possibly relative resource path against base.
//
// Absolute resources are returned unchanged. If base is empty the resource is
// only validated.
//
// Example:
//
//	NormalizeURL("https://example.com/book/", "media/01.mp3")
//	// "https://example.com/book/media/01.mp3"
func NormalizeURL(base, resource string) (string, error) {
	ref, err := url.Parse(resource)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", resource, err)
	}
	if base == "" || ref.IsAbs() {
		return ref.String(), nil
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// FolderURL returns the absolute URL of the folder containing resource.
//
// A trailing ".html" or ".htm" file name is removed, query and fragment are
// dropped, and the result always ends with a slash:
//
//	FolderURL("https://example.com/book/index.html", "") // "https://example.com/book/"
//	FolderURL("media", "https://example.com/book/")      // "https://example.com/book/media/"
func FolderURL(resource, base string) (string, error) {
	abs, err := NormalizeURL(base, resource)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(abs)
	if err != nil {
		return "", err
	}
	u.RawQuery = ""
	u.Fragment = ""

	segments := strings.Split(u.Path, "/")
	if last := segments[len(segments)-1]; strings.HasSuffix(last, ".html") || strings.HasSuffix(last, ".htm") {
		segments = segments[:len(segments)-1]
	}
	u.Path = strings.Join(segments, "/")
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""

	return u.String(), nil
}
