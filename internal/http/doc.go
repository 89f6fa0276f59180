// Package http provides the HTTP client used to fetch remote book manifests
// and Bandcamp album pages.
//
// The Client in this package handles:
//   - User-Agent headers for Bandcamp compatibility
//   - Timeout handling
//   - Bounded response bodies
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://artist.bandcamp.com/album/name")
package http
