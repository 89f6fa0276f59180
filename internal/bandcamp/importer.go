package bandcamp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/http"
	"github.com/handiism/musicbook/internal/manifest"
)

// Importer fetches Bandcamp pages and converts them into manifests.
type Importer struct {
	client      *http.Client
	parser      *Parser
	discography *Discography
	log         *zap.Logger
}

// NewImporter creates an Importer. log may be nil.
func NewImporter(client *http.Client, parser *Parser, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		client:      client,
		parser:      parser,
		discography: NewDiscography(),
		log:         log,
	}
}

// IsAlbumURL returns true for album and track page URLs.
func IsAlbumURL(u *url.URL) bool {
	return strings.Contains(u.Path, "/album/") || strings.Contains(u.Path, "/track/")
}

// AlbumURLs returns the album page URLs behind pageURL: the URL itself for an
// album or track page, every release of the artist otherwise, in natural
// order.
func (i *Importer) AlbumURLs(ctx context.Context, pageURL string) ([]string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	if IsAlbumURL(parsedURL) {
		return []string{pageURL}, nil
	}

	musicURL := fmt.Sprintf("%s://%s/music", parsedURL.Scheme, parsedURL.Host)
	html, err := i.client.GetString(ctx, musicURL)
	if err != nil {
		return nil, err
	}

	relativeURLs, err := i.discography.GetAlbumURLs(html)
	if err != nil {
		return nil, err
	}

	absoluteURLs := make([]string, 0, len(relativeURLs))
	for _, relURL := range relativeURLs {
		absoluteURLs = append(absoluteURLs, fmt.Sprintf("%s://%s%s", parsedURL.Scheme, parsedURL.Host, relURL))
	}
	return absoluteURLs, nil
}

// ImportAlbum fetches one album page and converts it into a manifest.
func (i *Importer) ImportAlbum(ctx context.Context, albumURL string) (*manifest.Manifest, error) {
	i.log.Debug("Fetching album", zap.String("url", albumURL))

	html, err := i.client.GetString(ctx, albumURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", albumURL, err)
	}
	m, err := i.parser.ParseAlbumPage(html)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", albumURL, err)
	}
	m.Source = albumURL

	i.log.Info("Found album",
		zap.String("artist", m.Book.Artist),
		zap.String("title", m.Book.Title),
		zap.Int("pages", len(m.Pages)))
	return m, nil
}

// Import converts every album behind pageURL. Albums that fail are skipped;
// their errors are combined into the returned error.
func (i *Importer) Import(ctx context.Context, pageURL string) ([]*manifest.Manifest, error) {
	albumURLs, err := i.AlbumURLs(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var (
		manifests []*manifest.Manifest
		errs      error
	)
	for _, albumURL := range albumURLs {
		if err := ctx.Err(); err != nil {
			return manifests, multierr.Append(errs, err)
		}
		m, err := i.ImportAlbum(ctx, albumURL)
		if err != nil {
			i.log.Warn("Skipping album", zap.String("url", albumURL), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		manifests = append(manifests, m)
	}
	return manifests, errs
}
