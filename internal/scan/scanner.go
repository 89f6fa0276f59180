package scan

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/musicbook/internal/audio"
	ioutils "github.com/handiism/musicbook/internal/io"
	"github.com/handiism/musicbook/internal/manifest"
)

// ErrNoAudioFiles is returned when a directory holds no readable MP3 file.
var ErrNoAudioFiles = errors.New("no audio files found")

// DefaultConcurrency is the number of files read in parallel by default.
const DefaultConcurrency = 8

// CoverFileName is the name of the cover image written by a scan.
const CoverFileName = "cover.jpg"

// MaxCoverSize bounds the width and height of an extracted cover.
const MaxCoverSize = 1000

// coverNames are existing images used as the book image, in order.
var coverNames = []string{"cover.jpg", "cover.png", "folder.jpg", "folder.png", "front.jpg"}

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a scan progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithConcurrency sets how many files are read in parallel.
func WithConcurrency(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithContents places a table of contents entry after the cover.
func WithContents(contents bool) Option {
	return func(s *Scanner) { s.contents = contents }
}

// WithCoverExtraction writes the first embedded picture as cover.jpg when
// the directory has no cover image yet.
func WithCoverExtraction(extract bool) Option {
	return func(s *Scanner) { s.extractCover = extract }
}

// WithProgress sets the progress callback. It may be called concurrently.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(s *Scanner) { s.onProgress = fn }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// Scanner builds book manifests from directories of tagged MP3 files.
type Scanner struct {
	tags         *audio.TagReader
	images       *ioutils.ImageService
	concurrency  int
	contents     bool
	extractCover bool
	onProgress   func(ProgressEvent)
	log          *zap.Logger
}

// NewScanner creates a Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		tags:        audio.NewTagReader(),
		images:      ioutils.NewImageService(),
		concurrency: DefaultConcurrency,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tags.Pictures = s.extractCover
	return s
}

type scanned struct {
	file string
	tags *audio.Tags
}

// Scan reads the tags of every MP3 file in dir and returns a manifest with
// one page per file, ordered by track number when every file has one and
// by natural file name order otherwise.
//
// Files whose tags cannot be read are skipped. Their errors are combined
// into the returned error while the manifest of the remaining files is
// still returned. Only when no file is left is the manifest nil.
func (s *Scanner) Scan(ctx context.Context, dir string) (*manifest.Manifest, error) {
	files, err := listAudioFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoAudioFiles)
	}
	s.progress(ProgressEvent{Message: fmt.Sprintf("Found %d audio files in %s", len(files), dir), Level: LevelInfo})

	results := make([]scanned, len(files))
	errs := make([]error, len(files))
	var read int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tags, err := s.tags.ReadTags(filepath.Join(dir, file))
			if err != nil {
				errs[i] = err
				s.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s: %v", file, err), Level: LevelError})
				return nil // Continue with other files
			}
			results[i] = scanned{file: file, tags: tags}
			n := atomic.AddInt32(&read, 1)
			s.progress(ProgressEvent{Message: fmt.Sprintf("Read %s (%d/%d)", file, n, len(files)), Level: LevelVerbose})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var ok []scanned
	for _, r := range results {
		if r.tags != nil {
			ok = append(ok, r)
		}
	}
	failed := multierr.Combine(errs...)
	if len(ok) == 0 {
		return nil, multierr.Append(fmt.Errorf("%s: %w", dir, ErrNoAudioFiles), failed)
	}
	sortByTrack(ok)

	m := s.buildManifest(ctx, dir, ok)
	s.log.Debug("scanned directory",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("pages", len(m.Pages)),
	)
	s.progress(ProgressEvent{Message: fmt.Sprintf("Scanned %s: %d tracks", m.Book.Title, len(ok)), Level: LevelSuccess})
	return m, failed
}

func (s *Scanner) buildManifest(ctx context.Context, dir string, files []scanned) *manifest.Manifest {
	m := &manifest.Manifest{
		Book: manifest.BookInfo{
			Title:  bookTitle(dir, files),
			Artist: bookArtist(files),
		},
	}
	m.Book.Image = s.coverImage(ctx, dir, files)

	if s.contents {
		m.Pages = append(m.Pages, manifest.Entry{Contents: true})
	}
	for _, f := range files {
		e := manifest.Entry{
			Title:    f.tags.Title,
			Audio:    (&url.URL{Path: f.file}).String(),
			Duration: f.tags.Duration,
		}
		if e.Title == "" {
			e.Title = strings.TrimSuffix(f.file, filepath.Ext(f.file))
		}
		if f.tags.Artist != "" && f.tags.Artist != m.Book.Artist {
			e.Artist = f.tags.Artist
		}
		m.Pages = append(m.Pages, e)
	}
	return m
}

// coverImage returns the relative location of the book image: an existing
// cover file, else one extracted from the tags if enabled, else nothing.
func (s *Scanner) coverImage(ctx context.Context, dir string, files []scanned) string {
	for _, name := range coverNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name
		}
	}
	if !s.extractCover {
		return ""
	}

	for _, f := range files {
		if f.tags.Picture == nil {
			continue
		}
		cover, err := s.images.ResizeImage(ctx, f.tags.Picture, MaxCoverSize, MaxCoverSize)
		if err != nil {
			s.progress(ProgressEvent{Message: fmt.Sprintf("Error converting cover of %s: %v", f.file, err), Level: LevelWarning})
			continue
		}
		if err := ioutils.WriteFile(filepath.Join(dir, CoverFileName), cover); err != nil {
			s.progress(ProgressEvent{Message: fmt.Sprintf("Error saving cover: %v", err), Level: LevelWarning})
			return ""
		}
		s.progress(ProgressEvent{Message: fmt.Sprintf("Extracted cover from %s", f.file), Level: LevelVerbose})
		return CoverFileName
	}
	return ""
}

func (s *Scanner) progress(event ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}

// listAudioFiles returns the MP3 file names of dir in natural order.
func listAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".mp3") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Sort(natural.StringSlice(files))
	return files, nil
}

// sortByTrack orders files by track number if all of them carry a
// distinct one. The natural file order is kept otherwise.
func sortByTrack(files []scanned) {
	seen := make(map[int]bool, len(files))
	for _, f := range files {
		if f.tags.Track == 0 || seen[f.tags.Track] {
			return
		}
		seen[f.tags.Track] = true
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].tags.Track < files[j].tags.Track
	})
}

func bookTitle(dir string, files []scanned) string {
	for _, f := range files {
		if f.tags.Album != "" {
			return f.tags.Album
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(dir)
}

// bookArtist prefers the album artist, then the artist of most files.
func bookArtist(files []scanned) string {
	for _, f := range files {
		if f.tags.AlbumArtist != "" {
			return f.tags.AlbumArtist
		}
	}
	counts := make(map[string]int)
	best := ""
	for _, f := range files {
		a := f.tags.Artist
		if a == "" {
			continue
		}
		counts[a]++
		if counts[a] > counts[best] {
			best = a
		}
	}
	return best
}
