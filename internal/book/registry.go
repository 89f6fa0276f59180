package book

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/model"
)

// ContentsTitle is the title of the table of contents page.
const ContentsTitle = "Contents"

// Registry is the ordered, append-only sequence of pages of one book.
//
// Page ids equal insertion order. Page 0 is the cover, created by New. A
// Registry is not safe for concurrent use.
type Registry struct {
	book       model.Book
	resolver   Resolver
	pages      []model.Page
	contentsID int

	// tracks maps the audio URL of every track to the page starting it.
	tracks map[string]int

	log               *zap.Logger
	onPageAdded       func(model.Page)
	onContentsChanged func(Contents)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger of the registry.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithPageAdded registers a hook called after every appended page.
func WithPageAdded(fn func(model.Page)) Option {
	return func(r *Registry) {
		r.onPageAdded = fn
	}
}

// WithContentsChanged registers a hook called whenever the table of contents
// is regenerated.
func WithContentsChanged(fn func(Contents)) Option {
	return func(r *Registry) {
		r.onContentsChanged = fn
	}
}

// New creates a registry for a book and adds its cover page.
//
// The media base URI of props is trimmed to its folder. A book without title
// fails with ErrMissingTitle.
func New(props model.Book, opts ...Option) (*Registry, error) {
	r := &Registry{
		contentsID: -1,
		tracks:     make(map[string]int),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if props.Title == "" {
		return nil, fmt.Errorf("book: %w", ErrMissingTitle)
	}
	if props.MediaBaseURI != "" {
		base, err := FolderURL(props.MediaBaseURI, "")
		if err != nil {
			return nil, fmt.Errorf("book: media base: %w", err)
		}
		props.MediaBaseURI = base
	}
	r.book = props
	r.resolver = Resolver{MediaBaseURI: props.MediaBaseURI, Artist: props.Artist}

	cover := model.Track(props.Title, CoverAudioURL).
		WithImage(props.Image).
		WithDescription(props.Description)
	res, err := r.resolver.Resolve(0, cover, nil)
	if err != nil {
		return nil, err
	}
	r.append(res)

	return r, nil
}

// AddPage resolves spec against the last page and appends the result.
//
// On error the registry is left unchanged.
func (r *Registry) AddPage(spec model.PageSpec) (model.Page, error) {
	id := len(r.pages)
	prev := r.pages[id-1]

	res, err := r.resolver.Resolve(id, spec, &prev)
	if err != nil {
		return model.Page{}, err
	}
	if res.StartsTrack {
		if first, ok := r.tracks[res.Page.AudioURL]; ok {
			return model.Page{}, fmt.Errorf("page #%d: %w: %s (page #%d)",
				id, ErrDuplicateAudioAsset, res.Page.AudioURL, first)
		}
	}
	if res.IgnoredOffset {
		r.log.Warn("Ignoring part offset of a page starting a new track",
			zap.Int("page", id),
			zap.String("title", res.Page.Title),
			zap.Float64("offset", *spec.Offset))
	}

	page := r.append(res)
	if r.contentsID >= 0 {
		r.refreshContents()
	}
	return page, nil
}

// AddTableOfContentsPage appends the table of contents page. It is
// idempotent: once the page exists, it is returned unchanged.
//
// The page does not consume a track number and is never a track or a part.
func (r *Registry) AddTableOfContentsPage() model.Page {
	if r.contentsID >= 0 {
		return r.pages[r.contentsID]
	}

	id := len(r.pages)
	prev := r.pages[id-1]
	page := model.Page{
		ID:       id,
		TrackID:  prev.TrackID, // shares the number of the preceding track
		Title:    ContentsTitle,
		Artist:   r.book.Artist,
		AudioURL: ContentsAudioURL,
	}
	r.append(Resolution{Page: page})
	r.contentsID = id
	r.refreshContents()

	return r.pages[id]
}

func (r *Registry) append(res Resolution) model.Page {
	if res.MarkFirstPart {
		prev := &r.pages[len(r.pages)-1]
		prev.PartOffset = 0
		prev.HasPartOffset = true
	}
	r.pages = append(r.pages, res.Page)
	if res.StartsTrack && !IsPlaceholder(res.Page.AudioURL) {
		r.tracks[res.Page.AudioURL] = res.Page.ID
	}

	r.log.Debug("Page added",
		zap.Int("page", res.Page.ID),
		zap.Int("track", res.Page.TrackID),
		zap.String("title", res.Page.Title))
	if r.onPageAdded != nil {
		r.onPageAdded(res.Page)
	}
	return res.Page
}

func (r *Registry) refreshContents() {
	contents := r.Contents()
	r.pages[r.contentsID].Description = contents.String()
	if r.onContentsChanged != nil {
		r.onContentsChanged(contents)
	}
}

// Book returns the book properties.
func (r *Registry) Book() model.Book {
	return r.book
}

// Len returns the number of pages, cover included.
func (r *Registry) Len() int {
	return len(r.pages)
}

// Page returns the page with the given id.
func (r *Registry) Page(id int) (model.Page, bool) {
	if id < 0 || id >= len(r.pages) {
		return model.Page{}, false
	}
	return r.pages[id], true
}

// Pages returns a copy of all pages in id order.
func (r *Registry) Pages() []model.Page {
	pages := make([]model.Page, len(r.pages))
	copy(pages, r.pages)
	return pages
}

// Last returns the page with the highest id.
func (r *Registry) Last() model.Page {
	return r.pages[len(r.pages)-1]
}

// ContentsID returns the id of the table of contents page, -1 if there is
// none.
func (r *Registry) ContentsID() int {
	return r.contentsID
}

// IsCover returns true for page 0.
func (r *Registry) IsCover(id int) bool {
	return id == 0 && len(r.pages) > 0
}

// IsTableOfContents returns true for the table of contents page.
func (r *Registry) IsTableOfContents(id int) bool {
	return id >= 0 && id == r.contentsID
}

// IsTrack returns true if the page starts a track: it is neither the cover
// nor the table of contents, and it is the first page after the cover or its
// audio differs from the previous page.
func (r *Registry) IsTrack(id int) bool {
	return isTrack(r.pages, r.contentsID, id)
}

// IsPart returns true if the page is a part of a multi-part track.
func (r *Registry) IsPart(id int) bool {
	return isPart(r.pages, r.contentsID, id)
}

// IsFirstPart returns true if the page is the first part of a multi-part
// track.
func (r *Registry) IsFirstPart(id int) bool {
	return r.IsTrack(id) && r.IsPart(id)
}

// Contents generates the table of contents of the current pages.
func (r *Registry) Contents() Contents {
	return GenerateContents(r.pages, r.contentsID)
}
