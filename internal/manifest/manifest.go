// Package manifest reads and writes book manifests.
//
// A manifest is a YAML document declaring a book and its pages in order:
//
//	book:
//	  title: Winterreise
//	  artist: Franz Schubert
//	  image: cover.jpg
//	pages:
//	  - contents: true
//	  - title: Gute Nacht
//	    audio: 01.mp3
//	  - title: Sonata
//	    audio: 02.mp3
//	    part: I. Allegro
//	  - part: II. Adagio
//	    offset: 312.5
//
// Relative audio and image paths are resolved against book.media_base_uri,
// or against the manifest's own folder if it is not set.
package manifest

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handiism/musicbook/internal/book"
	"github.com/handiism/musicbook/internal/http"
	ioutils "github.com/handiism/musicbook/internal/io"
	"github.com/handiism/musicbook/internal/model"
)

// Manifest is a parsed book manifest.
type Manifest struct {
	Book  BookInfo `yaml:"book"`
	Pages []Entry  `yaml:"pages"`

	// Source is the file path or URL the manifest was loaded from.
	Source string `yaml:"-"`
}

// BookInfo declares the book properties.
type BookInfo struct {
	Title        string `yaml:"title"`
	Artist       string `yaml:"artist,omitempty"`
	Image        string `yaml:"image,omitempty"`
	Description  string `yaml:"description,omitempty"`
	MediaBaseURI string `yaml:"media_base_uri,omitempty"`
}

// Entry declares one page. An entry with Contents set places the table of
// contents page and must not declare anything else.
type Entry struct {
	Title       string   `yaml:"title,omitempty"`
	Artist      string   `yaml:"artist,omitempty"`
	Audio       string   `yaml:"audio,omitempty"`
	Image       string   `yaml:"image,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Part        string   `yaml:"part,omitempty"`
	Offset      *float64 `yaml:"offset,omitempty"`
	Duration    float64  `yaml:"duration,omitempty"`
	Contents    bool     `yaml:"contents,omitempty"`
}

// Spec converts the entry into a page declaration.
func (e Entry) Spec() model.PageSpec {
	return model.PageSpec{
		Title:       e.Title,
		Artist:      e.Artist,
		Audio:       e.Audio,
		Image:       e.Image,
		Description: e.Description,
		PartTitle:   e.Part,
		Offset:      e.Offset,
		Duration:    e.Duration,
	}
}

// FromSpec converts a page declaration into an entry.
func FromSpec(s model.PageSpec) Entry {
	return Entry{
		Title:       s.Title,
		Artist:      s.Artist,
		Audio:       s.Audio,
		Image:       s.Image,
		Description: s.Description,
		Part:        s.PartTitle,
		Offset:      s.Offset,
		Duration:    s.Duration,
	}
}

// Parse decodes a manifest. Unknown fields are an error.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return m, nil
}

// IsRemote returns true if source is an http or https URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads a manifest from a file or an http(s) URL. client may be nil for
// local files.
func Load(ctx context.Context, source string, client *http.Client) (*Manifest, error) {
	var (
		data []byte
		err  error
	)
	if IsRemote(source) {
		if client == nil {
			client = http.NewClient()
		}
		data, err = client.Get(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	m.Source = source
	return m, nil
}

// BaseURI returns the URI relative media paths are resolved against: the
// declared media base URI, else the folder of the manifest. A relative media
// base URI is resolved against the folder of the manifest.
func (m *Manifest) BaseURI() (string, error) {
	folder, err := m.sourceFolder()
	if err != nil {
		return "", err
	}
	if m.Book.MediaBaseURI == "" {
		return folder, nil
	}
	if folder == "" || isAbsURL(m.Book.MediaBaseURI) {
		return m.Book.MediaBaseURI, nil
	}
	return book.FolderURL(m.Book.MediaBaseURI, folder)
}

// sourceFolder returns the URL of the folder holding the manifest, or ""
// for a manifest that was not loaded.
func (m *Manifest) sourceFolder() (string, error) {
	switch {
	case m.Source == "":
		return "", nil
	case IsRemote(m.Source):
		return book.NormalizeURL(m.Source, ".")
	default:
		dir, err := ioutils.FileURL(filepath.Dir(m.Source))
		if err != nil {
			return "", err
		}
		return dir + "/", nil
	}
}

func isAbsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

// Build creates a registry from the manifest. It stops at the first entry
// that cannot be added.
func Build(m *Manifest, opts ...book.Option) (*book.Registry, error) {
	base, err := m.BaseURI()
	if err != nil {
		return nil, err
	}

	reg, err := book.New(model.Book{
		MediaBaseURI: base,
		Title:        m.Book.Title,
		Artist:       m.Book.Artist,
		Image:        m.Book.Image,
		Description:  m.Book.Description,
	}, opts...)
	if err != nil {
		return nil, err
	}

	for i, e := range m.Pages {
		if e.Contents {
			if e != (Entry{Contents: true}) {
				return nil, fmt.Errorf("entry %d: contents entry declares page fields", i+1)
			}
			if reg.ContentsID() >= 0 {
				return nil, fmt.Errorf("entry %d: duplicate contents entry", i+1)
			}
			reg.AddTableOfContentsPage()
			continue
		}
		if _, err := reg.AddPage(e.Spec()); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return reg, nil
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the manifest to a YAML file.
func (m *Manifest) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return ioutils.WriteFile(path, data)
}
