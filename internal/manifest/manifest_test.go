package manifest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/musicbook/internal/book"
	mbhttp "github.com/handiism/musicbook/internal/http"
)

const sample = `book:
  title: Winterreise
  artist: Franz Schubert
  media_base_uri: https://example.com/winterreise/index.html
pages:
  - contents: true
  - title: Gute Nacht
    audio: 01.mp3
    duration: 330
  - title: Sonata
    audio: 02.mp3
    part: I. Allegro
  - part: II. Adagio
    offset: 312.5
`

func TestParseAndBuild(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	reg, err := Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if reg.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", reg.Len())
	}
	if reg.ContentsID() != 1 {
		t.Errorf("ContentsID() = %d, want 1", reg.ContentsID())
	}
	p, _ := reg.Page(2)
	if p.AudioURL != "https://example.com/winterreise/01.mp3" || p.Duration != 330 {
		t.Errorf("page 2 = %+v", p)
	}
	p, _ = reg.Page(4)
	if p.PartOffset != 312.5 || p.Title != "Sonata" || p.PartTitle != "II. Adagio" {
		t.Errorf("page 4 = %+v", p)
	}
	if !reg.IsFirstPart(3) {
		t.Error("page 3 must be the first part")
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("book:\n  title: A\n  colour: red\n"))
	if err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		pages string
		want  error
		msg   string
	}{
		{"missing audio", "  - title: A\n", book.ErrMissingAudioAsset, "entry 1: page #1"},
		{"missing offset", "  - {title: A, audio: a.mp3}\n  - {part: II}\n", book.ErrInvalidPartOffset, "entry 2: page #2"},
		{"contents with fields", "  - {contents: true, title: A}\n", nil, "entry 1: contents entry"},
		{"duplicate contents", "  - contents: true\n  - contents: true\n", nil, "entry 2: duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte("book:\n  title: Album\npages:\n" + tt.pages))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			_, err = Build(m)
			if err == nil {
				t.Fatal("Build() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), tt.msg) {
				t.Errorf("Build() error = %q, want prefix %q", err, tt.msg)
			}
		})
	}
}

func TestBuild_MissingBookTitle(t *testing.T) {
	m, err := Parse([]byte("book:\n  artist: Band\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(m); !errors.Is(err, book.ErrMissingTitle) {
		t.Errorf("Build() error = %v, want ErrMissingTitle", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.yaml")
	data := "book:\n  title: Local\npages:\n  - {title: A, audio: media/a.mp3}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	reg, err := Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	p, _ := reg.Page(1)
	want := "file://" + filepath.ToSlash(dir) + "/media/a.mp3"
	if p.AudioURL != want {
		t.Errorf("AudioURL = %q, want %q", p.AudioURL, want)
	}
}

func TestLoad_RelativeMediaBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.yaml")
	data := "book:\n  title: Local\n  media_base_uri: media\npages:\n  - {title: A, audio: 01.mp3}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	folder := "file://" + filepath.ToSlash(dir)

	base, err := m.BaseURI()
	if err != nil {
		t.Fatal(err)
	}
	if base != folder+"/media/" {
		t.Errorf("BaseURI() = %q, want %q", base, folder+"/media/")
	}

	reg, err := Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	p, _ := reg.Page(1)
	if want := folder + "/media/01.mp3"; p.AudioURL != want {
		t.Errorf("AudioURL = %q, want %q", p.AudioURL, want)
	}

	m.Book.MediaBaseURI = "https://cdn.example.com/a/"
	if base, _ := m.BaseURI(); base != "https://cdn.example.com/a/" {
		t.Errorf("absolute BaseURI() = %q", base)
	}
}

func TestLoad_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/books/winterreise/book.yaml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("book:\n  title: Remote\npages:\n  - {title: A, audio: a.mp3}\n"))
	}))
	defer srv.Close()

	m, err := Load(context.Background(), srv.URL+"/books/winterreise/book.yaml", mbhttp.NewClient())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	base, err := m.BaseURI()
	if err != nil {
		t.Fatal(err)
	}
	if base != srv.URL+"/books/winterreise/" {
		t.Errorf("BaseURI() = %q", base)
	}

	if _, err := Load(context.Background(), srv.URL+"/missing.yaml", nil); err == nil {
		t.Error("expected an error for a missing remote manifest")
	}
}

func TestSave(t *testing.T) {
	m, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out", "book.yaml")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	again, err := Load(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(again.Pages) != len(m.Pages) || *again.Pages[3].Offset != 312.5 || !again.Pages[0].Contents {
		t.Errorf("saved manifest differs: %+v", again.Pages)
	}
}
