package audio

import (
	"strings"
	"testing"

	"github.com/handiism/musicbook/internal/book"
	"github.com/handiism/musicbook/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	reg := createTestBook(t)
	creator := NewPlaylistCreator(FormatM3U, false)

	content := creator.CreatePlaylist(reg)

	want := "track1.mp3\ntrack2.mp3\nhttps://cdn.example.com/3.mp3\n"
	if content != want {
		t.Errorf("got %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	reg := createTestBook(t)
	creator := NewPlaylistCreator(FormatM3U, true)

	content := creator.CreatePlaylist(reg)

	if !strings.HasPrefix(content, "#EXTM3U\n") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Test Artist - track1\n") {
		t.Errorf("Extended M3U should contain #EXTINF with duration, got %q", content)
	}
	if !strings.Contains(content, "#EXTINF:-1,Guest - track3\n") {
		t.Errorf("Unknown durations should be -1, got %q", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	reg := createTestBook(t)
	creator := NewPlaylistCreator(FormatPLS, false)

	content := creator.CreatePlaylist(reg)

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File2=track2.mp3") {
		t.Error("PLS should contain File2=")
	}
	if !strings.Contains(content, "NumberOfEntries=3") {
		t.Errorf("PLS should contain 3 entries, got %q", content)
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	reg := createTestBook(t)
	creator := NewPlaylistCreator(FormatWPL, false)

	content := creator.CreatePlaylist(reg)

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<smil>") {
		t.Error("WPL should contain smil element")
	}
	if strings.Count(content, "<media src=") != 3 {
		t.Error("WPL should contain one media element per track")
	}
}

func TestPlaylistCreator_ZPL(t *testing.T) {
	reg := createTestBook(t)
	creator := NewPlaylistCreator(FormatZPL, false)

	content := creator.CreatePlaylist(reg)

	if !strings.Contains(content, "<?zpl") {
		t.Error("ZPL should contain XML declaration")
	}
	if !strings.Contains(content, `duration="200000"`) {
		t.Error("ZPL should contain durations in milliseconds")
	}
}

func TestPlaylistCreator_XMLEscape(t *testing.T) {
	reg, err := book.New(model.Book{Title: "Album <Special>", Artist: "Artist & Co"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.AddPage(model.Track("Track & \"Quote\"", "http://example.com/1.mp3")); err != nil {
		t.Fatal(err)
	}

	content := NewPlaylistCreator(FormatZPL, false).CreatePlaylist(reg)

	if !strings.Contains(content, "Artist &amp; Co") {
		t.Error("ZPL should escape & as &amp;")
	}
	if strings.Contains(content, "<Special>") {
		t.Error("ZPL should escape < and >")
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    PlaylistFormat
		wantErr bool
	}{
		{"m3u", FormatM3U, false},
		{".PLS", FormatPLS, false},
		{"wpl", FormatWPL, false},
		{"zpl", FormatZPL, false},
		{"xspf", FormatM3U, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlaylistFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if !tt.wantErr && got.Extension() != strings.ToLower(strings.TrimPrefix(tt.in, ".")) {
				t.Errorf("Extension() = %q", got.Extension())
			}
		})
	}
}

// createTestBook returns a book with contents, a plain track, a two-part
// track and a track on another host.
func createTestBook(t *testing.T) *book.Registry {
	t.Helper()
	reg, err := book.New(model.Book{
		MediaBaseURI: "https://example.com/album/",
		Title:        "Test Album",
		Artist:       "Test Artist",
	})
	if err != nil {
		t.Fatal(err)
	}
	reg.AddTableOfContentsPage()
	specs := []model.PageSpec{
		model.Track("track1", "track1.mp3").WithDuration(180),
		model.Track("track2", "track2.mp3").WithDuration(200).WithPart("I"),
		model.Part(100).WithPart("II"),
		model.Track("track3", "https://cdn.example.com/3.mp3").WithArtist("Guest"),
	}
	for _, s := range specs {
		if _, err := reg.AddPage(s); err != nil {
			t.Fatal(err)
		}
	}
	return reg
}
