package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
)

func writeTestMP3(t *testing.T, edit func(tag *id3v2.Tag)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, []byte("not really audio data"), 0644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open() error = %v", err)
	}
	edit(tag)
	if err := tag.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	tag.Close()
	return path
}

func TestTagReader_ReadTags(t *testing.T) {
	path := writeTestMP3(t, func(tag *id3v2.Tag) {
		tag.SetTitle("Gute Nacht")
		tag.SetArtist("Schubert")
		tag.SetAlbum("Winterreise")
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, "Franz Schubert")
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, "3/24")
		tag.AddTextFrame("TLEN", id3v2.EncodingUTF8, "180500")
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/png",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     []byte{1, 2, 3},
		})
	})

	tags, err := (&TagReader{Pictures: true}).ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags() error = %v", err)
	}

	if tags.Title != "Gute Nacht" || tags.Artist != "Schubert" || tags.Album != "Winterreise" {
		t.Errorf("tags = %+v", tags)
	}
	if tags.AlbumArtist != "Franz Schubert" {
		t.Errorf("AlbumArtist = %q", tags.AlbumArtist)
	}
	if tags.Track != 3 {
		t.Errorf("Track = %d, want 3", tags.Track)
	}
	if tags.Duration != 180.5 {
		t.Errorf("Duration = %v, want 180.5", tags.Duration)
	}
	if !bytes.Equal(tags.Picture, []byte{1, 2, 3}) || tags.PictureMIME != "image/png" {
		t.Errorf("Picture = %v (%s)", tags.Picture, tags.PictureMIME)
	}
}

func TestTagReader_NoTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.mp3")
	if err := os.WriteFile(path, []byte("not really audio data"), 0644); err != nil {
		t.Fatal(err)
	}

	tags, err := NewTagReader().ReadTags(path)
	if err != nil {
		t.Fatalf("ReadTags() error = %v", err)
	}
	if tags.Title != "" || tags.Track != 0 || tags.Picture != nil {
		t.Errorf("tags = %+v, want empty", tags)
	}
}

func TestTagReader_MissingFile(t *testing.T) {
	if _, err := NewTagReader().ReadTags(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestParseTrackNumber(t *testing.T) {
	tests := map[string]int{"7": 7, "03/12": 3, " 4 ": 4, "": 0, "x": 0, "-2": 0}
	for in, want := range tests {
		if got := parseTrackNumber(in); got != want {
			t.Errorf("parseTrackNumber(%q) = %d, want %d", in, got, want)
		}
	}
}
