package model

import "testing"

func TestBook_WindowTitle(t *testing.T) {
	tests := []struct {
		name string
		book Book
		want string
	}{
		{"title and artist", Book{Title: "Winterreise", Artist: "Franz Schubert"}, ":: WINTERREISE :: Franz Schubert"},
		{"missing title", Book{Artist: "Someone"}, ":: [UNKNOWN TITLE] :: Someone"},
		{"missing artist", Book{Title: "Songs"}, ":: SONGS :: Unknown Artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.book.WindowTitle(); got != tt.want {
				t.Errorf("WindowTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPage_Offset(t *testing.T) {
	p := Page{PartOffset: 42}
	if p.Offset() != 0 {
		t.Errorf("Offset() = %v for a non-part page, want 0", p.Offset())
	}

	p.HasPartOffset = true
	if p.Offset() != 42 {
		t.Errorf("Offset() = %v, want 42", p.Offset())
	}
}

func TestPageSpec_Builders(t *testing.T) {
	track := Track("Gute Nacht", "01.mp3").WithPart("Intro").WithDuration(330)
	if !track.StartsTrack() {
		t.Error("Track() spec should start a track")
	}
	if track.Offset != nil {
		t.Errorf("Track() spec Offset = %v, want nil", *track.Offset)
	}
	if track.PartTitle != "Intro" || track.Duration != 330 {
		t.Errorf("unexpected track spec: %+v", track)
	}

	part := Part(30).WithPart("Part 2")
	if part.StartsTrack() {
		t.Error("Part() spec should not start a track")
	}
	if part.Offset == nil || *part.Offset != 30 {
		t.Errorf("Part() spec Offset = %v, want 30", part.Offset)
	}

	// With* methods work on copies
	moved := part.WithOffset(45)
	if *part.Offset != 30 || *moved.Offset != 45 {
		t.Errorf("WithOffset modified the original spec: %v, %v", *part.Offset, *moved.Offset)
	}
}
