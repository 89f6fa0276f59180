// Package audio exports books as playlists and reads ID3 tags.
//
// # Playlists
//
// PlaylistCreator lists the tracks of a book in one of four formats:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist(reg)
//
// Supported formats:
//   - FormatM3U: Simple text format (most compatible)
//   - FormatPLS: Winamp/SHOUTcast format
//   - FormatWPL: Windows Media Player format
//   - FormatZPL: Zune/Groove Music format
//
// Multi-part tracks appear once, the cover and the table of contents not at
// all.
//
// # ID3 Tags
//
// TagReader reads title, artists, album, track number, length and cover
// picture of MP3 files using the id3v2 library:
//
//	reader := &audio.TagReader{Pictures: true}
//	tags, err := reader.ReadTags(path)
package audio
