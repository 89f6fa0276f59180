package ioutils

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidCharsRegex  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDotsRegex  = regexp.MustCompile(`\.+$`)
	multipleSpaceRegex = regexp.MustCompile(`\s+`)
)

// WriteFile writes data to path atomically, creating parent directories.
//
// The data is written to a temporary file in the same directory which then
// replaces path, so readers such as a file watcher never see a partial file.
//
// Example:
//
//	err := WriteFile("/music/Album/musicbook.yaml", data)
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")     // Returns "Song_ Part 1_2"
//	SanitizeFileName("Track...")           // Returns "Track"
//	SanitizeFileName("Name   with  spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	name = invalidCharsRegex.ReplaceAllString(name, "_")
	name = trailingDotsRegex.ReplaceAllString(name, "")
	name = multipleSpaceRegex.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileURL returns the file URL of a local path, made absolute first.
//
//	FileURL("/music/Album") // "file:///music/Album"
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// LocalPath returns the local path of a file URL or of a plain path.
// Other URLs are an error.
func LocalPath(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "":
		return location, nil
	case "file":
		return filepath.FromSlash(u.Path), nil
	default:
		return "", fmt.Errorf("not a local file: %s", location)
	}
}
