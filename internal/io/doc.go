// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Atomic file writing
//   - Filename sanitization for cross-platform compatibility
//   - Conversion between local paths and file URLs
//   - Image resizing and rendering images as terminal text
//
// # File Operations
//
//	// Write a manifest next to the media
//	err := ioutils.WriteFile("/music/Album/musicbook.yaml", data)
//
//	// Resolve relative media against a local folder
//	base, err := ioutils.FileURL("/music/Album")
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Image Processing
//
//	svc := ioutils.NewImageService()
//	resized, _ := svc.ResizeImage(ctx, imageData, 500, 500)
//	art, _ := svc.Thumbnail(ctx, resized, 24)
package ioutils
