package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// ImageService provides image processing operations for cover art.
//
// ImageService is used to:
//   - Resize images to fit maximum dimensions (cover art extracted by scan)
//   - Render images as terminal text (page images in the player)
//
// Example usage:
//
//	svc := NewImageService()
//
//	// Resize to max 1000x1000 and re-encode as JPEG
//	cover, _ := svc.ResizeImage(ctx, pictureFromTags, 1000, 1000)
//
//	// Render 24 columns wide
//	art, _ := svc.Thumbnail(ctx, cover, 24)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ReadImage reads image bytes from a local path or file URL.
func (s *ImageService) ReadImage(location string) ([]byte, error) {
	path, err := LocalPath(location)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. If the image is already smaller than the
// maximum dimensions, it will still be processed (re-encoded as JPEG).
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x666
//	// A 800x600 image remains 800x600 (but re-encoded)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	width, height := fit(img.Bounds(), maxWidth, maxHeight)
	dst := scale(img, width, height)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Thumbnail renders an image as colored text, cols characters wide.
//
// Every character is an upper half block whose foreground is one pixel and
// whose background is the pixel below it, so the image keeps its aspect
// ratio with terminal cells about twice as high as wide.
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, cols int) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if cols <= 0 {
		return "", nil
	}

	b := img.Bounds()
	rows := max(1, cols*b.Dy()/max(1, b.Dx())/2)
	dst := scale(img, cols, rows*2)

	var sb strings.Builder
	for y := 0; y < rows*2; y += 2 {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		for x := 0; x < cols; x++ {
			cell := lipgloss.NewStyle().
				Foreground(hexColor(dst.At(x, y))).
				Background(hexColor(dst.At(x, y+1)))
			sb.WriteString(cell.Render("▀"))
		}
		if y+2 < rows*2 {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// fit returns the size of b scaled down to fit into maxWidth x maxHeight.
func fit(b image.Rectangle, maxWidth, maxHeight int) (int, int) {
	width, height := b.Dx(), b.Dy()
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		return max(1, int(float64(maxHeight)*ratio)), maxHeight
	}
	return maxWidth, max(1, int(float64(maxWidth)/ratio))
}

func scale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func hexColor(c color.Color) lipgloss.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return lipgloss.Color(
		"#" + hex2(rgba.R) + hex2(rgba.G) + hex2(rgba.B),
	)
}

func hex2(v uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0x0f]})
}
