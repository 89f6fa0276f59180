package tui

import "math"

// Strip is the horizontal strip of pages, one terminal width per page. It
// implements player.Viewport.
type Strip struct {
	pages     int
	pageWidth float64
	offset    float64
}

// NewStrip creates a strip of pages scrolled to the first page.
func NewStrip(pages, pageWidth int) *Strip {
	return &Strip{pages: pages, pageWidth: float64(max(1, pageWidth))}
}

// ScrollOffset returns the scroll offset in columns.
func (s *Strip) ScrollOffset() float64 {
	return s.offset
}

// ScrollExtent returns the width of all pages in columns.
func (s *Strip) ScrollExtent() float64 {
	return float64(s.pages) * s.pageWidth
}

// ScrollTo brings a page into view.
func (s *Strip) ScrollTo(pageID int) {
	s.offset = s.clamp(float64(pageID) * s.pageWidth)
}

// ScrollBy scrolls by a fraction of the page width.
func (s *Strip) ScrollBy(pages float64) {
	s.offset = s.clamp(s.offset + pages*s.pageWidth)
}

// Visible returns the page mostly in view.
func (s *Strip) Visible() int {
	if s.pages == 0 {
		return 0
	}
	return max(0, min(int(math.Round(s.offset/s.pageWidth)), s.pages-1))
}

// Snap aligns the strip to the visible page.
func (s *Strip) Snap() {
	s.ScrollTo(s.Visible())
}

// Resize changes the page width, keeping the scroll position relative to
// the pages.
func (s *Strip) Resize(pageWidth int) {
	pos := s.offset / s.pageWidth
	s.pageWidth = float64(max(1, pageWidth))
	s.offset = s.clamp(pos * s.pageWidth)
}

// SetPages changes the number of pages.
func (s *Strip) SetPages(pages int) {
	s.pages = pages
	s.offset = s.clamp(s.offset)
}

func (s *Strip) clamp(offset float64) float64 {
	limit := float64(max(0, s.pages-1)) * s.pageWidth
	return max(0, min(offset, limit))
}
