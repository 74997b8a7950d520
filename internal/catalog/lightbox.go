package catalog

// Lightbox is the full-screen viewer state for one gallery.
type Lightbox struct {
	Index int
	Count int
}

// OpenLightbox opens image index of a gallery of count images. It reports
// false when index is out of range, which keeps the viewer closed.
func OpenLightbox(count, index int) (Lightbox, bool) {
	if count <= 0 || index < 0 || index >= count {
		return Lightbox{}, false
	}
	return Lightbox{Index: index, Count: count}, true
}

// Prev wraps around to the last image.
func (l Lightbox) Prev() int {
	return (l.Index - 1 + l.Count) % l.Count
}

// Next wraps around to the first image.
func (l Lightbox) Next() int {
	return (l.Index + 1) % l.Count
}

// Position is the 1-based index shown to visitors.
func (l Lightbox) Position() int {
	return l.Index + 1
}
