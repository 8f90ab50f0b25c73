package gallery

// DefaultAlt is shown when a photo has no alt text
const DefaultAlt = "Preview"

// Slide is what the lightbox currently displays
type Slide struct {
	Index   int    `json:"index"`
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
	Open    bool   `json:"open"`
}

// Lightbox steps through a fixed list of photos
type Lightbox struct {
	list  []Item
	index int
	open  bool
}

// NewLightbox creates a closed lightbox over list
func NewLightbox(list []Item) *Lightbox {
	return &Lightbox{list: list}
}

// Open shows the photo at index. Out of range indexes are ignored.
func (l *Lightbox) Open(index int) bool {
	if index < 0 || index >= len(l.list) {
		return false
	}
	l.index = index
	l.open = true
	return true
}

// Close hides the lightbox
func (l *Lightbox) Close() {
	l.open = false
}

// Next wraps to the first photo after the last one
func (l *Lightbox) Next() {
	if len(l.list) == 0 {
		return
	}
	l.Open((l.index + 1) % len(l.list))
}

// Prev wraps to the last photo before the first one
func (l *Lightbox) Prev() {
	if len(l.list) == 0 {
		return
	}
	l.Open((l.index - 1 + len(l.list)) % len(l.list))
}

// HandleKey applies a keyboard key while the lightbox is open
func (l *Lightbox) HandleKey(key string) {
	if !l.open {
		return
	}
	switch key {
	case "Escape":
		l.Close()
	case "ArrowRight":
		l.Next()
	case "ArrowLeft":
		l.Prev()
	}
}

// IsOpen reports whether the lightbox is showing
func (l *Lightbox) IsOpen() bool {
	return l.open
}

// Current returns the displayed slide
func (l *Lightbox) Current() Slide {
	if len(l.list) == 0 {
		return Slide{}
	}
	item := l.list[l.index]
	alt := item.Alt
	if alt == "" {
		alt = DefaultAlt
	}
	return Slide{
		Index:   l.index,
		Src:     item.Src,
		Alt:     alt,
		Caption: item.Caption,
		Open:    l.open,
	}
}
