// internal/domain/gallery/service.go
package gallery

const (
	FilterAll      = "all"
	FilterDishes   = "dishes"
	FilterInterior = "interior"
	FilterPeople   = "people"

	// PageSize is how many photos one "load more" press reveals
	PageSize = 6
)

// Item is one gallery photo
type Item struct {
	Src      string `json:"src"`
	Alt      string `json:"alt"`
	Category string `json:"category"`
	Caption  string `json:"caption"`
}

// Page is the visible part of a filtered gallery
type Page struct {
	Filter  string `json:"filter"`
	Items   []Item `json:"items"`
	Visible int    `json:"visible"`
	Total   int    `json:"total"`
	HasMore bool   `json:"has_more"`
}

// Service serves the gallery grid
type Service struct {
	items []Item
}

// NewService creates a gallery over items
func NewService(items []Item) *Service {
	return &Service{items: items}
}

// NewDefaultService creates a gallery with the house photos
func NewDefaultService() *Service {
	return NewService(DefaultItems())
}

// DefaultItems returns the house photos
func DefaultItems() []Item {
	const q = "?q=80&w=1600&auto=format&fit=crop"
	return []Item{
		{Src: "https://images.unsplash.com/photo-1490474418585-ba9bad8fd0ea" + q, Alt: "Plated dish with garnish", Category: FilterDishes, Caption: "Seasonal tasting course"},
		{Src: "https://images.unsplash.com/photo-1504754524776-8f4f37790ca0" + q, Alt: "Chocolate dessert", Category: FilterDishes, Caption: "Dark chocolate torte"},
		{Src: "https://images.unsplash.com/photo-1517244683847-7456b63c5969" + q, Alt: "Seared sea bass", Category: FilterDishes, Caption: "Crispy sea bass"},
		{Src: "https://images.unsplash.com/photo-1512058466831-224683f3f3e5" + q, Alt: "Wild mushroom risotto", Category: FilterDishes, Caption: "Wild mushroom risotto"},
		{Src: "https://images.unsplash.com/photo-1543352634-8311b7c0b8fe" + q, Alt: "Dining room interior", Category: FilterInterior, Caption: "Evening glow in the dining room"},
		{Src: "https://images.unsplash.com/photo-1532634896-26909d0d4b6a" + q, Alt: "Wine cellar", Category: FilterInterior, Caption: "Curated cellar selection"},
		{Src: "https://images.unsplash.com/photo-1517245386807-bb43f82c33c4" + q, Alt: "Chef plating dish", Category: FilterPeople, Caption: "Chef at work"},
		{Src: "https://images.unsplash.com/photo-1517244683847-2433b25083cc" + q, Alt: "Sommelier with wine", Category: FilterPeople, Caption: "Sommelier pairing"},
		{Src: "https://images.unsplash.com/photo-1528605248644-14dd04022da1" + q, Alt: "Guests dining", Category: FilterPeople, Caption: "An evening at Milpat"},
	}
}

// Filtered returns the photos matching filter. "all" and "" match everything;
// any other value matches on category.
func (s *Service) Filtered(filter string) []Item {
	out := []Item{}
	for _, item := range s.items {
		if filter == "" || filter == FilterAll || item.Category == filter {
			out = append(out, item)
		}
	}
	return out
}

// Page returns the first visible photos of the filtered list. A non-positive
// visible count means the initial page.
func (s *Service) Page(filter string, visible int) Page {
	if filter == "" {
		filter = FilterAll
	}
	if visible <= 0 {
		visible = PageSize
	}

	list := s.Filtered(filter)
	shown := visible
	if shown > len(list) {
		shown = len(list)
	}

	return Page{
		Filter:  filter,
		Items:   list[:shown],
		Visible: visible,
		Total:   len(list),
		HasMore: len(list) > visible,
	}
}

// LoadMore reveals one more page
func (s *Service) LoadMore(p Page) Page {
	return s.Page(p.Filter, p.Visible+PageSize)
}

// Lightbox opens a lightbox over the filtered list
func (s *Service) Lightbox(filter string) *Lightbox {
	return NewLightbox(s.Filtered(filter))
}
