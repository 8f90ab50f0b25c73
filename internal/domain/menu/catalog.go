package menu

// Catalog is the ordered list of dishes on the menu page
type Catalog struct {
	entries []Entry
	byID    map[string]int
}

// NewCatalog indexes entries by id. Later duplicates are ignored.
func NewCatalog(entries []Entry) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(entries))}
	for _, e := range entries {
		if _, ok := c.byID[e.ID]; ok || e.ID == "" {
			continue
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// DefaultCatalog returns the house menu
func DefaultCatalog() *Catalog {
	return NewCatalog([]Entry{
		{
			ID:          "burrata",
			Name:        "Burrata & Heirloom Tomato",
			Description: "Basil oil, aged balsamic, grilled sourdough",
			Section:     "starters",
			Price:       "14.00",
			Image:       "https://images.unsplash.com/photo-1608897013039-887f21d8c804?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "tartare",
			Name:        "Beef Tartare",
			Description: "Cured yolk, capers, shallot, potato crisps",
			Section:     "starters",
			Price:       "16.50",
			Image:       "https://images.unsplash.com/photo-1625944525533-473f1a3d54e7?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "risotto",
			Name:        "Wild Mushroom Risotto",
			Description: "Carnaroli rice, porcini, parmesan, thyme",
			Section:     "mains",
			Price:       "22.00",
			Image:       "https://images.unsplash.com/photo-1512058466831-224683f3f3e5?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "sea-bass",
			Name:        "Crispy Sea Bass",
			Description: "Fennel, blood orange, saffron beurre blanc",
			Section:     "mains",
			Price:       "28.00",
			Image:       "https://images.unsplash.com/photo-1517244683847-7456b63c5969?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "short-rib",
			Name:        "Braised Short Rib",
			Description: "Celeriac purée, red wine jus, gremolata",
			Section:     "mains",
			Price:       "31.00",
			Image:       "https://images.unsplash.com/photo-1544025162-d76694265947?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "torte",
			Name:        "Dark Chocolate Torte",
			Description: "Salted caramel, crème fraîche",
			Section:     "desserts",
			Price:       "11.00",
			Image:       "https://images.unsplash.com/photo-1504754524776-8f4f37790ca0?q=80&w=800&auto=format&fit=crop",
		},
		{
			ID:          "panna-cotta",
			Name:        "Vanilla Panna Cotta",
			Description: "Macerated berries, honeycomb",
			Section:     "desserts",
			Price:       "9.50",
			Image:       "https://images.unsplash.com/photo-1488477181946-6428a0291777?q=80&w=800&auto=format&fit=crop",
		},
	})
}

// All returns the entries in menu order
func (c *Catalog) All() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Section returns the entries of one menu section
func (c *Catalog) Section(name string) []Entry {
	out := []Entry{}
	for _, e := range c.entries {
		if e.Section == name {
			out = append(out, e)
		}
	}
	return out
}

// Find looks up an entry by id
func (c *Catalog) Find(id string) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return c.entries[i], nil
}
