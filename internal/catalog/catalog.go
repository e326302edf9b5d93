// Package catalog serves the read-only destination dataset bundled with the app.
package catalog

import (
	"slices"
	"strings"

	"github.com/go-ports/gomate/internal/models"
)

// CategoryAll is the sentinel category meaning "no filtering".
const CategoryAll = "all"

// Catalog is an immutable list of destinations.
type Catalog struct {
	items []models.Destination
}

// New builds a Catalog from items. The slice is copied.
func New(items []models.Destination) *Catalog {
	cp := make([]models.Destination, len(items))
	for i, d := range items {
		cp[i] = clone(d)
	}
	return &Catalog{items: cp}
}

// Default returns the bundled catalog.
func Default() *Catalog { return New(destinations) }

// All returns every destination in catalog order.
func (c *Catalog) All() []models.Destination {
	out := make([]models.Destination, len(c.items))
	for i, d := range c.items {
		out[i] = clone(d)
	}
	return out
}

// Len returns the number of destinations.
func (c *Catalog) Len() int { return len(c.items) }

// ByID returns the destination with the given id.
func (c *Catalog) ByID(id string) (models.Destination, bool) {
	for _, d := range c.items {
		if d.ID == id {
			return clone(d), true
		}
	}
	return models.Destination{}, false
}

// ByCategory returns destinations whose category equals category.
// CategoryAll returns everything.
func (c *Catalog) ByCategory(category string) []models.Destination {
	if category == CategoryAll {
		return c.All()
	}
	out := make([]models.Destination, 0)
	for _, d := range c.items {
		if d.Category == category {
			out = append(out, clone(d))
		}
	}
	return out
}

// Search returns destinations whose name, location or description contains
// query, case-insensitively, in catalog order.
func (c *Catalog) Search(query string) []models.Destination {
	q := strings.ToLower(query)
	out := make([]models.Destination, 0)
	for _, d := range c.items {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Location), q) ||
			strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, clone(d))
		}
	}
	return out
}

// Categories returns CategoryAll followed by each distinct category in
// order of first appearance.
func (c *Catalog) Categories() []string {
	out := []string{CategoryAll}
	for _, d := range c.items {
		if !slices.Contains(out, d.Category) {
			out = append(out, d.Category)
		}
	}
	return out
}

func clone(d models.Destination) models.Destination {
	d.Transport = slices.Clone(d.Transport)
	d.Highlights = slices.Clone(d.Highlights)
	return d
}
