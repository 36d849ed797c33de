package catalog

import (
	"strings"

	"github.com/rogerio-castellano/storefront-assistant/internal/models"
)

// SearchFilters narrows a search. Nil or empty fields are not applied.
// An inverted price range is passed through and yields no products.
type SearchFilters struct {
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
}

func matchesQuery(p models.Product, terms []string) bool {
	name := strings.ToLower(p.Name)
	description := strings.ToLower(p.Description)
	brand := strings.ToLower(p.Brand)
	category := strings.ToLower(p.Category)

	for _, term := range terms {
		if strings.Contains(name, term) ||
			strings.Contains(description, term) ||
			strings.Contains(brand, term) ||
			strings.Contains(category, term) {
			return true
		}
	}
	return false
}

func matchesFilter(p models.Product, f SearchFilters) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// Price returns a pointer to v, for use as a SearchFilters bound.
func Price(v float64) *float64 {
	return &v
}
