// Package catalog holds the fixed product list and answers search and
// enumeration queries over it.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/rogerio-castellano/storefront-assistant/internal/models"
)

// ErrInvalidCatalog is returned by New when the seed list breaks a catalog invariant.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Store is an immutable, ordered product catalog. All methods are safe for
// concurrent use because nothing mutates the underlying slice after New.
type Store struct {
	products []models.Product
	byID     map[string]int
}

// New builds a Store from the seed list, keeping its order.
func New(products []models.Product) (*Store, error) {
	const op = "catalog.New"

	s := &Store{
		products: make([]models.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for _, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("%s: %w: product without id", op, ErrInvalidCatalog)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("%s: %w: duplicated id %q", op, ErrInvalidCatalog, p.ID)
		}
		if strings.TrimSpace(p.Category) == "" || strings.TrimSpace(p.Brand) == "" {
			return nil, fmt.Errorf("%s: %w: product %q without category or brand", op, ErrInvalidCatalog, p.ID)
		}
		if p.Price < 0 || p.Reviews < 0 || p.Rating < 0 || p.Rating > 5 {
			return nil, fmt.Errorf("%s: %w: product %q out of range", op, ErrInvalidCatalog, p.ID)
		}
		p = clone(p)
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}

	return s, nil
}

// Products returns the whole catalog in seed order.
func (s *Store) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = clone(p)
	}
	return out
}

// SearchProducts returns the products matching any whitespace-separated term of
// query (case-insensitive substring of name, description, brand or category),
// narrowed by filters when given. An empty query matches everything.
func (s *Store) SearchProducts(query string, filters *SearchFilters) []models.Product {
	terms := strings.Fields(strings.ToLower(query))

	results := []models.Product{}
	for _, p := range s.products {
		if len(terms) > 0 && !matchesQuery(p, terms) {
			continue
		}
		if filters != nil && !matchesFilter(p, *filters) {
			continue
		}
		results = append(results, clone(p))
	}
	return results
}

// GetProductByID looks up a product. The boolean is false when no product has that id.
func (s *Store) GetProductByID(id string) (models.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return clone(s.products[i]), true
}

// GetCategories lists distinct categories in first-seen order.
func (s *Store) GetCategories() []string {
	return s.distinct(func(p models.Product) string { return p.Category })
}

// GetBrands lists distinct brands in first-seen order.
func (s *Store) GetBrands() []string {
	return s.distinct(func(p models.Product) string { return p.Brand })
}

func (s *Store) distinct(field func(models.Product) string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, p := range s.products {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// clone copies the specs map so callers never share it with the store.
func clone(p models.Product) models.Product {
	p.Specs = maps.Clone(p.Specs)
	return p
}
