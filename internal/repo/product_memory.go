package repo

import (
	"context"

	"github.com/rogerio-castellano/storefront-assistant/internal/models"
)

// InMemoryProductSource serves a fixed product list. Used for the built-in demo
// catalog and in tests.
type InMemoryProductSource struct {
	products []models.Product
}

// NewInMemoryProductSource creates a source serving products as given.
func NewInMemoryProductSource(products []models.Product) *InMemoryProductSource {
	return &InMemoryProductSource{products: products}
}

// NewBuiltinProductSource creates a source serving the demo catalog.
func NewBuiltinProductSource() *InMemoryProductSource {
	return NewInMemoryProductSource(BuiltinProducts())
}

// LoadProducts implements ProductSource.
func (s *InMemoryProductSource) LoadProducts(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// BuiltinProducts returns the six demo products.
func BuiltinProducts() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "MacBook Pro 16-inch M3",
			Price:       2499,
			Category:    "Laptops",
			Brand:       "Apple",
			Description: "Powerful laptop with M3 chip, perfect for professionals and creators.",
			Image:       "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?w=400&h=400&fit=crop",
			InStock:     true,
			Rating:      4.8,
			Reviews:     1250,
			Specs: map[string]string{
				"Processor": "Apple M3 Pro",
				"RAM":       "16GB",
				"Storage":   "512GB SSD",
				"Display":   "16.2-inch Liquid Retina XDR",
			},
		},
		{
			ID:          "2",
			Name:        "iPhone 15 Pro",
			Price:       999,
			Category:    "Smartphones",
			Brand:       "Apple",
			Description: "Latest iPhone with titanium design and advanced camera system.",
			Image:       "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400&h=400&fit=crop",
			InStock:     true,
			Rating:      4.7,
			Reviews:     2840,
			Specs: map[string]string{
				"Storage":      "128GB",
				"Camera":       "48MP Main",
				"Display":      "6.1-inch Super Retina XDR",
				"Connectivity": "5G",
			},
		},
		{
			ID:          "3",
			Name:        "Dell XPS 13 Plus",
			Price:       1299,
			Category:    "Laptops",
			Brand:       "Dell",
			Description: "Ultra-thin laptop with stunning InfinityEdge display.",
			Image:       "https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?w=400&h=400&fit=crop",
			InStock:     true,
			Rating:      4.5,
			Reviews:     890,
			Specs: map[string]string{
				"Processor": "Intel Core i7-1280P",
				"RAM":       "16GB",
				"Storage":   "512GB SSD",
				"Display":   "13.4-inch OLED",
			},
		},
		{
			ID:          "4",
			Name:        "Samsung Galaxy S24 Ultra",
			Price:       1199,
			Category:    "Smartphones",
			Brand:       "Samsung",
			Description: "Premium Android phone with S Pen and exceptional camera.",
			Image:       "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&h=400&fit=crop",
			InStock:     true,
			Rating:      4.6,
			Reviews:     1567,
			Specs: map[string]string{
				"Storage": "256GB",
				"Camera":  "200MP Main",
				"Display": "6.8-inch Dynamic AMOLED 2X",
				"S Pen":   "Included",
			},
		},
		{
			ID:          "5",
			Name:        "Sony WH-1000XM5",
			Price:       399,
			Category:    "Audio",
			Brand:       "Sony",
			Description: "Industry-leading noise canceling wireless headphones.",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
			InStock:     true,
			Rating:      4.8,
			Reviews:     3245,
			Specs: map[string]string{
				"Battery Life":    "30 hours",
				"Noise Canceling": "Active",
				"Connectivity":    "Bluetooth 5.2",
				"Weight":          "250g",
			},
		},
		{
			ID:          "6",
			Name:        "iPad Pro 12.9-inch",
			Price:       1099,
			Category:    "Tablets",
			Brand:       "Apple",
			Description: "Most advanced iPad with M2 chip and Liquid Retina XDR display.",
			Image:       "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=400&h=400&fit=crop",
			InStock:     false,
			Rating:      4.7,
			Reviews:     892,
			Specs: map[string]string{
				"Processor":    "Apple M2",
				"Storage":      "128GB",
				"Display":      "12.9-inch Liquid Retina XDR",
				"Apple Pencil": "Compatible",
			},
		},
	}
}
