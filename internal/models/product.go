package models

// Product represents a catalog entry. Products are seeded at startup and never change.
type Product struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Price       float64           `json:"price" yaml:"price"`
	Category    string            `json:"category" yaml:"category"`
	Brand       string            `json:"brand" yaml:"brand"`
	Description string            `json:"description" yaml:"description"`
	Image       string            `json:"image" yaml:"image"`
	InStock     bool              `json:"inStock" yaml:"inStock"`
	Rating      float64           `json:"rating" yaml:"rating"`
	Reviews     int               `json:"reviews" yaml:"reviews"`
	Specs       map[string]string `json:"specs" yaml:"specs"`
}
