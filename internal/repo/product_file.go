package repo

import (
	"context"
	"fmt"
	"os"

	"github.com/rogerio-castellano/storefront-assistant/internal/models"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

// FileProductSource reads the catalog from a YAML document with a top-level
// "products" list.
type FileProductSource struct {
	path string
}

func NewFileProductSource(path string) *FileProductSource {
	return &FileProductSource{path: path}
}

// LoadProducts implements ProductSource.
func (s *FileProductSource) LoadProducts(ctx context.Context) ([]models.Product, error) {
	const op = "FileProductSource.LoadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return parseCatalogYAML(data)
}

func parseCatalogYAML(data []byte) ([]models.Product, error) {
	const op = "repo.parseCatalogYAML"

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f.Products, nil
}
