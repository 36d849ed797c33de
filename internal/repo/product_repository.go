package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/storefront-assistant/internal/models"
)

// ErrUnknownSource is returned when the configured catalog source has no implementation.
var ErrUnknownSource = errors.New("unknown catalog source")

// ProductSource supplies the catalog seed list once, at process start.
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]models.Product, error)
}
