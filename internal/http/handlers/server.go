package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rogerio-castellano/storefront-assistant/internal/catalog"
	"github.com/rogerio-castellano/storefront-assistant/internal/models"
	"github.com/sirupsen/logrus"
)

// Catalog is the read-only product catalog served by the product routes.
type Catalog interface {
	SearchProducts(query string, filters *catalog.SearchFilters) []models.Product
	GetProductByID(id string) (models.Product, bool)
	GetCategories() []string
	GetBrands() []string
}

// TokenIssuer hands out profile tokens.
type TokenIssuer interface {
	NewProfile() (profileID, token string, err error)
	Issue(profileID string) (string, error)
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds what the handlers need. Handlers are its methods.
type Server struct {
	catalog  Catalog
	sessions Sessions
	tokens   TokenIssuer
	store    Pinger
	validate *validator.Validate
	log      logrus.FieldLogger
}

func NewServer(c Catalog, sessions Sessions, tokens TokenIssuer, store Pinger, log logrus.FieldLogger) *Server {
	return &Server{
		catalog:  c,
		sessions: sessions,
		tokens:   tokens,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}
