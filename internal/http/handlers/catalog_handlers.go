package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/storefront-assistant/internal/catalog"
)

// SearchProductsHandler godoc
// @Summary Search products
// @Description Free-text search over name, description, brand and category, narrowed by optional filters
// @Tags products
// @Produce json
// @Param q query string false "Search terms"
// @Param category query string false "Category (case-insensitive)"
// @Param brand query string false "Brand (case-insensitive)"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid price"
// @Router /products [get]
func (s *Server) SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := catalog.SearchFilters{
		Category: strings.TrimSpace(q.Get("category")),
		Brand:    strings.TrimSpace(q.Get("brand")),
	}

	var err error
	if filters.MinPrice, err = parsePrice(q.Get("minPrice")); err != nil {
		http.Error(w, "invalid minPrice", http.StatusBadRequest)
		return
	}
	if filters.MaxPrice, err = parsePrice(q.Get("maxPrice")); err != nil {
		http.Error(w, "invalid maxPrice", http.StatusBadRequest)
		return
	}

	products := s.catalog.SearchProducts(q.Get("q"), &filters)
	s.respond(w, r, http.StatusOK, ProductsSearchResult{
		Data: products,
		Meta: Meta{TotalCount: len(products)},
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {string} string "Not found"
// @Router /products/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := s.catalog.GetProductByID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	s.respond(w, r, http.StatusOK, product)
}

// GetCategoriesHandler godoc
// @Summary List categories
// @Description Distinct categories in catalog order
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Router /categories [get]
func (s *Server) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, s.catalog.GetCategories())
}

// GetBrandsHandler godoc
// @Summary List brands
// @Description Distinct brands in catalog order
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Router /brands [get]
func (s *Server) GetBrandsHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, s.catalog.GetBrands())
}

func parsePrice(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
