package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetCartHandler godoc
// @Summary Cart contents
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} session.CartView
// @Router /cart [get]
func (s *Server) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.Cart(r.Context(), profileID(r))
	if err != nil {
		s.fail(w, r, err, "load cart")
		return
	}
	s.respond(w, r, http.StatusOK, view)
}

// AddCartItemHandler godoc
// @Summary Add a product to the cart
// @Description Adds one unit; a product already in the cart has its quantity incremented
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body AddCartItemRequest true "Product to add"
// @Success 200 {object} session.CartView
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Out of stock"
// @Router /cart/items [post]
func (s *Server) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	view, err := s.sessions.AddProduct(r.Context(), profileID(r), req.ProductID)
	if err != nil {
		s.fail(w, r, err, "add to cart")
		return
	}
	s.respond(w, r, http.StatusOK, view)
}

// UpdateCartItemHandler godoc
// @Summary Change a cart line quantity
// @Description A quantity of zero or less removes the line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Param item body UpdateCartItemRequest true "New quantity"
// @Success 200 {object} session.CartView
// @Failure 400 {array} ValidationError
// @Router /cart/items/{id} [patch]
func (s *Server) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	view, err := s.sessions.UpdateCartItem(r.Context(), profileID(r), chi.URLParam(r, "id"), *req.Quantity)
	if err != nil {
		s.fail(w, r, err, "update cart")
		return
	}
	s.respond(w, r, http.StatusOK, view)
}

// RemoveCartItemHandler godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Success 200 {object} session.CartView
// @Router /cart/items/{id} [delete]
func (s *Server) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.RemoveCartItem(r.Context(), profileID(r), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err, "remove from cart")
		return
	}
	s.respond(w, r, http.StatusOK, view)
}

// ClearCartHandler godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} session.CartView
// @Router /cart [delete]
func (s *Server) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.sessions.ClearCart(r.Context(), profileID(r))
	if err != nil {
		s.fail(w, r, err, "clear cart")
		return
	}
	s.respond(w, r, http.StatusOK, view)
}
