package handlers_test_suite

import (
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/storefront-assistant/internal/http/handlers"
	"github.com/rogerio-castellano/storefront-assistant/internal/session"
)

func TestCartFlow(t *testing.T) {
	r := newRouter(3)
	resp, _ := signIn(r, "", "Ada", "ada@example.com")
	token := resp.Token

	do(r, http.MethodPost, "/cart/items", token, handler.AddCartItemRequest{ProductID: "1"})
	do(r, http.MethodPost, "/cart/items", token, handler.AddCartItemRequest{ProductID: "1"})
	w := do(r, http.MethodPost, "/cart/items", token, handler.AddCartItemRequest{ProductID: "5"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	view, err := decode[session.CartView](w)
	if err != nil {
		t.Fatalf("error decoding cart: %v", err)
	}
	if len(view.Items) != 2 || view.TotalItems != 3 || view.TotalPrice != 2*2499+399 {
		t.Fatalf("unexpected cart %+v", view)
	}
	macbook := view.Items[0]

	quantity := 4
	w = do(r, http.MethodPatch, "/cart/items/"+macbook.ID, token, handler.UpdateCartItemRequest{Quantity: &quantity})
	view, _ = decode[session.CartView](w)
	if view.TotalItems != 5 {
		t.Errorf("expected 5 items after update, got %d", view.TotalItems)
	}

	zero := 0
	w = do(r, http.MethodPatch, "/cart/items/"+macbook.ID, token, handler.UpdateCartItemRequest{Quantity: &zero})
	view, _ = decode[session.CartView](w)
	if len(view.Items) != 1 {
		t.Errorf("expected quantity 0 to remove the line, got %+v", view.Items)
	}

	w = do(r, http.MethodDelete, "/cart/items/unknown", token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected removing an unknown line to succeed, got %d", w.Code)
	}

	do(r, http.MethodDelete, "/session", token, nil)
	w = do(r, http.MethodGet, "/cart", token, nil)
	view, _ = decode[session.CartView](w)
	if len(view.Items) != 1 {
		t.Errorf("expected the cart to survive sign out, got %+v", view.Items)
	}

	w = do(r, http.MethodDelete, "/cart", token, nil)
	view, _ = decode[session.CartView](w)
	if len(view.Items) != 0 || view.TotalPrice != 0 {
		t.Errorf("expected an empty cart, got %+v", view)
	}
}

func TestAddCartItemHandler_Errors(t *testing.T) {
	r := newRouter(3)
	resp, _ := signIn(r, "", "Ada", "ada@example.com")

	tests := []struct {
		name       string
		payload    any
		expectCode int
	}{
		{"Missing product id", handler.AddCartItemRequest{}, http.StatusBadRequest},
		{"Unknown product", handler.AddCartItemRequest{ProductID: "999"}, http.StatusNotFound},
		{"Out of stock", handler.AddCartItemRequest{ProductID: "6"}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/cart/items", resp.Token, tt.payload)
			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}

func TestUpdateCartItemHandler_MissingQuantity(t *testing.T) {
	r := newRouter(3)
	resp, _ := signIn(r, "", "Ada", "ada@example.com")

	w := do(r, http.MethodPatch, "/cart/items/any", resp.Token, map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}
