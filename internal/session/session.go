package session

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/storefront-assistant/internal/cart"
	"github.com/rogerio-castellano/storefront-assistant/internal/models"
	"github.com/rogerio-castellano/storefront-assistant/internal/redissvc"
)

// Session is the state of one profile: who is signed in, the conversation and
// the cart. It is loaded whole and each collection is saved as soon as it
// changes. A Session is not safe for concurrent use; Manager serializes access.
type Session struct {
	ProfileID string
	User      *models.User
	History   []models.Message
	Cart      *cart.Cart

	store redissvc.Store
}

// CartView is the cart with its derived totals.
type CartView struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

func (s *Session) CartView() CartView {
	return CartView{
		Items:      s.Cart.Items(),
		TotalItems: s.Cart.TotalItems(),
		TotalPrice: s.Cart.TotalPrice(),
	}
}

func (s *Session) key(name string) string {
	return redissvc.Key(s.ProfileID, name)
}

// load reads the three collections. Missing or unreadable values fall back to
// no user, empty history and an empty cart.
func (s *Session) load(ctx context.Context, cartOpts ...cart.Option) error {
	const op = "Session.load"

	var user models.User
	found, err := s.store.Load(ctx, s.key(redissvc.UserKey), &user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if found && user.ID != "" {
		s.User = &user
	}

	var history []models.Message
	found, err = s.store.Load(ctx, s.key(redissvc.HistoryKey), &history)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if found {
		s.History = history
	}

	var items []models.CartItem
	found, err = s.store.Load(ctx, s.key(redissvc.CartKey), &items)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		items = nil
	}
	s.Cart = cart.New(items, cartOpts...)

	return nil
}

func (s *Session) saveUser(ctx context.Context) error {
	if s.User == nil {
		return s.store.Delete(ctx, s.key(redissvc.UserKey))
	}
	return s.store.Save(ctx, s.key(redissvc.UserKey), s.User)
}

func (s *Session) saveHistory(ctx context.Context) error {
	if s.History == nil {
		return s.store.Delete(ctx, s.key(redissvc.HistoryKey))
	}
	return s.store.Save(ctx, s.key(redissvc.HistoryKey), s.History)
}

func (s *Session) saveCart(ctx context.Context) error {
	return s.store.Save(ctx, s.key(redissvc.CartKey), s.Cart.Items())
}
