package handlers

import (
	"context"

	"github.com/rogerio-castellano/storefront-assistant/internal/models"
	"github.com/rogerio-castellano/storefront-assistant/internal/session"
)

// Sessions is the per-profile state the session, chat and cart routes work on.
type Sessions interface {
	SignIn(ctx context.Context, profileID, name, email string) (models.User, error)
	SignOut(ctx context.Context, profileID string) error
	CurrentUser(ctx context.Context, profileID string) (models.User, error)
	History(ctx context.Context, profileID string) ([]models.Message, error)
	Send(ctx context.Context, profileID, text string) (session.SendResult, error)
	ResetChat(ctx context.Context, profileID string) ([]models.Message, error)
	Cart(ctx context.Context, profileID string) (session.CartView, error)
	AddProduct(ctx context.Context, profileID, productID string) (session.CartView, error)
	UpdateCartItem(ctx context.Context, profileID, itemID string, quantity int) (session.CartView, error)
	RemoveCartItem(ctx context.Context, profileID, itemID string) (session.CartView, error)
	ClearCart(ctx context.Context, profileID string) (session.CartView, error)
}
