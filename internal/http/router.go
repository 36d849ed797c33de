package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/storefront-assistant/internal/http/handlers"
	"github.com/rogerio-castellano/storefront-assistant/internal/http/middleware"
	"github.com/rogerio-castellano/storefront-assistant/internal/http/rate_limiter"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/storefront-assistant/docs"
)

type RouterDeps struct {
	Server      *handlers.Server
	Tokens      middleware.TokenParser
	ChatLimiter *rate_limiter.Limiter
	Log         logrus.FieldLogger
}

func NewRouter(d RouterDeps) http.Handler {
	s := d.Server

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/products", s.SearchProductsHandler)
	r.Get("/products/{id}", s.GetProductByIDHandler)
	r.Get("/categories", s.GetCategoriesHandler)
	r.Get("/brands", s.GetBrandsHandler)

	r.With(middleware.OptionalProfile(d.Tokens)).Post("/session", s.SignInHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireProfile(d.Tokens))

		r.Get("/session", s.GetSessionHandler)
		r.Delete("/session", s.SignOutHandler)

		r.Get("/chat/messages", s.GetMessagesHandler)
		r.With(middleware.RateLimit(d.ChatLimiter)).Post("/chat/messages", s.SendMessageHandler)
		r.Post("/chat/reset", s.ResetChatHandler)

		r.Get("/cart", s.GetCartHandler)
		r.Delete("/cart", s.ClearCartHandler)
		r.Post("/cart/items", s.AddCartItemHandler)
		r.Patch("/cart/items/{id}", s.UpdateCartItemHandler)
		r.Delete("/cart/items/{id}", s.RemoveCartItemHandler)
	})

	return r
}
