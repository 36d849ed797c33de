package handlers

import "github.com/rogerio-castellano/storefront-assistant/internal/models"

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []models.Product `json:"data"`
	Meta Meta             `json:"meta"`
}

type SignInRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

type SessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type ChatMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
