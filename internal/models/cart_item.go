package models

// CartItem is one cart line. Name, Price and Image are a snapshot taken when the
// product was first added and are not refreshed afterwards.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}
