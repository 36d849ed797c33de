package models

// Message is one conversation turn.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	IsUser    bool      `json:"isUser"`
	Timestamp string    `json:"timestamp"`
	Products  []Product `json:"products,omitempty"`
}
