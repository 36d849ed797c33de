package handlers_test_suite

import (
	"net/http"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/storefront-assistant/internal/http/handlers"
	"github.com/rogerio-castellano/storefront-assistant/internal/models"
	"github.com/rogerio-castellano/storefront-assistant/internal/session"
)

func TestChatFlow(t *testing.T) {
	r := newRouter(10)
	resp, _ := signIn(r, "", "Ada", "ada@example.com")

	w := do(r, http.MethodGet, "/chat/messages", resp.Token, nil)
	history, err := decode[[]models.Message](w)
	if err != nil {
		t.Fatalf("error decoding history: %v", err)
	}
	if len(history) != 1 || !strings.HasPrefix(history[0].Text, "Welcome Ada!") {
		t.Fatalf("expected welcome message, got %+v", history)
	}

	w = do(r, http.MethodPost, "/chat/messages", resp.Token, handler.ChatMessageRequest{Text: "Show me laptops under $1500"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	res, err := decode[session.SendResult](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !res.User.IsUser || res.User.Text != "Show me laptops under $1500" {
		t.Errorf("unexpected user turn %+v", res.User)
	}
	if res.Reply.Text != "Here are products under $1500:" {
		t.Errorf("unexpected reply %q", res.Reply.Text)
	}
	if len(res.Reply.Products) != 1 || res.Reply.Products[0].ID != "3" {
		t.Errorf("expected only the Dell XPS, got %v", productIDs(res.Reply.Products))
	}

	w = do(r, http.MethodPost, "/chat/messages", resp.Token, handler.ChatMessageRequest{Text: "xyzzyqqq"})
	res, err = decode[session.SendResult](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if res.Reply.Products != nil {
		t.Errorf("expected no products for a search without results, got %v", res.Reply.Products)
	}

	w = do(r, http.MethodPost, "/chat/reset", resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	history, err = decode[[]models.Message](w)
	if err != nil {
		t.Fatalf("error decoding history: %v", err)
	}
	if len(history) != 1 || history[0].IsUser {
		t.Errorf("expected a single assistant message after reset, got %+v", history)
	}
}

func TestSendMessageHandler_Errors(t *testing.T) {
	r := newRouter(10)
	resp, _ := signIn(r, "", "Ada", "ada@example.com")

	w := do(r, http.MethodPost, "/chat/messages", resp.Token, handler.ChatMessageRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty text, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/chat/messages", resp.Token, handler.ChatMessageRequest{Text: "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank text, got %d", w.Code)
	}

	do(r, http.MethodDelete, "/session", resp.Token, nil)
	w = do(r, http.MethodPost, "/chat/messages", resp.Token, handler.ChatMessageRequest{Text: "hi"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after sign out, got %d", w.Code)
	}
}

func TestSendMessageHandler_RateLimited(t *testing.T) {
	r := newRouter(2)
	resp, _ := signIn(r, "", "Ada", "ada@example.com")

	for i := range 2 {
		w := do(r, http.MethodPost, "/chat/messages", resp.Token, handler.ChatMessageRequest{Text: "hi"})
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 OK, got %d", i, w.Code)
		}
	}

	w := do(r, http.MethodPost, "/chat/messages", resp.Token, handler.ChatMessageRequest{Text: "hi"})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 Too Many Requests, got %d", w.Code)
	}

	other, _ := signIn(r, "", "Bob", "bob@example.com")
	w = do(r, http.MethodPost, "/chat/messages", other.Token, handler.ChatMessageRequest{Text: "hi"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected another profile to be served, got %d", w.Code)
	}
}
