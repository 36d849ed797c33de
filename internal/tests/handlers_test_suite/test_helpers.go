package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/storefront-assistant/internal/auth"
	"github.com/rogerio-castellano/storefront-assistant/internal/catalog"
	"github.com/rogerio-castellano/storefront-assistant/internal/chat"
	api "github.com/rogerio-castellano/storefront-assistant/internal/http"
	handler "github.com/rogerio-castellano/storefront-assistant/internal/http/handlers"
	"github.com/rogerio-castellano/storefront-assistant/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront-assistant/internal/redissvc"
	"github.com/rogerio-castellano/storefront-assistant/internal/repo"
	"github.com/rogerio-castellano/storefront-assistant/internal/session"
	"github.com/sirupsen/logrus"
)

// newRouter wires the whole API over the builtin catalog and an in-memory
// store. Each call starts from empty state.
func newRouter(chatBurst int) http.Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cat, err := catalog.New(repo.BuiltinProducts())
	if err != nil {
		panic(fmt.Sprintf("error building catalog: %v", err))
	}

	store := redissvc.NewMemoryStore(log)
	interp := chat.NewInterpreter(cat, chat.Config{}, log)
	sessions := session.NewManager(store, interp, cat, session.Config{ReplyTimeout: time.Second}, log)
	tokens := auth.NewIssuer("test-secret", time.Hour)

	return api.NewRouter(api.RouterDeps{
		Server:      handler.NewServer(cat, sessions, tokens, store, log),
		Tokens:      tokens,
		ChatLimiter: rate_limiter.New(1, chatBurst),
		Log:         log,
	})
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signIn(r http.Handler, token, name, email string) (handler.SessionResponse, *httptest.ResponseRecorder) {
	w := do(r, http.MethodPost, "/session", token, handler.SignInRequest{Name: name, Email: email})
	var resp handler.SessionResponse
	_ = json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp)
	return resp, w
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}
