package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/storefront-assistant/internal/auth"
	"github.com/rogerio-castellano/storefront-assistant/internal/catalog"
	"github.com/rogerio-castellano/storefront-assistant/internal/chat"
	"github.com/rogerio-castellano/storefront-assistant/internal/db"
	api "github.com/rogerio-castellano/storefront-assistant/internal/http"
	handler "github.com/rogerio-castellano/storefront-assistant/internal/http/handlers"
	"github.com/rogerio-castellano/storefront-assistant/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront-assistant/internal/redissvc"
	"github.com/rogerio-castellano/storefront-assistant/internal/repo"
	"github.com/rogerio-castellano/storefront-assistant/internal/session"
	"github.com/sirupsen/logrus"
)

type env struct {
	router http.Handler
	redis  *miniredis.Miniredis
}

// newEnv wires the API over a Redis store. The catalog comes from Postgres
// when DATABASE_URL is set and from the builtin list otherwise.
func newEnv(t *testing.T) env {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	cat := loadCatalog(t, log)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	store := redissvc.NewRedisStore(rdb, time.Hour, log)

	interp := chat.NewInterpreter(cat, chat.Config{}, log)
	sessions := session.NewManager(store, interp, cat, session.Config{ReplyTimeout: time.Second}, log)
	tokens := auth.NewIssuer("integration-secret", time.Hour)

	r := api.NewRouter(api.RouterDeps{
		Server:      handler.NewServer(cat, sessions, tokens, store, log),
		Tokens:      tokens,
		ChatLimiter: rate_limiter.New(10, 10),
		Log:         log,
	})
	return env{router: r, redis: mr}
}

func loadCatalog(t *testing.T, log logrus.FieldLogger) *catalog.Store {
	t.Helper()

	var source repo.ProductSource = repo.NewBuiltinProductSource()
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		database := connect(t, dbURL, log)
		source = repo.NewPostgresProductSource(database)
	}

	products, err := source.LoadProducts(context.Background())
	if err != nil {
		t.Fatalf("could not load products: %v", err)
	}
	cat, err := catalog.New(products)
	if err != nil {
		t.Fatalf("could not build catalog: %v", err)
	}
	return cat
}

func connect(t *testing.T, dbURL string, log logrus.FieldLogger) *sql.DB {
	t.Helper()

	database, err := db.Connect(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("could not connect to database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := db.RunMigrations(database, log); err != nil {
		t.Fatalf("could not migrate database: %v", err)
	}
	return database
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
