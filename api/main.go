package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/storefront-assistant/internal/auth"
	"github.com/rogerio-castellano/storefront-assistant/internal/catalog"
	"github.com/rogerio-castellano/storefront-assistant/internal/chat"
	"github.com/rogerio-castellano/storefront-assistant/internal/config"
	"github.com/rogerio-castellano/storefront-assistant/internal/db"
	"github.com/rogerio-castellano/storefront-assistant/internal/events"
	api "github.com/rogerio-castellano/storefront-assistant/internal/http"
	"github.com/rogerio-castellano/storefront-assistant/internal/http/handlers"
	rl "github.com/rogerio-castellano/storefront-assistant/internal/http/rate_limiter"
	"github.com/rogerio-castellano/storefront-assistant/internal/redissvc"
	"github.com/rogerio-castellano/storefront-assistant/internal/repo"
	"github.com/rogerio-castellano/storefront-assistant/internal/session"
	"github.com/rogerio-castellano/storefront-assistant/pkg/retry"
	"github.com/rogerio-castellano/storefront-assistant/pkg/sigctx"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// @title Storefront Assistant API
// @version 1.0
// @description Catalog search, a rule-based shopping assistant and a per-profile cart.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := sigctx.NotifyContext(context.Background())
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("storefront assistant stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	cat, err := loadCatalog(ctx, cfg.Catalog, log)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"source":   cfg.Catalog.Source,
		"products": len(cat.Products()),
	}).Info("catalog loaded")

	store, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, err := openPublisher(ctx, cfg.Events, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	interp := chat.NewInterpreter(cat, chat.Config{Delay: cfg.Chat.Delay, Jitter: cfg.Chat.Jitter}, log)
	sessions := session.NewManager(store, interp, cat,
		session.Config{ReplyTimeout: cfg.Chat.Timeout}, log,
		session.WithPublisher(publisher),
	)
	tokens := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	limiter := rl.New(cfg.Chat.RatePerSecond, cfg.Chat.Burst)
	go limiter.StartCleanupLoop(ctx)

	router := api.NewRouter(api.RouterDeps{
		Server:      handlers.NewServer(cat, sessions, tokens, store, log),
		Tokens:      tokens,
		ChatLimiter: limiter,
		Log:         log,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTP.Addr).Info("server running")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func loadCatalog(ctx context.Context, cfg config.Catalog, log logrus.FieldLogger) (*catalog.Store, error) {
	var source repo.ProductSource
	switch cfg.Source {
	case "builtin":
		source = repo.NewBuiltinProductSource()
	case "file":
		source = repo.NewFileProductSource(cfg.File)
	case "postgres":
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		// the catalog is read once; the connection is not needed afterwards
		defer database.Close()

		if err := db.RunMigrations(database, log); err != nil {
			return nil, err
		}
		source = repo.NewPostgresProductSource(database)
	default:
		return nil, fmt.Errorf("%w: %q", repo.ErrUnknownSource, cfg.Source)
	}

	products, err := source.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(products)
}

func openStore(ctx context.Context, cfg config.Store, log logrus.FieldLogger) (redissvc.Store, func(), error) {
	if cfg.Driver != "redis" {
		return redissvc.NewMemoryStore(log), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	err := retry.Do(ctx, retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
	}, func() error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return redissvc.NewRedisStore(rdb, cfg.TTL, log), func() { _ = rdb.Close() }, nil
}

func openPublisher(ctx context.Context, cfg config.Events, log logrus.FieldLogger) (events.Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return events.NopPublisher{}, nil
	}

	cl, err := events.NewKafkaClient(ctx, cfg.Brokers, cfg.Topic)
	if err != nil {
		return nil, err
	}
	log.WithField("topic", cfg.Topic).Info("publishing chat query events")
	return events.NewKafkaPublisher(cl, log), nil
}
