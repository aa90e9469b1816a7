// Package app wires the Specter server runtime: config, logging, the
// session stores and realm services, HTTP routes, and graceful shutdown.
//
// Initialization order is fixed: config, then store connection, then the
// per-realm session managers, then middleware and route registration.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	authapi "specter/cmd/internal/auth/api"
	"specter/cmd/internal/auth/session"
)

// Stub principal identities minted at login. Real credential resolution
// would replace the StaticResolver wiring below, not the session core.
const (
	stubHumanID = "123"
	stubGhostID = "456"
)

// App is the Specter server runtime.
type App struct {
	cfg Config
	log Logger

	store session.Store
	redis *redis.Client // nil when running on the in-memory store

	human *authapi.Handler
	ghost *authapi.Handler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}

	humanCfg, err := session.LoadConfigFromEnv(session.RealmHuman)
	if err != nil {
		return nil, err
	}
	ghostCfg, err := session.LoadConfigFromEnv(session.RealmGhost)
	if err != nil {
		return nil, err
	}
	// The four (realm, class) secrets must be pairwise distinct, otherwise
	// a token signed for one combination verifies in another.
	if err := distinctSecrets(humanCfg, ghostCfg); err != nil {
		return nil, err
	}

	store, redisClient, err := newSessionStore(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	human, err := newRealmHandler(humanCfg, stubHumanID, store, log, cfg)
	if err != nil {
		return nil, err
	}
	ghost, err := newRealmHandler(ghostCfg, stubGhostID, store, log, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:   cfg,
		log:   log,
		store: store,
		redis: redisClient,
		human: human,
		ghost: ghost,
	}, nil
}

func distinctSecrets(human, ghost session.Config) error {
	seen := map[string]struct{}{}
	for _, s := range []string{human.AccessSecret, human.RefreshSecret, ghost.AccessSecret, ghost.RefreshSecret} {
		if _, dup := seen[s]; dup {
			return session.ErrConfig
		}
		seen[s] = struct{}{}
	}
	return nil
}

func newRealmHandler(sessCfg session.Config, principalID string, store session.Store, log Logger, cfg Config) (*authapi.Handler, error) {
	codec, err := session.NewHMACCodec(sessCfg)
	if err != nil {
		return nil, err
	}

	svc := session.NewService(sessCfg, store, codec, session.StaticResolver{PrincipalID: principalID}, log)
	return authapi.NewHandler(log, svc, cfg.MaxBodyBytes), nil
}

// newSessionStore decides between Redis-backed sessions and the in-memory
// dev store.
func newSessionStore(ctx context.Context, cfg Config, log Logger) (session.Store, *redis.Client, error) {
	if cfg.RedisAddr == "" {
		log.Info("redis.disabled.inmemory_store")
		return session.NewMemoryStore(), nil, nil
	}

	client, err := NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	log.Info("redis.enabled", "addr", cfg.RedisAddr)
	return session.NewRedisStore(client), client, nil
}

// Handler builds the full route tree, including the request-id, metrics,
// and request-logging middleware.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(WithRequestID)
	r.Use(WithMetrics)
	r.Use(func(next http.Handler) http.Handler { return WithRequestLogging(next, a.log) })

	registerHTTP(r, a.log, a.cfg, a.redis, a.human, a.ghost)
	return r
}

// Run starts the HTTP server and blocks until context cancellation or
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.ReadTimeout,
		WriteTimeout:      a.cfg.WriteTimeout,
		IdleTimeout:       a.cfg.IdleTimeout,
		MaxHeaderBytes:    a.cfg.MaxHeaderBytes,
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "redis_enabled", a.redis != nil)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	if err := a.store.Close(); err != nil {
		a.log.Error("store.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}
