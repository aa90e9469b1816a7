package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	authapi "specter/cmd/internal/auth/api"
	"specter/cmd/internal/haunt"
)

func registerHTTP(
	r chi.Router,
	log Logger,
	cfg Config,
	rdb *redis.Client,
	human *authapi.Handler,
	ghost *authapi.Handler,
) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if cfg.ReadinessRequireRedis && rdb == nil {
			http.Error(w, "redis not configured", http.StatusServiceUnavailable)
			return
		}

		if rdb != nil {
			if err := PingRedis(req.Context(), rdb, 2*time.Second); err != nil {
				log.Info("readyz.redis.not_ready", "err", err)
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready\n"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/humans", func(r chi.Router) {
		human.Register(r)
		r.Group(func(r chi.Router) {
			r.Use(human.RequireAuth())
			haunt.RegisterHuman(r)
		})
	})

	r.Route("/ghosts", func(r chi.Router) {
		ghost.Register(r)
		r.Group(func(r chi.Router) {
			r.Use(ghost.RequireAuth())
			haunt.RegisterGhost(r)
		})
	})
}
