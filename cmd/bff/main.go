package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sessionkit/core/apiclient"
	"github.com/dmitrymomot/sessionkit/core/bff"
	"github.com/dmitrymomot/sessionkit/core/config"
	"github.com/dmitrymomot/sessionkit/core/logger"
	"github.com/dmitrymomot/sessionkit/pkg/ratelimiter"
)

type appConfig struct {
	BFF bff.Config
	Log logger.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Error("bff exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg appConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := apiclient.New(cfg.BFF.UpstreamURL, apiclient.EnvNative, apiclient.WithLogger(log))
	if err != nil {
		return err
	}

	opts := []bff.Option{bff.WithLogger(log)}

	// A Redis URL switches the rate limiter to shared state across replicas.
	if cfg.BFF.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.BFF.RedisURL)
		if err != nil {
			return err
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			return err
		}
		opts = append(opts, bff.WithRateLimitStore(ratelimiter.NewRedisStore(redisClient)))
	}

	handler, err := bff.New(client, cfg.BFF, opts...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.BFF.Addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("bff listening", logger.Key("addr", cfg.BFF.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.BFF.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
