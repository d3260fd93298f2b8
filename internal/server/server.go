package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/emrgen/bookbrainz/internal/cache"
	"github.com/emrgen/bookbrainz/internal/compress"
	"github.com/emrgen/bookbrainz/internal/config"
	"github.com/emrgen/bookbrainz/internal/jobs"
	"github.com/emrgen/bookbrainz/internal/resolver"
	"github.com/emrgen/bookbrainz/internal/revision"
	"github.com/emrgen/bookbrainz/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// NewEcho builds the HTTP application around the given handler.
func NewEcho(handler *Handler, development bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = development
	e.HTTPErrorHandler = ErrorHandler(development)
	e.Use(middleware.Recover())
	e.Use(RequestTime())

	handler.Register(e)
	return e
}

// NewCache returns the revision view cache described by cfg.
func NewCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if !cfg.Redis.Enabled {
		return cache.Nop{}, nil
	}

	encoder, err := compress.New(cfg.Cache.Compression)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(cache.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, encoder)
	if err := redis.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	return redis, nil
}

// Start serves the HTTP API and runs the background jobs until SIGINT or SIGTERM.
func Start(cfg *config.Config) error {
	db, err := config.GetDb(cfg)
	if err != nil {
		return err
	}

	entityStore := store.NewGormStore(db)
	if err := entityStore.Migrate(); err != nil {
		return err
	}

	revisionCache, err := NewCache(context.Background(), cfg)
	if err != nil {
		return err
	}

	res := resolver.NewResolver(entityStore, resolver.Options{
		MaxRedirectHops: cfg.Resolver.MaxRedirectHops,
		FanOut:          cfg.Resolver.FanOut,
	})
	revisions := revision.NewService(entityStore, res, revisionCache, revision.Options{
		CacheTTL: cfg.Cache.TTL,
		FanOut:   cfg.Resolver.FanOut,
	})

	executor := jobs.NewTaskExecutor(
		jobs.NewRedirectAuditTask(cfg.Jobs.RedirectAudit, entityStore, cfg.Resolver.MaxRedirectHops),
	)
	if err := executor.Start(); err != nil {
		return err
	}
	defer executor.Stop()

	e := NewEcho(NewHandler(res, revisions, cfg.Resolver.Timeout), cfg.Development())

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	})

	addr := ":" + cfg.HTTP.Port
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           c.Handler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting http server on: ", addr)
		if err := httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("error starting http server: %v", err)
		}
		logrus.Infof("http server stopped")
	}()

	logrus.Infof("Press Ctrl+C to stop the server")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.Errorf("error stopping http server: %v", err)
	}

	wg.Wait()
	return nil
}
