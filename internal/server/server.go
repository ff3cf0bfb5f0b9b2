package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linkbrief/linkbrief/config"
	"github.com/linkbrief/linkbrief/internal/runtime"
	"github.com/linkbrief/linkbrief/internal/store"
	"github.com/linkbrief/linkbrief/internal/summarize"
	"github.com/linkbrief/linkbrief/provider"
)

// Run wires dependencies and serves the HTTP API until the listener fails.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, HTTPError{Error: http.StatusText(code), Message: msg})
		}
	}

	corsOrigin := cfg.General.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx := context.Background()
	st, err := buildStore(ctx, cfg, baseLogger)
	if err != nil {
		return err
	}

	llm, err := provider.New(cfg.LLM)
	if err != nil {
		return err
	}
	if cfg.LLM.APIKey == "" {
		baseLogger.Printf("no LLM API key configured; running in mock summarization mode")
	}

	fetcher := summarize.NewFetcher(cfg.Fetch.MaxChars, cfg.Fetch.Timeout)
	pipeline := summarize.NewPipeline(st, fetcher, llm, nil)

	secret := cfg.General.JWTSecret
	if secret == "" {
		return fmt.Errorf("jwt secret not configured (general.jwt_secret)")
	}

	api := e.Group("/api")
	auth := &AuthHandler{Store: st, Secret: []byte(secret)}
	auth.Register(api.Group("/auth"))

	lh := &LinksHandler{Store: st, Pipeline: pipeline}
	lh.Register(api.Group("/v1/urls"), auth.Secret)

	ih := &IngestHandler{Store: st, Pipeline: pipeline}
	ih.Register(api.Group("/v1/ingest"))

	addr := cfg.General.Listen
	if addr == "" {
		addr = ":8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// buildStore selects Postgres when configured and the in-memory store
// otherwise, optionally fronted by the Redis ingest-key cache.
func buildStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (store.Store, error) {
	var st store.Store
	if cfg.Storage.Postgres.Configured() {
		dsn, err := cfg.Storage.Postgres.DSN()
		if err != nil {
			return nil, err
		}
		if err := Migrate("file://migrations", dsn, "up", 0); err != nil {
			logger.Printf("migrations: %v", err)
		}
		pg, err := store.NewPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		st = pg
	} else {
		logger.Printf("postgres not configured; using in-memory store (records will not persist)")
		st = store.NewMemory()
	}

	if cfg.Storage.Redis.Configured() {
		cached, err := store.NewCachedKeys(ctx, st, cfg.Storage.Redis.Addr(), cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, cfg.Storage.Redis.TTL)
		if err != nil {
			return nil, err
		}
		st = cached
	}
	return st, nil
}

func withAuth(next echo.HandlerFunc, secret []byte) echo.HandlerFunc {
	return runtime.EchoAuthMiddleware(secret)(next)
}
