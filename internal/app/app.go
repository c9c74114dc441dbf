// Package app wires configuration, infrastructure and services into a
// runnable HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinemind/studio-api/internal/api"
	"github.com/cinemind/studio-api/internal/api/handler"
	"github.com/cinemind/studio-api/internal/api/middleware"
	"github.com/cinemind/studio-api/internal/core/ports"
	"github.com/cinemind/studio-api/internal/core/service"
	"github.com/cinemind/studio-api/internal/infrastructure/auth"
	mongostore "github.com/cinemind/studio-api/internal/infrastructure/db/mongo"
	rediscache "github.com/cinemind/studio-api/internal/infrastructure/db/redis"
	"github.com/cinemind/studio-api/internal/infrastructure/db/sqlstore"
	"github.com/cinemind/studio-api/internal/infrastructure/llm"
	"github.com/cinemind/studio-api/internal/infrastructure/mock"
	"github.com/cinemind/studio-api/internal/infrastructure/queue"
	"github.com/cinemind/studio-api/internal/infrastructure/storage"
	"github.com/cinemind/studio-api/internal/pkg/config"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// App owns every long-lived resource of the server process.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	store    *sqlstore.Gateway
	rdb      *goredis.Client
	mongo    *mongo.Client
	activity *queue.Dispatcher

	echo *echo.Echo
}

// New builds the application. Optional backends that cannot be reached are
// logged and left out; only an invalid relational store configuration is
// fatal.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	// --- Relational store ---
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	a.store = store
	if err := store.Initialize(ctx); err != nil {
		log.Error().Err(err).Str("driver", cfg.DB.Driver).Msg("database initialisation failed, serving degraded")
	}

	accounts := sqlstore.NewAccountRepository(store)
	analyses := sqlstore.NewAnalysisRepository(store)

	var deps []handler.Dependency

	// --- Redis: idempotent analyze replay and intent cache ---
	var (
		idempotency ports.IdempotencyStore
		intentCache ports.IntentCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err := rediscache.Connect(ctx, rediscache.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, idempotency and intent cache disabled")
		} else {
			a.rdb = rdb
			idempotency = rediscache.NewIdempotencyStore(rdb, 0)
			intentCache = rediscache.NewIntentCache(rdb)
			deps = append(deps, handler.Dependency{Name: "redis", Check: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}})
		}
	}

	// --- MongoDB: asynchronous activity log ---
	var activity ports.ActivityRecorder
	if cfg.Mongo.URI != "" {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Warn().Err(err).Msg("mongo unavailable, activity log disabled")
		} else {
			a.mongo = client
			repo := mongostore.NewActivityRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("activity indexes not created")
			}
			a.activity = queue.NewDispatcher(repo, queue.Options{}, log.With().Str("component", "activity").Logger())
			a.activity.Start(ctx)
			activity = a.activity
			deps = append(deps, handler.Dependency{Name: "mongo", Check: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			}})
		}
	}

	// --- Upload storage ---
	uploads, err := newUploadStore(ctx, cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("upload storage unavailable, uploaded files will not be kept")
	}

	// --- Creative-intent model ---
	model, err := llm.New(ctx, llm.Config{
		Provider:      cfg.Creative.Provider,
		OpenAIKey:     cfg.Creative.OpenAIKey,
		OpenAIModel:   cfg.Creative.OpenAIModel,
		OpenAIBaseURL: cfg.Creative.OpenAIBaseURL,
		GeminiKey:     cfg.Creative.GeminiKey,
		GeminiModel:   cfg.Creative.GeminiModel,
	})
	if err != nil {
		log.Warn().Err(err).Msg("creative model unavailable, serving fallback intent")
		model = nil
	}
	if model == nil {
		log.Info().Msg("no creative model configured, serving fallback intent")
	} else {
		log.Info().Str("provider", model.Provider()).Msg("creative model configured")
	}

	// --- Auth ---
	var (
		tokens   ports.TokenIssuer = auth.StaticIssuer{}
		verifier middleware.TokenVerifier
	)
	if cfg.Auth.JWTSecret != "" {
		issuer := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		tokens, verifier = issuer, issuer
	}

	// --- Services ---
	svc := api.Services{
		Auth: service.NewAuthService(accounts, tokens, auth.NewPasswordPolicy(cfg.Auth.HashPasswords), activity, log),
		Scripts: service.NewScriptService(service.ScriptDeps{
			Analyzer:    mock.NewScriptAnalyzer(),
			Records:     analyses,
			Uploads:     uploads,
			Idempotency: idempotency,
			Activity:    activity,
		}, cfg.Delays.Analyze, log),
		Dashboard: service.NewDashboardService(accounts, analyses),
		Footage:   service.NewFootageService(mock.NewFootageIndex(), activity, cfg.Delays.Footage, log),
		Video:     service.NewVideoService(mock.NewVideoRenderer(), activity, cfg.Delays.Video, log),
		Creative:  service.NewCreativeService(model, intentCache, cfg.Creative.CacheTTL, activity, log),
	}

	a.echo = api.NewRouter(svc, api.Options{
		Log:      log,
		Health:   handler.NewHealthHandler(store.Ping, deps...),
		Verifier: verifier,
	})
	return a, nil
}

// OpenStore opens the relational store described by cfg without migrating it.
func OpenStore(cfg *config.Config) (*sqlstore.Gateway, error) {
	store, err := sqlstore.Open(sqlstore.Config{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		Path:     cfg.DB.Path,
		MaxConns: cfg.DB.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// newUploadStore returns the S3 store when a bucket is configured and the
// local directory store otherwise. A nil store disables upload keeping.
func newUploadStore(ctx context.Context, cfg config.StorageConfig) (ports.UploadStore, error) {
	if cfg.S3Bucket != "" {
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler { return a.echo }

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", a.cfg.Port),
		Handler:           a.echo,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       requestBaseContext(ctx),
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Str("env", a.cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.Close(context.Background())
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("http shutdown incomplete")
	}
	a.Close(shutdownCtx)
	return nil
}

// requestBaseContext keeps ctx values on every request but not its
// cancellation, so in-flight requests are drained by Shutdown instead of
// being cancelled by the shutdown signal.
func requestBaseContext(ctx context.Context) func(net.Listener) context.Context {
	base := context.WithoutCancel(ctx)
	return func(net.Listener) context.Context { return base }
}

// Close flushes the activity log and releases every client. It is called by
// Run on shutdown.
func (a *App) Close(ctx context.Context) {
	if a.activity != nil {
		if err := a.activity.Close(ctx); err != nil {
			a.log.Warn().Err(err).Int64("dropped", a.activity.Dropped()).Msg("activity log not fully flushed")
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("database close")
		}
	}
}
