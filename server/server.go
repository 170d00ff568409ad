package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CareTriage/cache"
	"CareTriage/config"
	"CareTriage/db"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Options controls which parts of the process Start brings up. The handlers
// receive the connected dependencies so callers can wire routes and jobs.
type Options struct {
	Config *config.Config

	CacheEnabled     bool
	MigrationEnabled bool
	JobsEnabled      bool
	WebServerEnabled bool

	MigrationHandler    func(ctx context.Context, deps *Deps) error
	JobsHandler         func(deps *Deps) (stop func())
	WebServerPreHandler func(r *gin.Engine, deps *Deps)
}

// Deps are the shared resources built by Start.
type Deps struct {
	Store db.Store
	Cache cache.Cache
	// Mongo is nil when the in-memory store is in use.
	Mongo *db.MongoStore
}

func GetDefaultOptions(cfg *config.Config) Options {
	return Options{
		Config:           cfg,
		CacheEnabled:     cfg.CacheEnabled(),
		MigrationEnabled: !cfg.UseMemoryStore(),
		JobsEnabled:      cfg.HealthProbeSchedule != "",
		WebServerEnabled: true,
	}
}

// Connect builds the document store and cache described by opts.
func Connect(ctx context.Context, opts Options) (*Deps, error) {
	cfg := opts.Config
	deps := &Deps{Cache: cache.Nop{}}

	if cfg.UseMemoryStore() {
		log.Warn().Msg("DATABASE_URL not set, using the in-memory document store")
		deps.Store = db.NewMemoryStore(cfg.DatabaseName)
	} else {
		mongoStore, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName, cfg.StoreTimeout)
		if err != nil {
			return nil, err
		}
		if err := mongoStore.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Document store not reachable at startup")
		}
		deps.Store = mongoStore
		deps.Mongo = mongoStore
	}

	if opts.CacheEnabled {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis not reachable, caching disabled")
			_ = rc.Close()
		} else {
			deps.Cache = rc
		}
	}
	return deps, nil
}

// NewEngine builds the gin engine with the common middleware chain.
func NewEngine(cfg *config.Config) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))
	return r
}

/*
* Connect the store and cache
* Run migrations, start jobs
* Serve HTTP until SIGINT or SIGTERM, then shut down gracefully
 */
func Start(opts Options) error {
	ctx := context.Background()
	cfg := opts.Config

	deps, err := Connect(ctx, opts)
	if err != nil {
		log.Error().Err(err).Msg("Error from Connect")
		return err
	}
	defer closeDeps(deps)

	if opts.MigrationEnabled && opts.MigrationHandler != nil {
		if err := opts.MigrationHandler(ctx, deps); err != nil {
			log.Error().Err(err).Msg("Migrations failed")
		}
	}

	if opts.JobsEnabled && opts.JobsHandler != nil {
		if stop := opts.JobsHandler(deps); stop != nil {
			defer stop()
		}
	}

	if !opts.WebServerEnabled {
		return nil
	}

	r := NewEngine(cfg)
	if opts.WebServerPreHandler != nil {
		opts.WebServerPreHandler(r, deps)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", deps.Store.Name()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit, stopSignals := notifyShutdown()
	defer stopSignals()
	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Server failed")
			return err
		}
		return nil
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// notifyShutdown relays shutdownSignals to the returned channel until stop is called.
func notifyShutdown() (<-chan os.Signal, func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, shutdownSignals...)
	return quit, func() { signal.Stop(quit) }
}

func closeDeps(deps *Deps) {
	if rc, ok := deps.Cache.(*cache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Error while closing redis")
		}
	}
	if deps.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.Mongo.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("Error while disconnecting mongo")
		}
	}
}
