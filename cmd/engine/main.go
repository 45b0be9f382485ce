package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"greensignal-engine/internal/cache"
	"greensignal-engine/internal/commitments"
	"greensignal-engine/internal/config"
	"greensignal-engine/internal/enrich"
	"greensignal-engine/internal/events"
	"greensignal-engine/internal/httpapi"
	"greensignal-engine/internal/jobsearch"
	"greensignal-engine/internal/ratelimit"
	"greensignal-engine/internal/register"
	"greensignal-engine/internal/scheduler"
	"greensignal-engine/internal/secrets"
	"greensignal-engine/internal/sector"
	"greensignal-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the extension installer passes one),
	// else the local folder.
	dataDir := os.Getenv("GREENSIGNAL_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// one engine per data dir
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running for %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		raw, err := config.Load(userCfgPath)
		if err != nil {
			return raw, err
		}
		cfg, v := config.NormalizeAndValidate(raw)
		if !v.OK() {
			return cfg, errors.New("config invalid: " + v.Errors[0])
		}
		for _, warn := range v.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	watcher, err := config.Watch(userCfgPath, func(updated config.Config) {
		cfgVal.Store(updated)
		log.Printf("level=info msg=\"config reloaded\" path=%s", userCfgPath)
	})
	if err != nil {
		log.Printf("[config] watch unavailable: %v", err)
	} else {
		defer watcher.Stop()
	}

	dbPath := filepath.Join(dataDir, "greensignal.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	apiKey, err := secrets.GetRegisterAPIKey()
	if err != nil {
		log.Printf("[secrets] %v; register lookups will fail until a key is set", err)
	}
	reg := register.NewClient(apiKey)
	if cfg.Register.BaseURL != "" {
		reg.BaseURL = cfg.Register.BaseURL
	}

	sectorMap := sector.Load(cfg.Sector.IntensityPath)
	snap := commitments.LoadSnapshot(cfg.Commitments.RecordsPath, cfg.Commitments.IndexPath)
	matcher := commitments.NewMatcher(snap, cfg.Commitments.FuzzyThreshold)

	enricher := &enrich.Service{
		Register:     reg,
		SectorMap:    sectorMap,
		Matcher:      matcher,
		ResolveCache: cache.New[[]register.Candidate](cfg.ResolveTTL(), cfg.Cache.ResolveMaxEntries),
		ProfileCache: cache.New[register.Profile](cfg.ProfileTTL(), cfg.Cache.ProfileMaxEntries),
	}

	jobs := jobsearch.NewClient(jobsearch.Config{
		AppID:          cfg.JobSearch.AppID,
		AppKey:         os.Getenv("GREENSIGNAL_JOBSEARCH_APP_KEY"),
		Country:        cfg.JobSearch.Country,
		ResultsPerPage: cfg.JobSearch.ResultsPerPage,
	})
	jobsCache := cache.New[jobsearch.Response](cfg.JobsTTL(), cfg.Cache.JobsMaxEntries)

	limiter := ratelimit.New(cfg.RateLimitWindow(), cfg.RateLimit.Max)
	hub := events.NewHub()

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Enricher:    enricher,
		Jobs:        jobs,
		JobsCache:   jobsCache,
	})
	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.RateLimit(limiter),
		httpapi.AccessLog,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go scheduler.Every(ctx, time.Hour, "stats", func(context.Context) error {
		log.Printf("level=info msg=\"cache stats\" resolve=%d profile=%d jobs=%d sse_clients=%d",
			enricher.ResolveCache.Len(), enricher.ProfileCache.Len(), jobsCache.Len(), hub.ClientCount())
		return nil
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
