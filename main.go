package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/aggregator-api/internal/audit"
	"github.com/yourorg/aggregator-api/internal/engine"
	"github.com/yourorg/aggregator-api/internal/env"
	"github.com/yourorg/aggregator-api/internal/events"
	"github.com/yourorg/aggregator-api/internal/logger"
	"github.com/yourorg/aggregator-api/internal/quota"
	"github.com/yourorg/aggregator-api/realtor"
	"github.com/yourorg/aggregator-api/redfin"
	"github.com/yourorg/aggregator-api/zillow"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(env.Get("LOG_LEVEL", "info"))
	port := env.GetInt("PORT", 4002)

	// A missing key is surfaced as a 500 per request rather than refusing to
	// boot, so health checks and the router stay up.
	apiKey := os.Getenv("RAPIDAPI_KEY")
	if apiKey == "" {
		log.Error("RAPIDAPI_KEY is not set; searches will fail until configured")
	}

	reg := buildRegistry(apiKey)

	opts := []func(*engine.Engine){
		engine.WithLogger(log),
		engine.WithSourceTimeout(env.GetDuration("SOURCE_TIMEOUT", engine.DefaultSourceTimeout)),
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		guard := quota.New(addr, os.Getenv("REDIS_PASSWORD"), env.GetInt("REDIS_DB", 0),
			env.GetDuration("QUOTA_COOLDOWN", quota.DefaultCooldown), log)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := guard.Ping(ctx); err != nil {
			log.Warn("redis unreachable, quota cooldowns disabled", "err", err)
		} else {
			opts = append(opts, engine.WithQuota(guard))
		}
		cancel()
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		st, err := audit.Open(dsn)
		if err != nil {
			log.Error("audit store open failed", "err", err)
			os.Exit(1)
		}
		defer st.DB.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := st.Ping(ctx); err != nil {
			cancel()
			log.Error("postgres ping failed", "err", err)
			os.Exit(1)
		}
		if err := st.Migrate(ctx); err != nil {
			cancel()
			log.Error("postgres migrate failed", "err", err)
			os.Exit(1)
		}
		cancel()

		pub := events.NewInMemory(256)
		opts = append(opts, engine.WithPublisher(pub))
		rec := &audit.Recorder{Store: st, Pub: pub, Logger: log}
		go rec.Run(rootCtx)
	}

	eng := engine.New(reg, opts...)
	router := BuildRouter(eng, apiKey != "", log)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: router}
	go func() {
		<-rootCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Info("aggregator-api listening", "port", port, "sources", reg.Known())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// buildRegistry wires the static provider table. Registry order is dedup
// precedence; DISABLED_SOURCES removes a source without unregistering it.
func buildRegistry(apiKey string) *engine.Registry {
	disabled := make(map[string]bool)
	for _, s := range env.GetList("DISABLED_SOURCES") {
		disabled[s] = true
	}

	adapters := []engine.Adapter{
		realtor.NewClient(apiKey),
		redfin.NewClient(apiKey),
		zillow.NewClient(apiKey),
	}
	entries := make([]engine.Entry, 0, len(adapters))
	for _, a := range adapters {
		entries = append(entries, engine.Entry{Adapter: a, Enabled: !disabled[a.SourceID()]})
	}
	return engine.NewRegistry(entries...)
}
