package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/prometheus/client_golang/prometheus"

	promadapter "github.com/codewandler/evict-go/adapters/prometheus"
	"github.com/codewandler/evict-go/core/cache"
	"github.com/codewandler/evict-go/core/evict"
)

// === Config ===

// NOTE: settings are read from the environment, a .env file in the working
// directory is loaded first if present.

type config struct {
	N           int
	Keys        int
	Capacity    int
	Shards      int
	Policy      string
	Skew        float64
	BatchSize   int
	MetricsAddr string
	Debug       bool
}

func loadConfig() config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}
	return config{
		N:           getEnvInt("N", 1_000_000),
		Keys:        getEnvInt("KEYS", 10_000),
		Capacity:    getEnvInt("CAPACITY", 1_000),
		Shards:      getEnvInt("SHARDS", 1),
		Policy:      strings.ToLower(getEnv("POLICY", "lru")),
		Skew:        getEnvFloat("SKEW", 1.1),
		BatchSize:   getEnvInt("B", 100_000),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
		Debug:       getEnvBool("DEBUG", false),
	}
}

func (c config) validate() error {
	switch {
	case c.Capacity < 1:
		return fmt.Errorf("invalid config: CAPACITY must be positive, got %d", c.Capacity)
	case c.Keys < 1:
		return fmt.Errorf("invalid config: KEYS must be positive, got %d", c.Keys)
	case c.BatchSize < 1:
		return fmt.Errorf("invalid config: B must be positive, got %d", c.BatchSize)
	case c.Skew <= 1:
		return fmt.Errorf("invalid config: SKEW must be greater than 1, got %g", c.Skew)
	}
	return nil
}

func getEnvBool(key string, fallback bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	return v == "1" || strings.ToLower(v) == "true"
}

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func main() {
	cfg := loadConfig()

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checkErr(cfg.validate())

	reg := prometheus.NewRegistry()
	c, err := newCache(cfg, log, promadapter.NewEvictMetrics(reg))
	checkErr(err)

	if cfg.MetricsAddr != "" {
		srv := newStatsServer(cfg.MetricsAddr, reg, c, log)
		defer func() { _ = srv.Shutdown(context.Background()) }()
	}

	fmt.Printf("Policy:   %s\n", cfg.Policy)
	fmt.Printf("Capacity: %d (%d shards)\n", c.Capacity(), cfg.Shards)
	fmt.Printf("Keys:     %d (zipf s=%.2f)\n", cfg.Keys, cfg.Skew)

	// === key space ===

	keys := make([]string, cfg.Keys)
	for i := range keys {
		keys[i] = gonanoid.Must(12)
	}
	zipf := rand.NewZipf(rand.New(rand.NewSource(time.Now().UnixNano())), cfg.Skew, 1, uint64(cfg.Keys-1))

	// === START ===

	log.Info("==================================")
	log.Info("Starting ...")

	startAt := time.Now()
	lastTime := startAt

	var hits, misses int
	for i := 0; i < cfg.N; i++ {
		if ctx.Err() != nil {
			break
		}

		key := keys[zipf.Uint64()]
		if _, ok := c.Get(key); ok {
			hits++
		} else {
			misses++
			c.Put(key, i)
		}

		if i == 0 {
			continue
		}
		if i%cfg.BatchSize == 0 {
			mu := getMemUsage()

			n := time.Now()
			took := n.Sub(lastTime)
			fmt.Printf(" | %7d ops | %6d ms | %8d ops/s | hit ratio %5.1f%% | (%d / %d) MiB mem (sys) |\n",
				cfg.BatchSize, took.Milliseconds(), int(float64(cfg.BatchSize)/took.Seconds()),
				100*float64(hits)/float64(hits+misses), mu.Alloc/1024/1024, mu.Sys/1024/1024)
			lastTime = n
		}
	}

	// === stats ===
	println("")
	println("==========================================")

	took := time.Since(startAt)
	total := hits + misses

	fmt.Printf("total runtime: %.3f seconds\n", took.Seconds())
	fmt.Printf("      entries: %d / %d\n", c.Len(), c.Capacity())
	fmt.Printf("    hit ratio: %.2f%%\n", 100*float64(hits)/float64(max(total, 1)))
	fmt.Printf("   avg. ops/s: %d\n", int(float64(total)/took.Seconds()))

	if cfg.MetricsAddr != "" {
		log.Info("serving metrics until interrupted", slog.String("addr", cfg.MetricsAddr))
		<-ctx.Done()
	}
}

func newCache(cfg config, log *slog.Logger, m evict.Metrics) (*cache.Evicting, error) {
	opts := cache.Opts{
		Size:    cfg.Capacity,
		Shards:  cfg.Shards,
		Name:    "loadtest",
		Log:     log,
		Metrics: m,
	}
	switch cfg.Policy {
	case "lru":
		return cache.NewLRU(opts), nil
	case "lfu":
		return cache.NewLFU(opts), nil
	case "fifo":
		return cache.NewFIFO(opts), nil
	}
	return nil, fmt.Errorf("unknown policy %q (want lru, lfu or fifo)", cfg.Policy)
}

// === stats helpers ===

type MemUsage struct {
	Alloc      uint64 // bytes allocated and not yet freed (heap)
	TotalAlloc uint64 // cumulative bytes allocated
	Sys        uint64 // total bytes obtained from OS
	NumGC      uint32 // gc cycles
}

func getMemUsage() MemUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemUsage{
		Alloc:      m.Alloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
	}
}

// === Helpers ===

func checkErr(err error) {
	if err != nil {
		panic(err)
	}
}
