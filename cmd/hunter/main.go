package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dealhunter/ebay-hunter/internal/cache"
	"github.com/dealhunter/ebay-hunter/internal/classify"
	"github.com/dealhunter/ebay-hunter/internal/credentials"
	"github.com/dealhunter/ebay-hunter/internal/db"
	"github.com/dealhunter/ebay-hunter/internal/ebayclient"
	"github.com/dealhunter/ebay-hunter/internal/match"
	"github.com/dealhunter/ebay-hunter/internal/notify"
	"github.com/dealhunter/ebay-hunter/internal/scheduler"
	"github.com/dealhunter/ebay-hunter/internal/webhook"
)

func main() {
	log.Println("Starting ebay-hunter deal worker...")

	// ─── Required Environment Variables ─────────────────────────────────
	// All credentials MUST come from environment variables. No fallback
	// defaults for security-sensitive values. Set them in the process
	// environment before starting the worker.
	// ────────────────────────────────────────────────────────────────────

	dbURL := requireEnv("DATABASE_URL")
	oauthURL := requireEnv("EBAY_OAUTH_URL")
	marketplaceURL := requireEnv("EBAY_MARKETPLACE_URL")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := db.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("FATAL: unable to connect to datastore: %v", err)
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		log.Fatalf("FATAL: schema init failed: %v", err)
	}

	pool, err := credentials.NewPool(ctx, store, oauthURL)
	if err != nil {
		log.Fatalf("FATAL: unable to load eBay credential pool: %v", err)
	}

	client := ebayclient.NewClient(marketplaceURL)
	detailFetcher := ebayclient.NewDetailFetcher(client, pool, store)

	rejectCache := cache.NewRejectCache(store)
	metalPrices := cache.NewMetalPriceCache(store)
	if err := metalPrices.Refresh(ctx); err != nil {
		log.Printf("Warning: initial metal price load failed, cache starts empty: %v", err)
	}
	sweeper := cache.NewCleanupSweeper(store)
	go sweeper.Run(ctx)

	matchStore := match.NewStore(store)

	pipeline := &classify.Pipeline{
		RejectCache:    rejectCache,
		Matches:        matchStore,
		Detail:         detailFetcher,
		MetalPrices:    metalPrices,
		TestSellerName: os.Getenv("TEST_SELLER_USERNAME"),
	}

	botToken := os.Getenv("SLACK_BOT_TOKEN")
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")
	notifier := notify.NewNotifier(botToken, webhookURL)
	channels := notify.NewChannelProvisioner(botToken, splitCSV(os.Getenv("SLACK_INVITE_USERS")), store)

	pollInterval := time.Duration(getEnvIntOrDefault("POLL_INTERVAL_MS", 60000)) * time.Millisecond

	sched := scheduler.NewScheduler(scheduler.Scheduler{
		Tasks:        store,
		Search:       client,
		Pipeline:     pipeline,
		Matches:      matchStore,
		RejectCache:  rejectCache,
		MetalPrices:  metalPrices,
		Notifier:     notifier,
		Channels:     channels,
		PollInterval: pollInterval,
	})
	go sched.Run(ctx)

	receiver := webhook.NewReactionReceiver(matchStore)
	stats := &statsProvider{startedAt: time.Now(), pool: pool, pollInterval: pollInterval}
	router := webhook.NewRouter(receiver, stats)

	port := getEnvOrDefault("PORT", "8080")
	srv := &http.Server{Addr: ":" + port, Handler: router}

	go func() {
		log.Printf("Reaction webhook listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: webhook server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received, draining in-flight work...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: webhook server shutdown error: %v", err)
	}
}

// statsProvider backs the /stats endpoint with process-level facts a human
// operator finds useful between poll cycles: it never exposes credential
// values, only which label is currently active.
type statsProvider struct {
	startedAt    time.Time
	pool         *credentials.Pool
	pollInterval time.Duration
}

func (s *statsProvider) Stats() map[string]any {
	return map[string]any{
		"uptime_seconds":    time.Since(s.startedAt).Seconds(),
		"poll_interval_ms":  s.pollInterval.Milliseconds(),
		"active_credential": s.pool.CurrentCredentialLabel(),
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// requireEnv reads a required environment variable and exits if it is not set.
// This prevents the binary from starting with missing critical configuration.
func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("FATAL: Required environment variable %s is not set. "+
			"Set it in the environment before starting the worker.", key)
	}
	return val
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("Warning: %s=%q is not a valid integer, using default %d", key, val, fallback)
		return fallback
	}
	return n
}
