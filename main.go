package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"loan-calc/config"
	httpLayer "loan-calc/http"
	"loan-calc/repository"
	"loan-calc/service"
)

const shutdownTimeout = 10 * time.Second

// serve runs server until it fails or ctx is done, then drains in-flight
// requests for at most timeout.
func serve(ctx context.Context, server *http.Server, timeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
		log.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return errors.Wrap(server.Shutdown(shutdownCtx), "shutdown")
}

func main() {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("Error loading server config: %v", err)
	}

	options, err := config.LoadLoanOptions(cfg.OptionsFile)
	if err != nil {
		log.Fatalf("Error loading loan options: %v", err)
	}

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		defer redisCache.Close()
		if err := redisCache.Ping(); err != nil {
			log.Printf("Warning: redis unavailable, results will not be cached until it recovers: %v", err)
		}
		cache = redisCache
	}

	loanService := service.NewLoanService(options, cache)
	loanHandler := httpLayer.NewLoanHandler(loanService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/loan/calculate",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(loanHandler.CalculateLoan),
		),
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      httpLayer.RequestIDMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Loan calculator listening on %s (interest %.2f%%, fee %.2f%% capped at %.2f)",
		cfg.Addr, options.Interest, options.AdministrationFeeRate, options.AdministrationFeeMax)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, server, shutdownTimeout); err != nil {
		log.Printf("Server error: %v", err)
		return
	}
	log.Println("Server exited")
}
