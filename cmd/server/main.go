package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tradewatch/internal/api"
	"tradewatch/internal/cache"
	"tradewatch/internal/countries"
	"tradewatch/internal/pipeline"
	"tradewatch/internal/providers/census"
	"tradewatch/internal/tariff"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		run(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func run(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	countriesCSV := fs.String("countries", "", "comma-separated default country list (empty = all supported)")
	ttl := fs.Duration("ttl", cache.DefaultTTL, "refresh cache TTL")
	cacheKind := fs.String("cache", "memory", "cache backend: memory, redis, none")
	redisAddr := fs.String("redis", "localhost:6379", "redis address (cache=redis)")
	tariffPath := fs.String("tariffs", "", "JSON tariff table override (empty = built-in)")
	fs.Parse(args)

	if err := runServer(*addr, *countriesCSV, *ttl, *cacheKind, *redisAddr, *tariffPath); err != nil {
		fmt.Fprintln(os.Stderr, "server run failed:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: server run [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options:")
	fmt.Fprintln(os.Stderr, "  -addr       listen address (default: :8080)")
	fmt.Fprintln(os.Stderr, "  -countries  comma-separated default country list (default: all supported)")
	fmt.Fprintln(os.Stderr, "  -ttl        refresh cache TTL (default: 1h)")
	fmt.Fprintln(os.Stderr, "  -cache      cache backend: memory, redis, none (default: memory)")
	fmt.Fprintln(os.Stderr, "  -redis      redis address for -cache redis (default: localhost:6379)")
	fmt.Fprintln(os.Stderr, "  -tariffs    JSON tariff table override (default: built-in table)")
}

func runServer(addr, countriesCSV string, ttl time.Duration, cacheKind, redisAddr, tariffPath string) error {
	provider, err := census.New()
	if err != nil {
		return err
	}

	tariffs := tariff.Default()
	if strings.TrimSpace(tariffPath) != "" {
		loaded, err := tariff.LoadFile(tariffPath)
		if err != nil {
			return err
		}
		tariffs = loaded
	}

	refreshCache, err := buildCache(cacheKind, redisAddr)
	if err != nil {
		return err
	}

	defaults, err := defaultCountries(countriesCSV)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Dependencies{
		Refresher:        pipeline.New(provider, tariffs, refreshCache, ttl),
		Tariffs:          tariffs,
		DefaultCountries: defaults,
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s (cache=%s ttl=%s defaults=%d countries)",
			addr, cacheKind, ttl, len(defaults))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildCache(kind, redisAddr string) (cache.Cache, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "memory":
		return cache.NewMemory(), nil
	case "redis":
		c := cache.NewRedis(redisAddr)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("redis %s unreachable: %w", redisAddr, err)
		}
		return c, nil
	case "none":
		return cache.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", kind)
	}
}

func defaultCountries(csv string) ([]string, error) {
	if strings.TrimSpace(csv) == "" {
		all := countries.All()
		names := make([]string, 0, len(all))
		for _, c := range all {
			names = append(names, c.Name)
		}
		return names, nil
	}

	names := make([]string, 0)
	for _, raw := range strings.Split(csv, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		country, err := countries.Resolve(raw)
		if err != nil {
			return nil, err
		}
		names = append(names, country.Name)
	}
	if len(names) == 0 {
		return nil, errors.New("no countries provided")
	}
	return names, nil
}
