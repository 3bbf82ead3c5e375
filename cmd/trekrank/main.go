// Command trekrank ranks trek itineraries for a crew from the command
// line. It wires the SQLite store, the optional Redis cache, and the
// observability middleware around the scoring engine.
//
// Usage:
//
//	trekrank [-config FILE] rank -crew ID [-trek TYPE] [-method METHOD]
//	trekrank [-config FILE] scores -crew ID [-method METHOD]
//	trekrank [-config FILE] recalc
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/trailcrew/trekrank/infrastructure/cache"
	"github.com/trailcrew/trekrank/infrastructure/middleware"
	"github.com/trailcrew/trekrank/infrastructure/storage"
	"github.com/trailcrew/trekrank/internal/application"
	"github.com/trailcrew/trekrank/internal/domain"
	"github.com/trailcrew/trekrank/internal/engine"
	"github.com/trailcrew/trekrank/internal/ports"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: trekrank [-config FILE] rank|scores|recalc [flags]")
		os.Exit(2)
	}

	cfg := application.DefaultConfig()
	if *configPath != "" {
		loaded, err := application.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, err := application.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, flag.Args()); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg application.Config, logger *zap.Logger, args []string) error {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	// Factor precedence: defaults, then database overrides, then config.
	overrides, err := store.ScoringFactorOverrides(ctx)
	if err != nil {
		return err
	}
	for code, value := range cfg.Factors {
		overrides[code] = value
	}
	factors, err := engine.NewScoringFactors(overrides)
	if err != nil {
		return err
	}

	metrics := middleware.NewPrometheusMetrics(prometheus.NewRegistry())
	var ranker ports.Ranker = engine.New(store, factors)
	ranker = middleware.NewMetricsRanker(ranker, metrics)
	ranker = middleware.NewTracingRanker(ranker)

	opts := []application.ServiceOption{
		application.WithMetrics(metrics),
		application.WithRecalculateConfig(cfg.Recalculate),
	}
	if cfg.Cache.Enabled {
		scoreCache := cache.New(cache.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer scoreCache.Close()
		if err := scoreCache.Ping(ctx); err != nil {
			return err
		}
		opts = append(opts, application.WithCache(scoreCache, cfg.Cache.TTL()))
	}
	svc := application.NewRankingService(store, ranker, logger, opts...)

	switch args[0] {
	case "rank":
		return runRank(ctx, svc, args[1:])
	case "scores":
		return runScores(ctx, svc, args[1:])
	case "recalc":
		return svc.RecalculateAll(ctx)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runRank(ctx context.Context, svc *application.RankingService, args []string) error {
	fs := flag.NewFlagSet("rank", flag.ContinueOnError)
	crewID := fs.Int64("crew", 0, "crew ID to rank for")
	trekType := fs.String("trek", "", "trek type (defaults to first available)")
	method := fs.String("method", "total", "aggregation method: total, average, median, mode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *crewID == 0 {
		return fmt.Errorf("rank: -crew is required")
	}

	run, err := svc.Rank(ctx, *crewID, domain.TrekType(*trekType), domain.ParseMethod(*method))
	if err != nil {
		return err
	}
	return printJSON(run)
}

func runScores(ctx context.Context, svc *application.RankingService, args []string) error {
	fs := flag.NewFlagSet("scores", flag.ContinueOnError)
	crewID := fs.Int64("crew", 0, "crew ID to aggregate for")
	method := fs.String("method", "total", "aggregation method: total, average, median, mode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *crewID == 0 {
		return fmt.Errorf("scores: -crew is required")
	}

	scores, err := svc.ProgramScores(ctx, *crewID, domain.ParseMethod(*method))
	if err != nil {
		return err
	}
	return printJSON(scores)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
