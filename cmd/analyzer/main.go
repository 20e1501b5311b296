package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/kalshi-analyzer/internal/api"
	"github.com/rickgao/kalshi-analyzer/internal/config"
	"github.com/rickgao/kalshi-analyzer/internal/export"
	"github.com/rickgao/kalshi-analyzer/internal/render"
	"github.com/rickgao/kalshi-analyzer/internal/report"
	"github.com/rickgao/kalshi-analyzer/internal/telemetry"
	"github.com/rickgao/kalshi-analyzer/internal/version"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		// flag already printed the usage error
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Println(version.String())
		return
	}

	if err := config.LoadDotEnv(opts.envFile); err != nil {
		fmt.Fprintf(os.Stderr, "load env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging
	logger, closer := telemetry.NewLogger(cfg.Log)
	defer closer.Close()
	slog.SetDefault(logger)

	logger.Info("starting analyzer",
		"version", version.Version,
		"commit", version.Commit,
		"config", opts.configPath,
	)

	// Cancel the fetch on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Error("analysis failed", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

// run performs one fetch, analysis and export pass, writing the console
// report to out.
func run(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	client := api.NewClient(
		cfg.API.RestURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRateLimit(cfg.API.RateLimit),
		api.WithUserAgent(version.UserAgent()),
	)

	r := render.New(out, render.WithDisplayRows(cfg.Analysis.DisplayRows))
	r.Banner()

	fetchedAt := time.Now().UTC()
	runInfo := report.NewRun(fetchedAt, cfg.Analysis.Limit)

	logger.Info("fetching markets",
		"run_id", runInfo.ID,
		"api_url", cfg.API.RestURL,
		"limit", cfg.Analysis.Limit,
	)

	raws, err := client.FetchOpenMarkets(ctx, cfg.Analysis.Limit, api.GetMarketsOptions{
		SeriesTicker: cfg.API.SeriesTicker,
		EventTicker:  cfg.API.EventTicker,
	})
	if err != nil {
		return fmt.Errorf("fetch markets: %w", err)
	}
	r.Status(fmt.Sprintf("Fetched %d markets", len(raws)))

	batch := api.NormalizeMarkets(raws)
	runInfo.Record(batch.Accepted(), batch.Skipped(), batch.RejectionCounts())

	for _, rej := range batch.Rejections {
		logger.Debug("skipped market record",
			"ticker", rej.Ticker,
			"code", rej.Code,
			"field", rej.Field,
			"error", rej.Err,
		)
	}
	if batch.Skipped() > 0 {
		args := []any{"skipped", batch.Skipped(), "accepted", batch.Accepted()}
		counts := batch.RejectionCounts()
		for _, code := range batch.RejectionCodes() {
			args = append(args, code, counts[code])
		}
		logger.Info("skipped malformed market records", args...)
	}
	r.Status(fmt.Sprintf("Parsed %d valid markets", batch.Accepted()))

	rep := report.Assemble(batch.Markets, time.Now().UTC(), report.Options{
		Hours:     cfg.Analysis.Hours,
		MinVolume: cfg.Analysis.MinVolume,
		TopN:      cfg.Analysis.TopN,
		WideOnly:  cfg.Analysis.WideOnly,
	})
	r.Report(rep, runInfo)

	if n := rep.Summary.InvertedQuotes; n > 0 {
		logger.Warn("markets quoted with ask below bid", "count", n)
		for _, m := range rep.All {
			if m.HasInvertedQuote() {
				logger.Debug("inverted quote", "ticker", m.Ticker, "yes_bid", m.YesBid, "yes_ask", m.YesAsk)
			}
		}
	}

	logger.Info("analysis complete",
		"run_id", runInfo.ID,
		"markets", len(rep.All),
		"closing_soon", len(rep.ClosingSoon),
		"wide_spread", len(rep.WideSpread),
	)

	targets := export.Targets{
		JSON:   cfg.Export.JSON,
		Excel:  cfg.Export.Excel,
		CSV:    cfg.Export.CSV,
		SQLite: cfg.Export.SQLite,
	}
	if !targets.Empty() {
		results, err := export.Write(ctx, export.NewSnapshot(rep, runInfo), targets, logger)
		for _, res := range results {
			r.Status(fmt.Sprintf("Exported %d markets to %s", res.Rows, res.Path))
		}
		if err != nil {
			return err
		}
	}

	r.Complete(fetchedAt)
	if err := r.Err(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
