// Binary paper runs the full decision loop against the simulated venue: stub
// or live market data in, virtual positions and a JSONL fill trail out.
package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"intrabot-go/internal/calendar"
	"intrabot-go/internal/config"
	"intrabot-go/internal/engine"
	"intrabot-go/internal/exchange"
	"intrabot-go/internal/execution"
	"intrabot-go/internal/indicators"
	"intrabot-go/internal/market"
	"intrabot-go/internal/metrics"
	"intrabot-go/internal/paper"
	"intrabot-go/internal/risk"
	"intrabot-go/internal/strategy"
	"intrabot-go/internal/util"
)

func main() {
	_ = godotenv.Load() // best-effort

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		bootLog := util.NewLogger("info", "")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.App.LogLevel, cfg.App.Env)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	cal, err := calendar.Load(cfg.Calendar.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("load calendar")
	}
	session, err := cfg.SessionWindow()
	if err != nil {
		log.Fatal().Err(err).Msg("parse session")
	}

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var opts []exchange.Option
	if cfg.Feed.TickMs > 0 {
		opts = append(opts, exchange.WithTickInterval(time.Duration(cfg.Feed.TickMs)*time.Millisecond))
	}
	feed := exchange.NewFeed(cfg.Feed.Provider, cfg.Feed.Symbols, log, opts...)
	ticks := make(chan market.Tick, 1024)
	go func() {
		if err := feed.Run(ctx, ticks); err != nil {
			log.Error().Err(err).Msg("feed stopped")
			cancel()
		}
	}()

	constraints := exchange.NewStaticConstraints(cfg.Constraints())
	ledger := paper.NewLedger()
	recorder := paper.Tee{ledger}
	if cfg.Paper.FillsPath != "" {
		jsonl, err := paper.NewJSONLRecorder(cfg.Paper.FillsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open fills log")
		}
		defer jsonl.Close()
		recorder = append(recorder, jsonl)
	}
	venue := paper.NewVenue(cfg.Paper.StartingCash, cfg.Paper.Leverage, constraints, recorder)
	tracker := indicators.NewTracker(cfg.BarInterval(), cfg.IndicatorPeriods())

	classifier := strategy.Build(cfg.Strategy.Mode)
	eng := engine.New(engine.Params{
		Log:        log,
		Classifier: classifier,
		Sizer: risk.Sizer{
			ATRMultiplier:  cfg.Risk.ATRMultiplier,
			StopFloor:      cfg.Risk.StopFloor,
			RewardMultiple: cfg.Risk.RewardMultiple,
		},
		Gate: risk.Gate{
			Calendar:        cal,
			News:            cal,
			Session:         session,
			NewsWindow:      time.Duration(cfg.Calendar.NewsWindowMin) * time.Minute,
			MaxTradesPerDay: cfg.Risk.MaxTradesPerDay,
			DailyLossLimit:  cfg.Risk.DailyLossLimit,
		},
		Days:        risk.NewDayTracker(cfg.DayScope()),
		Snapshots:   tracker,
		Constraints: constraints,
		Executor:    execution.NewExecutor(venue, cfg.SubmitTimeout(), log),
		RiskBudget:  cfg.Risk.BudgetPerTrade,
		Tag:         cfg.Execution.Tag,
	})

	log.Info().Str("strategy", classifier.Name()).
		Float64("cash", cfg.Paper.StartingCash).Msg("paper engine started")
	for {
		select {
		case <-ctx.Done():
			status := eng.Status()
			log.Info().
				Int("evaluated", status.Evaluated).
				Int("skipped", status.Skipped).
				Int("accepted", status.Accepted).
				Int("rejected", status.Rejected).
				Float64("cash", venue.Cash()).
				Float64("realized_pnl", venue.RealizedPnL()).
				Int("fills", ledger.Len()).
				Msg("shutting down")
			return
		case tk := <-ticks:
			tracker.OnTick(tk)
			venue.MarkTick(tk)
			eng.OnTick(ctx, tk)
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
