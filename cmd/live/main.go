// Binary live streams real market data through the decision loop but submits
// to a log-only venue. Wiring a broker into the Venue interface is deliberate
// manual work; nothing here can place a real order.
package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"intrabot-go/internal/calendar"
	"intrabot-go/internal/config"
	"intrabot-go/internal/engine"
	"intrabot-go/internal/exchange"
	"intrabot-go/internal/execution"
	"intrabot-go/internal/indicators"
	"intrabot-go/internal/market"
	"intrabot-go/internal/metrics"
	"intrabot-go/internal/risk"
	"intrabot-go/internal/strategy"
	"intrabot-go/internal/util"
)

// dryRunVenue accepts every order on paper and logs what a broker adapter
// would have received.
type dryRunVenue struct {
	log zerolog.Logger
}

func (v dryRunVenue) Name() string { return "dry-run" }

func (v dryRunVenue) Submit(_ context.Context, o execution.Order) (execution.Submission, error) {
	v.log.Info().
		Str("symbol", o.Symbol).
		Str("side", string(o.Side)).
		Float64("size", o.Size).
		Float64("entry", o.Entry).
		Float64("stop_loss", o.StopLoss).
		Float64("take_profit", o.TakeProfit).
		Msg("dry-run order")
	return execution.Submission{Accepted: true, TicketID: uuid.NewString()}, nil
}

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

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	feed := exchange.NewFeed(exchange.ProviderBinance, cfg.Feed.Symbols, log)
	ticks := make(chan market.Tick, 1024)
	go func() {
		if err := feed.Run(ctx, ticks); err != nil {
			log.Error().Err(err).Msg("feed stopped")
			cancel()
		}
	}()

	constraints := exchange.NewStaticConstraints(cfg.Constraints())
	tracker := indicators.NewTracker(cfg.BarInterval(), cfg.IndicatorPeriods())

	eng := engine.New(engine.Params{
		Log:        log,
		Classifier: strategy.Build(cfg.Strategy.Mode),
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
		Executor:    execution.NewExecutor(dryRunVenue{log: log}, cfg.SubmitTimeout(), log),
		RiskBudget:  cfg.Risk.BudgetPerTrade,
		Tag:         cfg.Execution.Tag,
	})

	log.Info().Strs("symbols", cfg.Feed.Symbols).Msg("live engine started in dry-run mode")
	for {
		select {
		case <-ctx.Done():
			status := eng.Status()
			log.Info().Int("evaluated", status.Evaluated).Int("accepted", status.Accepted).Msg("shutting down")
			return
		case tk := <-ticks:
			tracker.OnTick(tk)
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
