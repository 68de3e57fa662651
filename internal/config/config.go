// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"intrabot-go/internal/indicators"
	"intrabot-go/internal/market"
	"intrabot-go/internal/risk"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string
	Env         string
	MetricsAddr string
	LogLevel    string
}

// Feed describes where market ticks come from.
type Feed struct {
	Provider   string
	Symbols    []string
	TickMs     int `yaml:"tick_ms"`     // stub provider cadence
	BarSeconds int `yaml:"bar_seconds"` // tick-to-bar aggregation interval
}

// Session bounds the evaluation window to part of the trading day.
type Session struct {
	Start    string // "HH:MM" wall clock in Timezone
	End      string
	Timezone string
}

// Calendar points at the non-trading-day and news schedule file.
type Calendar struct {
	Path          string
	NewsWindowMin int `yaml:"news_window_min"`
}

// Strategy specifies which classifier is active.
type Strategy struct {
	Mode string
}

// Indicators groups the lookback periods for the streaming indicator set.
type Indicators struct {
	FastMA     int `yaml:"fast_ma"`
	MidMA      int `yaml:"mid_ma"`
	SlowMA     int `yaml:"slow_ma"`
	MACDFast   int `yaml:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow"`
	MACDSignal int `yaml:"macd_signal"`
	ATR        int `yaml:"atr"`
}

// Risk encodes guard-rails for how much size a trade may take on and how often.
type Risk struct {
	BudgetPerTrade  float64 `yaml:"budget_per_trade"`
	ATRMultiplier   float64 `yaml:"atr_multiplier"`
	StopFloor       float64 `yaml:"stop_floor"`
	RewardMultiple  float64 `yaml:"reward_multiple"`
	MaxTradesPerDay int     `yaml:"max_trades_per_day"`
	DailyLossLimit  float64 `yaml:"daily_loss_limit"`
	DayStateScope   string  `yaml:"day_state_scope"` // shared (default) or per_symbol
}

// Execution tunes order submission behavior.
type Execution struct {
	TimeoutMs int    `yaml:"timeout_ms"`
	Tag       string `yaml:"tag"`
}

// Paper captures simulated-venue account settings.
type Paper struct {
	StartingCash float64 `yaml:"starting_cash"`
	Leverage     float64 `yaml:"leverage"`
	FillsPath    string  `yaml:"fills_path"`
}

// SymbolProfile describes one tradable instrument's exchange constraints.
type SymbolProfile struct {
	MinSize          float64 `yaml:"min_size"`
	MaxSize          float64 `yaml:"max_size"`
	SizeStep         float64 `yaml:"size_step"`
	MinStopDistance  float64 `yaml:"min_stop_distance"`
	ValuePerUnitMove float64 `yaml:"value_per_unit_move"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App        App                      `yaml:"app"`
	Feed       Feed                     `yaml:"feed"`
	Session    Session                  `yaml:"session"`
	Calendar   Calendar                 `yaml:"calendar"`
	Strategy   Strategy                 `yaml:"strategy"`
	Indicators Indicators               `yaml:"indicators"`
	Risk       Risk                     `yaml:"risk"`
	Execution  Execution                `yaml:"execution"`
	Paper      Paper                    `yaml:"paper"`
	Symbols    map[string]SymbolProfile `yaml:"symbols"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects configurations that would make the engine misbehave in ways
// it cannot detect at runtime. Called once at startup; errors are fatal.
func (c *Config) Validate() error {
	if len(c.Feed.Symbols) == 0 {
		return fmt.Errorf("feed: at least one symbol is required")
	}
	if _, err := c.SessionWindow(); err != nil {
		return err
	}
	if c.Calendar.Path == "" {
		return fmt.Errorf("calendar: path is required")
	}
	if c.Calendar.NewsWindowMin < 0 {
		return fmt.Errorf("calendar: news_window_min must not be negative")
	}
	if c.Risk.BudgetPerTrade <= 0 {
		return fmt.Errorf("risk: budget_per_trade must be positive")
	}
	if c.Risk.ATRMultiplier <= 0 {
		return fmt.Errorf("risk: atr_multiplier must be positive")
	}
	if c.Risk.MaxTradesPerDay < 0 || c.Risk.DailyLossLimit < 0 {
		return fmt.Errorf("risk: day limits must not be negative")
	}
	switch c.Risk.DayStateScope {
	case "", "shared", "per_symbol":
	default:
		return fmt.Errorf("risk: unknown day_state_scope %q", c.Risk.DayStateScope)
	}
	for symbol, profile := range c.Symbols {
		if profile.SizeStep <= 0 || profile.MinSize <= 0 || profile.MaxSize < profile.MinSize {
			return fmt.Errorf("symbols: %s has inconsistent size bounds", symbol)
		}
		if profile.ValuePerUnitMove <= 0 {
			return fmt.Errorf("symbols: %s needs a positive value_per_unit_move", symbol)
		}
	}
	for _, symbol := range c.Feed.Symbols {
		if _, ok := c.Symbols[symbol]; !ok {
			return fmt.Errorf("feed: symbol %s has no profile under symbols", symbol)
		}
	}
	return nil
}

// SessionWindow builds the risk-gate session window from the configured
// wall-clock bounds.
func (c *Config) SessionWindow() (risk.SessionWindow, error) {
	window, err := risk.ParseSessionWindow(c.Session.Start, c.Session.End, c.Session.Timezone)
	if err != nil {
		return risk.SessionWindow{}, fmt.Errorf("session: %w", err)
	}
	return window, nil
}

// Constraints converts the configured symbol profiles into the market types
// the sizing calculator consumes.
func (c *Config) Constraints() map[string]market.SymbolConstraints {
	out := make(map[string]market.SymbolConstraints, len(c.Symbols))
	for symbol, profile := range c.Symbols {
		out[symbol] = market.SymbolConstraints{
			MinSize:          profile.MinSize,
			MaxSize:          profile.MaxSize,
			SizeStep:         profile.SizeStep,
			MinStopDistance:  profile.MinStopDistance,
			ValuePerUnitMove: profile.ValuePerUnitMove,
		}
	}
	return out
}

// IndicatorPeriods maps the configured lookbacks onto the tracker's period
// bundle, falling back to the defaults for anything left at zero.
func (c *Config) IndicatorPeriods() indicators.Periods {
	periods := indicators.DefaultPeriods()
	if c.Indicators.FastMA > 0 {
		periods.FastMA = c.Indicators.FastMA
	}
	if c.Indicators.MidMA > 0 {
		periods.MidMA = c.Indicators.MidMA
	}
	if c.Indicators.SlowMA > 0 {
		periods.SlowMA = c.Indicators.SlowMA
	}
	if c.Indicators.MACDFast > 0 {
		periods.MACDFast = c.Indicators.MACDFast
	}
	if c.Indicators.MACDSlow > 0 {
		periods.MACDSlow = c.Indicators.MACDSlow
	}
	if c.Indicators.MACDSignal > 0 {
		periods.MACDSignal = c.Indicators.MACDSignal
	}
	if c.Indicators.ATR > 0 {
		periods.ATR = c.Indicators.ATR
	}
	return periods
}

// BarInterval returns the tick-to-bar aggregation interval, defaulting to one
// minute when unset.
func (c *Config) BarInterval() time.Duration {
	if c.Feed.BarSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.Feed.BarSeconds) * time.Second
}

// SubmitTimeout returns the venue submission deadline, defaulting to five
// seconds when unset.
func (c *Config) SubmitTimeout() time.Duration {
	if c.Execution.TimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Execution.TimeoutMs) * time.Millisecond
}

// DayScope maps the configured scope string onto the risk package constant.
func (c *Config) DayScope() risk.Scope {
	if c.Risk.DayStateScope == "per_symbol" {
		return risk.ScopePerSymbol
	}
	return risk.ScopeShared
}
