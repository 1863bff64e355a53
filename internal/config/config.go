package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Browser BrowserConfig `yaml:"browser" mapstructure:"browser"`
	HLTB    HLTBConfig    `yaml:"hltb" mapstructure:"hltb"`
	NameFix NameFixConfig `yaml:"namefix" mapstructure:"namefix"`
	Jina    JinaConfig    `yaml:"jina" mapstructure:"jina"`
	League  LeagueConfig  `yaml:"league" mapstructure:"league"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port                  int      `yaml:"port" mapstructure:"port"`
	MaxConcurrentSearches int      `yaml:"max_concurrent_searches" mapstructure:"max_concurrent_searches"`
	CORSOrigins           []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// BrowserConfig configures the controlled browser used for scraping.
type BrowserConfig struct {
	RemoteURL       string `yaml:"remote_url" mapstructure:"remote_url"`
	Bin             string `yaml:"bin" mapstructure:"bin"`
	Headless        bool   `yaml:"headless" mapstructure:"headless"`
	Stealth         bool   `yaml:"stealth" mapstructure:"stealth"`
	SettleTimeoutMs int    `yaml:"settle_timeout_ms" mapstructure:"settle_timeout_ms"`
	PollIntervalMs  int    `yaml:"poll_interval_ms" mapstructure:"poll_interval_ms"`
	MinSettleMs     int    `yaml:"min_settle_ms" mapstructure:"min_settle_ms"`
}

// SettleTimeout returns the page settle bound.
func (b BrowserConfig) SettleTimeout() time.Duration {
	return time.Duration(b.SettleTimeoutMs) * time.Millisecond
}

// PollInterval returns the readiness poll period.
func (b BrowserConfig) PollInterval() time.Duration {
	return time.Duration(b.PollIntervalMs) * time.Millisecond
}

// MinSettle returns the minimum wait after navigation.
func (b BrowserConfig) MinSettle() time.Duration {
	return time.Duration(b.MinSettleMs) * time.Millisecond
}

// HLTBConfig points the resolver at the completion-time site.
type HLTBConfig struct {
	BaseURL          string `yaml:"base_url" mapstructure:"base_url"`
	PlaceholderImage string `yaml:"placeholder_image" mapstructure:"placeholder_image"`
	Limit            int    `yaml:"limit" mapstructure:"limit"`
}

// NameFixConfig configures web-search name correction.
type NameFixConfig struct {
	Enabled          bool    `yaml:"enabled" mapstructure:"enabled"`
	DDGBaseURL       string  `yaml:"ddg_base_url" mapstructure:"ddg_base_url"`
	UserAgent        string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs      int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec       float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Retries          int     `yaml:"retries" mapstructure:"retries"`
	BreakerThreshold int     `yaml:"breaker_threshold" mapstructure:"breaker_threshold"`
	BreakerResetSecs int     `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
}

// JinaConfig holds Jina search credentials. An empty key disables the
// Jina name provider.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// LeagueConfig holds league seeding settings.
type LeagueConfig struct {
	Roster []string `yaml:"roster" mapstructure:"roster"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PLATLEAGUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "platleague.db")
	v.SetDefault("store.max_conns", 4)
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.max_concurrent_searches", 2)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("browser.remote_url", "")
	v.SetDefault("browser.bin", "")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.stealth", true)
	v.SetDefault("browser.settle_timeout_ms", 10000)
	v.SetDefault("browser.poll_interval_ms", 250)
	v.SetDefault("browser.min_settle_ms", 0)
	v.SetDefault("hltb.base_url", "https://howlongtobeat.com")
	v.SetDefault("hltb.placeholder_image", "https://howlongtobeat.com/img/hltb_brand.png")
	v.SetDefault("hltb.limit", 5)
	v.SetDefault("namefix.enabled", true)
	v.SetDefault("namefix.ddg_base_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("namefix.user_agent", "")
	v.SetDefault("namefix.timeout_secs", 10)
	v.SetDefault("namefix.rate_per_sec", 1.0)
	v.SetDefault("namefix.retries", 2)
	v.SetDefault("namefix.breaker_threshold", 3)
	v.SetDefault("namefix.breaker_reset_secs", 60)
	v.SetDefault("jina.key", "")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("league.roster", []string{"Cebola", "Brau", "Jack", "Vyc"})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch strings.ToLower(c.Store.Driver) {
	case "sqlite", "postgres", "postgresql":
	default:
		problems = append(problems, "store.driver must be sqlite or postgres")
	}
	if c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
		if c.Server.MaxConcurrentSearches < 1 {
			problems = append(problems, "server.max_concurrent_searches must be >= 1")
		}
		problems = append(problems, c.browserProblems()...)
	case "search":
		problems = append(problems, c.browserProblems()...)
	case "store":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) browserProblems() []string {
	var problems []string
	if c.Browser.SettleTimeoutMs <= 0 {
		problems = append(problems, "browser.settle_timeout_ms must be > 0")
	}
	if c.Browser.PollIntervalMs <= 0 {
		problems = append(problems, "browser.poll_interval_ms must be > 0")
	}
	if c.HLTB.Limit < 1 {
		problems = append(problems, "hltb.limit must be >= 1")
	}
	return problems
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
