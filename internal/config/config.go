package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"TrendScope/internal/model"
	"TrendScope/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider          string  `yaml:"provider" validate:"oneof=yahoo financego barsapi mock"`
		BaseURL           string  `yaml:"base_url" validate:"omitempty,url"`
		APIKey            string  `yaml:"api_key"`
		Symbol            string  `yaml:"symbol" validate:"required"`
		Period            string  `yaml:"period"`
		RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	} `yaml:"data_source"`
	Analysis struct {
		TrendPolicy string `yaml:"trend_policy"`
	} `yaml:"analysis"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id" validate:"required_with=BotToken"`
	} `yaml:"telegram"`
	Schedule struct {
		ReportCron string `yaml:"report_cron" validate:"required"`
	} `yaml:"schedule"`
	Server struct {
		Addr           string `yaml:"addr" validate:"required"`
		MetricsEnabled bool   `yaml:"metrics_enabled"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy" validate:"omitempty,url"`
}

var validate = validator.New()

// cronParser accepts the seconds-enabled layout the scheduler uses.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	cfg.DataSource.Provider = "yahoo"
	cfg.DataSource.Symbol = "SPY"
	cfg.DataSource.Period = string(model.DefaultPeriod)
	cfg.DataSource.RequestsPerSecond = 2
	cfg.Analysis.TrendPolicy = string(strategy.DefaultPolicy)
	cfg.Schedule.ReportCron = "0 30 22 * * 1-5"
	cfg.Server.Addr = ":8080"
	cfg.Server.MetricsEnabled = true
	return cfg
}

// Load reads config from a YAML file and a .env file, then applies
// environment variable overrides. Missing files are not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	overrides := []struct {
		env    string
		target *string
	}{
		{"TRENDSCOPE_PROVIDER", &cfg.DataSource.Provider},
		{"TRENDSCOPE_BASE_URL", &cfg.DataSource.BaseURL},
		{"TRENDSCOPE_API_KEY", &cfg.DataSource.APIKey},
		{"TRENDSCOPE_SYMBOL", &cfg.DataSource.Symbol},
		{"TRENDSCOPE_PERIOD", &cfg.DataSource.Period},
		{"TRENDSCOPE_TREND_POLICY", &cfg.Analysis.TrendPolicy},
		{"TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID},
		{"CRON_REPORT", &cfg.Schedule.ReportCron},
		{"HTTP_ADDR", &cfg.Server.Addr},
		{"HTTPS_PROXY", &cfg.Proxy},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
	cfg.DataSource.Provider = strings.ToLower(strings.TrimSpace(cfg.DataSource.Provider))

	return cfg, nil
}

// Validate checks field constraints and the values other packages parse.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.DataSource.Provider == "barsapi" && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.base_url is required for the barsapi provider")
	}
	if _, err := model.ParsePeriod(c.DataSource.Period); err != nil {
		return fmt.Errorf("data_source.period: %w", err)
	}
	if _, err := strategy.ParsePolicy(c.Analysis.TrendPolicy); err != nil {
		return fmt.Errorf("analysis.trend_policy: %w", err)
	}
	if _, err := cronParser.Parse(c.Schedule.ReportCron); err != nil {
		return fmt.Errorf("schedule.report_cron: %w", err)
	}
	return nil
}

// Period returns the configured default lookback.
func (c *Config) Period() model.Period {
	p, err := model.ParsePeriod(c.DataSource.Period)
	if err != nil {
		return model.DefaultPeriod
	}
	return p
}

// Policy returns the configured trend policy.
func (c *Config) Policy() strategy.Policy {
	p, err := strategy.ParsePolicy(c.Analysis.TrendPolicy)
	if err != nil {
		return strategy.DefaultPolicy
	}
	return p
}

// TelegramEnabled reports whether bot delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}
