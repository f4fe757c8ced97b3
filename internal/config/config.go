// Package config описывает конфигурацию сервиса дневной ленты и ее загрузку
// из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"dailynews/internal/domain"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/robfig/cron/v3"
)

// Config представляет основную конфигурацию приложения.
// Приоритет источников:
//  1. явный путь, переданный в Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. только переменные окружения.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	Feed       FeedConfig       `yaml:"feed"`
	HTTPClient HTTPClientConfig `yaml:"http_client"`
	Server     ServerConfig     `yaml:"server"`
	Logger     LoggerConfig     `yaml:"logger"`
	App        AppConfig        `yaml:"app"`
	Worker     WorkerConfig     `yaml:"worker"`
}

// FeedConfig описывает источник дневной ленты и начальный контекст даты.
// Нулевые Date/Month/Year означают «сегодня» в зоне Timezone.
type FeedConfig struct {
	BaseURL  string `yaml:"base_url" env:"FEED_BASE_URL" env-required:"true"`
	Date     int    `yaml:"date" env:"FEED_DATE"`
	Month    int    `yaml:"month" env:"FEED_MONTH"`
	Year     int    `yaml:"year" env:"FEED_YEAR"`
	Timezone string `yaml:"timezone" env:"FEED_TIMEZONE" env-default:"UTC"`
}

// HTTPClientConfig — параметры исходящих запросов за лентой.
type HTTPClientConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"HTTP_CLIENT_TIMEOUT" env-default:"15s"`
}

// ServerConfig содержит настройки HTTP-сервера приложения.
type ServerConfig struct {
	Address        string        `yaml:"address" env:"SERVER_ADDRESS" env-default:":8080"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"10s"`
}

// LoggerConfig содержит настройки логирования.
// Output и ErrorOutput принимают stdout, stderr или путь к файлу.
type LoggerConfig struct {
	Level       string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Output      string `yaml:"output" env:"LOG_OUTPUT" env-default:"stdout"`
	ErrorOutput string `yaml:"error_output" env:"LOG_ERROR_OUTPUT" env-default:"stderr"`
}

// AppConfig содержит лимиты выдачи запросов.
type AppConfig struct {
	DefaultLatestLimit     int `yaml:"default_latest_limit" env:"DEFAULT_LATEST_LIMIT" env-default:"10"`
	DefaultTopSourcesLimit int `yaml:"default_top_sources_limit" env:"DEFAULT_TOP_SOURCES_LIMIT" env-default:"5"`
	DefaultTopTopicsLimit  int `yaml:"default_top_topics_limit" env:"DEFAULT_TOP_TOPICS_LIMIT" env-default:"5"`
	MaxLimit               int `yaml:"max_limit" env:"MAX_LIMIT" env-default:"100"`
}

// WorkerConfig управляет фоновой сменой даты и дайджестом.
// Воркер включен, пока не выставлен Disabled.
type WorkerConfig struct {
	Disabled   bool   `yaml:"disabled" env:"WORKER_DISABLED"`
	CronSpec   string `yaml:"cron_spec" env:"WORKER_CRON_SPEC" env-default:"5 0 * * *"`
	DigestSize int    `yaml:"digest_size" env:"WORKER_DIGEST_SIZE" env-default:"5"`
}

// Location возвращает часовой пояс ленты.
func (f FeedConfig) Location() (*time.Location, error) {
	return time.LoadLocation(f.Timezone)
}

// HasDate сообщает, задана ли дата явно.
func (f FeedConfig) HasDate() bool {
	return f.Date != 0 || f.Month != 0 || f.Year != 0
}

// StartDate возвращает начальный контекст даты: явно заданный или сегодняшний
// день в зоне ленты относительно now.
func (f FeedConfig) StartDate(now time.Time) (domain.DateContext, error) {
	if f.HasDate() {
		return domain.NewDateContext(f.Date, f.Month, f.Year)
	}
	loc, err := f.Location()
	if err != nil {
		return domain.DateContext{}, fmt.Errorf("invalid feed.timezone: %w", err)
	}
	return domain.DateContextFor(now.In(loc))
}

// MustLoad — обертка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает и проверяет конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide -config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет корректность конфигурации и возвращает первую найденную проблему.
func (c *Config) Validate() error {
	if c.Feed.BaseURL == "" {
		return fmt.Errorf("feed.base_url is not set")
	}
	if _, err := url.ParseRequestURI(c.Feed.BaseURL); err != nil {
		return fmt.Errorf("invalid feed.base_url: %s", c.Feed.BaseURL)
	}
	if _, err := c.Feed.Location(); err != nil {
		return fmt.Errorf("invalid feed.timezone: %w", err)
	}
	if c.Feed.HasDate() {
		if _, err := domain.NewDateContext(c.Feed.Date, c.Feed.Month, c.Feed.Year); err != nil {
			return fmt.Errorf("invalid feed date: %w", err)
		}
	}
	if c.HTTPClient.Timeout < 0 {
		return fmt.Errorf("http_client.timeout must not be negative")
	}
	if c.App.DefaultLatestLimit <= 0 {
		return fmt.Errorf("app.default_latest_limit must be a positive number")
	}
	if c.App.DefaultTopSourcesLimit <= 0 {
		return fmt.Errorf("app.default_top_sources_limit must be a positive number")
	}
	if c.App.DefaultTopTopicsLimit <= 0 {
		return fmt.Errorf("app.default_top_topics_limit must be a positive number")
	}
	if c.App.MaxLimit <= 0 {
		return fmt.Errorf("app.max_limit must be a positive number")
	}
	if c.App.DefaultLatestLimit > c.App.MaxLimit ||
		c.App.DefaultTopSourcesLimit > c.App.MaxLimit ||
		c.App.DefaultTopTopicsLimit > c.App.MaxLimit {
		return fmt.Errorf("app default limits must be <= app.max_limit")
	}
	if !c.Worker.Disabled {
		if _, err := cron.ParseStandard(c.Worker.CronSpec); err != nil {
			return fmt.Errorf("invalid worker.cron_spec: %w", err)
		}
		if c.Worker.DigestSize <= 0 {
			return fmt.Errorf("worker.digest_size must be a positive number")
		}
	}
	return nil
}
