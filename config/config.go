package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Market    MarketConfig    `mapstructure:"market"`
	Watchlist WatchlistConfig `mapstructure:"watchlist"`
	Log       LogConfig       `mapstructure:"log"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
}

type AppConfig struct {
	Env string `mapstructure:"env"` // "dev" or "prod"
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	WSWriteWait    time.Duration `mapstructure:"ws_write_wait"`
	WSPingPeriod   time.Duration `mapstructure:"ws_ping_period"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"` // cross-origin WebSocket clients; same-origin always passes
}

type MarketConfig struct {
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	RefreshLatency time.Duration `mapstructure:"refresh_latency"`
	ChartDays      int           `mapstructure:"chart_days"`
	Seed           int64         `mapstructure:"seed"` // 0 seeds from the clock
}

type WatchlistConfig struct {
	Backend string `mapstructure:"backend"` // file, memory, redis or postgres
	Key     string `mapstructure:"key"`
	Dir     string `mapstructure:"dir"` // file backend only
}

// Options defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var backends = map[string]struct{}{
	BackendFile:     {},
	BackendMemory:   {},
	BackendRedis:    {},
	BackendPostgres: {},
}

// Load reads configuration from an optional .env file, config.yaml and environment
// variables, in increasing order of precedence. An empty path searches the usual
// config directories; a missing file falls back to defaults.
func Load(path string) (*Config, error) {
	// .env only populates the process environment; absence is fine
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // config.yaml
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath("../config")
		v.AddConfigPath("../../config")
	}

	// Support environment variables with dot notation (e.g., MARKET_TICK_INTERVAL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.ws_write_wait", 10*time.Second)
	v.SetDefault("server.ws_ping_period", 30*time.Second)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("market.tick_interval", 5*time.Second)
	v.SetDefault("market.refresh_latency", time.Second)
	v.SetDefault("market.chart_days", 30)
	v.SetDefault("market.seed", 0)

	v.SetDefault("watchlist.backend", BackendFile)
	v.SetDefault("watchlist.key", "stockWatchlist")
	v.SetDefault("watchlist.dir", "data")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "stocktracker")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)
}

// Validate rejects settings the services cannot start with.
func (c *Config) Validate() error {
	if _, ok := backends[c.Watchlist.Backend]; !ok {
		return fmt.Errorf("unknown watchlist backend %q", c.Watchlist.Backend)
	}
	if c.Watchlist.Key == "" {
		return errors.New("watchlist key must not be empty")
	}
	if c.Watchlist.Backend == BackendFile && c.Watchlist.Dir == "" {
		return errors.New("watchlist dir is required for the file backend")
	}
	if c.Market.TickInterval <= 0 {
		return fmt.Errorf("market tick_interval must be positive, got %s", c.Market.TickInterval)
	}
	if c.Market.RefreshLatency < 0 {
		return fmt.Errorf("market refresh_latency must not be negative, got %s", c.Market.RefreshLatency)
	}
	if c.Market.ChartDays < 0 {
		return fmt.Errorf("market chart_days must not be negative, got %d", c.Market.ChartDays)
	}
	if c.Server.WSPingPeriod <= 0 || c.Server.WSWriteWait <= 0 {
		return errors.New("server websocket timings must be positive")
	}
	return nil
}
