package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	LimiterStoreMemory = "memory"
	LimiterStoreRedis  = "redis"
)

type HTTPServer struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type Storage struct {
	Driver string `mapstructure:"driver"`
}

type Auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	CacheSize int64         `mapstructure:"cache_size"`
}

type RateLimit struct {
	Requests      int           `mapstructure:"requests"`
	Window        time.Duration `mapstructure:"window"`
	Store         string        `mapstructure:"store"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Conversion struct {
	MaxHops int `mapstructure:"max_hops"`
}

type Currencies struct {
	Supported []string `mapstructure:"supported"`
}

// SeedRate is a rate created at startup when its pair is absent. Rate is a decimal string.
type SeedRate struct {
	From   string `mapstructure:"from"`
	To     string `mapstructure:"to"`
	Rate   string `mapstructure:"rate"`
	Source string `mapstructure:"source"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// Sync controls the optional refresh of stored rates from ExchangeRateAPI.
type Sync struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	Bases    []string      `mapstructure:"bases"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Metrics struct {
	Enabled bool `mapstructure:"enabled"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	DbServer        DbServer        `mapstructure:"db_server"`
	Storage         Storage         `mapstructure:"storage"`
	Auth            Auth            `mapstructure:"auth"`
	RateLimit       RateLimit       `mapstructure:"rate_limit"`
	Redis           Redis           `mapstructure:"redis"`
	Conversion      Conversion      `mapstructure:"conversion"`
	Currencies      Currencies      `mapstructure:"currencies"`
	SeedRates       []SeedRate      `mapstructure:"seed_rates"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Sync            Sync            `mapstructure:"sync"`
	Logging         Logging         `mapstructure:"logging"`
	Metrics         Metrics         `mapstructure:"metrics"`
}

// Init loads .env and config.yaml from the working directory when present.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

// Load reads configFile (optional) with environment overrides on top of defaults.
func Load(configFile string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configFile != "" {
		if _, statErr := os.Stat(configFile); statErr == nil {
			v.SetConfigFile(configFile)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.RateLimit.Store {
	case LimiterStoreMemory, LimiterStoreRedis:
	default:
		return fmt.Errorf("unknown rate limit store %q", c.RateLimit.Store)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("rate limit requests and window must be positive")
	}
	if c.Conversion.MaxHops <= 0 {
		return errors.New("conversion max hops must be positive")
	}
	if c.Sync.Enabled && c.ExchangeRateAPI.APIKey == "" {
		return errors.New("exchange rate api key is required when sync is enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.read_timeout", 10*time.Second)
	v.SetDefault("http_server.write_timeout", 10*time.Second)
	v.SetDefault("http_server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db_server.host", "localhost")
	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.max_conns", 10)

	v.SetDefault("storage.driver", StorageMemory)

	v.SetDefault("auth.cache_ttl", 5*time.Minute)
	v.SetDefault("auth.cache_size", 10_000)

	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.store", LimiterStoreMemory)
	v.SetDefault("rate_limit.sweep_interval", time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("conversion.max_hops", 2)

	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("sync.enabled", false)
	v.SetDefault("sync.interval", time.Hour)
	v.SetDefault("sync.bases", []string{"USD", "EUR"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("metrics.enabled", true)
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")

	_ = v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("rate_limit.store", "RATE_LIMIT_STORE")

	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	_ = v.BindEnv("conversion.max_hops", "CONVERSION_MAX_HOPS")

	// external api env vars
	_ = v.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_BASE_URL")
	_ = v.BindEnv("exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")
	_ = v.BindEnv("sync.enabled", "SYNC_ENABLED")
	_ = v.BindEnv("sync.interval", "SYNC_INTERVAL")

	_ = v.BindEnv("currencies.supported", "SUPPORTED_CURRENCIES")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
}
