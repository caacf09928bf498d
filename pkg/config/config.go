package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"CoinPulse/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Cache struct {
		Store         string `yaml:"store"` // memory, redis, layered
		SingleFlight  bool   `yaml:"single_flight"`
		MemoryMaxSize int    `yaml:"memory_max_size"`
		Redis         struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Providers struct {
		Timeout     time.Duration `yaml:"timeout"`
		FRED        Credential    `yaml:"fred"`
		LunarCrush  Credential    `yaml:"lunarcrush"`
		Etherscan   Credential    `yaml:"etherscan"`
		CryptoPanic Credential    `yaml:"cryptopanic"`
		Bitquery    Credential    `yaml:"bitquery"`
		WhaleAlert  struct {
			APIKey       string  `yaml:"api_key"`
			WebSocketURL string  `yaml:"websocket_url"`
			MinValueUSD  float64 `yaml:"min_value_usd"`
		} `yaml:"whale_alert"`
		EdgarUserAgent string `yaml:"edgar_user_agent"`
	} `yaml:"providers"`
	Scoring struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"scoring"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		AlertTopic   string   `yaml:"alert_topic"`
		FailureTopic string   `yaml:"failure_topic"`
		Compression  string   `yaml:"compression"`
		RequiredAcks int      `yaml:"required_acks"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
	Filings struct {
		Companies []TrackedCompany `yaml:"companies"`
	} `yaml:"filings"`
}

// Credential holds a single provider API key.
type Credential struct {
	APIKey string `yaml:"api_key"`
}

// TrackedCompany is one company whose SEC filings are watched.
type TrackedCompany struct {
	Name     string   `yaml:"name"`
	CIK      string   `yaml:"cik"`
	Keywords []string `yaml:"keywords"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides secrets with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.Providers.FRED.APIKey = v
	}
	if v := os.Getenv("LUNARCRUSH_API_KEY"); v != "" {
		c.Providers.LunarCrush.APIKey = v
	}
	if v := os.Getenv("WHALE_ALERT_API_KEY"); v != "" {
		c.Providers.WhaleAlert.APIKey = v
	}
	if v := os.Getenv("ETHERSCAN_API_KEY"); v != "" {
		c.Providers.Etherscan.APIKey = v
	}
	if v := os.Getenv("CRYPTOPANIC_API_KEY"); v != "" {
		c.Providers.CryptoPanic.APIKey = v
	}
	if v := os.Getenv("BITQUERY_API_KEY"); v != "" {
		c.Providers.Bitquery.APIKey = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.Cache.Redis.Port = util.ParseIntDefault(v, c.Cache.Redis.Port)
	}
	if v := os.Getenv("CLICKHOUSE_PORT"); v != "" {
		c.ClickHouse.Port = util.ParseIntDefault(v, c.ClickHouse.Port)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("SCORING_URL"); v != "" {
		c.Scoring.URL = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Cache.Store {
	case "", "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.store must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Store)
	}
	if c.Cache.Store == "redis" || c.Cache.Store == "layered" {
		if c.Cache.Redis.Host == "" {
			return fmt.Errorf("cache.redis.host is required for store '%s'", c.Cache.Store)
		}
	}
	for i, co := range c.Filings.Companies {
		if co.Name == "" || co.CIK == "" {
			return fmt.Errorf("filings.companies[%d]: name and cik are required", i)
		}
	}
	return nil
}
