package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Address         string        `env:"RUN_ADDRESS" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	AppName         string        `env:"APP_NAME" envDefault:"crmApp"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	MySQLHost     string `env:"MYSQL_HOST"`
	MySQLPort     string `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLUser     string `env:"MYSQL_USER" envDefault:"crm"`
	MySQLPassword string `env:"MYSQL_PASSWORD"`
	MySQLDatabase string `env:"MYSQL_DATABASE" envDefault:"crm"`

	RedisHost      string `env:"REDIS_HOST"`
	RedisPort      string `env:"REDIS_PORT" envDefault:"6379"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	SearchIndexKey string `env:"SEARCH_INDEX_KEY" envDefault:"search:product-orders"`
	ReindexOnStart bool   `env:"SEARCH_REINDEX_ON_START" envDefault:"false"`

	RabbitMQURL      string `env:"RABBITMQ_URL"`
	RabbitMQExchange string `env:"RABBITMQ_EXCHANGE" envDefault:"crm.exchange"`
}

// NewConfig reads the environment first; command-line flags override it.
func NewConfig(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("crm-service", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "a", cfg.Address, "{Host:port} for server")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level for server")
	fs.StringVar(&cfg.MySQLHost, "m", cfg.MySQLHost, "MySQL host, in-memory store when empty")
	fs.StringVar(&cfg.RedisHost, "r", cfg.RedisHost, "Redis host for the search index, in-memory index when empty")
	fs.StringVar(&cfg.RabbitMQURL, "q", cfg.RabbitMQURL, "RabbitMQ URL, events disabled when empty")
	fs.BoolVar(&cfg.ReindexOnStart, "reindex", cfg.ReindexOnStart, "Rebuild the search index on start")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.AppName == "" {
		return nil, fmt.Errorf("ENV APP_NAME must not be empty")
	}
	return cfg, nil
}

func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		c.MySQLUser, c.MySQLPassword, c.MySQLHost, c.MySQLPort, c.MySQLDatabase)
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
