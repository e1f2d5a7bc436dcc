package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"

	CatalogEmbedded = "embedded"
	CatalogSQLite   = "sqlite"
	CatalogRemote   = "remote"

	AnalyticsGateway = "gateway"
	AnalyticsKafka   = "kafka"
	AnalyticsNone    = "none"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	HTTPPort        string
	GatewayBaseURL  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	Storage         StorageConfig
	CatalogSource   string
	Analytics       AnalyticsConfig
}

type StorageConfig struct {
	Backend       string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisTTL      time.Duration
	MongoURI      string
	MongoDBName   string
}

type AnalyticsConfig struct {
	Sink         string
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	requestTimeout, err := getDuration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	redisTTL, err := getDuration("REDIS_TTL", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		GatewayBaseURL:  getEnv("GATEWAY_BASE_URL", "http://localhost:3000"),
		RequestTimeout:  requestTimeout,
		ShutdownTimeout: shutdownTimeout,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Storage: StorageConfig{
			Backend:       strings.ToLower(getEnv("STORAGE_BACKEND", StorageSQLite)),
			SQLitePath:    getEnv("SQLITE_PATH", "shopeasy.db"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisTTL:      redisTTL,
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDBName:   getEnv("MONGO_DB_NAME", "shopeasy"),
		},
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogEmbedded)),
		Analytics: AnalyticsConfig{
			Sink:         strings.ToLower(getEnv("ANALYTICS_SINK", AnalyticsGateway)),
			KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "shopeasy-analytics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := oneOf("STORAGE_BACKEND", c.Storage.Backend, StorageMemory, StorageSQLite, StorageRedis, StorageMongo); err != nil {
		return err
	}
	if err := oneOf("CATALOG_SOURCE", c.CatalogSource, CatalogEmbedded, CatalogSQLite, CatalogRemote); err != nil {
		return err
	}
	if err := oneOf("ANALYTICS_SINK", c.Analytics.Sink, AnalyticsGateway, AnalyticsKafka, AnalyticsNone); err != nil {
		return err
	}
	if c.Analytics.Sink == AnalyticsKafka && len(c.Analytics.KafkaBrokers) == 0 {
		return fmt.Errorf("%w: KAFKA_BROKERS is required for the kafka sink", ErrInvalidConfig)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must be positive", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return d, nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%q, want one of %s", ErrInvalidConfig, key, value, strings.Join(allowed, "|"))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
