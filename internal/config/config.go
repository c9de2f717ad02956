// config.go
package config

import (
	"os"
	"time"
)

type Config struct {
	MongoURI       string
	MongoDBName    string
	RedisAddr      string
	AuthURL        string
	RabbitURL      string
	Port           string
	StorageTimeout time.Duration
	SummaryTTL     time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "marketplace_orders"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		AuthURL:        getEnv("AUTH_URL", "http://localhost:3000"),
		RabbitURL:      getEnv("RABBIT_URL", "amqp://localhost"),
		Port:           getEnv("PORT", "8080"),
		StorageTimeout: getDuration("STORAGE_TIMEOUT", 5*time.Second),
		SummaryTTL:     getDuration("SUMMARY_TTL", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
