// Package config loads runtime configuration from the environment with
// sensible defaults. Command-line flags in cmd/server override the port
// and database path for local runs.
package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr            string
	DatabaseURL         string // empty selects SQLite
	SQLitePath          string
	DateLayout          string
	KafkaBrokers        []string
	KafkaTopicAlerts    string
	DonateDemandCeiling float64
}

func Load() Config {
	brokersCSV := getEnv("KAFKA_BROKERS", "")
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if v := strings.TrimSpace(b); v != "" {
			brokers = append(brokers, v)
		}
	}

	return Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SQLitePath:          getEnv("SQLITE_PATH", "advisor.db"),
		DateLayout:          getEnv("DATE_LAYOUT", "02-01-2006"),
		KafkaBrokers:        brokers,
		KafkaTopicAlerts:    getEnv("KAFKA_TOPIC_ALERTS", "inventory.alerts"),
		DonateDemandCeiling: getEnvFloat("DONATE_DEMAND_CEILING", 20),
	}
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
