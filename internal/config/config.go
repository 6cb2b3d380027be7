package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Server    ServerConfig
	Kafka     KafkaConfig
	Inventory InventoryConfig
	Features  FeatureFlags
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	EventsTopic string
}

// InventoryConfig holds the business defaults applied when a request omits
// the corresponding field.
type InventoryConfig struct {
	DefaultCurrency     string
	DefaultTaxPercent   decimal.Decimal
	DefaultReorderLevel int64
}

type FeatureFlags struct {
	EnableEvents bool
	SeedDemoData bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvInt("SERVER_PORT", 8084),
			ReadTimeout:     time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout:    time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
			ShutdownTimeout: time.Duration(getEnvInt("SERVER_SHUTDOWN_TIMEOUT", 30)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     splitAndTrim(getEnvString("KAFKA_BROKERS", "localhost:9092")),
			EventsTopic: getEnvString("KAFKA_EVENTS_TOPIC", "inventory-events"),
		},
		Inventory: InventoryConfig{
			DefaultCurrency:     getEnvString("INVENTORY_DEFAULT_CURRENCY", "USD"),
			DefaultTaxPercent:   getEnvDecimal("INVENTORY_DEFAULT_TAX_PERCENT", "0"),
			DefaultReorderLevel: int64(getEnvInt("INVENTORY_DEFAULT_REORDER_LEVEL", 5)),
		},
		Features: FeatureFlags{
			EnableEvents: getEnvBool("FEATURE_EVENTS", false),
			SeedDemoData: getEnvBool("FEATURE_SEED_DEMO_DATA", false),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if decValue, err := decimal.NewFromString(value); err == nil {
			return decValue
		}
	}
	d, err := decimal.NewFromString(defaultValue)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
