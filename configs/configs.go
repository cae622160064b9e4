// Package configs provides application configuration loaded from environment
// variables. All configuration is externalized via environment variables for
// 12-factor app compliance.
package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all application configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// ServerPort is the HTTP API listen port.
	ServerPort string

	// Poller contains the background rate refresh settings.
	Poller PollerConfig

	// Providers contains the external rate provider settings.
	Providers ProviderConfig

	// Kafka contains the optional rate snapshot publisher settings.
	Kafka KafkaConfig

	// Redis contains the optional shared last-good rate store settings.
	Redis RedisConfig

	// Pricing contains margin defaults and per-instrument fallback rates.
	Pricing PricingConfig
}

// PollerConfig holds the refresh cadence and the instruments to track.
type PollerConfig struct {
	// Instruments is the list of tracked pairs (comma-separated in env),
	// e.g. "USDT/NGN,EUR/NGN".
	Instruments []string

	// Interval is how often each instrument is refreshed.
	Interval time.Duration

	// MaxAge is how old a cached quote may get before it counts as stale.
	MaxAge time.Duration
}

// ProviderConfig holds HTTP settings shared by the rate drivers.
type ProviderConfig struct {
	// BybitBaseURL overrides the Bybit API base URL (tests, proxies).
	BybitBaseURL string

	// QuidaxBaseURL overrides the Quidax API base URL.
	QuidaxBaseURL string

	// RequestTimeout bounds one fetch round-trip.
	RequestTimeout time.Duration

	// RequestsPerSecond limits outbound calls per provider.
	RequestsPerSecond float64
}

// KafkaConfig holds connection settings for the rate snapshot topic.
type KafkaConfig struct {
	// Enabled turns the publisher on.
	Enabled bool

	// Broker is the Kafka broker address (e.g. "localhost:9092").
	Broker string

	// Topic is the topic refreshed quotes are written to.
	Topic string
}

// RedisConfig holds connection settings for the shared rate store.
type RedisConfig struct {
	// Enabled turns the shared store on.
	Enabled bool

	Addr     string
	Password string
	DB       int

	// TTL is how long a mirrored quote stays in the store.
	TTL time.Duration
}

// PricingConfig holds the margin defaults and fallback rates.
type PricingConfig struct {
	// BaseInstrument is the pair cost prices are derived from.
	BaseInstrument string

	// USDMargin is the default fractional margin applied to USD.
	USDMargin float64

	// OtherMargin is the default margin for the other supported currencies.
	OtherMargin float64

	// Fallbacks maps instrument to the hard-coded rate used when no fetch
	// has ever succeeded (env form: "USDT/NGN:1550,EUR/NGN:1700").
	Fallbacks map[string]float64
}

// AppLoad reads configuration from the environment, consulting .env first.
func AppLoad() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &AppConfig{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Poller: PollerConfig{
			Instruments: getEnvList("RATE_INSTRUMENTS", "USDT/NGN"),
			Interval:    getEnvDuration("RATE_POLL_INTERVAL", time.Minute),
			MaxAge:      getEnvDuration("RATE_MAX_AGE", 5*time.Minute),
		},
		Providers: ProviderConfig{
			BybitBaseURL:      getEnv("BYBIT_BASE_URL", ""),
			QuidaxBaseURL:     getEnv("QUIDAX_BASE_URL", ""),
			RequestTimeout:    getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),
			RequestsPerSecond: getEnvFloat("PROVIDER_RPS", 2),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_TOPIC", "fxrates_quotes"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_TTL", 24*time.Hour),
		},
		Pricing: PricingConfig{
			BaseInstrument: getEnv("BASE_INSTRUMENT", "USDT/NGN"),
			USDMargin:      getEnvFloat("USD_MARGIN", 0.02),
			OtherMargin:    getEnvFloat("OTHER_MARGIN", 0.03),
			Fallbacks:      getEnvRateMap("RATE_FALLBACKS", map[string]float64{"USDT/NGN": 1550}),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Invalid int for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Printf("Invalid float for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		log.Printf("Invalid bool for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("Invalid duration for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvRateMap parses "USDT/NGN:1550,EUR/NGN:1700" into a fallback map.
func getEnvRateMap(key string, defaultValue map[string]float64) map[string]float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	out := make(map[string]float64)
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			log.Printf("Invalid fallback entry %q in %s, skipping", entry, key)
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || rate <= 0 {
			log.Printf("Invalid fallback rate %q in %s, skipping", parts[1], key)
			continue
		}
		out[strings.TrimSpace(parts[0])] = rate
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
