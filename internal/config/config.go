package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string
	Prediction PredictionConfig
	Geocoder   GeocoderConfig
	Overpass   OverpassConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Resolver   ResolverConfig
}

type PredictionConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GeocoderConfig struct {
	// APIKey empty means the geocoding provider is unavailable and point
	// selection is disabled.
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type OverpassConfig struct {
	Endpoint string
	Timeout  time.Duration
}

type DatabaseConfig struct {
	// URL empty disables resolution history persistence.
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether resolution events should be published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Brokers[0] != ""
}

type ResolverConfig struct {
	NearbyCount          int
	FailureMessage       string
	HourlyFailureMessage string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	config := &Config{
		Addr: getEnv("ADDR", ":8080"),
		Prediction: PredictionConfig{
			BaseURL: getEnv("PREDICTION_API_URL", "https://via-predictiva-tagname.onrender.com"),
			Timeout: getEnvAsDuration("PREDICTION_TIMEOUT", 10*time.Second),
		},
		Geocoder: GeocoderConfig{
			APIKey:   getEnv("GEOCODER_API_KEY", ""),
			BaseURL:  getEnv("GEOCODER_URL", "https://maps.googleapis.com/maps/api/geocode"),
			Timeout:  getEnvAsDuration("GEOCODER_TIMEOUT", 10*time.Second),
			CacheTTL: getEnvAsDuration("GEOCODER_CACHE_TTL", 24*time.Hour),
		},
		Overpass: OverpassConfig{
			Endpoint: getEnv("OVERPASS_URL", ""),
			Timeout:  getEnvAsDuration("OVERPASS_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL: getEnv("POSTGRES_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC_RESOLUTIONS", "risk.resolutions"),
		},
		Resolver: ResolverConfig{
			NearbyCount: getEnvAsInt("NEARBY_COUNT", 7),
			FailureMessage: getEnv("PREDICTION_FAILURE_MESSAGE",
				"No se pudo obtener la predicción del servicio. Mostrando datos estimados."),
			HourlyFailureMessage: getEnv("HOURLY_FAILURE_MESSAGE",
				"No se pudo obtener el perfil horario. Mostrando datos estimados."),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
