package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	CORS     CORSConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Delivery DeliveryConfig
}

type ServerConfig struct {
	AppEnv      string
	Port        string
	ServiceName string
	// Location used for the daily/weekly/monthly revenue cut-offs.
	Timezone string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// Empty keeps the driver default; "serializable" makes order creation
	// serialize the queue count against concurrent checkouts.
	OrderIsolation string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type CORSConfig struct {
	AllowOrigins []string
}

type SMTPConfig struct {
	Address  string
	Host     string
	From     string
	Password string
}

// Enabled reports whether outgoing mail can be sent.
func (c SMTPConfig) Enabled() bool {
	return c.Address != "" && c.From != ""
}

type StorageConfig struct {
	Bucket string
	Prefix string
}

type DeliveryConfig struct {
	RoutingURL    string
	StoreLat      float64
	StoreLng      float64
	RatePerKm     float64
	MinFee        float64
	MaxDistanceKm float64
	Timeout       time.Duration
}

// Load reads the configuration from the process environment. Call
// initializers.LoadEnv first when a .env file should be honoured.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "3001"),
			ServiceName: getEnv("SERVICE_NAME", "Chapa Quente API"),
			Timezone:    getEnv("STORE_TIMEZONE", "UTC"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "info"),
			Encoding: getEnv("LOGGER_ENCODING", ""),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "mysql"),
			DSN:             getEnv("DATABASE_URL", "root:root@tcp(127.0.0.1:3306)/chapaquente?charset=utf8mb4&parseTime=True&loc=UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			OrderIsolation:  getEnv("ORDER_TX_ISOLATION", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "chapa-quente-secret-key"),
			TTL:    getEnvDuration("JWT_TTL", 7*24*time.Hour),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		},
		SMTP: SMTPConfig{
			Address:  getEnv("SMTP_ADDRESS", ""),
			Host:     getEnv("FROM_EMAIL_SMTP", ""),
			From:     getEnv("FROM_EMAIL", ""),
			Password: getEnv("FROM_EMAIL_PASSWORD", ""),
		},
		Storage: StorageConfig{
			Bucket: getEnv("S3_BUCKET", ""),
			Prefix: getEnv("S3_PREFIX", "products/"),
		},
		Delivery: DeliveryConfig{
			RoutingURL:    getEnv("ROUTING_URL", "https://router.project-osrm.org"),
			StoreLat:      getEnvFloat("STORE_LAT", -25.6478987),
			StoreLng:      getEnvFloat("STORE_LNG", -49.186565),
			RatePerKm:     getEnvFloat("DELIVERY_RATE_PER_KM", 2.00),
			MinFee:        getEnvFloat("DELIVERY_MIN_FEE", 5.00),
			MaxDistanceKm: getEnvFloat("DELIVERY_MAX_DISTANCE_KM", 15),
			Timeout:       getEnvDuration("ROUTING_TIMEOUT", 10*time.Second),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, strings.TrimSuffix(part, "/"))
			}
		}
		return out
	}
	return fallback
}
