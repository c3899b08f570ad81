package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AuditBackendPostgres = "postgres"
	AuditBackendMongo    = "mongo"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
	Audit       AuditConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Sales       SalesConfig
	Idempotency IdempotencyConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	Timezone    string
	AutoMigrate bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level string
}

// AuditConfig selects where published sale events are recorded
type AuditConfig struct {
	Backend string
	Timeout time.Duration
}

type MongoConfig struct {
	URI             string
	Database        string
	EventCollection string
}

// RedisConfig enables event broadcasting when Addr is set
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	EventChannel string
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// KafkaConfig enables event forwarding when at least one broker is set
type KafkaConfig struct {
	Brokers    []string
	EventTopic string
}

func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 && c.EventTopic != "" }

type SalesConfig struct {
	CheckoutBranch string
}

type IdempotencyConfig struct {
	TTL time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "developerstore-sales")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "developerstore")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	viper.SetDefault("CORS_ALLOWED_HEADERS", "")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("AUDIT_BACKEND", AuditBackendPostgres)
	viper.SetDefault("AUDIT_TIMEOUT_SECONDS", 5)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "developerstore")
	viper.SetDefault("MONGO_EVENT_COLLECTION", "EventLogs")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_EVENT_CHANNEL", "sales.events")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_EVENT_TOPIC", "sales.events")
	viper.SetDefault("CHECKOUT_BRANCH", "Default Branch")
	viper.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			SSLMode:     viper.GetString("DB_SSL_MODE"),
			Timezone:    viper.GetString("DB_TIMEZONE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Audit: AuditConfig{
			Backend: strings.ToLower(viper.GetString("AUDIT_BACKEND")),
			Timeout: time.Duration(viper.GetInt("AUDIT_TIMEOUT_SECONDS")) * time.Second,
		},
		Mongo: MongoConfig{
			URI:             viper.GetString("MONGO_URI"),
			Database:        viper.GetString("MONGO_DATABASE"),
			EventCollection: viper.GetString("MONGO_EVENT_COLLECTION"),
		},
		Redis: RedisConfig{
			Addr:         viper.GetString("REDIS_ADDR"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			EventChannel: viper.GetString("REDIS_EVENT_CHANNEL"),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(viper.GetString("KAFKA_BROKERS")),
			EventTopic: viper.GetString("KAFKA_EVENT_TOPIC"),
		},
		Sales: SalesConfig{
			CheckoutBranch: viper.GetString("CHECKOUT_BRANCH"),
		},
		Idempotency: IdempotencyConfig{
			TTL: time.Duration(viper.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// splitList turns "a, b,,c" into [a b c]
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
