package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Payment provider identifiers accepted by PAYMENT_PROVIDER.
const (
	PaymentProviderStripe   = "stripe"
	PaymentProviderMidtrans = "midtrans"
)

type Config struct {
	Env  string
	Port int

	Mongo        MongoConfig
	Redis        RedisConfig
	Cache        CacheConfig
	Audit        AuditConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	Payment      PaymentConfig
	Compensation CompensationConfig
}

// MongoConfig describes the document store connection.
type MongoConfig struct {
	URI            string
	User           string
	Password       string
	Host           string
	AppName        string
	Database       string
	OpTimeout      time.Duration
	ConnectRetries int
	RetryDelay     time.Duration
	Transactions   bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig toggles response caching for public read endpoints.
type CacheConfig struct {
	Enabled  bool
	StatsTTL time.Duration
}

// AuditConfig configures the Postgres-backed audit journal.
type AuditConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PaymentConfig selects and configures the payment-intent provider.
type PaymentConfig struct {
	Provider           string
	StripeSecretKey    string
	Currency           string
	MidtransServerKey  string
	MidtransProduction bool
}

// CompensationConfig tunes the repair worker for non-transactional multi-step writes.
type CompensationConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Mongo = MongoConfig{
		URI:            v.GetString("MONGO_URI"),
		User:           v.GetString("DB_USER"),
		Password:       v.GetString("DB_PASS"),
		Host:           v.GetString("MONGO_HOST"),
		AppName:        v.GetString("MONGO_APP_NAME"),
		Database:       v.GetString("MONGO_DATABASE"),
		OpTimeout:      parseDuration(v.GetString("MONGO_OP_TIMEOUT"), 5*time.Second),
		ConnectRetries: v.GetInt("MONGO_CONNECT_RETRIES"),
		RetryDelay:     parseDuration(v.GetString("MONGO_RETRY_DELAY"), 2*time.Second),
		Transactions:   v.GetBool("MONGO_TRANSACTIONS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled:  v.GetBool("ENABLE_CACHE"),
		StatsTTL: parseDuration(v.GetString("STATS_CACHE_TTL"), 30*time.Second),
	}

	cfg.Audit = AuditConfig{
		Enabled:      v.GetBool("ENABLE_AUDIT"),
		Host:         v.GetString("AUDIT_DB_HOST"),
		Port:         v.GetInt("AUDIT_DB_PORT"),
		User:         v.GetString("AUDIT_DB_USER"),
		Password:     v.GetString("AUDIT_DB_PASSWORD"),
		Name:         v.GetString("AUDIT_DB_NAME"),
		SSLMode:      v.GetString("AUDIT_DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("AUDIT_DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("AUDIT_DB_MAX_IDLE_CONNS"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("ACCESS_TOKEN_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	stripeKey := v.GetString("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		stripeKey = v.GetString("PAYMENT_SECRET_KEY")
	}
	cfg.Payment = PaymentConfig{
		Provider:           strings.ToLower(v.GetString("PAYMENT_PROVIDER")),
		StripeSecretKey:    stripeKey,
		Currency:           strings.ToLower(v.GetString("PAYMENT_CURRENCY")),
		MidtransServerKey:  v.GetString("MIDTRANS_SERVER_KEY"),
		MidtransProduction: v.GetBool("MIDTRANS_PRODUCTION"),
	}

	cfg.Compensation = CompensationConfig{
		Workers:    v.GetInt("COMPENSATION_WORKERS"),
		MaxRetries: v.GetInt("COMPENSATION_RETRIES"),
		RetryDelay: parseDuration(v.GetString("COMPENSATION_RETRY_DELAY"), 5*time.Second),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)

	v.SetDefault("MONGO_URI", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("MONGO_HOST", "localhost:27017")
	v.SetDefault("MONGO_APP_NAME", "studyhive-api")
	v.SetDefault("MONGO_DATABASE", "studyHiveDB")
	v.SetDefault("MONGO_OP_TIMEOUT", "5s")
	v.SetDefault("MONGO_CONNECT_RETRIES", 3)
	v.SetDefault("MONGO_RETRY_DELAY", "2s")
	v.SetDefault("MONGO_TRANSACTIONS", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("STATS_CACHE_TTL", "30s")

	v.SetDefault("ENABLE_AUDIT", false)
	v.SetDefault("AUDIT_DB_HOST", "localhost")
	v.SetDefault("AUDIT_DB_PORT", 5432)
	v.SetDefault("AUDIT_DB_USER", "postgres")
	v.SetDefault("AUDIT_DB_PASSWORD", "postgres")
	v.SetDefault("AUDIT_DB_NAME", "studyhive_audit")
	v.SetDefault("AUDIT_DB_SSL_MODE", "disable")
	v.SetDefault("AUDIT_DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("AUDIT_DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("ACCESS_TOKEN_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "1h")
	v.SetDefault("JWT_ISSUER", "studyhive")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PAYMENT_PROVIDER", PaymentProviderStripe)
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("PAYMENT_SECRET_KEY", "")
	v.SetDefault("PAYMENT_CURRENCY", "usd")
	v.SetDefault("MIDTRANS_SERVER_KEY", "")
	v.SetDefault("MIDTRANS_PRODUCTION", false)

	v.SetDefault("COMPENSATION_WORKERS", 1)
	v.SetDefault("COMPENSATION_RETRIES", 5)
	v.SetDefault("COMPENSATION_RETRY_DELAY", "5s")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
