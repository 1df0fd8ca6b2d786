package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

type SchedulerConfig struct {
	AutopayEnabled bool
	AutopaySpec    string
	// Username recorded as creator of payrolls started by the scheduler.
	SystemActor string
}

type Config struct {
	Env                string
	Port               string
	JWTSecret          string
	RedisAddr          string
	KafkaBroker        string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	DB                 DatabaseConfig
	Scheduler          SchedulerConfig
}

// Load reads the process environment. Callers are expected to have run
// godotenv.Load beforehand.
func Load() Config {
	return Config{
		Env:                getEnvOrDefault("APP_ENV", "development"),
		Port:               getEnvOrDefault("PORT", "3000"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		OutboxBatchSize:    getEnvInt("OUTBOX_BATCH_SIZE", 50),
		DB: DatabaseConfig{
			Host:       getEnvOrDefault("DB_HOST", "localhost"),
			User:       os.Getenv("DB_USER"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       os.Getenv("DB_NAME"),
			Port:       getEnvOrDefault("DB_PORT", "5432"),
			SSLMode:    getEnvOrDefault("DB_SSLMODE", "disable"),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
		},
		Scheduler: SchedulerConfig{
			AutopayEnabled: getEnvBool("PAYROLL_AUTOPAY_ENABLED", true),
			AutopaySpec:    getEnvOrDefault("PAYROLL_AUTOPAY_CRON", "0 0 1 * *"),
			SystemActor:    getEnvOrDefault("PAYROLL_SYSTEM_ACTOR", "system"),
		},
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
