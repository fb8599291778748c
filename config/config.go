package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	CORS      CORSConfig
	S3        S3Config
	SMTP      SMTPConfig
	Geocode   GeocodeConfig
	Search    SearchConfig
	Login     LoginConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	URL      string // DATABASE_URL takes precedence over the discrete fields
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoConfig points at the auxiliary document store used only for the
// total account counter. An empty URI disables it.
type MongoConfig struct {
	URI               string
	Database          string
	UserCollection    string
	LojistaCollection string
	ConnectTimeout    time.Duration
}

// RedisConfig is optional. An empty Host disables the login limiter.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CDN or bucket URL used to build public image links
	MaxImageSize    int64
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type GeocodeConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// SearchConfig holds the proximity radii in meters.
type SearchConfig struct {
	LojistasRadius       int
	BuscaRadius          int
	ProximosRadius       int
	MinTopRatedAvaliacao float64
}

type LoginConfig struct {
	MaxAttempts   int
	AttemptWindow time.Duration
}

type SchedulerConfig struct {
	OrphanSweepSpec  string
	OrphanSweepBatch int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", getEnv("PORT", "3000")),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "apifind"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:               getEnv("MONGO_URI", ""),
			Database:          getEnv("MONGO_DATABASE", "Usuarios"),
			UserCollection:    getEnv("MONGO_USER_COLLECTION", "User"),
			LojistaCollection: getEnv("MONGO_LOJISTA_COLLECTION", "Lojista"),
			ConnectTimeout:    parseDuration(getEnv("MONGO_CONNECT_TIMEOUT", "10s"), 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "*")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "sa-east-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", "apifind-images"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
			MaxImageSize:    int64(parseInt(getEnv("MAX_IMAGE_SIZE", "5242880"), 5<<20)),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", getEnv("SMTP_USERNAME", "")),
		},
		Geocode: GeocodeConfig{
			BaseURL: getEnv("GEOCODE_BASE_URL", "https://api.opencagedata.com/geocode/v1/json"),
			APIKey:  getEnv("OPENCAGE_API_KEY", ""),
			Timeout: parseDuration(getEnv("GEOCODE_TIMEOUT", "10s"), 10*time.Second),
		},
		Search: SearchConfig{
			LojistasRadius:       parseInt(getEnv("SEARCH_RADIUS_LOJISTAS_M", "20000"), 20000),
			BuscaRadius:          parseInt(getEnv("SEARCH_RADIUS_BUSCA_M", "5000"), 5000),
			ProximosRadius:       parseInt(getEnv("SEARCH_RADIUS_PROXIMOS_M", "20000"), 20000),
			MinTopRatedAvaliacao: parseFloat(getEnv("TOP_RATED_MIN_AVALIACAO", "4.0"), 4.0),
		},
		Login: LoginConfig{
			MaxAttempts:   parseInt(getEnv("LOGIN_MAX_ATTEMPTS", "5"), 5),
			AttemptWindow: parseDuration(getEnv("LOGIN_ATTEMPT_WINDOW", "15m"), 15*time.Minute),
		},
		Scheduler: SchedulerConfig{
			OrphanSweepSpec:  getEnv("ORPHAN_SWEEP_CRON", "*/15 * * * *"),
			OrphanSweepBatch: parseInt(getEnv("ORPHAN_SWEEP_BATCH", "50"), 50),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("Invalid number %s, using default %v", s, fallback)
		return fallback
	}
	return f
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
