package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Ledger   LedgerConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	// URL, when set, wins over the discrete fields (hosted Postgres connection strings).
	URL            string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	MigrateOnStart bool
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// LedgerConfig holds defaults for the form routes that predate per-user accounts.
type LedgerConfig struct {
	DefaultAccountID int64
	DefaultCurrency  string
	RecentLimit      int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables are enough in containers.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	requestTimeout := getEnvInt("REQUEST_TIMEOUT", 10)
	jwtExp := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	refreshExp := getEnvInt("JWT_REFRESH_EXPIRATION_HOURS", 168)

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "5050"),
			ReadTimeout:    time.Duration(readTimeout) * time.Second,
			WriteTimeout:   time.Duration(writeTimeout) * time.Second,
			RequestTimeout: time.Duration(requestTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "finance_tracker"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns:       int32(getEnvInt("DB_MIN_CONNS", 1)),
			MigrateOnStart: getEnv("DB_MIGRATE_ON_START", "true") == "true",
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Ledger: LedgerConfig{
			DefaultAccountID: int64(getEnvInt("DEFAULT_ACCOUNT_ID", 1)),
			DefaultCurrency:  strings.ToUpper(getEnv("DEFAULT_CURRENCY", "ZAR")),
			RecentLimit:      getEnvInt("DASHBOARD_RECENT_LIMIT", 10),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
