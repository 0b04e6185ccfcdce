package config

import (
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort     string
	Environment string // "development" or "production"

	SessionKey []byte
	SessionExp time.Duration

	SnapURLBaseURL   string
	SnapURLTimeout   time.Duration
	ServiceToken     string // used by the stats poller, not by user sessions
	RealtimePollTick time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TokenSealKey []byte // 32 bytes, hex-encoded in the environment
	DefaultTheme string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:          getEnv("API_PORT", "8080"),
		Environment:      getEnv("APP_ENV", "development"),
		SessionKey:       []byte(getEnv("SESSION_SECRET", "defaultsecret")),
		SessionExp:       time.Duration(getEnvAsInt("SESSION_EXPIRATION_HOURS", 72)) * time.Hour,
		SnapURLTimeout:   time.Duration(getEnvAsInt("SNAPURL_TIMEOUT_SECONDS", 15)) * time.Second,
		ServiceToken:     getEnv("SNAPURL_SERVICE_TOKEN", ""),
		RealtimePollTick: time.Duration(getEnvAsInt("REALTIME_POLL_SECONDS", 10)) * time.Second,
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "user"),
		DBPassword:       getEnv("DB_PASSWORD", "password"),
		DBName:           getEnv("DB_NAME", "snapurl_admin_db"),
		DBSslMode:        getEnv("DB_SSLMODE", "disable"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		DefaultTheme:     getEnv("DEFAULT_THEME", "light"),
	}

	// Base URL follows the environment unless pinned explicitly.
	defaultBase := "http://localhost:5000"
	if AppConfig.Environment == "production" {
		defaultBase = "https://api.snapurl.io"
	}
	AppConfig.SnapURLBaseURL = getEnv("SNAPURL_BASE_URL", defaultBase)

	sealHex := getEnv("TOKEN_SEAL_KEY", "")
	if sealHex != "" {
		key, err := hex.DecodeString(sealHex)
		if err != nil || len(key) != 32 {
			log.Fatalf("TOKEN_SEAL_KEY must be 32 bytes hex-encoded")
		}
		AppConfig.TokenSealKey = key
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
