package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	// Metadata provider (RapidAPI). All three must be set for real
	// resolutions; otherwise the service runs in demo mode.
	RapidAPIKey     string
	RapidAPIHost    string
	ProviderBaseURL string
	ProviderTimeout time.Duration

	BulkDelay      time.Duration
	ReapStaleAfter time.Duration

	RateLimitPerSecond int
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !viper.IsSet("MARIADB_DSN") {
		return nil, fmt.Errorf("MARIADB_DSN is required")
	}
	if !viper.IsSet("MARIADB_MAX_OPEN_CONN") {
		return nil, fmt.Errorf("MARIADB_MAX_OPEN_CONN is required")
	}
	if !viper.IsSet("MARIADB_MAX_IDLE_CONNS") {
		return nil, fmt.Errorf("MARIADB_MAX_IDLE_CONNS is required")
	}
	if !viper.IsSet("MARIADB_CONN_MAX_LIFETIME") {
		return nil, fmt.Errorf("MARIADB_CONN_MAX_LIFETIME is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}

	viper.SetDefault("RAPIDAPI_HOST", "tiktok-download-without-watermark.p.rapidapi.com")
	viper.SetDefault("TIKTOK_API_BASE_URL", "https://tiktok-download-without-watermark.p.rapidapi.com")
	viper.SetDefault("DOWNLOAD_TIMEOUT", 30000)
	viper.SetDefault("BULK_PROCESSING_DELAY", 500)
	viper.SetDefault("REAP_STALE_AFTER", 30)
	viper.SetDefault("RATE_LIMIT_PER_SECOND", 2)

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		JWTSecret: viper.GetString("JWT_SECRET"),

		RapidAPIKey:     viper.GetString("RAPIDAPI_KEY"),
		RapidAPIHost:    viper.GetString("RAPIDAPI_HOST"),
		ProviderBaseURL: viper.GetString("TIKTOK_API_BASE_URL"),
		ProviderTimeout: time.Duration(viper.GetInt("DOWNLOAD_TIMEOUT")) * time.Millisecond,

		BulkDelay:      time.Duration(viper.GetInt("BULK_PROCESSING_DELAY")) * time.Millisecond,
		ReapStaleAfter: time.Duration(viper.GetInt("REAP_STALE_AFTER")) * time.Minute,

		RateLimitPerSecond: viper.GetInt("RATE_LIMIT_PER_SECOND"),
	}, nil
}
