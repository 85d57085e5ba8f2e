package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int

	JWTSecret string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	MinIOHost      string
	MinIOPort      string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string

	// ModelPath is the local artifact location; ModelKey is the object key in
	// the MinIO bucket the artifact is fetched from when the file is missing.
	ModelPath string
	ModelKey  string
}

func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.JWTSecret = envOr("JWT_SECRET", "dev-secret")

	cfg.RedisHost = envOr("REDIS_HOST", "127.0.0.1")
	cfg.RedisPort = envIntOr("REDIS_PORT", 6379)
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = envIntOr("REDIS_DB", 0)

	cfg.MinIOHost = envOr("MINIO_HOST", "127.0.0.1")
	cfg.MinIOPort = envOr("MINIO_PORT", "9000")
	cfg.MinIOAccessKey = envOr("MINIO_ACCESS_KEY", "minioadmin")
	cfg.MinIOSecretKey = envOr("MINIO_SECRET_KEY", "minioadmin")
	cfg.MinIOBucket = envOr("MINIO_BUCKET", "models")

	cfg.ModelPath = envOr("MODEL_PATH", "models/hypertension_gbt.json")
	cfg.ModelKey = envOr("MODEL_KEY", "hypertension_gbt.json")

	log.Info("config parsed")

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
