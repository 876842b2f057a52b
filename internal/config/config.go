package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	Env    string // "local" or "prod"
	DBPath string

	// DBDriver selects "sqlite" (DBPath) or "postgres" (DBHost...).
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	JWTTTL    time.Duration

	MediaProvider       string
	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	ImageKitPrivateKey  string
	ImageKitUploadURL   string
	UploadFolder        string
	UploadTimeout       time.Duration
	MaxUploadBytes      int64
	TempDir             string

	NatsURL     string
	CORSOrigins []string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	return &Config{
		Port:                getEnv("PORT", "8000"),
		Env:                 getEnv("APP_ENV", "local"),
		DBPath:              getEnv("DB_PATH", "./media_feed.db"),
		DBDriver:            getEnv("DB_DRIVER", "sqlite"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", ""),
		DBName:              getEnv("DB_NAME", "media_feed"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		JWTSecret:           getEnv("JWT_SECRET", "change-me"),
		JWTTTL:              getDuration("JWT_TTL", time.Hour),
		MediaProvider:       getEnv("MEDIA_PROVIDER", "cloudinary"),
		CloudinaryURL:       getEnv("CLOUDINARY_URL", ""),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		ImageKitPrivateKey:  getEnv("IMAGEKIT_PRIVATE_KEY", ""),
		ImageKitUploadURL:   getEnv("IMAGEKIT_UPLOAD_URL", "https://upload.imagekit.io"),
		UploadFolder:        getEnv("UPLOAD_FOLDER", "uploads"),
		UploadTimeout:       getDuration("UPLOAD_TIMEOUT", 60*time.Second),
		MaxUploadBytes:      int64(getInt("MAX_UPLOAD_MB", 64)) << 20,
		TempDir:             getEnv("TEMP_DIR", os.TempDir()),
		NatsURL:             getEnv("NATS_URL", ""),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("Invalid integer, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
