package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string
	// Database: "pgx" (pgxpool) or "pq" (database/sql on lib/pq)
	DBDriver string
	DBUrl    string
	// CORS
	FrontendURL    string
	AllowedOrigins []string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitFormThreshold   int
	RateLimitUploadThreshold int
	// Idempotency
	IdempotencyTTLSeconds int
	// Artifact storage: "local" or "s3"
	StorageBackend string
	ThumbnailDir   string
	S3AccessKey    string
	S3SecretKey    string
	S3Region       string
	S3Bucket       string
	S3Prefix       string
	S3Endpoint     string
	// Uploads
	GalleryOverwrite bool
	ImageQuality     int
	MaxImagePixels   int
	MaxRequestBytes  int64
	// Logging
	LogLevel string
	LogDir   string
}

func LoadConfig() (*Config, error) {
	// Load .env file (local only; missing file is fine in production)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "pgx")),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitFormThreshold:   getEnvInt("RATE_LIMIT_FORM_THRESHOLD", 20),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
		IdempotencyTTLSeconds:    getEnvInt("IDEMPOTENCY_TTL_SECONDS", 600),
		// Storage
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "local")),
		ThumbnailDir:   getEnv("THUMBNAIL_DIR", "static/images"),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Prefix:       getEnv("S3_PREFIX", "gallery/"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		// Uploads
		GalleryOverwrite: getEnvBool("GALLERY_OVERWRITE", true),
		ImageQuality:     getEnvInt("IMAGE_QUALITY", 80),
		MaxImagePixels:   getEnvInt("MAX_IMAGE_PIXELS", 40_000_000), // width*height of the source
		MaxRequestBytes:  int64(getEnvInt("MAX_REQUEST_BYTES", 10<<20)), // 10 MiB
		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", ""),
	}

	cfg.AllowedOrigins = append([]string{cfg.FrontendURL}, splitList(getEnv("ALLOWED_ORIGINS", ""))...)

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Contact submissions will fail.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and idempotency will use in-memory fallback.")
	}
	if cfg.StorageBackend == "s3" && cfg.S3Bucket == "" {
		log.Println("WARNING: STORAGE_BACKEND=s3 but S3_BUCKET is empty.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
