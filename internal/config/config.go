package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	Environment     string
	DBDriver        string
	MySQLDSN        string
	SQLitePath      string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	AuthRequired    bool
	SeedCategories  bool
	OverdueScanSpec string
	CORSOrigins     []string
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("APP_ENV", "production"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/taskboard?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true"),
		SQLitePath:      getEnv("SQLITE_PATH", "taskboard.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		AuthRequired:    getEnvBool("AUTH_REQUIRED", false),
		SeedCategories:  getEnvBool("SEED_CATEGORIES", false),
		OverdueScanSpec: lookupEnv("OVERDUE_SCAN_SPEC", "@every 1h"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

// IsDevelopment reports whether raw error details may be returned to callers.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// lookupEnv differs from getEnv in that an explicitly empty value is kept.
func lookupEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
