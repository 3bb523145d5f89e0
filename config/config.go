package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                  = "8080"
	DefaultAccessTokenExpiryMin  = 60
	DefaultRefreshTokenExpiryMin = 7 * 24 * 60
	DefaultCORSOrigins           = "*"
	DefaultLogLevel              = "info"
	DefaultReadTimeoutSec        = 10
	DefaultWriteTimeoutSec       = 10

	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	CookieSecure       bool
	CORSOrigins        string
	LogLevel           string
	ReadTimeoutSec     int
	WriteTimeoutSec    int
	MigrateOnStart     bool
}

// Load reads config/.env.dev (or config/.env.prod when ENV=production) and
// then the process environment. Real environment variables always win over
// file values. A missing required key terminates the process.
func Load() *Config {
	env := os.Getenv("ENV")
	if env == "" {
		env = EnvDevelopment
	}
	src := source{file: readEnvFile(env)}

	return &Config{
		Env:                env,
		Port:               src.getEnv("PORT", DefaultPort),
		DBURL:              src.mustGetEnv("DB_URL"),
		AccessTokenSecret:  src.mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: src.mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:    src.getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:   src.getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		CookieSecure:       src.getEnvAsBool("COOKIE_SECURE", env == EnvProduction),
		CORSOrigins:        src.getEnv("CORS_ORIGINS", DefaultCORSOrigins),
		LogLevel:           src.getEnv("LOG_LEVEL", DefaultLogLevel),
		ReadTimeoutSec:     src.getEnvAsInt("READ_TIMEOUT_SEC", DefaultReadTimeoutSec),
		WriteTimeoutSec:    src.getEnvAsInt("WRITE_TIMEOUT_SEC", DefaultWriteTimeoutSec),
		MigrateOnStart:     src.getEnvAsBool("MIGRATE_ON_START", false),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func readEnvFile(env string) map[string]string {
	name := ".env.dev"
	if env == EnvProduction {
		name = ".env.prod"
	}
	path := filepath.Join("config", name)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		log.Printf("Failed to read %s: %v", path, err)
		return nil
	}
	return values
}

// source resolves keys against the process environment first and the parsed
// env file second.
type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return s.file[key]
}

func (s source) getEnv(key string, defaultVal string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return defaultVal
}

func (s source) mustGetEnv(key string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func (s source) getEnvAsInt(key string, defaultVal int) int {
	valStr := s.lookup(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func (s source) getEnvAsBool(key string, defaultVal bool) bool {
	valStr := strings.TrimSpace(s.lookup(key))
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
