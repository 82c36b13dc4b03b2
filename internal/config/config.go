package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port        string
	DBDriver    string
	DBPath      string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	StaticDir   string
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

// Load reads .env when present and then the process environment. The bool
// reports whether a .env file was loaded.
func Load() (Config, bool) {
	loaded := godotenv.Load() == nil
	return FromEnv(), loaded
}

func FromEnv() Config {
	cfg := Config{
		Port:        GetEnv("PORT", "5000"),
		DBDriver:    strings.ToLower(GetEnv("DB_DRIVER", DriverSQLite)),
		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBPort:      GetEnv("DB_PORT", "5432"),
		DBUser:      GetEnv("DB_USER", "postgres"),
		DBPassword:  GetEnv("DB_PASSWORD"),
		DBSSLMode:   GetEnv("DB_SSLMODE", "disable"),
		StaticDir:   GetEnv("STATIC_DIR", "frontend"),
		CORSOrigins: splitList(GetEnv("CORS_ORIGINS", "*")),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogFormat:   GetEnv("LOG_FORMAT", "text"),
	}

	if cfg.DBDriver == DriverPostgres {
		cfg.DBName = GetEnv("DB_NAME", "studentdb")
		return cfg
	}

	// Read-only platforms only allow writes under /tmp.
	dir := "."
	if os.Getenv("VERCEL") != "" {
		dir = "/tmp"
	}
	cfg.DBName = GetEnv("DB_NAME", "students.db")
	cfg.DBPath = GetEnv("DB_PATH", filepath.Join(GetEnv("DB_DIR", dir), cfg.DBName))
	return cfg
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// PostgresDSN builds a key/value DSN from the DB_* settings.
func (c Config) PostgresDSN() string {
	parts := []string{
		"host=" + c.DBHost,
		"user=" + c.DBUser,
		"password=" + c.DBPassword,
		"dbname=" + c.DBName,
		"port=" + c.DBPort,
		"sslmode=" + c.DBSSLMode,
	}
	return strings.Join(parts, " ")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
