package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends accepted in STORE
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds the server settings
type Config struct {
	ServerHost string
	ServerPort string

	Store       string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	IDScheme     string
	HistoryLimit int

	// CORSOrigins is the browser origin allow list; empty allows any origin
	CORSOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) *Config {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load(files...)

	return &Config{
		ServerHost: getEnv("SERVER_HOST", ""),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		Store:       getEnv("STORE", StorePostgres),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "docs_editor"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		IDScheme:     getEnv("ID_SCHEME", "uuid"),
		HistoryLimit: getEnvInt("HISTORY_LIMIT", 100),

		CORSOrigins: getEnvList("CORS_ORIGINS"),
	}
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// GetDatabaseConnectionString prefers DATABASE_URL over the DB_* fields.
func (c *Config) GetDatabaseConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
