package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Seed sources understood by SEED_SOURCE.
const (
	SeedEmbedded  = "embedded"
	SeedFile      = "file"
	SeedPostgres  = "postgres"
	SeedElastic   = "elastic"
	SeedDatastore = "datastore"
)

var DefaultEnvConfig *EnvConfig

type EnvConfig struct {
	APP_PORT string
	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
	// seed config
	SEED_SOURCE          string
	SEED_FILE            string
	ELASTIC_URL          string
	ELASTIC_INDEX        string
	DATASTORE_PROJECT_ID string
	DATASTORE_KIND       string
	// DB_SEED_AFTER_ID resumes a postgres seed after this id; DB_SEED_LIMIT caps its rows.
	DB_SEED_AFTER_ID int
	DB_SEED_LIMIT    int
	// directory behaviour
	SAVE_DELAY         time.Duration
	DEFAULT_PAGE_SIZE  int
	EXPORT_CONFIG_PATH string
}

// LoadEnvConfig reads .env when present and fills DefaultEnvConfig from the environment.
func LoadEnvConfig() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	DefaultEnvConfig = cfg
	return nil
}

// Load returns the configuration without touching DefaultEnvConfig.
func Load() (*EnvConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &EnvConfig{
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "postgres"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
		SEED_SOURCE:          getEnvString("SEED_SOURCE", SeedEmbedded),
		SEED_FILE:            getEnvString("SEED_FILE", ""),
		ELASTIC_URL:          getEnvString("ELASTIC_URL", "http://localhost:9200"),
		ELASTIC_INDEX:        getEnvString("ELASTIC_INDEX", "employees"),
		DATASTORE_PROJECT_ID: getEnvString("DATASTORE_PROJECT_ID", ""),
		DATASTORE_KIND:       getEnvString("DATASTORE_KIND", "Employee"),
		DB_SEED_AFTER_ID:     getEnvInt("DB_SEED_AFTER_ID", 0),
		DB_SEED_LIMIT:        getEnvInt("DB_SEED_LIMIT", 0),
		SAVE_DELAY:           getEnvDuration("SAVE_DELAY", 500*time.Millisecond),
		DEFAULT_PAGE_SIZE:    getEnvInt("DEFAULT_PAGE_SIZE", 10),
		EXPORT_CONFIG_PATH:   getEnvString("EXPORT_CONFIG_PATH", ""),
	}, nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
