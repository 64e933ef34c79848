package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Ingest   IngestConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled   bool
	NearbyTTL time.Duration
	ListTTL   time.Duration
}

type IngestConfig struct {
	DatasetPath     string
	DatasetURL      string
	DownloadTimeout time.Duration
	ProgressEvery   int
	ChunkSize       int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()
	viper.SetDefault("CACHE_ENABLED", true)

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine, environment variables and defaults
		// still apply. Anything else is a real configuration problem.
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Driver:          viper.GetString("DB_DRIVER"),
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled:   viper.GetBool("CACHE_ENABLED"),
			NearbyTTL: time.Duration(viper.GetInt("NEARBY_CACHE_TTL")) * time.Second,
			ListTTL:   time.Duration(viper.GetInt("LIST_CACHE_TTL")) * time.Second,
		},
		Ingest: IngestConfig{
			DatasetPath:     viper.GetString("INGEST_DATASET_PATH"),
			DatasetURL:      viper.GetString("INGEST_DATASET_URL"),
			DownloadTimeout: time.Duration(viper.GetInt("INGEST_DOWNLOAD_TIMEOUT")) * time.Second,
			ProgressEvery:   viper.GetInt("INGEST_PROGRESS_EVERY"),
			ChunkSize:       viper.GetInt("INGEST_CHUNK_SIZE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300 * time.Second
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 60 * time.Second
	}
	if cfg.Cache.NearbyTTL == 0 {
		cfg.Cache.NearbyTTL = 60 * time.Second
	}
	if cfg.Cache.ListTTL == 0 {
		cfg.Cache.ListTTL = 300 * time.Second
	}
	if cfg.Ingest.DatasetPath == "" {
		cfg.Ingest.DatasetPath = "data/00-2025-wifi_gratuito_en_cdmx.xlsx"
	}
	if cfg.Ingest.DownloadTimeout == 0 {
		cfg.Ingest.DownloadTimeout = 120 * time.Second
	}
	if cfg.Ingest.ProgressEvery == 0 {
		cfg.Ingest.ProgressEvery = 5000
	}
	if cfg.Ingest.ChunkSize == 0 {
		cfg.Ingest.ChunkSize = 500
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
