package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"schoolku_backend/internals/logger"
)

// =======================
// CONFIG
// =======================
type Config struct {
	Port string `env:"PORT" envDefault:"3000"`

	DBUser             string `env:"DB_USER"`
	DBPassword         string `env:"DB_PASSWORD"`
	DBHost             string `env:"DB_HOST" envDefault:"localhost"`
	DBPort             string `env:"DB_PORT" envDefault:"5432"`
	DBName             string `env:"DB_NAME"`
	DBSSLMode          string `env:"DB_SSLMODE" envDefault:"require"`
	DBStatementTimeout int    `env:"DB_STATEMENT_TIMEOUT_MS" envDefault:"3000"`
	DBMaxOpenConns     int    `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns     int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	AutoMigrate        bool   `env:"AUTO_MIGRATE" envDefault:"false"`

	JWTSecret string `env:"JWT_SECRET"`

	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"300"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	// batas waktu fase fetch saat generate report (di bawah REQUEST_TIMEOUT)
	ReportFetchTimeout time.Duration `env:"REPORT_FETCH_TIMEOUT" envDefault:"4s"`

	Log logger.Config
}

// DSN menyertakan statement_timeout supaya query berat tidak menggantung pool.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolku&options=-c%%20statement_timeout%%3D%d",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode, c.DBStatementTimeout,
	)
}

// =======================
// ENV LOADER
// =======================

// LoadEnv membaca .env (kecuali di Railway) lalu mem-parse Config.
func LoadEnv() (Config, error) {
	log := logger.Get("app")
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Info("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Info("🚀 Running in Railway, menggunakan ENV dari sistem")
	}
	return Load()
}

// Load hanya mem-parse environment saat ini.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ReportFetchTimeout <= 0 || cfg.ReportFetchTimeout > cfg.RequestTimeout {
		cfg.ReportFetchTimeout = cfg.RequestTimeout
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}
	if cfg.JWTSecret == "" {
		logger.Get("app").Warn("❌ JWT_SECRET belum diset!")
	}
	return cfg, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
