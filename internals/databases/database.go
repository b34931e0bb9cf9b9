package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/logger"
)

var DB *gorm.DB

func ConnectDB(cfg configs.Config) (*gorm.DB, error) {
	log := logger.Get("db")
	log.Info("🔌 Koneksi ke PostgreSQL...")

	// Catatan: kalau pakai PgBouncer, ganti host/port ke port PgBouncer dan biarkan PreferSimpleProtocol=true
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	DB = db
	log.Info("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.Config) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Get("db").WithError(err).Warn("pool tune err")
		return
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries mengisi pool di background supaya request pertama tidak lambat.
func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			logger.Get("db").WithError(err).Warn("warm-up ping err")
			return
		}
		db.WithContext(ctx).Exec("SELECT 1 FROM report_templates LIMIT 1")
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
