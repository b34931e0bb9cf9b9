package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/logger"
)

// Migrate membuat/menyesuaikan tabel report + read model tabel sumber (dev & CLI).
// Di production tabel sumber dikelola modul pemiliknya.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Get("db").Info("✅ Migrasi selesai")
	return nil
}
