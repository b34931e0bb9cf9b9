package seeds

import (
	"context"
	"path/filepath"

	"gorm.io/gorm"

	reportSeeds "schoolku_backend/internals/seeds/reports"
)

// DefaultSourceFile: data demo satu sekolah (kelas, siswa, ujian, nilai, presensi).
const DefaultSourceFile = "internals/seeds/reports/data_school_demo.json"

// RunAllSeeds mengembalikan jumlah baris baru per tabel.
func RunAllSeeds(ctx context.Context, db *gorm.DB, file string) (reportSeeds.SeedResult, error) {
	if file == "" {
		file = DefaultSourceFile
	}

	//* Report source data
	return reportSeeds.SeedSourceFromJSON(ctx, db, filepath.Clean(file))
}
