package reports

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/school/reports/model"
	"schoolku_backend/internals/logger"
)

// SourceSeed: data contoh tabel sumber; key JSON = tag json di model.
type SourceSeed struct {
	Classes     []model.ClassModel      `json:"classes"`
	Students    []model.StudentModel    `json:"students"`
	Subjects    []model.SubjectModel    `json:"subjects"`
	Courses     []model.CourseModel     `json:"courses"`
	Exams       []model.ExamModel       `json:"exams"`
	Grades      []model.GradeModel      `json:"grades"`
	Attendances []model.AttendanceModel `json:"attendances"`
}

// SeedResult: jumlah baris yang benar-benar baru per tabel.
type SeedResult map[string]int64

func SeedSourceFromJSON(ctx context.Context, db *gorm.DB, filePath string) (SeedResult, error) {
	log := logger.Get("seed")
	log.Info("📥 Membaca file: ", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data SourceSeed
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return SeedSource(ctx, db, data)
}

// SeedSource idempotent: baris dengan primary key yang sudah ada dilewati.
func SeedSource(ctx context.Context, db *gorm.DB, data SourceSeed) (SeedResult, error) {
	log := logger.Get("seed")
	res := SeedResult{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			table string
			rows  any
			n     int
		}{
			{"classes", &data.Classes, len(data.Classes)},
			{"students", &data.Students, len(data.Students)},
			{"subjects", &data.Subjects, len(data.Subjects)},
			{"courses", &data.Courses, len(data.Courses)},
			{"exams", &data.Exams, len(data.Exams)},
			{"grades", &data.Grades, len(data.Grades)},
			{"attendances", &data.Attendances, len(data.Attendances)},
		}
		for _, s := range steps {
			if s.n == 0 {
				continue
			}
			q := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(s.rows)
			if q.Error != nil {
				return fmt.Errorf("seed %s: %w", s.table, q.Error)
			}
			res[s.table] = q.RowsAffected
			log.Infof("✅ %s: %d baru, %d dilewati", s.table, q.RowsAffected, int64(s.n)-q.RowsAffected)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("❌ Seed gagal")
		return nil, err
	}
	return res, nil
}
