package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/reports/dto"
	"schoolku_backend/internals/features/school/reports/model"
	reportRoute "schoolku_backend/internals/features/school/reports/route"
	"schoolku_backend/internals/features/school/reports/service"
	appLogger "schoolku_backend/internals/logger"
)

// ErrSchoolRequired dikembalikan jika --school kosong.
var ErrSchoolRequired = errors.New("--school wajib diisi")

type generateFlags struct {
	school, by        string
	reportType, tpl   string
	student, class    string
	title, start, end string
}

func newGenerateCommand(open Opener) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate satu report on-demand dan cetak hasilnya (JSON)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, schoolID, by, err := f.request()
			if err != nil {
				return err
			}
			return withDB(cmd, open, func(ctx context.Context, db *gorm.DB, s Settings) error {
				deps := reportRoute.NewDeps(db, service.Options{
					FetchTimeout: s.FetchTimeout,
					Logger:       appLogger.Get("report"),
				})
				m, err := deps.Reports.Generate(ctx, schoolID, by, req)
				if err != nil {
					return err
				}
				out, err := sonic.ConfigStd.MarshalIndent(dto.NewReportResponse(m), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.school, "school", "", "school id (tenant)")
	fl.StringVar(&f.by, "by", "", "user id pembuat (default: nil uuid)")
	fl.StringVarP(&f.reportType, "type", "t", "", "ACADEMIC_PROGRESS | ATTENDANCE_SUMMARY | CLASS_PERFORMANCE | EXAM_RESULTS")
	fl.StringVar(&f.tpl, "template", "", "template id (opsional)")
	fl.StringVar(&f.student, "student", "", "student id")
	fl.StringVar(&f.class, "class", "", "class id")
	fl.StringVar(&f.title, "title", "", "judul report")
	fl.StringVar(&f.start, "start", "", "awal window (YYYY-MM-DD atau RFC3339)")
	fl.StringVar(&f.end, "end", "", "akhir window (YYYY-MM-DD atau RFC3339)")
	return cmd
}

func (f generateFlags) request() (service.GenerateRequest, uuid.UUID, uuid.UUID, error) {
	var req service.GenerateRequest

	if strings.TrimSpace(f.school) == "" {
		return req, uuid.Nil, uuid.Nil, ErrSchoolRequired
	}
	schoolID, err := uuid.Parse(strings.TrimSpace(f.school))
	if err != nil {
		return req, uuid.Nil, uuid.Nil, fmt.Errorf("--school: %w", err)
	}
	by := uuid.Nil
	if s := strings.TrimSpace(f.by); s != "" {
		if by, err = uuid.Parse(s); err != nil {
			return req, uuid.Nil, uuid.Nil, fmt.Errorf("--by: %w", err)
		}
	}

	req = service.GenerateRequest{
		Type:      model.ReportType(strings.ToUpper(strings.TrimSpace(f.reportType))),
		Title:     f.title,
		StartDate: f.start,
		EndDate:   f.end,
	}
	for _, o := range []struct {
		name string
		raw  string
		dst  **uuid.UUID
	}{
		{"--template", f.tpl, &req.TemplateID},
		{"--student", f.student, &req.StudentID},
		{"--class", f.class, &req.ClassID},
	} {
		if s := strings.TrimSpace(o.raw); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return req, uuid.Nil, uuid.Nil, fmt.Errorf("%s: %w", o.name, err)
			}
			*o.dst = &id
		}
	}
	return req, schoolID, by, nil
}
