package service

import (
	"strings"
	"time"

	"schoolku_backend/internals/helpers/apperror"
)

const dateOnly = "2006-01-02"

// ParseWindow: start default epoch, end default now. Tanggal tanpa jam pada
// endDate mencakup seluruh hari tersebut (UTC).
func ParseWindow(startRaw, endRaw string, now time.Time) (Window, error) {
	const op = "reports.window"

	w := Window{Start: time.Unix(0, 0).UTC(), End: now.UTC()}

	if s := strings.TrimSpace(startRaw); s != "" {
		t, _, err := parseDate(s)
		if err != nil {
			return Window{}, apperror.Validation(op, "start_date", "start_date must be RFC3339 or YYYY-MM-DD")
		}
		w.Start = t
	}
	if s := strings.TrimSpace(endRaw); s != "" {
		t, isDate, err := parseDate(s)
		if err != nil {
			return Window{}, apperror.Validation(op, "end_date", "end_date must be RFC3339 or YYYY-MM-DD")
		}
		if isDate {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		w.End = t
	}
	if w.Start.After(w.End) {
		return Window{}, apperror.Validation(op, "start_date", "start_date must not be after end_date")
	}
	return w, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), true, nil
}
