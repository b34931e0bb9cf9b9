package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/reports/service"
	"schoolku_backend/internals/helpers/apperror"
)

func TestParseWindowDefaults(t *testing.T) {
	t.Parallel()

	w, err := service.ParseWindow("", "", fixedNow)
	require.NoError(t, err)

	assert.True(t, w.Start.Equal(time.Unix(0, 0)))
	assert.True(t, w.End.Equal(fixedNow))
}

func TestParseWindowDateOnlyEndCoversDay(t *testing.T) {
	t.Parallel()

	w, err := service.ParseWindow("2024-01-01", "2024-01-31", fixedNow)
	require.NoError(t, err)

	assert.True(t, w.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseWindowRFC3339IsInclusive(t *testing.T) {
	t.Parallel()

	w, err := service.ParseWindow("2024-01-01T08:00:00+07:00", "2024-01-01T10:00:00Z", fixedNow)
	require.NoError(t, err)

	assert.True(t, w.Contains(time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 1, 1, 10, 0, 1, 0, time.UTC)))
}

func TestParseWindowRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, start, end, field string
	}{
		{name: "start after end", start: "2024-02-01", end: "2024-01-01", field: "start_date"},
		{name: "bad start", start: "01/02/2024", field: "start_date"},
		{name: "bad end", end: "kemarin", field: "end_date"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := service.ParseWindow(tt.start, tt.end, fixedNow)
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Equal(t, tt.field, apperror.FieldOf(err))
		})
	}
}
