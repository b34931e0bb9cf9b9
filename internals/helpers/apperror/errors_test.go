package apperror_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/helpers/apperror"
)

func TestSentinelMatchingThroughWrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("generate: %w", apperror.Validation("reports.generate", "student_id", "student_id is required"))

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)

	kind, ok := apperror.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, kind)
	assert.Equal(t, "student_id", apperror.FieldOf(err))
	assert.Equal(t, "reports.generate: student_id is required", errors.Unwrap(err).Error())
}

func TestDataAccessClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{name: "deadline", err: context.DeadlineExceeded, transient: true},
		{name: "statement timeout", err: &pgconn.PgError{Code: "57014"}, transient: true},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, transient: true},
		{name: "serialization", err: &pgconn.PgError{Code: "40001"}, transient: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, transient: false},
		{name: "plain", err: errors.New("boom"), transient: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := apperror.DataAccess("store.save", tt.err)
			require.ErrorIs(t, err, apperror.ErrDataAccess)
			assert.Equal(t, tt.transient, apperror.IsTransient(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDataAccessKeepsDomainErrors(t *testing.T) {
	t.Parallel()

	nf := apperror.NotFound("store.get", "report not found")
	err := apperror.DataAccess("store.get", nf)

	assert.Same(t, nf, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Nil(t, apperror.DataAccess("noop", nil))
}
