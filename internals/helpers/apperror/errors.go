// file: internals/helpers/apperror/errors.go
package apperror

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind mengelompokkan error domain supaya layer HTTP bisa memetakan status.
type Kind string

const (
	KindValidation  Kind = "VALIDATION_ERROR"
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindAggregation Kind = "AGGREGATION_ERROR"
	KindDataAccess  Kind = "DATA_ACCESS_ERROR"
)

// Sentinel untuk errors.Is(err, apperror.ErrNotFound) dst.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrConflict    = &Error{Kind: KindConflict}
	ErrAggregation = &Error{Kind: KindAggregation}
	ErrDataAccess  = &Error{Kind: KindDataAccess}
)

type Error struct {
	Kind    Kind
	Op      string // operasi asal, mis. "reports.generate"
	Field   string // field input yang bermasalah (validation)
	Message string
	// Transient hanya bermakna untuk KindDataAccess: caller boleh retry dengan backoff.
	Transient bool
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(strings.ToLower(string(e.Kind)))
	}
	if e.Message != "" && e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is mencocokkan berdasarkan Kind, sehingga sentinel di atas berfungsi.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

/* ============================================
   Constructors
============================================ */

func Validation(op, field, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Message: msg}
}

func NotFound(op, msg string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: msg}
}

func Conflict(op, msg string) error {
	return &Error{Kind: KindConflict, Op: op, Message: msg}
}

func Aggregation(op, msg string, args ...any) error {
	return &Error{Kind: KindAggregation, Op: op, Message: fmt.Sprintf(msg, args...)}
}

// DataAccess membungkus error storage dan menandai apakah bersifat transient.
// Error yang sudah berupa *Error dikembalikan apa adanya.
func DataAccess(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindDataAccess, Op: op, Err: err, Transient: IsTransient(err)}
}

/* ============================================
   Inspectors
============================================ */

func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

func FieldOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Field
	}
	return ""
}

// IsTransient: timeout, koneksi putus, atau SQLSTATE yang layak di-retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Kind == KindDataAccess && ae.Transient {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return true
		case strings.HasPrefix(pgErr.Code, "53"): // insufficient resources
			return true
		case pgErr.Code == "57014", pgErr.Code == "57P01", pgErr.Code == "57P03": // statement_timeout, admin shutdown, cannot connect now
			return true
		case pgErr.Code == "40001", pgErr.Code == "40P01": // serialization failure, deadlock
			return true
		}
		return false
	}
	if pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
