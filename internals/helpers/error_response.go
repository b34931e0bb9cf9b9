package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"schoolku_backend/internals/helpers/apperror"
)

// FromError memetakan error dari service/repository ke status HTTP + envelope standar.
//   - Validation  → 422 (errors[field])
//   - NotFound    → 404
//   - Conflict    → 409
//   - Aggregation → 422 AGGREGATION_ERROR
//   - DataAccess  → 503 jika transient, selain itu 500
//   - *fiber.Error → kode aslinya
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return JsonValidatorError(c, ve)
	}

	var ae *apperror.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperror.KindValidation:
			field := ae.Field
			if field == "" {
				field = "_"
			}
			return JsonValidationError(c, ae.Message, map[string][]string{field: {ae.Message}})
		case apperror.KindNotFound:
			return JsonError(c, fiber.StatusNotFound, ae.Message)
		case apperror.KindConflict:
			return JsonError(c, fiber.StatusConflict, ae.Message)
		case apperror.KindAggregation:
			return JsonErrorCode(c, fiber.StatusUnprocessableEntity, "AGGREGATION_ERROR", ae.Message)
		case apperror.KindDataAccess:
			if ae.Transient {
				return JsonError(c, fiber.StatusServiceUnavailable, "data source temporarily unavailable")
			}
			return JsonError(c, fiber.StatusInternalServerError, "data access failed")
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}

// JsonValidatorError: hasil validator.v10 → 422, key memakai nama field json.
func JsonValidatorError(c *fiber.Ctx, ve validator.ValidationErrors) error {
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := fe.Field()
		if name == "" {
			name = strings.ToLower(fe.StructField())
		}
		out[name] = append(out[name], fe.Tag())
	}
	return JsonValidationError(c, "validation failed", out)
}
