// internals/features/school/reports/controller/common.go
package controller

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// newValidator: nama field di pesan error memakai tag json.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindAndValidate: parse body JSON lalu validasi struct.
// Error dikembalikan dalam bentuk yang dipahami helper.FromError.
func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate) (*T, error) {
	var req T
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, constants.MsgInvalidBody)
	}
	if err := v.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// tenantAndID: :school_id + :id sekaligus.
func tenantAndID(c *fiber.Ctx) (schoolID, id uuid.UUID, err error) {
	if schoolID, err = helperAuth.ResolveSchoolID(c); err != nil {
		return
	}
	id, err = helperAuth.ParseUUIDParam(c, "id")
	return
}

func fail(c *fiber.Ctx, err error) error {
	return helper.FromError(c, err)
}
