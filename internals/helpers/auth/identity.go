// file: internals/helpers/auth/identity.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals Keys (diisi middleware AuthJWT)
   ============================================ */

const (
	LocUserID         = "user_id"          // string | uuid
	LocSchoolID       = "school_id"        // string UUID (dari klaim)
	LocActiveSchoolID = "active_school_id" // string UUID
	LocRolesGlobal    = "roles_global"     // []string
	LocJWTClaims      = "jwt_claims"       // jwt.MapClaims
)

// GetUserID mengambil user_id dari locals.
// 401 kalau belum login, 400 kalau format tidak valid.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	var s string
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
	return id, nil
}

// ParseUUIDParam membaca path param UUID; 400 bila kosong/invalid.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" wajib diisi")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return id, nil
}

// ResolveSchoolID: tenant diambil dari path :school_id.
// Akses ke sekolah tsb sudah diputuskan policy layer di luar service ini.
func ResolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	return ParseUUIDParam(c, "school_id")
}

// ParseOptionalUUIDQuery: query kosong → nil; invalid → 400.
func ParseOptionalUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return &id, nil
}
