package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT hanya memverifikasi token & mengisi identitas ke locals.
// Keputusan akses (role/policy) tidak dilakukan di sini.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}
		c.Locals(helperAuth.LocJWTClaims, claims)

		if v, ok := claims["roles_global"]; ok {
			c.Locals(helperAuth.LocRolesGlobal, readStringSlice(v))
		}
		if sid := strClaim(claims, "school_id"); sid != "" {
			c.Locals(helperAuth.LocActiveSchoolID, sid)
			c.Locals(helperAuth.LocSchoolID, sid)
		}

		// user_id: id → sub → user_id
		uid := ""
		for _, k := range []string{"id", "sub", "user_id"} {
			if uid = strClaim(claims, k); uid != "" {
				break
			}
		}
		if uid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tanpa identitas user")
		}
		if _, err := uuid.Parse(uid); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
		}
		c.Locals(helperAuth.LocUserID, uid)

		return c.Next()
	}
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func readStringSlice(v any) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, it := range t {
			if s, ok := it.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
