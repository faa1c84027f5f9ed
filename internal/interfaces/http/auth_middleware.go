package http

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/auth"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
)

// Locals keys para la sesión verificada en Fiber.
const (
	LocalSession = "session"
	LocalClaims  = "claims"
)

// Authenticator verifica un token y devuelve la sesión. Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Authenticated, error)
}

// AuthMiddleware acepta `Authorization: Bearer <token>` o la cookie de sesión y guarda
// la sesión y los claims en c.Locals.
func AuthMiddleware(authn Authenticator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractToken(c, cookieName)
		if err != nil {
			return err
		}
		res, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return &requestError{status: fiber.StatusUnauthorized, code: "INVALID_TOKEN", message: "token inválido o expirado"}
			}
			return err
		}
		c.Locals(LocalSession, res.Session)
		c.Locals(LocalClaims, res.Claims)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx, cookieName string) (string, error) {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", &requestError{status: fiber.StatusUnauthorized, code: "INVALID_TOKEN", message: "formato: Bearer <token>"}
		}
		if token := strings.TrimSpace(parts[1]); token != "" {
			return token, nil
		}
	}
	if token := c.Cookies(cookieName); token != "" {
		return token, nil
	}
	return "", &requestError{status: fiber.StatusUnauthorized, code: "MISSING_TOKEN", message: "se requiere autenticación"}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := GetSession(c)
		if !ok {
			return &requestError{status: fiber.StatusUnauthorized, code: "MISSING_TOKEN", message: "se requiere autenticación"}
		}
		if !slices.Contains(roles, s.Role()) {
			return &requestError{status: fiber.StatusForbidden, code: "FORBIDDEN", message: "rol sin permiso para esta operación"}
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth).
func GetSession(c *fiber.Ctx) (access.Session, bool) {
	s, ok := c.Locals(LocalSession).(access.Session)
	return s, ok
}

// GetClaims devuelve los claims del token de la petición.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// GetUserID devuelve el id del usuario autenticado, 0 si no hay sesión.
func GetUserID(c *fiber.Ctx) int64 {
	if s, ok := GetSession(c); ok {
		return s.UserID()
	}
	return 0
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) entity.Role {
	if s, ok := GetSession(c); ok {
		return s.Role()
	}
	return ""
}

// mustSession sesión de una ruta protegida; el middleware garantiza que existe.
func mustSession(c *fiber.Ctx) (access.Session, error) {
	s, ok := GetSession(c)
	if !ok {
		return access.Session{}, &requestError{status: fiber.StatusUnauthorized, code: "MISSING_TOKEN", message: "se requiere autenticación"}
	}
	return s, nil
}
