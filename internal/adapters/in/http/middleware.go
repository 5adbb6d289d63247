package http

import (
	"errors"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles accepted on protected routes.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

const principalContextKey = "principal"

// Principal is the authenticated caller extracted from a JWT.
type Principal struct {
	Subject string
	Role    string
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates Bearer tokens on protected routes. Tokens are
// HMAC-signed; the role claim decides route access.
type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// RequireRole rejects requests whose token is missing, invalid, or
// carries a role outside the allowed set. Admin always passes.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles)+1)
	allowed[RoleAdmin] = struct{}{}
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := m.authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			if _, ok := allowed[principal.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}

			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

func (m *AuthMiddleware) authenticate(header string) (Principal, error) {
	if header == "" {
		return Principal{}, errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Principal{}, errors.New("invalid authorization header")
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, errors.New("invalid token")
	}
	if claims.Role == "" {
		return Principal{}, errors.New("token has no role claim")
	}

	return Principal{
		Subject: claims.Subject,
		Role:    strings.ToLower(claims.Role),
	}, nil
}

// PrincipalFromContext returns the authenticated caller set by
// RequireRole, or false on public routes.
func PrincipalFromContext(c echo.Context) (Principal, bool) {
	principal, ok := c.Get(principalContextKey).(Principal)
	return principal, ok
}
