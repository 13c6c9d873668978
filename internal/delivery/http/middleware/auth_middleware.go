package middleware

import (
	"strings"

	deliverycontext "authsvc/internal/delivery/context"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies bearer tokens. It enforces signature and expiry
// only; there are no roles.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate stores the verified claims for the handler. Failures go to
// the error handler as TOKEN_INVALID or TOKEN_EXPIRED.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrTokenInvalid.WithDetails("authorization header is missing")
		}

		tokenString, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || strings.TrimSpace(tokenString) == "" {
			return domainerrors.ErrTokenInvalid.WithDetails("authorization must be a bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return errors.Wrap(err, "authenticate")
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}
