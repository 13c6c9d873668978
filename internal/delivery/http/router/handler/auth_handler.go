// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/delivery/http/response"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/errors"
	"authsvc/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves registration, login and the token introspection route.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register handles POST /adduser. The body is JSON or a urlencoded form.
func (h *AuthHandler) Register(c echo.Context) error {
	input := new(usecase.RegisterInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("invalid registration body")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Auth(c, output.Identity, output.Token, "User added successfully")
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("invalid login body")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Auth(c, output.Identity, output.Token, "Login successful")
}

// MeResponse echoes the claims of the presented token.
type MeResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Me handles GET /me. It must run behind AuthMiddleware.Authenticate.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := deliverycontext.GetClaims(c)
	if !ok {
		return domainerrors.ErrTokenInvalid.WithDetails("no verified token on request")
	}

	me := MeResponse{
		ID:    claims.SubjectID,
		Email: claims.Email,
	}
	if claims.IssuedAt != nil {
		me.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		me.ExpiresAt = claims.ExpiresAt.Time
	}

	return response.Success(c, http.StatusOK, me, "Token is valid")
}
