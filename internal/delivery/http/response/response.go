package response

import (
	"net/http"

	"authsvc/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// Response unified API response structure
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`    // Business error code, e.g., "USER_NOT_FOUND"
	Details string `json:"details"` // Detailed error description
}

// AuthResponse is the body of a successful registration or login. The user
// and token sit at the top level where existing clients read them.
type AuthResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// User is the public view of a credential.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUser(identity entity.Identity) User {
	return User{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
	}
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Code:    statusCode,
		Message: message,
		Data:    data,
	})
}

// Auth writes a 200 with the identity and its token.
func Auth(c echo.Context, identity entity.Identity, token, message string) error {
	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: message,
		User:    NewUser(identity),
		Token:   token,
	})
}

// Error error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}
