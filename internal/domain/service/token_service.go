package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token. SubjectID duplicates the registered
// subject under the "id" key that existing clients decode.
type Claims struct {
	SubjectID string `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	// Issue signs claims for the subject, valid for TTL from now.
	Issue(subjectID, email string) (string, error)

	// Verify fails with domainerrors.ErrTokenExpired once now >= exp and with
	// domainerrors.ErrTokenInvalid for any signature or structure problem.
	Verify(tokenString string) (*Claims, error)

	// TTL returns the validity window of issued tokens.
	TTL() time.Duration
}
