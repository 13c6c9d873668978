package auth

import (
	"time"

	"authsvc/config"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 2 * time.Hour

// jwtService issues and verifies HS256 tokens with a single immutable secret.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService fails with a ConfigError when no signing secret is configured.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.SecretKey.Access == "" {
		return nil, domainerrors.ErrConfigInvalid.WithDetails("secretKey.access").WrapMessage("jwt secret must be provided")
	}

	ttl := defaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return newJWTService(cfg.SecretKey.Access, ttl, time.Now), nil
}

func newJWTService(secret string, ttl time.Duration, now func() time.Time) *jwtService {
	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

func (s *jwtService) Issue(subjectID, email string) (string, error) {
	issuedAt := s.now()
	claims := service.Claims{
		SubjectID: subjectID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return signed, nil
}

// Verify never returns claims from a token whose signature or expiry failed.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("token expired")
		}

		return nil, domainerrors.ErrTokenInvalid.WithDetails(err.Error()).WrapMessage("token rejected")
	}
	if !token.Valid {
		return nil, domainerrors.ErrTokenInvalid.WrapMessage("token rejected")
	}

	return claims, nil
}

func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}

	return s.secret, nil
}
