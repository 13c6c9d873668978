package auth

import (
	"strings"
	"testing"
	"time"

	"authsvc/config"
	domainerrors "authsvc/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

// fakeClock lets tests move time after a token was issued.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func newTestJWTService(clock *fakeClock) *jwtService {
	return newJWTService(testSecret, 2*time.Hour, clock.Now)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{current: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestJWTService(clock)

	token, err := svc.Issue("AbC123_-xY", "ana@x.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "AbC123_-xY", claims.SubjectID)
	assert.Equal(t, "AbC123_-xY", claims.Subject)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, clock.current.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clock.current.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTService_ExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{current: issuedAt}
	svc := newTestJWTService(clock)

	token, err := svc.Issue("AbC123_-xY", "ana@x.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "one minute later", at: issuedAt.Add(time.Minute)},
		{name: "just before expiry", at: issuedAt.Add(2*time.Hour - time.Second)},
		{name: "exactly at expiry", at: issuedAt.Add(2 * time.Hour), wantErr: domainerrors.ErrTokenExpired},
		{name: "121 minutes later", at: issuedAt.Add(121 * time.Minute), wantErr: domainerrors.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.current = tt.at

			claims, err := svc.Verify(token)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "ana@x.com", claims.Email)

				return
			}

			require.Error(t, err)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestJWTService_TamperedSignature(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	svc := newTestJWTService(clock)

	token, err := svc.Issue("AbC123_-xY", "ana@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	claims, err := svc.Verify(tampered)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	now := time.Now()
	svc := newTestJWTService(&fakeClock{current: now})

	claims := jwt.MapClaims{
		"id":    "AbC123_-xY",
		"email": "ana@x.com",
		"exp":   now.Add(time.Hour).Unix(),
	}

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "x"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret":    otherSecret,
		"wrong algorithm": otherAlg,
		"alg none":        unsigned,
		"missing exp":     noExpiry,
		"garbage":         "clearly-not-a-jwt-token-format",
		"empty":           "",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := svc.Verify(token)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
		})
	}
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.True(t, errors.Is(err, domainerrors.ErrConfigInvalid))
}

func TestNewJWTService_UsesConfiguredTTL(t *testing.T) {
	cfg := &config.Config{SecretKey: config.SecretKeyConfig{Access: testSecret}}
	cfg.ApplyDefaults()

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, svc.TTL())

	cfg.Auth.TokenTTL = 30 * time.Minute
	svc, err = NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, svc.TTL())
}
