package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/delivery/http/response"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"
	"authsvc/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase records the inputs the handler bound from the request.
type stubAuthUsecase struct {
	mock.Mock
}

func (s *stubAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := s.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

func (s *stubAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := s.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.AuthOutput)

	return out, args.Error(1)
}

type stubContextUsecase struct {
	record *entity.ContextRecord
	err    error
}

func (s stubContextUsecase) GetLatest(context.Context) (*entity.ContextRecord, error) {
	return s.record, s.err
}

func TestAuthHandler_Register_JSON(t *testing.T) {
	uc := &stubAuthUsecase{}
	uc.On("Register", mock.Anything, &usecase.RegisterInput{Name: "Ana", Email: "ana@x.com", Password: "secret123"}).
		Return(&usecase.AuthOutput{
			Identity: entity.Identity{ID: "V1StGXR8_Z", Name: "Ana", Email: "ana@x.com"},
			Token:    "signed.token.value",
		}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/adduser",
		strings.NewReader(`{"name":"Ana","email":"ana@x.com","password":"secret123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := NewAuthHandler(uc).Register(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body response.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "User added successfully", body.Message)
	assert.Equal(t, "V1StGXR8_Z", body.User.ID)
	assert.Equal(t, "signed.token.value", body.Token)
	assert.NotContains(t, rec.Body.String(), "password")
	uc.AssertExpectations(t)
}

func TestAuthHandler_Login_Form(t *testing.T) {
	uc := &stubAuthUsecase{}
	uc.On("Login", mock.Anything, &usecase.LoginInput{Email: "ana@x.com", Password: "secret123"}).
		Return(&usecase.AuthOutput{
			Identity: entity.Identity{ID: "V1StGXR8_Z", Name: "Ana", Email: "ana@x.com"},
			Token:    "signed.token.value",
		}, nil)

	form := url.Values{"email": {"ana@x.com"}, "password": {"secret123"}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	err := NewAuthHandler(uc).Login(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Login successful"`)
	uc.AssertExpectations(t)
}

func TestAuthHandler_Login_BadBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	err := NewAuthHandler(&stubAuthUsecase{}).Login(e.NewContext(req, httptest.NewRecorder()))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestAuthHandler_Login_PropagatesUsecaseError(t *testing.T) {
	uc := &stubAuthUsecase{}
	uc.On("Login", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ana@x.com","password":"nope"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	err := NewAuthHandler(uc).Login(e.NewContext(req, httptest.NewRecorder()))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthHandler_Me(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/me", nil), rec)
	deliverycontext.SetClaims(c, &service.Claims{
		SubjectID: "V1StGXR8_Z",
		Email:     "ana@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(2 * time.Hour)),
		},
	})

	require.NoError(t, NewAuthHandler(&stubAuthUsecase{}).Me(c))

	var body struct {
		Data MeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ana@x.com", body.Data.Email)
	assert.True(t, issued.Add(2*time.Hour).Equal(body.Data.ExpiresAt))
}

func TestAuthHandler_MeWithoutClaims(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/me", nil), httptest.NewRecorder())

	err := NewAuthHandler(&stubAuthUsecase{}).Me(c)

	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestContextHandler_GetLatest(t *testing.T) {
	t.Run("raw row", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/context", nil), rec)

		h := NewContextHandler(stubContextUsecase{record: &entity.ContextRecord{ID: 3, Data: "hello"}})
		require.NoError(t, h.GetLatest(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":3,"data":"hello"}`, rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/context", nil), httptest.NewRecorder())

		h := NewContextHandler(stubContextUsecase{err: domainerrors.ErrContextNotFound})

		assert.ErrorIs(t, h.GetLatest(c), domainerrors.ErrContextNotFound)
	})
}
