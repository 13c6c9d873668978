// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "authsvc/internal/delivery/context"
	"authsvc/internal/domain/entity"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/repository"
	"authsvc/internal/domain/service"
	"authsvc/internal/errors"
	"authsvc/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// authService implements the AuthUsecase interface.
type authService struct {
	identityStore repository.IdentityStore
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	idGenerator   service.IDGenerator
	recorder      service.AuthEventRecorder
	validate      *validator.Validate
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	IdentityStore repository.IdentityStore
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	IDGenerator   service.IDGenerator
	Recorder      service.AuthEventRecorder `optional:"true"`
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		identityStore: params.IdentityStore,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		idGenerator:   params.IDGenerator,
		recorder:      params.Recorder,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
		logger:        params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	output, err := srv.register(ctx, input)
	srv.record(service.AuthEventRegister, err)

	return output, err
}

func (srv *authService) register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if err := srv.validateInput(input); err != nil {
		srv.log(ctx).Debug("Registration rejected", slog.Any("error", err))

		return nil, err
	}
	if err := checkPasswordLength(input.Password); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Starting registration", slog.String("email", input.Email))

	id, err := srv.idGenerator.NewID()
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError.WithDetails(err.Error()), "failed to generate id")
	}

	// bcrypt is CPU-bound; it runs before the store is touched.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	credential := &entity.Credential{
		ID:           id,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := srv.identityStore.Insert(ctx, credential); err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to insert credential")
	}

	token, err := srv.tokenService.Issue(credential.ID, credential.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("Identity registered", slog.Any("credential", credential))

	return &usecase.AuthOutput{
		Identity: credential.Identity(),
		Token:    token,
	}, nil
}

func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	output, err := srv.login(ctx, input)
	srv.record(service.AuthEventLogin, err)

	return output, err
}

func (srv *authService) login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if err := srv.validateInput(input); err != nil {
		srv.log(ctx).Debug("Login rejected", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	credential, err := srv.identityStore.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Info("Login for unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "login failed")
		}
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find credential")
	}

	if !srv.hasher.Verify(input.Password, credential.PasswordHash) {
		srv.log(ctx).Info("Login with wrong password", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Issue(credential.ID, credential.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("id", credential.ID))

	return &usecase.AuthOutput{
		Identity: credential.Identity(),
		Token:    token,
	}, nil
}

// validateInput turns a missing field into ErrValidationFailed listing the
// offending fields.
func (srv *authService) validateInput(input any) error {
	if input == nil {
		return domainerrors.ErrValidationFailed
	}

	err := srv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return domainerrors.ErrValidationFailed
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}

	return domainerrors.ErrValidationFailed.WithDetails("missing: " + strings.Join(fields, ", "))
}

func checkPasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return domainerrors.ErrValidationFailed.WithDetails("password must be at most 72 bytes")
	}

	return nil
}

func (srv *authService) record(event service.AuthEvent, err error) {
	if srv.recorder == nil {
		return
	}

	srv.recorder.RecordAuthEvent(event, outcomeOf(err))
}

func outcomeOf(err error) service.AuthOutcome {
	switch {
	case err == nil:
		return service.OutcomeSuccess
	case errors.Is(err, domainerrors.ErrValidationFailed):
		return service.OutcomeValidation
	case errors.Is(err, domainerrors.ErrDuplicateIdentity):
		return service.OutcomeDuplicate
	case errors.Is(err, domainerrors.ErrUserNotFound):
		return service.OutcomeNotFound
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return service.OutcomeInvalidCredentials
	default:
		return service.OutcomeError
	}
}
