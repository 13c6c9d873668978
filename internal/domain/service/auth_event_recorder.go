package service

// AuthEvent names an authentication flow.
type AuthEvent string

const (
	AuthEventRegister AuthEvent = "register"
	AuthEventLogin    AuthEvent = "login"
)

// AuthOutcome classifies how a flow ended.
type AuthOutcome string

const (
	OutcomeSuccess            AuthOutcome = "success"
	OutcomeValidation         AuthOutcome = "validation"
	OutcomeDuplicate          AuthOutcome = "duplicate"
	OutcomeNotFound           AuthOutcome = "not_found"
	OutcomeInvalidCredentials AuthOutcome = "invalid_credentials"
	OutcomeError              AuthOutcome = "error"
)

// AuthEventRecorder receives one call per finished registration or login.
type AuthEventRecorder interface {
	RecordAuthEvent(event AuthEvent, outcome AuthOutcome)
}
