package apperrors

import "errors"

// Stable machine-readable error codes returned in the error envelope.
const (
	CodeValidationError         = "VALIDATION_ERROR"
	CodeInvalidQuery            = "INVALID_QUERY"
	CodeInvalidID               = "INVALID_ID"
	CodeTokenMissing            = "TOKEN_MISSING"
	CodeTokenInvalid            = "TOKEN_INVALID"
	CodeWriteTokenMissing       = "WRITE_TOKEN_MISSING"
	CodeLogNotFound             = "LOG_NOT_FOUND"
	CodeTooManyRequests         = "TOO_MANY_REQUESTS"
	CodeUnauthenticated         = "UNAUTHENTICATED"
	CodeInvalidSession          = "INVALID_SESSION"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeUserInactive            = "USER_INACTIVE"
	CodeJWTSecretMissing        = "JWT_SECRET_MISSING"
	CodeRouteNotFound           = "ROUTE_NOT_FOUND"
	CodeDependencyContractError = "DEPENDENCY_CONTRACT_ERROR"
	CodeInternalError           = "INTERNAL_ERROR"
)

// Error is a typed failure carrying the HTTP status and stable code that the
// transport boundary maps to the error envelope.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a typed application error.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// From extracts an *Error from err's chain. Unclassified errors map to
// 500/INTERNAL_ERROR without leaking internal details.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{Status: 500, Code: CodeInternalError, Message: "Internal server error."}
}
