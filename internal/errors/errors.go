package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user matches the requested id.
	ErrUserNotFound = errors.New("Usuário não encontrado!")
	// ErrInvalidCredentials is returned when email or password do not match a user.
	ErrInvalidCredentials = errors.New("Login ou senha incorreta.")
	// ErrUnauthenticated is returned when the bearer token is missing, invalid or revoked.
	ErrUnauthenticated = errors.New("Não autenticado.")
	// ErrUserNotCreated is returned when the create write fails.
	ErrUserNotCreated = errors.New("Usuário não cadastrado!")
	// ErrUserNotUpdated is returned when the update write fails.
	ErrUserNotUpdated = errors.New("Usuário não editado!")
	// ErrPasswordNotUpdated is returned when the password write fails.
	ErrPasswordNotUpdated = errors.New("Senha não editada!")
	// ErrUserNotDeleted is returned when the delete write fails.
	ErrUserNotDeleted = errors.New("Usuário não apagado!")
)

const (
	// MessageInvalidPayload is used for request validation failures.
	MessageInvalidPayload = "Dados inválidos."
	// MessageInternal is used for anything not mapped to a domain error.
	MessageInternal = "Erro interno do servidor."
)

// ErrorResponse is the failure envelope shared by every endpoint.
type ErrorResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Status:  false,
		Message: e.Message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusNotFound, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error())
	case errors.Is(err, ErrUserNotCreated):
		return NewHTTPError(http.StatusBadRequest, ErrUserNotCreated.Error())
	case errors.Is(err, ErrUserNotUpdated):
		return NewHTTPError(http.StatusBadRequest, ErrUserNotUpdated.Error())
	case errors.Is(err, ErrPasswordNotUpdated):
		return NewHTTPError(http.StatusBadRequest, ErrPasswordNotUpdated.Error())
	case errors.Is(err, ErrUserNotDeleted):
		return NewHTTPError(http.StatusBadRequest, ErrUserNotDeleted.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, MessageInternal)
	}
}
