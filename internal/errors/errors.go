package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthTokenMissing is returned when an admin-only call is made without a session token.
	ErrAuthTokenMissing = errors.New("authentication token missing")
	// ErrAdminRequired is returned when an admin-only call is made by a non-admin session.
	ErrAdminRequired = errors.New("access denied: requires ADMIN role")
	// ErrInvalidStatus is returned for a feedback status outside PENDING/APPROVED/REJECTED.
	ErrInvalidStatus = errors.New("invalid feedback status")
	// ErrUserIdentifierMissing is returned when the session carries no user identifier.
	ErrUserIdentifierMissing = errors.New("user ID not found, please login again")
)

// Kind classifies failures of calls against the remote feedback service.
type Kind string

const (
	KindNetwork    Kind = "NetworkError"
	KindAuth       Kind = "AuthError"
	KindValidation Kind = "ValidationError"
	KindNotFound   Kind = "NotFoundError"
	KindAccess     Kind = "AccessError"
	KindServer     Kind = "ServerError"
)

// APIError is the error every gateway operation returns on failure.
// StatusCode, StatusText and Body are empty for local (AccessError, ValidationError
// raised before sending) and transport failures.
type APIError struct {
	Kind       Kind
	StatusCode int
	StatusText string
	Body       string
	URL        string
	Messages   []string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return e.Body
	case e.StatusCode != 0:
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	case len(e.Messages) > 0:
		return strings.Join(e.Messages, "; ")
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAccessError builds the local error raised before an admin-only call.
func NewAccessError(cause error) *APIError {
	return &APIError{Kind: KindAccess, Err: cause}
}

// NewNetworkError wraps a transport failure (no response received).
func NewNetworkError(url string, cause error) *APIError {
	return &APIError{Kind: KindNetwork, URL: url, Err: cause}
}

// NewValidationError builds a local validation failure with one message per field.
func NewValidationError(messages ...string) *APIError {
	return &APIError{Kind: KindValidation, Messages: messages}
}

// FromResponse classifies a non-2xx response. authEndpoint makes every 4xx an AuthError,
// which is how the remote rejects bad credentials and duplicate registrations.
func FromResponse(statusCode int, statusText, url, body string, authEndpoint bool) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		StatusText: statusText,
		URL:        url,
		Body:       body,
		Messages:   extractMessages(body),
	}
	switch {
	case statusCode >= 500:
		e.Kind = KindServer
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e.Kind = KindAuth
	case authEndpoint && statusCode >= 400:
		e.Kind = KindAuth
	case statusCode == http.StatusNotFound:
		e.Kind = KindNotFound
	default:
		e.Kind = KindValidation
	}
	return e
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// TokenRejected reports whether the remote answered 401 or 403, which means the
// stored token is no longer accepted.
func TokenRejected(err error) bool {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// KindOf returns the Kind of err, or "" when err is not an *APIError.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code"`
	Messages []string `json:"messages,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Messages   []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:    e.Message,
		Code:     e.Code,
		Messages: e.Messages,
	}
}

// MapErrorToHTTP maps gateway and workflow errors to the message a view shows the user.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrUserIdentifierMissing):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_ID_MISSING")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}

	switch apiErr.Kind {
	case KindNetwork:
		return NewHTTPError(http.StatusBadGateway,
			"Backend server is not available. Please check your connection or try again later.", "NETWORK_ERROR")
	case KindAuth:
		return NewHTTPError(http.StatusUnauthorized, "Access denied. Please login again.", "AUTH_ERROR")
	case KindAccess:
		return NewHTTPError(http.StatusForbidden, apiErr.Error(), "ACCESS_DENIED")
	case KindValidation:
		httpErr := NewHTTPError(http.StatusBadRequest, apiErr.Error(), "VALIDATION_ERROR")
		httpErr.Messages = apiErr.Messages
		return httpErr
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, "record not found", "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusBadGateway, fmt.Sprintf("Failed to load data: %s", apiErr.Error()), "SERVER_ERROR")
	}
}
