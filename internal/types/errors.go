package types

import "net/http"

// Error codes returned in the JSON error envelope
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeInternal          = "INTERNAL_ERROR"
	CodeSearchUnavailable = "SEARCH_UNAVAILABLE"
	CodeGeneratorDown     = "GENERATOR_UNAVAILABLE"
)

// APIError is an error that knows how it should be rendered over HTTP
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError builds an APIError
func NewAPIError(status int, code, message string, err error) *APIError {
	return &APIError{Status: status, Code: code, Message: message, Err: err}
}

// BadRequest is shorthand for a 400 with the error text as message
func BadRequest(err error) *APIError {
	return NewAPIError(http.StatusBadRequest, CodeInvalidRequest, err.Error(), err)
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
