package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

// InvalidOperationError marks a state transition the current editing state
// does not allow, such as removing the only page of an order.
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

func NewInvalidOperationError(message string) *InvalidOperationError {
	return &InvalidOperationError{Message: message}
}

func IsInvalidOperationError(err error) (*InvalidOperationError, bool) {
	if ioe, ok := err.(*InvalidOperationError); ok {
		return ioe, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// NetworkError means the request never produced a response: DNS failure,
// refused connection, timeout. Local state is left untouched so the user
// can retry.
type NetworkError struct {
	Op    string
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

func NewNetworkError(op string, cause error) *NetworkError {
	return &NetworkError{Op: op, Cause: cause}
}

func IsNetworkError(err error) (*NetworkError, bool) {
	if ne, ok := err.(*NetworkError); ok {
		return ne, true
	}
	return nil, false
}

// ServerError is a non-2xx response from the backend. Body carries the raw
// response payload for diagnostics.
type ServerError struct {
	Op     string
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
}

func NewServerError(op string, status int, body string) *ServerError {
	return &ServerError{Op: op, Status: status, Body: body}
}

func IsServerError(err error) (*ServerError, bool) {
	if se, ok := err.(*ServerError); ok {
		return se, true
	}
	return nil, false
}

// UploadError is a client-side rejection of an image file (wrong type or
// over the size limit), raised before any request is made.
type UploadError struct {
	Filename string
	Reason   string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s rejected: %s", e.Filename, e.Reason)
}

func NewUploadError(filename, reason string) *UploadError {
	return &UploadError{Filename: filename, Reason: reason}
}

func IsUploadError(err error) (*UploadError, bool) {
	if ue, ok := err.(*UploadError); ok {
		return ue, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
