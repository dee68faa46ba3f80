package apierror

import (
	"fmt"
	"net/http"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// PartialFailureError reports that a claim was approved (or reverted) but the
// matching ownership write did not land. The two records disagree until
// someone reconciles them by hand.
type PartialFailureError struct {
	Message    string `json:"message"`
	ClaimID    int64  `json:"claim_id"`
	BusinessID string `json:"business_id"`
	Status     int    `json:"-"`
}

func (p *PartialFailureError) Code() int {
	return p.Status
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	MalformedBodyError  = NewSimple(400, "Malformed request body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError  = NewSimple(404, "Resource not found")
	InvalidIDError = NewSimple(400, "The provided ID is invalid, IDs are integers > 0")

	UnauthorizedError     = NewSimple(401, "Authentication required")
	InvalidAuthTokenError = NewSimple(401, "Invalid or expired authentication token")
	UserNotFoundError     = NewSimple(401, "User not found")
	TooManyRequestsError  = NewSimple(429, "Too many requests, slow down")

	InvalidMediaTypeError = NewSimple(415, "Unsupported media type")
	MissingFileError      = NewSimple(400, "A file is required")
	MissingFileNameError  = NewSimple(400, "File name cannot be empty")
	EvidenceDisabledError = NewSimple(503, "Evidence uploads are not configured")
)

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

// NewValidationError is a 400 with a single field problem.
func NewValidationError(field, problem string) *StructuredError {
	se := NewStructured(http.StatusBadRequest)
	se.Add(field, problem)
	return se
}

func NewNotFound(resource string) *APIError {
	return NewSimple(http.StatusNotFound, "%s not found", resource)
}

func NewConflictError(msg string, args ...any) *APIError {
	return NewSimple(http.StatusConflict, msg, args...)
}

func NewForbiddenError(msg string) *APIError {
	return NewSimple(http.StatusForbidden, msg)
}

func NewPermissionError(perm int64) *APIError {
	return NewSimple(http.StatusForbidden, "Missing required permission: %d", perm)
}

func NewPartialFailure(claimID int64, businessID, msg string) *PartialFailureError {
	return &PartialFailureError{
		Message:    msg,
		ClaimID:    claimID,
		BusinessID: businessID,
		Status:     http.StatusInternalServerError,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Missing required parameter: %s", name)
}

func NewFileTooLargeError(maxBytes int64) *APIError {
	return NewSimple(http.StatusRequestEntityTooLarge, "File exceeds the maximum size of %d bytes", maxBytes)
}

func NewInvalidFileExtError(ext string) *APIError {
	return NewSimple(http.StatusBadRequest, "File extension not allowed: '%s'", ext)
}
