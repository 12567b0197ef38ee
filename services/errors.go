package services

import "net/http"

// AppError is a business-rule failure raised by a repository operation. It
// carries a stable machine-readable code and an HTTP status for the
// presentation boundary, and serializes to a structured form.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	// ErrNotAuthenticated is returned when caller identity is missing where required
	ErrNotAuthenticated = &AppError{Code: "NOT_AUTHENTICATED", Message: "User is not authenticated", Status: http.StatusUnauthorized}
	// ErrForbidden is returned when the caller lacks the required role
	ErrForbidden = &AppError{Code: "FORBIDDEN", Message: "User is not authorized", Status: http.StatusForbidden}
	// ErrResourceNotFound is returned when the referenced entity is absent or excluded by soft delete
	ErrResourceNotFound = &AppError{Code: "RESOURCE_NOT_FOUND", Message: "Resource not found", Status: http.StatusNotFound}
	// ErrResourceAlreadyExists is returned on a uniqueness violation during create
	ErrResourceAlreadyExists = &AppError{Code: "RESOURCE_ALREADY_EXISTS", Message: "Resource already exists", Status: http.StatusConflict}
)
