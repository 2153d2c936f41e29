package response

import (
	"github.com/gin-gonic/gin"
)

// Error codes shared by services and handlers
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeUnknownStatus      = "UNKNOWN_STATUS"
	ErrCodeDependencyConflict = "DEPENDENCY_CONFLICT"
)

// AppError is a structured error carried from the service layer to handlers.
// Findings is populated only for dependency conflicts so the client can show
// every problem at once.
type AppError struct {
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Findings interface{} `json:"findings,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Code + ": " + e.Message + " (" + e.Details + ")"
	}
	return e.Code + ": " + e.Message
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation error
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewAlreadyExistsError creates a duplicate resource error
func NewAlreadyExistsError(message, details string) *AppError {
	return NewAppError(ErrCodeAlreadyExists, message, details)
}

// NewDependencyConflictError creates a dependency conflict error carrying the
// full findings list
func NewDependencyConflictError(message string, findings interface{}) *AppError {
	return &AppError{Code: ErrCodeDependencyConflict, Message: message, Findings: findings}
}

// ErrorBody is the error object inside an ErrorResponse
type ErrorBody struct {
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Findings interface{} `json:"findings,omitempty"`
}

// ErrorResponse is the envelope returned for failed requests
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// SuccessResponse is the envelope returned for successful requests
type SuccessResponse struct {
	Data interface{} `json:"data,omitempty"`
}

// SendError writes an error envelope with the given HTTP status
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// SendAppError writes an error envelope from an AppError, preserving findings
func SendAppError(c *gin.Context, status int, appErr *AppError) {
	c.JSON(status, ErrorResponse{Error: ErrorBody{
		Code:     appErr.Code,
		Message:  appErr.Message,
		Findings: appErr.Findings,
	}})
}

// SendSuccess writes a success envelope with the given HTTP status
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Data: data})
}
