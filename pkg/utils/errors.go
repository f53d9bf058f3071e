package utils

import (
	"errors"
	"fmt"
)

// AppError application error structure
type AppError struct {
	Code    ResponseCode `json:"code"`
	Message string       `json:"message"`
	Err     error        `json:"-"`
}

// Error implement error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code: %d, message: %s, error: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

// Unwrap implement errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError create new application error
func NewError(code ResponseCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError wrap an underlying error with a code and message
func WrapError(err error, code ResponseCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Predefined errors
var (
	ErrInvalidParam = NewError(CodeInvalidParam, "invalid parameter")

	// Session errors
	ErrUnauthenticated = NewError(CodeUnauthorized, "you must be logged in")

	// Catalog and cart errors
	ErrProductNotFound   = NewError(CodeProductNotFound, "product not found")
	ErrNotOwner          = NewError(CodeNotOwner, "you are not the owner of this product")
	ErrEmptyCart         = NewError(CodeEmptyCart, "your cart is empty")
	ErrInsufficientStock = NewError(CodeStockNotEnough, "out of stock")

	// Payment errors
	ErrGatewayUnavailable = NewError(CodeGatewayUnavailable, "payment preparation failed, try again")
	ErrGatewayTimeout     = NewError(CodeGatewayTimeout, "payment gateway timed out")
	ErrUnknownOrder       = NewError(CodeUnknownOrder, "no matching order for callback")

	// System errors
	ErrInternalError = NewError(CodeInternalError, "internal server error")
	ErrDatabaseError = NewError(CodeDatabaseError, "database error")
)

// IsAppError check if it's an application error
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetErrorCode get error code
func GetErrorCode(err error) ResponseCode {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code
	}
	return CodeInternalError
}

// GetErrorMessage get error message
func GetErrorMessage(err error) string {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
