package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidRole  ErrorCode = "INVALID_ROLE"

	// Validation errors
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField    ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"

	// Not found errors
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodePropertyNotFound    ErrorCode = "PROPERTY_NOT_FOUND"
	ErrCodeRoomNotFound        ErrorCode = "ROOM_NOT_FOUND"
	ErrCodeBedNotFound         ErrorCode = "BED_NOT_FOUND"
	ErrCodeReservationNotFound ErrorCode = "RESERVATION_NOT_FOUND"

	// Business errors
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeState            ErrorCode = "STATE_ERROR"
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra error có mang mã lỗi code không
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	// Property / inventory errors
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyInactive = errors.New("property is not active")
	ErrRoomNotFound     = errors.New("room not found")
	ErrBedNotFound      = errors.New("bed not found")
	ErrBedDisabled      = errors.New("bed is disabled by host")

	// Reservation errors
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationConflict  = errors.New("requested beds are not available for the date range")
	ErrReservationCancelled = errors.New("reservation already cancelled")
	ErrReservationRejected  = errors.New("reservation already rejected")
	ErrMessageNotAllowed    = errors.New("messages are closed for this reservation")

	// Validation errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDateRange = errors.New("check-out date must be after check-in date")
	ErrMissingRequired  = errors.New("missing required field")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
