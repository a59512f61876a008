package booking

import "fmt"

// ValidationError is returned for malformed booking requests. It is local and never retried.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const CodeBookingValidation = "booking_validation_error"

func NewValidationError(msg string) error {
	return &ValidationError{
		Code:    CodeBookingValidation,
		Message: msg,
	}
}
