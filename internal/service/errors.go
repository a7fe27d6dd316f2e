package service

import (
	"errors"
	"fmt"
)

// ErrValidation is the class of all request shape errors. Handlers map it to 400.
var ErrValidation = errors.New("validation failed")

var (
	ErrQuestionsRequired = fmt.Errorf("%w: questions must be an array", ErrValidation)
	ErrLengthMismatch    = fmt.Errorf("%w: questions and audioUrls must have the same length", ErrValidation)
	ErrContentRequired   = fmt.Errorf("%w: file is required", ErrValidation)
	ErrSlotIDRequired    = fmt.Errorf("%w: slot id is required", ErrValidation)
	ErrInvalidSlotID     = fmt.Errorf("%w: slot id may only contain letters, digits, '-' and '_'", ErrValidation)
)

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
