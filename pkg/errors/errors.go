package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error codes
const (
	ErrCodeAlreadyJoined    = "ALREADY_JOINED"
	ErrCodeGameFull         = "GAME_FULL"
	ErrCodeGameInProgress   = "GAME_IN_PROGRESS"
	ErrCodeNotInGame        = "NOT_IN_GAME"
	ErrCodeNotStarted       = "NOT_STARTED"
	ErrCodeNotYourTurn      = "NOT_YOUR_TURN"
	ErrCodeNoActiveQuestion = "NO_ACTIVE_QUESTION"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeTransport        = "TRANSPORT_ERROR"
	ErrCodeUpload           = "UPLOAD_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)
