package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies failures so the HTTP layer can map them to status codes
// without inspecting message strings.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindSearchFailed
	KindInfographicFailed
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewSearchFailed(message string, err error) *AppError {
	return &AppError{Kind: KindSearchFailed, Message: message, Err: err}
}

func NewInfographicFailed(message string, err error) *AppError {
	return &AppError{Kind: KindInfographicFailed, Message: message, Err: err}
}

// KindOf reports the AppError kind in err's chain, or ok=false.
func KindOf(err error) (Kind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
