package model

import (
	"errors"
	"fmt"

	"forme.dev/groups/errs"
)

type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"
	ErrInvalidType     ErrorCode = "INVALID_TYPE"
	ErrNestedContainer ErrorCode = "NESTED_CONTAINER"
	ErrUnknownAlias    ErrorCode = "UNKNOWN_ALIAS"
	ErrInvalidHash     ErrorCode = "INVALID_HASH"
	ErrRegistry        ErrorCode = "REGISTRY"
	ErrInternal        ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human message.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// MapErr converts library errors to CodedErrors by kind.
func MapErr(err error) error {
	if err == nil {
		return nil
	}
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errs.IsKind(err, errs.KindType):
		return NewError(ErrInvalidType, err.Error())
	case errs.IsKind(err, errs.KindNested):
		return NewError(ErrNestedContainer, err.Error())
	case errs.IsKind(err, errs.KindUnknownAlias):
		return NewError(ErrUnknownAlias, err.Error())
	case errs.IsKind(err, errs.KindParse):
		return NewError(ErrInvalidRequest, err.Error())
	case errs.IsKind(err, errs.KindCollision), errs.IsKind(err, errs.KindConfig):
		return NewError(ErrRegistry, err.Error())
	}
	return NewError(ErrInternal, err.Error())
}
