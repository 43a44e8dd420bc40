package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindPermission
	KindNotFound
	KindConflict
)

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindPermission:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// BusinessError is an expected failure that maps onto an HTTP status.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
}

func (e *BusinessError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s %v", e.Code, e.Message, e.Fields)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ErrBusiness(kind Kind, code, message string) error {
	return &BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(field, message string) error {
	return &BusinessError{
		Kind:    KindValidation,
		Code:    "validation_error",
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

func ValidationFields(fields map[string]string) error {
	return &BusinessError{
		Kind:    KindValidation,
		Code:    "validation_error",
		Message: "Invalid input.",
		Fields:  fields,
	}
}

func Authentication(code, message string) error {
	return ErrBusiness(KindAuthentication, code, message)
}

func Permission(code, message string) error {
	return ErrBusiness(KindPermission, code, message)
}

func NotFoundErr(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func Conflict(code, message string) error {
	return ErrBusiness(KindConflict, code, message)
}

func As(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

func IsBusiness(err error, code string) bool {
	be, ok := As(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := As(err)
	return ok && be.Kind == kind
}

// FieldErrors collects per-field messages before failing once.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return ValidationFields(f)
}
