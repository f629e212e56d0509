package httperr

import "errors"

// Kind classifies a business error for HTTP mapping. The core raises
// BusinessError values; handlers never invent status codes themselves.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindNotFound          Kind = "not_found"
	KindPermission        Kind = "permission"
	KindInvalidTransition Kind = "invalid_transition"
	KindInternal          Kind = "internal"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) error {
	return ErrBusiness(KindValidation, code, message)
}

func Conflict(code, message string) error {
	return ErrBusiness(KindConflict, code, message)
}

func NotFoundErr(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func Permission(code, message string) error {
	return ErrBusiness(KindPermission, code, message)
}

func InvalidTransition(code, message string) error {
	return ErrBusiness(KindInvalidTransition, code, message)
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}
