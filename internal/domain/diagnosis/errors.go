package diagnosis

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind es el tipo de error estable que ve el caller (va en el body).
type Kind string

const (
	KindUnauthenticated      Kind = "unauthenticated"
	KindInvalidInput         Kind = "invalid_input"
	KindSubjectNotFound      Kind = "subject_not_found"
	KindSubjectUnavailable   Kind = "subject_unavailable"
	KindInferenceUnavailable Kind = "inference_unavailable"
	KindInternal             Kind = "internal_error"
)

// Status mapea cada kind a su código HTTP.
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindSubjectNotFound:
		return http.StatusNotFound
	case KindSubjectUnavailable:
		return http.StatusServiceUnavailable
	case KindInferenceUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Errores que devuelven los adapters (resolver / invoker).
var (
	ErrSubjectNotFound = errors.New("subject not found")

	ErrInferenceTimeout   = errors.New("inference timed out")
	ErrInferenceTransient = errors.New("inference transient failure")
	ErrInferenceMalformed = errors.New("inference response malformed")
)

// Retryable indica si un error del invoker es transitorio.
// El pipeline no reintenta; esto es para quien consuma el error.
func Retryable(err error) bool {
	return errors.Is(err, ErrInferenceTransient) || errors.Is(err, ErrInferenceTimeout)
}

// Error es el error que sale de Service.Diagnose.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, &Error{Kind: KindSubjectNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// KindOf devuelve el kind de err; cualquier cosa no clasificada es internal_error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
