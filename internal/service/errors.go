package service

import "errors"

// Error taxonomy surfaced to the API layer. Every error returned by the
// service wraps exactly one of these sentinels; the handler layer maps them
// to HTTP statuses (404, 403, 400, 409) and the messages are safe to display.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

type taxonomyError struct {
	kind error
	msg  string
}

func (e *taxonomyError) Error() string { return e.msg }
func (e *taxonomyError) Unwrap() error { return e.kind }

func notFound(msg string) error   { return &taxonomyError{kind: ErrNotFound, msg: msg} }
func forbidden(msg string) error  { return &taxonomyError{kind: ErrForbidden, msg: msg} }
func validation(msg string) error { return &taxonomyError{kind: ErrValidation, msg: msg} }
func conflict(msg string) error   { return &taxonomyError{kind: ErrConflict, msg: msg} }
