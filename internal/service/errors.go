package service

import "errors"

// Error taxonomy shared by all services. Handlers map these onto HTTP
// statuses: validation -> 400, not found -> 404, forbidden -> 403;
// anything else is an internal error.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

func validationf(msg string) error {
	return wrapped{ErrValidation, msg}
}

func notFoundf(msg string) error {
	return wrapped{ErrNotFound, msg}
}

type wrapped struct {
	kind error
	msg  string
}

func (w wrapped) Error() string { return w.msg }
func (w wrapped) Unwrap() error { return w.kind }
