package utils

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by services and controllers. Services wrap these
// with fmt.Errorf("%w: detail") so handlers can classify with errors.Is while
// the message keeps operator-facing context.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrConflict         = errors.New("conflict")
	ErrCapacityExceeded = errors.New("capacity_exceeded")
	ErrForbidden        = errors.New("forbidden")
	ErrInternal         = errors.New("internal_error")
)

// HTTPStatus maps a service error to its response status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrCapacityExceeded):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
