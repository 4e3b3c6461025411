package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrCarrierAuth),
		errors.Is(err, errs.ErrCarrierAPI),
		errors.Is(err, errs.ErrPlatformSync):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
