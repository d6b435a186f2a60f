package http

import (
	"errors"
	"net/http"

	"printfloor/internal/core/application/usecases/commands"
	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/services"
	"printfloor/internal/pkg/errs"
)

// describeError maps an application error to a status code and a message
// safe to return to the caller.
func describeError(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrDuplicateJobInBatch),
		errors.Is(err, commands.ErrCodeIsRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, job.ErrJobAlreadyBatched),
		errors.Is(err, job.ErrJobIsTerminal),
		errors.Is(err, commands.ErrNoActiveSlot):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrCapabilityMismatch):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
