package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps an application error to the API status code. Conflicts
// cover every state that a retry with fresh data could resolve; an SLA breach
// is unprocessable until the operator opts into overrideSla.
func domainError(ctx echo.Context, err error) error {
	code := statusCodeFor(err)
	message := err.Error()
	if errors.Is(err, order.ErrSLABreached) {
		message += " (set overrideSla to force the assignment)"
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrSLABreached),
		errors.Is(err, rule.ErrInvalidRuleConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrOrderAlreadyAssigned),
		errors.Is(err, order.ErrOrderCancelled),
		errors.Is(err, rider.ErrRiderFull),
		errors.Is(err, rider.ErrRiderOffline),
		errors.Is(err, rule.ErrRuleInactive),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
