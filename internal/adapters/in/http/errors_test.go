package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/rider"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown order", errs.NewObjectNotFoundError("order", "abc"), http.StatusNotFound},
		{"sla breached", order.ErrSLABreached, http.StatusUnprocessableEntity},
		{"bad criteria", fmt.Errorf("%w: maxRadiusKm must be positive", rule.ErrInvalidRuleConfig), http.StatusUnprocessableEntity},
		{"already assigned", order.ErrOrderAlreadyAssigned, http.StatusConflict},
		{"cancelled order", order.ErrOrderCancelled, http.StatusConflict},
		{"rider full", rider.ErrRiderFull, http.StatusConflict},
		{"rider offline", rider.ErrRiderOffline, http.StatusConflict},
		{"rule inactive", rule.ErrRuleInactive, http.StatusConflict},
		{"lost version race", errs.NewConcurrentModificationError("order", "abc"), http.StatusConflict},
		{"missing value", order.ErrZoneIsRequired, http.StatusBadRequest},
		{"anything else", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusCodeFor(tt.err))
		})
	}
}
