package rider_test

import (
	"testing"

	"dispatch/internal/core/domain/model/rider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_FromString(t *testing.T) {
	cases := map[string]rider.Status{
		"online":  rider.StatusOnline,
		"offline": rider.StatusOffline,
		"busy":    rider.StatusBusy,
		"idle":    rider.StatusIdle,
	}

	for str, want := range cases {
		t.Run(str, func(t *testing.T) {
			got, err := rider.StatusFromString(str)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, str, got.String())
		})
	}

	t.Run("rejects unknown string", func(t *testing.T) {
		_, err := rider.StatusFromString("sleeping")
		require.Error(t, err)
	})

	t.Run("rejects unknown literal", func(t *testing.T) {
		_, err := rider.StatusFromString("unknown")
		require.Error(t, err)
	})
}

func TestStatus_IsAssignable(t *testing.T) {
	assert.True(t, rider.StatusOnline.IsAssignable())
	assert.True(t, rider.StatusIdle.IsAssignable())
	assert.True(t, rider.StatusBusy.IsAssignable())
	assert.False(t, rider.StatusOffline.IsAssignable())
	assert.False(t, rider.StatusUnknown.IsAssignable())
}
