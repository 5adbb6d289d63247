package order_test

import (
	"testing"

	"tawsila/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	cases := []struct {
		status   order.Status
		expected string
	}{
		{order.Received, "received"},
		{order.InTransit, "in_transit"},
		{order.Delivered, "delivered"},
		{order.Cancelled, "cancelled"},
		{order.Unknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses_all_valid_statuses", func(t *testing.T) {
		for _, s := range []string{"received", "in_transit", "delivered", "cancelled"} {
			status, err := order.StatusFromString(s)
			require.NoError(t, err)
			assert.Equal(t, s, status.String())
		}
	})

	t.Run("rejects_unknown_strings", func(t *testing.T) {
		for _, s := range []string{"", "Delivered", "IN_TRANSIT", "pending"} {
			_, err := order.StatusFromString(s)
			require.Error(t, err, "expected %q to be rejected", s)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses_pass", func(t *testing.T) {
		for _, s := range []order.Status{order.Received, order.InTransit, order.Delivered, order.Cancelled} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("unknown_fails", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("received_assigns_to_in_transit", func(t *testing.T) {
		next, err := order.Received.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.InTransit, next)
	})

	t.Run("non_received_statuses_cannot_be_assigned", func(t *testing.T) {
		for _, s := range []order.Status{order.InTransit, order.Delivered, order.Cancelled} {
			_, err := s.Assign()
			require.Error(t, err, "expected assign from %s to fail", s)
		}
	})

	t.Run("in_transit_delivers", func(t *testing.T) {
		next, err := order.InTransit.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, next)
	})

	t.Run("received_cannot_deliver_directly", func(t *testing.T) {
		_, err := order.Received.Deliver()
		require.Error(t, err)
	})

	t.Run("received_and_in_transit_cancel", func(t *testing.T) {
		for _, s := range []order.Status{order.Received, order.InTransit} {
			next, err := s.Cancel()
			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, next)
		}
	})

	t.Run("terminal_statuses_cannot_cancel", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Cancelled} {
			_, err := s.Cancel()
			require.Error(t, err, "expected cancel from %s to fail", s)
		}
	})
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Received.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())

	assert.True(t, order.Received.IsActive())
	assert.True(t, order.InTransit.IsActive())
	assert.False(t, order.Delivered.IsActive())
	assert.False(t, order.Cancelled.IsActive())
}
