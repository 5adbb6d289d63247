package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tawsila/internal/core/application/usecases/commands"
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/errs"
)

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("cancels assigned order and releases driver", func(t *testing.T) {
		driverID := kernel.NewUUID()
		inTransit := assignedOrder(t, driverID)
		cmd, err := commands.NewCancelOrderCommand(inTransit.Number(), commands.CancelledByCustomer)
		require.NoError(t, err)

		cancelled := assignedOrder(t, driverID)
		require.NoError(t, cancelled.Cancel(cancelled.CreatedAt()))

		orders := new(MockOrderRepository)
		drivers := new(MockDriverRepository)
		orders.On("CancelIfActive", mock.Anything, inTransit.Number(), mock.AnythingOfType("time.Time")).
			Return(cancelled, nil).Once()
		drivers.On("SetAvailability", mock.Anything, driverID, true).Return(nil).Once()

		notifier := newRecordingNotifier()
		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: drivers}}
		h := commands.NewCancelOrderCommandHandler(factory, notifier)

		got, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, got.Status())
		require.Len(t, notifier.cancelled, 1)
		assert.Equal(t, commands.CancelledByCustomer, notifier.cancelled[0].CancelledBy)
		drivers.AssertExpectations(t)
	})

	t.Run("cancels unassigned order without touching drivers", func(t *testing.T) {
		customer, err := order.NewCustomer("Leila", "+212600000001", "", mustCoords(t, 33.5, -7.5))
		require.NoError(t, err)
		received, err := order.NewOrder(kernel.NewUUID(), customer, "food")
		require.NoError(t, err)
		require.NoError(t, received.Cancel(received.CreatedAt()))

		cmd, err := commands.NewCancelOrderCommand(received.Number(), commands.CancelledByAdmin)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("CancelIfActive", mock.Anything, received.Number(), mock.AnythingOfType("time.Time")).
			Return(received, nil).Once()

		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: new(MockDriverRepository)}}
		h := commands.NewCancelOrderCommandHandler(factory, newRecordingNotifier())

		_, err = h.Handle(ctx, cmd)

		require.NoError(t, err)
	})

	t.Run("rejects an unknown cancelling party", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(order.GenerateNumber(), "dispatcher")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = commands.NewCancelOrderCommand(order.GenerateNumber(), "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects terminal order", func(t *testing.T) {
		number := order.GenerateNumber()
		cmd, err := commands.NewCancelOrderCommand(number, commands.CancelledByDriver)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("CancelIfActive", mock.Anything, number, mock.AnythingOfType("time.Time")).
			Return(nil, errs.NewObjectConflictError("order", number)).Once()

		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: new(MockDriverRepository)}}
		h := commands.NewCancelOrderCommandHandler(factory, newRecordingNotifier())

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, commands.ErrOrderNotCancellable)
	})
}
