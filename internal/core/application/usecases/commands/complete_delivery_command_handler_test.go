package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tawsila/internal/core/application/usecases/commands"
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/errs"
)

func TestCompleteDeliveryCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("marks order delivered and releases driver", func(t *testing.T) {
		driverID := kernel.NewUUID()
		delivered := assignedOrder(t, driverID)
		require.NoError(t, delivered.MarkDelivered(time.Now()))

		cmd, err := commands.NewCompleteDeliveryCommand(delivered.Number())
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		drivers := new(MockDriverRepository)
		orders.On("DeliverIfInTransit", mock.Anything, delivered.Number(), mock.AnythingOfType("time.Time")).
			Return(delivered, nil).Once()
		drivers.On("SetAvailability", mock.Anything, driverID, true).Return(nil).Once()

		notifier := newRecordingNotifier()
		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: drivers}}
		h := commands.NewCompleteDeliveryCommandHandler(factory, notifier)

		got, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status())
		require.Len(t, notifier.delivered, 1)
		assert.Equal(t, delivered.Number(), notifier.delivered[0].OrderNumber)
		drivers.AssertExpectations(t)
	})

	t.Run("rejects order that is not in transit", func(t *testing.T) {
		number := order.GenerateNumber()
		cmd, err := commands.NewCompleteDeliveryCommand(number)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("DeliverIfInTransit", mock.Anything, number, mock.AnythingOfType("time.Time")).
			Return(nil, errs.NewObjectConflictError("order", number)).Once()

		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: new(MockDriverRepository)}}
		h := commands.NewCompleteDeliveryCommandHandler(factory, newRecordingNotifier())

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, commands.ErrOrderNotInTransit)
	})

	t.Run("reports unknown order", func(t *testing.T) {
		number := order.GenerateNumber()
		cmd, err := commands.NewCompleteDeliveryCommand(number)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("DeliverIfInTransit", mock.Anything, number, mock.AnythingOfType("time.Time")).
			Return(nil, errs.NewObjectNotFoundError("order", number)).Once()

		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: new(MockDriverRepository)}}
		h := commands.NewCompleteDeliveryCommandHandler(factory, newRecordingNotifier())

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}

func TestRateOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("rates delivered order", func(t *testing.T) {
		driverID := kernel.NewUUID()
		rated := assignedOrder(t, driverID)
		require.NoError(t, rated.MarkDelivered(time.Now()))
		require.NoError(t, rated.Rate(5))

		cmd, err := commands.NewRateOrderCommand(rated.Number(), 5)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("RateIfDelivered", mock.Anything, rated.Number(), 5).Return(rated, nil).Once()

		factory := stubOrderUoWFactory{uow: &stubUoW{orders: orders}}
		h := commands.NewRateOrderCommandHandler(factory)

		got, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, got.Rating())
		assert.Equal(t, 5, *got.Rating())
	})

	t.Run("rejects rating out of range", func(t *testing.T) {
		_, err := commands.NewRateOrderCommand(order.GenerateNumber(), 6)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects second rating", func(t *testing.T) {
		number := order.GenerateNumber()
		cmd, err := commands.NewRateOrderCommand(number, 4)
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		orders.On("RateIfDelivered", mock.Anything, number, 4).
			Return(nil, errs.NewObjectConflictError("order", number)).Once()

		factory := stubOrderUoWFactory{uow: &stubUoW{orders: orders}}
		h := commands.NewRateOrderCommandHandler(factory)

		_, err = h.Handle(ctx, cmd)

		assert.ErrorIs(t, err, commands.ErrOrderNotRatable)
	})
}
