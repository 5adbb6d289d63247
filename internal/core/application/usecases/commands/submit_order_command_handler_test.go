package commands_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tawsila/internal/core/application/usecases/commands"
	"tawsila/internal/core/domain/model/driver"
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/errs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func mustCoords(t *testing.T, lat, lng float64) kernel.Coordinates {
	t.Helper()
	coords, err := kernel.NewCoordinates(lat, lng)
	require.NoError(t, err)
	return coords
}

func submitCommand(t *testing.T) commands.SubmitOrderCommand {
	t.Helper()
	cmd, err := commands.NewSubmitOrderCommand(
		"Leila Haddad", "+212600000001", "12 Rue des Fleurs",
		mustCoords(t, 33.5731, -7.5898), "documents")
	require.NoError(t, err)
	return cmd
}

func availableDriver(t *testing.T, name string, lat, lng float64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name, name, "+212611111111")
	require.NoError(t, err)
	require.NoError(t, d.MoveTo(mustCoords(t, lat, lng)))
	return d
}

func assignedOrder(t *testing.T, driverID kernel.UUID) *order.Order {
	t.Helper()
	customer, err := order.NewCustomer("Leila Haddad", "+212600000001", "", mustCoords(t, 33.5731, -7.5898))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customer, "documents")
	require.NoError(t, err)
	require.NoError(t, o.Assign(driverID))
	return o
}

func TestSubmitOrderCommand(t *testing.T) {
	t.Run("constructs with valid input", func(t *testing.T) {
		cmd := submitCommand(t)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "Leila Haddad", cmd.CustomerName())
		assert.Equal(t, "documents", cmd.ItemType())
	})

	t.Run("requires customer name", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand("", "+212600000001", "", mustCoords(t, 1, 1), "food")
		assert.ErrorIs(t, err, commands.ErrCustomerNameIsRequired)
	})

	t.Run("requires customer phone", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand("Leila", "", "", mustCoords(t, 1, 1), "food")
		assert.ErrorIs(t, err, commands.ErrCustomerPhoneIsRequired)
	})

	t.Run("requires item type", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand("Leila", "+212600000001", "", mustCoords(t, 1, 1), "")
		assert.ErrorIs(t, err, commands.ErrItemTypeIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.SubmitOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrSubmitOrderCommandIsNotConstructed)
	})
}

func TestSubmitOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("assigns nearest connected driver", func(t *testing.T) {
		near := availableDriver(t, "near", 33.5800, -7.6000)
		far := availableDriver(t, "far", 34.0209, -6.8416)

		orders := new(MockOrderRepository)
		drivers := new(MockDriverRepository)
		orders.On("HasActiveForPhone", mock.Anything, "+212600000001").Return(false, nil).Once()
		orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		drivers.On("GetAllAvailable", mock.Anything).Return([]*driver.Driver{far, near}, nil).Once()
		orders.On("AssignIfReceived", mock.Anything, mock.AnythingOfType("string"), near.ID()).
			Return(assignedOrder(t, near.ID()), nil).Once()
		drivers.On("SetAvailability", mock.Anything, near.ID(), false).Return(nil).Once()

		presence := newStubPresence()
		presence.Connect(near.ID(), "h-near", nil)
		presence.Connect(far.ID(), "h-far", nil)
		presence.UpdateCoords(near.ID(), *near.Coords())
		presence.UpdateCoords(far.ID(), *far.Coords())

		notifier := newRecordingNotifier()
		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: drivers}}
		h := commands.NewSubmitOrderCommandHandler(factory, presence, notifier, discardLogger())

		submitted, err := h.Handle(ctx, submitCommand(t))

		require.NoError(t, err)
		require.NotNil(t, submitted)
		assert.Contains(t, notifier.assigned, near.ID().String())
		assert.NotContains(t, notifier.assigned, far.ID().String())
		assert.Contains(t, notifier.informed, far.ID().String())
		assert.NotContains(t, notifier.informed, near.ID().String())
		assert.Equal(t, order.Received.String(), notifier.informed[far.ID().String()].Status)
		assert.Empty(t, notifier.broadcasts)
		orders.AssertExpectations(t)
		drivers.AssertExpectations(t)
	})

	t.Run("falls back to next candidate on claim conflict", func(t *testing.T) {
		near := availableDriver(t, "near", 33.5800, -7.6000)
		far := availableDriver(t, "far", 34.0209, -6.8416)

		orders := new(MockOrderRepository)
		drivers := new(MockDriverRepository)
		orders.On("HasActiveForPhone", mock.Anything, "+212600000001").Return(false, nil).Once()
		orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		drivers.On("GetAllAvailable", mock.Anything).Return([]*driver.Driver{near, far}, nil).Once()
		orders.On("AssignIfReceived", mock.Anything, mock.AnythingOfType("string"), near.ID()).
			Return(nil, errs.NewObjectConflictError("order", "taken")).Once()
		orders.On("AssignIfReceived", mock.Anything, mock.AnythingOfType("string"), far.ID()).
			Return(assignedOrder(t, far.ID()), nil).Once()
		drivers.On("SetAvailability", mock.Anything, far.ID(), false).Return(nil).Once()

		presence := newStubPresence()
		presence.Connect(near.ID(), "h-near", nil)
		presence.Connect(far.ID(), "h-far", nil)
		presence.UpdateCoords(near.ID(), *near.Coords())
		presence.UpdateCoords(far.ID(), *far.Coords())

		notifier := newRecordingNotifier()
		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: drivers}}
		h := commands.NewSubmitOrderCommandHandler(factory, presence, notifier, discardLogger())

		_, err := h.Handle(ctx, submitCommand(t))

		require.NoError(t, err)
		assert.Contains(t, notifier.assigned, far.ID().String())
		orders.AssertExpectations(t)
	})

	t.Run("broadcasts to pool when nobody is connected", func(t *testing.T) {
		offline := availableDriver(t, "offline", 33.5800, -7.6000)

		orders := new(MockOrderRepository)
		drivers := new(MockDriverRepository)
		orders.On("HasActiveForPhone", mock.Anything, "+212600000001").Return(false, nil).Once()
		orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		drivers.On("GetAllAvailable", mock.Anything).Return([]*driver.Driver{offline}, nil).Once()

		notifier := newRecordingNotifier()
		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: drivers}}
		h := commands.NewSubmitOrderCommandHandler(factory, newStubPresence(), notifier, discardLogger())

		submitted, err := h.Handle(ctx, submitCommand(t))

		require.NoError(t, err)
		require.Len(t, notifier.broadcasts, 1)
		assert.Equal(t, submitted.Number(), notifier.broadcasts[0].Number)
		assert.Empty(t, notifier.assigned)
	})

	t.Run("rejects customer with active order", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("HasActiveForPhone", mock.Anything, "+212600000001").Return(true, nil).Once()

		factory := stubUoWFactory{uow: &stubUoW{orders: orders, drivers: new(MockDriverRepository)}}
		h := commands.NewSubmitOrderCommandHandler(factory, newStubPresence(), newRecordingNotifier(), discardLogger())

		_, err := h.Handle(ctx, submitCommand(t))

		assert.ErrorIs(t, err, commands.ErrCustomerHasActiveOrder)
	})

	t.Run("rejects unconstructed command", func(t *testing.T) {
		factory := stubUoWFactory{uow: &stubUoW{}}
		h := commands.NewSubmitOrderCommandHandler(factory, newStubPresence(), newRecordingNotifier(), discardLogger())

		_, err := h.Handle(ctx, commands.SubmitOrderCommand{})

		assert.Error(t, err)
	})
}
