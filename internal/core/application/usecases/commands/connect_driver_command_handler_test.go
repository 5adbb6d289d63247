package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tawsila/internal/core/application/usecases/commands"
	"tawsila/internal/core/domain/model/kernel"
)

func TestConnectDriverCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("persists coords and restores availability", func(t *testing.T) {
		driverID := kernel.NewUUID()
		coords := mustCoords(t, 33.5731, -7.5898)
		cmd, err := commands.NewConnectDriverCommand(driverID, coords)
		require.NoError(t, err)

		drivers := new(MockDriverRepository)
		drivers.On("UpdateCoords", mock.Anything, driverID, coords).Return(nil).Once()
		drivers.On("SetAvailability", mock.Anything, driverID, true).Return(nil).Once()

		factory := stubDriverUoWFactory{uow: &stubUoW{drivers: drivers}}
		h := commands.NewConnectDriverCommandHandler(factory, discardLogger())

		require.NoError(t, h.Handle(ctx, cmd))
		drivers.AssertExpectations(t)
	})

	t.Run("does not touch availability when the fix fails to persist", func(t *testing.T) {
		driverID := kernel.NewUUID()
		coords := mustCoords(t, 33.5731, -7.5898)
		cmd, err := commands.NewConnectDriverCommand(driverID, coords)
		require.NoError(t, err)

		drivers := new(MockDriverRepository)
		drivers.On("UpdateCoords", mock.Anything, driverID, coords).
			Return(errors.New("db down")).Once()

		factory := stubDriverUoWFactory{uow: &stubUoW{drivers: drivers}}
		h := commands.NewConnectDriverCommandHandler(factory, discardLogger())

		require.Error(t, h.Handle(ctx, cmd))
		drivers.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a command built without the constructor", func(t *testing.T) {
		h := commands.NewConnectDriverCommandHandler(
			stubDriverUoWFactory{uow: &stubUoW{drivers: new(MockDriverRepository)}}, discardLogger())

		err := h.Handle(ctx, commands.ConnectDriverCommand{})
		assert.ErrorIs(t, err, commands.ErrConnectDriverCommandIsNotConstructed)
	})
}
