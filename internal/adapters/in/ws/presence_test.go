package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tawsila/internal/core/domain/model/kernel"
)

func newDriverID(t *testing.T) kernel.UUID {
	t.Helper()

	return kernel.NewUUID()
}

func TestInMemoryPresence_ConnectDisconnect(t *testing.T) {
	t.Run("connected driver is online", func(t *testing.T) {
		presence := NewInMemoryPresence()
		driverID := newDriverID(t)

		presence.Connect(driverID, "h-1", nil)

		assert.True(t, presence.IsOnline(driverID))
	})

	t.Run("disconnect with matching handle removes the entry", func(t *testing.T) {
		presence := NewInMemoryPresence()
		driverID := newDriverID(t)
		presence.Connect(driverID, "h-1", nil)

		removed := presence.Disconnect(driverID, "h-1")

		assert.True(t, removed)
		assert.False(t, presence.IsOnline(driverID))
	})

	t.Run("stale handle cannot erase a newer connection", func(t *testing.T) {
		presence := NewInMemoryPresence()
		driverID := newDriverID(t)
		presence.Connect(driverID, "h-1", nil)
		presence.Connect(driverID, "h-2", nil)

		removed := presence.Disconnect(driverID, "h-1")

		assert.False(t, removed)
		assert.True(t, presence.IsOnline(driverID))
	})

	t.Run("disconnect of unknown driver is a no-op", func(t *testing.T) {
		presence := NewInMemoryPresence()

		assert.False(t, presence.Disconnect(newDriverID(t), "h-1"))
	})
}

func TestInMemoryPresence_Coords(t *testing.T) {
	t.Run("last fix survives a reconnect", func(t *testing.T) {
		presence := NewInMemoryPresence()
		driverID := newDriverID(t)
		coords, err := kernel.NewCoordinates(33.5731, -7.5898)
		require.NoError(t, err)

		presence.Connect(driverID, "h-1", nil)
		presence.UpdateCoords(driverID, coords)
		presence.Connect(driverID, "h-2", nil)

		snapshot := presence.Snapshot()
		require.Len(t, snapshot, 1)
		require.NotNil(t, snapshot[0].Coords)
		assert.True(t, snapshot[0].Coords.IsEqual(coords))
		assert.Equal(t, "h-2", snapshot[0].Handle)
	})

	t.Run("coords announced with the join are visible immediately", func(t *testing.T) {
		presence := NewInMemoryPresence()
		driverID := newDriverID(t)
		coords, err := kernel.NewCoordinates(33.5731, -7.5898)
		require.NoError(t, err)

		presence.Connect(driverID, "h-1", &coords)

		snapshot := presence.Snapshot()
		require.Len(t, snapshot, 1)
		require.NotNil(t, snapshot[0].Coords)
		assert.True(t, snapshot[0].Coords.IsEqual(coords))
	})

	t.Run("join coords replace the previous fix", func(t *testing.T) {
		presence := NewInMemoryPresence()
		driverID := newDriverID(t)
		stale, err := kernel.NewCoordinates(34.0209, -6.8416)
		require.NoError(t, err)
		fresh, err := kernel.NewCoordinates(33.5731, -7.5898)
		require.NoError(t, err)

		presence.Connect(driverID, "h-1", nil)
		presence.UpdateCoords(driverID, stale)
		presence.Connect(driverID, "h-2", &fresh)

		snapshot := presence.Snapshot()
		require.Len(t, snapshot, 1)
		require.NotNil(t, snapshot[0].Coords)
		assert.True(t, snapshot[0].Coords.IsEqual(fresh))
	})

	t.Run("fix for an offline driver is discarded", func(t *testing.T) {
		presence := NewInMemoryPresence()
		driverID := newDriverID(t)
		coords, err := kernel.NewCoordinates(34.0209, -6.8416)
		require.NoError(t, err)

		presence.UpdateCoords(driverID, coords)

		assert.Empty(t, presence.Snapshot())
	})
}

func TestInMemoryPresence_Snapshot(t *testing.T) {
	t.Run("snapshot lists every connected driver", func(t *testing.T) {
		presence := NewInMemoryPresence()
		first := newDriverID(t)
		second := newDriverID(t)
		presence.Connect(first, "h-1", nil)
		presence.Connect(second, "h-2", nil)

		snapshot := presence.Snapshot()

		require.Len(t, snapshot, 2)
		seen := map[string]bool{}
		for _, connected := range snapshot {
			seen[connected.ID.String()] = true
		}
		assert.True(t, seen[first.String()])
		assert.True(t, seen[second.String()])
	})

	t.Run("mutating the snapshot does not affect the registry", func(t *testing.T) {
		presence := NewInMemoryPresence()
		driverID := newDriverID(t)
		coords, err := kernel.NewCoordinates(31.6295, -7.9811)
		require.NoError(t, err)
		presence.Connect(driverID, "h-1", nil)
		presence.UpdateCoords(driverID, coords)

		snapshot := presence.Snapshot()
		require.Len(t, snapshot, 1)
		other, err := kernel.NewCoordinates(0, 0)
		require.NoError(t, err)
		*snapshot[0].Coords = other

		fresh := presence.Snapshot()
		require.Len(t, fresh, 1)
		assert.True(t, fresh[0].Coords.IsEqual(coords))
	})
}
