package ws

import (
	"sync"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/ports"
)

type presenceEntry struct {
	handle string
	coords *kernel.Coordinates
}

// InMemoryPresence is the in-process driver liveness registry. It holds
// one entry per connected driver keyed by driver identity, guarded by a
// plain mutex since every operation is a short map touch.
type InMemoryPresence struct {
	mu      sync.Mutex
	entries map[string]presenceEntry
	byID    map[string]kernel.UUID
}

func NewInMemoryPresence() *InMemoryPresence {
	return &InMemoryPresence{
		entries: make(map[string]presenceEntry),
		byID:    make(map[string]kernel.UUID),
	}
}

func (p *InMemoryPresence) Connect(driverID kernel.UUID, handle string, coords *kernel.Coordinates) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := driverID.String()
	previous, ok := p.entries[key]
	entry := presenceEntry{handle: handle}
	switch {
	case coords != nil:
		fix := *coords
		entry.coords = &fix
	case ok:
		// keep the last fix across a reconnect
		entry.coords = previous.coords
	}
	p.entries[key] = entry
	p.byID[key] = driverID
}

func (p *InMemoryPresence) Disconnect(driverID kernel.UUID, handle string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := driverID.String()
	entry, ok := p.entries[key]
	if !ok || entry.handle != handle {
		return false
	}
	delete(p.entries, key)
	delete(p.byID, key)
	return true
}

func (p *InMemoryPresence) UpdateCoords(driverID kernel.UUID, coords kernel.Coordinates) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := driverID.String()
	entry, ok := p.entries[key]
	if !ok {
		return
	}
	entry.coords = &coords
	p.entries[key] = entry
}

func (p *InMemoryPresence) IsOnline(driverID kernel.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.entries[driverID.String()]
	return ok
}

func (p *InMemoryPresence) Snapshot() []ports.ConnectedDriver {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := make([]ports.ConnectedDriver, 0, len(p.entries))
	for key, entry := range p.entries {
		connected := ports.ConnectedDriver{
			ID:     p.byID[key],
			Handle: entry.handle,
		}
		if entry.coords != nil {
			coords := *entry.coords
			connected.Coords = &coords
		}
		snapshot = append(snapshot, connected)
	}
	return snapshot
}
