package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"tawsila/internal/core/application/usecases/commands"
	"tawsila/internal/core/domain/model/driver"
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllReceived(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetInTransitByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) HasActiveForPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) AssignIfReceived(ctx context.Context, number string, driverID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, number, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CancelIfActive(ctx context.Context, number string, at time.Time) (*order.Order, error) {
	args := m.Called(ctx, number, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) DeliverIfInTransit(ctx context.Context, number string, at time.Time) (*order.Order, error) {
	args := m.Called(ctx, number, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) RateIfDelivered(ctx context.Context, number string, rating int) (*order.Order, error) {
	args := m.Called(ctx, number, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) SetTrackedLocation(ctx context.Context, number string, coords kernel.Coordinates, at time.Time) error {
	args := m.Called(ctx, number, coords, at)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) SetAvailability(ctx context.Context, id kernel.UUID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockDriverRepository) UpdateCoords(ctx context.Context, id kernel.UUID, coords kernel.Coordinates) error {
	args := m.Called(ctx, id, coords)
	return args.Error(0)
}

// stubUoW is a permissive unit of work whose transaction calls always
// succeed. Handler tests that care about transaction failures use the
// testify mocks instead.
type stubUoW struct {
	orders  ports.OrderRepository
	drivers ports.DriverRepository
}

func (s *stubUoW) Begin(context.Context) error             { return nil }
func (s *stubUoW) Commit(context.Context) error            { return nil }
func (s *stubUoW) Rollback(context.Context) error          { return nil }
func (s *stubUoW) OrderRepository() ports.OrderRepository  { return s.orders }
func (s *stubUoW) DriverRepository() ports.DriverRepository { return s.drivers }

type stubUoWFactory struct{ uow *stubUoW }

func (s stubUoWFactory) Create() commands.UoW { return s.uow }

type stubOrderUoWFactory struct{ uow *stubUoW }

func (s stubOrderUoWFactory) Create() commands.OrderUoW { return s.uow }

type stubDriverUoWFactory struct{ uow *stubUoW }

func (s stubDriverUoWFactory) Create() commands.DriverUoW { return s.uow }

// recordingNotifier captures every notice for assertions.
type recordingNotifier struct {
	mu         sync.Mutex
	broadcasts []ports.OrderNotice
	informed   map[string]ports.OrderNotice
	assigned   map[string]ports.OrderNotice
	locations  []ports.LocationNotice
	delivered  []ports.DeliveryNotice
	cancelled  []ports.DeliveryNotice
	statuses   []ports.StatusNotice
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		informed: make(map[string]ports.OrderNotice),
		assigned: make(map[string]ports.OrderNotice),
	}
}

func (n *recordingNotifier) BroadcastNewOrder(_ context.Context, notice ports.OrderNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcasts = append(n.broadcasts, notice)
}

func (n *recordingNotifier) NotifyNewOrder(_ context.Context, driverID kernel.UUID, notice ports.OrderNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.informed[driverID.String()] = notice
}

func (n *recordingNotifier) NotifyOrderAssigned(_ context.Context, driverID kernel.UUID, notice ports.OrderNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assigned[driverID.String()] = notice
}

func (n *recordingNotifier) PublishLocation(_ context.Context, notice ports.LocationNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.locations = append(n.locations, notice)
}

func (n *recordingNotifier) PublishDeliveryCompleted(_ context.Context, notice ports.DeliveryNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, notice)
}

func (n *recordingNotifier) PublishOrderCancelled(_ context.Context, _ *kernel.UUID, notice ports.DeliveryNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, notice)
}

func (n *recordingNotifier) PublishStatusUpdate(_ context.Context, notice ports.StatusNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, notice)
}

// stubPresence serves a fixed snapshot.
type stubPresence struct {
	connected []ports.ConnectedDriver
	coords    map[string]kernel.Coordinates
}

func newStubPresence() *stubPresence {
	return &stubPresence{coords: make(map[string]kernel.Coordinates)}
}

func (p *stubPresence) Connect(driverID kernel.UUID, handle string, coords *kernel.Coordinates) {
	p.connected = append(p.connected, ports.ConnectedDriver{ID: driverID, Handle: handle, Coords: coords})
	if coords != nil {
		p.coords[driverID.String()] = *coords
	}
}

func (p *stubPresence) Disconnect(kernel.UUID, string) bool { return true }

func (p *stubPresence) UpdateCoords(driverID kernel.UUID, coords kernel.Coordinates) {
	p.coords[driverID.String()] = coords
	for i := range p.connected {
		if p.connected[i].ID.IsEqual(driverID) {
			c := coords
			p.connected[i].Coords = &c
		}
	}
}

func (p *stubPresence) IsOnline(driverID kernel.UUID) bool {
	for _, c := range p.connected {
		if c.ID.IsEqual(driverID) {
			return true
		}
	}
	return false
}

func (p *stubPresence) Snapshot() []ports.ConnectedDriver {
	out := make([]ports.ConnectedDriver, len(p.connected))
	copy(out, p.connected)
	return out
}
