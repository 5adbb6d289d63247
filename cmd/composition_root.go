package cmd

import (
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	httpin "tawsila/internal/adapters/in/http"
	"tawsila/internal/adapters/in/ws"
	"tawsila/internal/adapters/out/osrm"
	"tawsila/internal/adapters/out/postgres"
	"tawsila/internal/adapters/out/rabbitmq"
	"tawsila/internal/core/application/usecases/commands"
	"tawsila/internal/core/application/usecases/queries"
	"tawsila/internal/core/ports"
	"tawsila/internal/jobs"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	hub      *ws.Hub
	presence *ws.InMemoryPresence
	notifier *ws.HubNotifier

	routePlanner ports.RoutePlanner
	logger       *slog.Logger
}

// NewCompositionRoot wires shared infrastructure: the websocket hub, the
// presence registry, the notifier chain and the routing client. The
// broker connection may be nil; events then flow to sockets only.
func NewCompositionRoot(config Config, gormDB *gorm.DB, broker *amqp.Connection, logger *slog.Logger) CompositionRoot {
	hub := ws.NewHub(logger)
	presence := ws.NewInMemoryPresence()

	var secondary ports.Notifier
	if broker != nil {
		publisher, err := rabbitmq.NewPublisher(broker, logger)
		if err != nil {
			logger.Warn("broker publisher unavailable, events go to sockets only", "error", err)
		} else {
			secondary = publisher
		}
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:          hub,
		presence:     presence,
		notifier:     ws.NewHubNotifier(hub, secondary, logger),
		routePlanner: osrm.NewClient(config.OSRMBaseURL, logger),
		logger:       logger,
	}
}

// Hub exposes the websocket hub so main can run its event loop.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.presence, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f, c.presence, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateConnectDriverCommandHandler() commands.ConnectDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConnectDriverCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateBroadcastLocationCommandHandler() commands.BroadcastLocationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewBroadcastLocationCommandHandler(f, c.presence, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateSyncAvailabilityCommandHandler() commands.SyncAvailabilityCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncAvailabilityCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateRebroadcastOrdersCommandHandler() commands.RebroadcastOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRebroadcastOrdersCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPlacesStatsQueryHandler() queries.GetPlacesStatsQueryHandler {
	return queries.NewGetPlacesStatsQueryHandler(c.gormDB)
}

// CreateServer assembles the REST server with every handler wired.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.ServerParams{
		SubmitOrder:      c.CreateSubmitOrderCommandHandler(),
		AcceptOrder:      c.CreateAcceptOrderCommandHandler(),
		CancelOrder:      c.CreateCancelOrderCommandHandler(),
		CompleteDelivery: c.CreateCompleteDeliveryCommandHandler(),
		RateOrder:        c.CreateRateOrderCommandHandler(),
		UpdateOrder:      c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:      c.CreateDeleteOrderCommandHandler(),
		ReportLocation:   c.CreateReportLocationCommandHandler(),
		BroadcastLoc:     c.CreateBroadcastLocationCommandHandler(),
		CreateDriver:     c.CreateCreateDriverCommandHandler(),
		TrackOrder:       c.CreateTrackOrderQueryHandler(),
		AvailableOrders:  c.CreateGetAvailableOrdersQueryHandler(),
		ListOrders:       c.CreateGetOrdersQueryHandler(),
		OrderStats:       c.CreateGetOrderStatsQueryHandler(),
		PlacesStats:      c.CreateGetPlacesStatsQueryHandler(),
		RoutePlanner:     c.routePlanner,
		Logger:           c.logger,
	})
}

// CreateGateway assembles the websocket gateway.
func (c *CompositionRoot) CreateGateway() *ws.Gateway {
	return ws.NewGateway(
		c.hub,
		c.presence,
		c.CreateConnectDriverCommandHandler(),
		c.CreateReportLocationCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateTrackOrderQueryHandler(),
		c.logger,
	)
}

// CreateJobManager assembles the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSyncAvailabilityCommandHandler(),
		c.CreateRebroadcastOrdersCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
