// Package http exposes the REST surface: public order submission and
// tracking, driver order actions, and staff administration endpoints.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tawsila/internal/core/application/usecases/commands"
	"tawsila/internal/core/application/usecases/queries"
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/core/ports"
	"tawsila/internal/pkg/errs"
)

// fallbackSpeedKmh is the assumed driving speed when the routing service
// is down and the straight-line distance is all we have.
const fallbackSpeedKmh = 30.0

// Server wires HTTP requests to the application use cases.
type Server struct {
	submitOrder      commands.SubmitOrderCommandHandler
	acceptOrder      commands.AcceptOrderCommandHandler
	cancelOrder      commands.CancelOrderCommandHandler
	completeDelivery commands.CompleteDeliveryCommandHandler
	rateOrder        commands.RateOrderCommandHandler
	updateOrder      commands.UpdateOrderCommandHandler
	deleteOrder      commands.DeleteOrderCommandHandler
	reportLocation   commands.ReportLocationCommandHandler
	broadcastLoc     commands.BroadcastLocationCommandHandler
	createDriver     commands.CreateDriverCommandHandler

	trackOrder      queries.TrackOrderQueryHandler
	availableOrders queries.GetAvailableOrdersQueryHandler
	listOrders      queries.GetOrdersQueryHandler
	orderStats      queries.GetOrderStatsQueryHandler
	placesStats     queries.GetPlacesStatsQueryHandler

	routePlanner ports.RoutePlanner
	logger       *slog.Logger
}

// ServerParams groups the handlers the server depends on.
type ServerParams struct {
	SubmitOrder      commands.SubmitOrderCommandHandler
	AcceptOrder      commands.AcceptOrderCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	CompleteDelivery commands.CompleteDeliveryCommandHandler
	RateOrder        commands.RateOrderCommandHandler
	UpdateOrder      commands.UpdateOrderCommandHandler
	DeleteOrder      commands.DeleteOrderCommandHandler
	ReportLocation   commands.ReportLocationCommandHandler
	BroadcastLoc     commands.BroadcastLocationCommandHandler
	CreateDriver     commands.CreateDriverCommandHandler

	TrackOrder      queries.TrackOrderQueryHandler
	AvailableOrders queries.GetAvailableOrdersQueryHandler
	ListOrders      queries.GetOrdersQueryHandler
	OrderStats      queries.GetOrderStatsQueryHandler
	PlacesStats     queries.GetPlacesStatsQueryHandler

	RoutePlanner ports.RoutePlanner
	Logger       *slog.Logger
}

func NewServer(params ServerParams) *Server {
	return &Server{
		submitOrder:      params.SubmitOrder,
		acceptOrder:      params.AcceptOrder,
		cancelOrder:      params.CancelOrder,
		completeDelivery: params.CompleteDelivery,
		rateOrder:        params.RateOrder,
		updateOrder:      params.UpdateOrder,
		deleteOrder:      params.DeleteOrder,
		reportLocation:   params.ReportLocation,
		broadcastLoc:     params.BroadcastLoc,
		createDriver:     params.CreateDriver,
		trackOrder:       params.TrackOrder,
		availableOrders:  params.AvailableOrders,
		listOrders:       params.ListOrders,
		orderStats:       params.OrderStats,
		placesStats:      params.PlacesStats,
		routePlanner:     params.RoutePlanner,
		logger:           params.Logger.With("component", "http.Server"),
	}
}

// RegisterRoutes mounts all REST endpoints. Public routes need no token;
// staff routes accept staff and admin tokens; admin routes admin only.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *AuthMiddleware) {
	api := e.Group("/api/v1")

	// public
	api.POST("/orders", s.SubmitOrder)
	api.GET("/orders/track/:number", s.TrackOrder)
	api.POST("/orders/:number/rate", s.RateOrder)
	api.POST("/orders/:number/cancel", s.CancelOrder)

	// driver-facing HTTP fallbacks for the websocket events
	api.POST("/orders/:number/accept", s.AcceptOrder)
	api.POST("/orders/:number/complete", s.CompleteDelivery)
	api.POST("/orders/:number/location", s.ReportLocation)
	api.POST("/drivers/:id/location", s.BroadcastLocation)

	staff := api.Group("", auth.RequireRole(RoleStaff))
	staff.GET("/orders", s.ListOrders)
	staff.GET("/orders/available", s.AvailableOrders)
	staff.PATCH("/orders/:number", s.UpdateOrder)
	staff.GET("/orders/:number/route", s.RouteInfo)
	staff.GET("/stats/orders", s.OrderStats)
	staff.GET("/stats/places", s.PlacesStats)

	admin := api.Group("", auth.RequireRole())
	admin.DELETE("/orders/:id", s.DeleteOrder)
	admin.POST("/drivers", s.CreateDriver)
}

// SubmitOrder handles POST /api/v1/orders.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var request submitOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	destination, err := kernel.NewCoordinates(request.Lat, request.Lng)
	if err != nil {
		return s.badRequest(ctx, "invalid destination coordinates")
	}

	cmd, err := commands.NewSubmitOrderCommand(
		request.CustomerName,
		request.CustomerPhone,
		request.Address,
		destination,
		request.ItemType,
	)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	submitted, err := s.submitOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(submitted))
}

// TrackOrder handles GET /api/v1/orders/track/:number.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("number"))
	if err != nil {
		return s.badRequest(ctx, "invalid order number")
	}

	tracked, err := s.trackOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackToResponse(tracked))
}

// AcceptOrder handles POST /api/v1/orders/:number/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	var request acceptOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return s.badRequest(ctx, "invalid driver id")
	}

	cmd, err := commands.NewAcceptOrderCommand(ctx.Param("number"), driverID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	accepted, err := s.acceptOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(accepted))
}

// CancelOrder handles POST /api/v1/orders/:number/cancel. The body may
// name the cancelling party; it defaults to the customer, since this is
// the customer-facing endpoint.
func (s *Server) CancelOrder(ctx echo.Context) error {
	var request cancelOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	if request.CancelledBy == "" {
		request.CancelledBy = commands.CancelledByCustomer
	}

	cmd, err := commands.NewCancelOrderCommand(ctx.Param("number"), request.CancelledBy)
	if err != nil {
		return s.badRequest(ctx, "invalid cancellation request")
	}

	cancelled, err := s.cancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// CompleteDelivery handles POST /api/v1/orders/:number/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	cmd, err := commands.NewCompleteDeliveryCommand(ctx.Param("number"))
	if err != nil {
		return s.badRequest(ctx, "invalid order number")
	}

	delivered, err := s.completeDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(delivered))
}

// RateOrder handles POST /api/v1/orders/:number/rate.
func (s *Server) RateOrder(ctx echo.Context) error {
	var request rateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRateOrderCommand(ctx.Param("number"), request.Rating)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	rated, err := s.rateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(rated))
}

// ReportLocation handles POST /api/v1/orders/:number/location.
func (s *Server) ReportLocation(ctx echo.Context) error {
	var request reportLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return s.badRequest(ctx, "invalid driver id")
	}
	coords, err := kernel.NewCoordinates(request.Lat, request.Lng)
	if err != nil {
		return s.badRequest(ctx, "invalid coordinates")
	}

	cmd, err := commands.NewReportLocationCommand(ctx.Param("number"), driverID, coords)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err := s.reportLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// BroadcastLocation handles POST /api/v1/drivers/:id/location. The fix is
// relayed to the tracking room of every order the driver has in transit.
func (s *Server) BroadcastLocation(ctx echo.Context) error {
	var request broadcastLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "invalid driver id")
	}
	coords, err := kernel.NewCoordinates(request.Lat, request.Lng)
	if err != nil {
		return s.badRequest(ctx, "invalid coordinates")
	}

	cmd, err := commands.NewBroadcastLocationCommand(driverID, coords)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	notified, err := s.broadcastLoc.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int{"orders_notified": notified})
}

// ListOrders handles GET /api/v1/orders with an optional status filter.
func (s *Server) ListOrders(ctx echo.Context) error {
	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return s.badRequest(ctx, "unknown status")
		}
		status = &parsed
	}

	query, err := queries.NewGetOrdersQuery(status)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	orders, err := s.listOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]orderListItem, len(orders))
	for i, item := range orders {
		response[i] = orderListItem{
			ID:            item.ID.String(),
			Number:        item.Number,
			Status:        item.Status,
			ItemType:      item.ItemType,
			CustomerName:  item.CustomerName,
			CustomerPhone: item.CustomerPhone,
			Address:       item.Address,
			DriverName:    item.DriverName,
			Rating:        item.Rating,
			CreatedAt:     item.CreatedAt,
			DeliveredAt:   item.DeliveredAt,
			CancelledAt:   item.CancelledAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AvailableOrders handles GET /api/v1/orders/available.
func (s *Server) AvailableOrders(ctx echo.Context) error {
	orders, err := s.availableOrders.Handle(ctx.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]availableOrderItem, len(orders))
	for i, item := range orders {
		response[i] = availableOrderItem{
			Number:       item.Number,
			ItemType:     item.ItemType,
			CustomerName: item.CustomerName,
			Address:      item.Address,
			Lat:          item.Destination.Lat(),
			Lng:          item.Destination.Lng(),
			CreatedAt:    item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PATCH /api/v1/orders/:number.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	var request updateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	var status *order.Status
	if request.Status != nil {
		parsed, err := order.StatusFromString(*request.Status)
		if err != nil {
			return s.badRequest(ctx, "unknown status")
		}
		status = &parsed
	}

	cmd, err := commands.NewUpdateOrderCommand(
		ctx.Param("number"),
		status,
		request.CustomerName,
		request.CustomerPhone,
		request.Address,
		request.ItemType,
	)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	updated, err := s.updateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/:id.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err := s.deleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var request createDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, request.FullName, request.Username, request.Phone)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err := s.createDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": driverID.String()})
}

// RouteInfo handles GET /api/v1/orders/:number/route. It resolves the
// driving route from the driver's last reported fix to the destination,
// falling back to the straight-line distance when the routing service is
// unreachable.
func (s *Server) RouteInfo(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("number"))
	if err != nil {
		return s.badRequest(ctx, "invalid order number")
	}

	tracked, err := s.trackOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}
	if tracked.TrackedLat == nil || tracked.TrackedLng == nil {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "no position fix reported yet",
		})
	}

	from, err := kernel.NewCoordinates(*tracked.TrackedLat, *tracked.TrackedLng)
	if err != nil {
		return s.mapError(ctx, err)
	}

	info, err := s.routePlanner.Route(ctx.Request().Context(), from, tracked.Destination)
	if err != nil {
		s.logger.Warn("route planner unavailable, using straight-line estimate",
			"order_number", tracked.Number, "error", err)
		return ctx.JSON(http.StatusOK, s.straightLineEstimate(tracked.Number, from, tracked.Destination))
	}

	return ctx.JSON(http.StatusOK, routeInfoResponse{
		OrderNumber:     tracked.Number,
		DistanceMeters:  info.DistanceMeters,
		DurationSeconds: info.DurationSeconds,
		Source:          "osrm",
	})
}

// OrderStats handles GET /api/v1/stats/orders?days=N.
func (s *Server) OrderStats(ctx echo.Context) error {
	days := queries.StatsDaysMax
	if raw := ctx.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return s.badRequest(ctx, "days must be an integer")
		}
		days = parsed
	}

	query, err := queries.NewGetOrderStatsQuery(days)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	stats, err := s.orderStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := orderStatsResponse{
		Daily:         make([]dailyCountItem, len(stats.Daily)),
		TotalByStatus: stats.TotalByStatus,
		AverageRating: stats.AverageRating,
	}
	for i, day := range stats.Daily {
		response.Daily[i] = dailyCountItem{
			Day:   day.Day.Format("2006-01-02"),
			Count: day.Count,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PlacesStats handles GET /api/v1/stats/places?limit=N.
func (s *Server) PlacesStats(ctx echo.Context) error {
	limit := 10
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return s.badRequest(ctx, "limit must be an integer")
		}
		limit = parsed
	}

	query, err := queries.NewGetPlacesStatsQuery(limit)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	places, err := s.placesStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err)
	}

	response := make([]placeStatsItem, len(places))
	for i, place := range places {
		response[i] = placeStatsItem{Address: place.Address, Count: place.Count}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) straightLineEstimate(number string, from, to kernel.Coordinates) routeInfoResponse {
	distanceKm, err := from.DistanceKmTo(to)
	if err != nil {
		distanceKm = 0
	}
	return routeInfoResponse{
		OrderNumber:     number,
		DistanceMeters:  distanceKm * 1000,
		DurationSeconds: distanceKm / fallbackSpeedKmh * 3600,
		Source:          "straight-line",
	}
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError converts application and domain errors to HTTP responses.
func (s *Server) mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound) || errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "order not found",
		})
	case errors.Is(err, commands.ErrOrderAlreadyTaken) ||
		errors.Is(err, commands.ErrCustomerHasActiveOrder) ||
		errors.Is(err, commands.ErrOrderNotCancellable) ||
		errors.Is(err, commands.ErrOrderNotInTransit) ||
		errors.Is(err, commands.ErrOrderNotRatable) ||
		errors.Is(err, errs.ErrObjectConflict):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return s.badRequest(ctx, err.Error())
	default:
		s.logger.Error("request failed", "path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
