package http

import (
	"time"

	"tawsila/internal/core/application/usecases/queries"
	"tawsila/internal/core/domain/model/order"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type submitOrderRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Address       string  `json:"address"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	ItemType      string  `json:"item_type"`
}

type updateOrderRequest struct {
	Status        *string `json:"status,omitempty"`
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	ItemType      *string `json:"item_type,omitempty"`
}

type acceptOrderRequest struct {
	DriverID string `json:"driver_id"`
}

type cancelOrderRequest struct {
	CancelledBy string `json:"cancelled_by"`
}

type rateOrderRequest struct {
	Rating int `json:"rating"`
}

type reportLocationRequest struct {
	DriverID string  `json:"driver_id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type broadcastLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type createDriverRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

type orderResponse struct {
	ID            string     `json:"id,omitempty"`
	Number        string     `json:"number"`
	Status        string     `json:"status"`
	ItemType      string     `json:"item_type"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Address       string     `json:"address"`
	Lat           float64    `json:"lat"`
	Lng           float64    `json:"lng"`
	DriverID      *string    `json:"driver_id,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

type orderListItem struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	Status        string     `json:"status"`
	ItemType      string     `json:"item_type"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Address       string     `json:"address"`
	DriverName    *string    `json:"driver_name,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

type availableOrderItem struct {
	Number       string    `json:"number"`
	ItemType     string    `json:"item_type"`
	CustomerName string    `json:"customer_name"`
	Address      string    `json:"address"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	CreatedAt    time.Time `json:"created_at"`
}

type trackOrderResponse struct {
	Number      string     `json:"number"`
	Status      string     `json:"status"`
	ItemType    string     `json:"item_type"`
	Address     string     `json:"address"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	DriverName  *string    `json:"driver_name,omitempty"`
	DriverPhone *string    `json:"driver_phone,omitempty"`
	TrackedLat  *float64   `json:"tracked_lat,omitempty"`
	TrackedLng  *float64   `json:"tracked_lng,omitempty"`
	TrackedAt   *time.Time `json:"tracked_at,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type routeInfoResponse struct {
	OrderNumber     string  `json:"order_number"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	Source          string  `json:"source"`
}

type dailyCountItem struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type orderStatsResponse struct {
	Daily         []dailyCountItem `json:"daily"`
	TotalByStatus map[string]int   `json:"total_by_status"`
	AverageRating *float64         `json:"average_rating,omitempty"`
}

type placeStatsItem struct {
	Address string `json:"address"`
	Count   int    `json:"count"`
}

func orderToResponse(o *order.Order) orderResponse {
	response := orderResponse{
		ID:            o.ID().String(),
		Number:        o.Number(),
		Status:        o.Status().String(),
		ItemType:      o.ItemType(),
		CustomerName:  o.Customer().Name(),
		CustomerPhone: o.Customer().Phone(),
		Address:       o.Customer().Address(),
		Lat:           o.Customer().Coords().Lat(),
		Lng:           o.Customer().Coords().Lng(),
		Rating:        o.Rating(),
		CreatedAt:     o.CreatedAt(),
		DeliveredAt:   o.DeliveredAt(),
		CancelledAt:   o.CancelledAt(),
	}
	if assigned := o.AssignedDriver(); assigned != nil {
		id := assigned.String()
		response.DriverID = &id
	}
	return response
}

func trackToResponse(tracked queries.TrackOrderQueryResponse) trackOrderResponse {
	return trackOrderResponse{
		Number:      tracked.Number,
		Status:      tracked.Status,
		ItemType:    tracked.ItemType,
		Address:     tracked.Address,
		Lat:         tracked.Destination.Lat(),
		Lng:         tracked.Destination.Lng(),
		DriverName:  tracked.DriverName,
		DriverPhone: tracked.DriverPhone,
		TrackedLat:  tracked.TrackedLat,
		TrackedLng:  tracked.TrackedLng,
		TrackedAt:   tracked.TrackedAt,
		Rating:      tracked.Rating,
		CreatedAt:   tracked.CreatedAt,
		DeliveredAt: tracked.DeliveredAt,
		CancelledAt: tracked.CancelledAt,
	}
}
