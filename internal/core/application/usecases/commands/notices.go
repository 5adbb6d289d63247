package commands

import (
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/core/ports"
)

// orderNotice projects an order aggregate into the wire-neutral shape the
// notifier fans out to realtime consumers.
func orderNotice(o *order.Order) ports.OrderNotice {
	coords := o.Customer().Coords()
	return ports.OrderNotice{
		Number:        o.Number(),
		Status:        o.Status().String(),
		ItemType:      o.ItemType(),
		CustomerName:  o.Customer().Name(),
		CustomerPhone: o.Customer().Phone(),
		Address:       o.Customer().Address(),
		Destination:   &coords,
	}
}
