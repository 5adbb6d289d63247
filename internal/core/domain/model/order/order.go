package order

import (
	"errors"
	"fmt"
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/errs"
)

const (
	// RatingMin is the lowest accepted order rating.
	RatingMin = 1
	// RatingMax is the highest accepted order rating.
	RatingMax = 5
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderAlreadyRated is returned when a rating already exists.
	ErrOrderAlreadyRated = errors.New("order has already been rated")
)

// TrackedLocation is the driver's latest reported fix for an order,
// together with the time it was reported.
type TrackedLocation struct {
	Coords kernel.Coordinates
	At     time.Time
}

// Order represents a delivery order. It is the aggregate root that manages
// the order lifecycle from submission through assignment to delivery or
// cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a well-formed order number
//   - Must have a validated customer (contact + destination coordinates)
//   - Status transitions follow received -> in_transit -> {delivered, cancelled},
//     plus received -> cancelled
//   - The assigned driver id is set by exactly one assignment event and is
//     never cleared afterwards, preserving history through terminal states
//   - cancelledAt is set exactly when the status becomes cancelled and is
//     cleared by any other status-changing update
//   - A rating may be written once, and only on a delivered order
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id               kernel.UUID
	number           string
	customer         Customer
	itemType         string
	status           Status
	assignedDriverID *kernel.UUID
	trackedLocation  *TrackedLocation
	rating           *int
	cancelledAt      *time.Time
	deliveredAt      *time.Time
	createdAt        time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Received status with a freshly generated
// order number. This is the only way to create a valid new order, ensuring
// all business invariants hold from the start.
func NewOrder(id kernel.UUID, customer Customer, itemType string) (*Order, error) {
	o := &Order{
		number:        GenerateNumber(),
		status:        Received,
		createdAt:     time.Now(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
	); err != nil {
		return nil, err
	}
	o.itemType = itemType

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without triggering
// lifecycle side effects. All invariant checks on identity, number and
// customer still apply; status must be one of the valid states.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customer Customer,
	itemType string,
	status Status,
	assignedDriverID *kernel.UUID,
	trackedLocation *TrackedLocation,
	rating *int,
	cancelledAt *time.Time,
	deliveredAt *time.Time,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		itemType:         itemType,
		assignedDriverID: assignedDriverID,
		trackedLocation:  trackedLocation,
		rating:           rating,
		cancelledAt:      cancelledAt,
		deliveredAt:      deliveredAt,
		createdAt:        createdAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customer),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the externally visible order number.
func (o *Order) Number() string {
	return o.number
}

// Customer returns the customer contact and destination.
func (o *Order) Customer() Customer {
	return o.customer
}

// ItemType returns the requested item category, possibly empty.
func (o *Order) ItemType() string {
	return o.itemType
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// AssignedDriver returns the assigned driver's ID, or nil if no driver has
// ever been assigned. Once set it survives delivery and cancellation.
func (o *Order) AssignedDriver() *kernel.UUID {
	return o.assignedDriverID
}

// TrackedLocation returns the latest reported fix, or nil if none exists.
func (o *Order) TrackedLocation() *TrackedLocation {
	return o.trackedLocation
}

// Rating returns the customer rating, or nil if the order is unrated.
func (o *Order) Rating() *int {
	return o.rating
}

// CancelledAt returns the cancellation timestamp, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// DeliveredAt returns the delivery timestamp, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CreatedAt returns the submission timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Assign assigns the order to a driver and moves it to InTransit.
//
// Business rules enforced:
//   - The driver ID must be valid
//   - The order must still be in Received status; a lost race surfaces as
//     an invalid-transition error, never a silent overwrite
func (o *Order) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.assignedDriverID = &driverID
	return nil
}

// MarkDelivered moves an InTransit order to the Delivered terminal state,
// stamps the delivery time and clears the tracked location. The assigned
// driver reference is kept for history.
func (o *Order) MarkDelivered(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	o.trackedLocation = nil
	return nil
}

// Cancel moves the order to the Cancelled terminal state and stamps the
// cancellation time. Fails if the order is already delivered or cancelled.
func (o *Order) Cancel(at time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelledAt = &at
	return nil
}

// ChangeStatus applies an administrative status update and reconciles the
// cancellation timestamp: moving to Cancelled stamps it with now, moving to
// any other status clears it. This reconciliation happens on every call
// regardless of whether the status actually changed.
func (o *Order) ChangeStatus(status Status, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.status = status
	if status == Cancelled {
		o.cancelledAt = &now
	} else {
		o.cancelledAt = nil
	}
	return nil
}

// ClearCancelledAt drops the cancellation timestamp. Administrative edits
// call it when the patch carries no status: an edit that does not say
// "cancelled" leaves the order without a cancellation mark, whatever the
// current status is.
func (o *Order) ClearCancelledAt() {
	o.cancelledAt = nil
}

// Rate records the customer's rating.
//
// Business rules enforced:
//   - Only a Delivered order may be rated
//   - The rating must be within [RatingMin, RatingMax]
//   - A rating may be written exactly once
func (o *Order) Rate(value int) error {
	if value < RatingMin || value > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", value, RatingMin, RatingMax)
	}
	if o.status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to rate", o.status.String()))
	}
	if o.rating != nil {
		return ErrOrderAlreadyRated
	}

	o.rating = &value
	return nil
}

// ChangeCustomer replaces the contact and destination details. Used by
// administrative edits; the customer value must already be validated.
func (o *Order) ChangeCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	o.customer = customer
	return nil
}

// ChangeItemType replaces the item description.
func (o *Order) ChangeItemType(itemType string) {
	o.itemType = itemType
}

// SetTrackedLocation stores the driver's latest fix for this order.
func (o *Order) SetTrackedLocation(coords kernel.Coordinates, at time.Time) error {
	if err := coords.Validate(); err != nil {
		return err
	}

	o.trackedLocation = &TrackedLocation{Coords: coords, At: at}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if err := ValidateNumber(number); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}
