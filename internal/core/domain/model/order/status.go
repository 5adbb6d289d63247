package order

import (
	"fmt"

	"tawsila/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	received ──> in_transit ──> delivered
//	    │             │
//	    └─────────────┴──────> cancelled
//
// Status is a value object that validates state transitions and provides
// the canonical lower-case string representation used for persistence and
// over the wire.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status when an order is submitted.
	// Orders in this status are waiting for a driver to be assigned
	// or to claim them from the pool broadcast.
	Received

	// InTransit indicates a driver has been assigned and the delivery
	// is underway.
	InTransit

	// Delivered indicates the order reached the customer.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was cancelled by the customer,
	// the driver, or an administrator. This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their canonical
// lower-case string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Received:  "received",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Received:  "received",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses a canonical status string into a Status value.
// Returns an error for anything outside the four known states; casing is
// significant because the wire format is normalized to lower case.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Received, InTransit, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical lower-case name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether an order in this status still occupies the
// customer's single-active-order slot.
func (s Status) IsActive() bool {
	return s == Received || s == InTransit
}

// ValidateAssign checks whether a driver may be assigned from the current
// status. Only Received orders are assignable; a second assignment attempt
// must surface as a conflict, never silently overwrite the first winner.
func (s Status) ValidateAssign() error {
	if s != Received {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateCancel checks whether the order may be cancelled from the
// current status. Terminal states reject cancellation.
func (s Status) ValidateCancel() error {
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return nil
}

// Assign transitions the status to InTransit.
//
// Valid transitions:
//   - Received -> InTransit
//
// Returns (0, error) if the transition is not allowed from the current
// status.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InTransit -> Delivered
//
// Returns (0, error) if the transition is not allowed from the current
// status.
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Received -> Cancelled
//   - InTransit -> Cancelled
//
// Returns (0, error) if the order is already in a terminal state.
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateCancel(); err != nil {
		return 0, err
	}
	return Cancelled, nil
}
