// Package driver provides domain entities and business logic for driver
// management in the dispatch system. It implements the Driver aggregate root
// covering identity, dispatch availability, and last reported position.
//
// Key business rules:
//   - Drivers must have a valid unique identifier, full name, username, and phone
//   - A driver with no reported coordinates is excluded from nearest-match
//     dispatch but still receives pool broadcasts
//   - Availability is toggled by assignment, delivery, cancellation, and
//     the periodic reconciliation pass
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package driver
