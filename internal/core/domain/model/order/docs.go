// Package order provides domain entities and business logic for order management
// in the dispatch system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Customer: The contact and destination value object embedded in an order
//   - Order number generation and validation (ORD-<time digits>-<random digits>)
//
// Key business rules:
//   - Orders must have a valid unique identifier, order number, and customer
//   - Order status follows a defined workflow:
//     received -> in_transit -> {delivered, cancelled}, plus received -> cancelled
//   - The assigned driver reference is written once and never cleared
//   - A rating (1-5) may be written exactly once, and only on a delivered order
//   - The cancellation timestamp is reconciled on every status update
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
