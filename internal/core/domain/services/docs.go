// Package services contains domain services encapsulating business logic
// that does not naturally belong to a single aggregate. The order
// dispatcher lives here: it ranks candidate drivers for an order by
// proximity to the drop-off point, leaving the atomic claim to the
// persistence layer.
package services
