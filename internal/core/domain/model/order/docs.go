// Package order provides the Order aggregate root and its supporting domain
// objects for the food-ordering system.
//
// The package includes:
//   - Order: The aggregate root owning the order lifecycle, its items, and
//     the creation-time validation pipeline
//   - OrderItem: A line item owned exclusively by its order
//   - Status: A state machine that enforces valid lifecycle transitions
//   - StreetAddress: The delivery address value object
//   - CreatedEvent: The domain event emitted once a new order is validated
//
// Key business rules:
//   - An order is built from commercial data only and must be initialized
//     exactly once, which assigns its identity, tracking id, and item ids
//   - The declared total must equal the sum of item subtotals, be strictly
//     positive, and every item price must match the product's canonical price
//   - Status follows Pending -> Paid -> Approved, with cancellation via
//     Paid -> Cancelling -> Cancelled or directly Pending -> Cancelled
//   - Failure messages accumulate append-only on the cancellation paths
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
