// Package restaurant provides the restaurant snapshot the order creation
// workflow validates against.
//
// The package includes:
//   - Restaurant: A read-only snapshot carrying the active flag and the menu
//     products an order references
//   - Product: A menu entry with the canonical price used for the
//     price-tampering check
//
// The ordering core only reads restaurant state; menu management and
// restaurant administration belong to another bounded context.
package restaurant
