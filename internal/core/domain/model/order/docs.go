// Package order provides the read-only view of a storefront order that the
// production floor works from.
//
// Orders are owned by the storefront. This service never stores them; it
// fetches an Order through the order source port and derives jobs from its
// line items.
//
// The package includes:
//   - Order: the order identity, its owning customer and its line items
//   - LineItem: one purchased line, with free-form properties and options
//     as the storefront reports them
package order
