// Package intake models the physical side of fulfilment: the intake record
// created when an order enters the floor, identified by a scannable code, and
// the storage slots finished orders wait in until pickup.
package intake
