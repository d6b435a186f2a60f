// Package printer models the production printers a job can be assigned to.
//
// A printer advertises the widest media it accepts and the product types it
// can produce. Those two properties, together with its operational status,
// decide whether a job may run on it:
//
//	ok := p.CanPrint(j) // nil, or a *errs.CapabilityMismatchError
//
// Ink levels are tracked per channel (cyan, magenta, white, ...) on a 0-100
// scale and are reported by the printer itself.
package printer
