// Package kernel holds the shared value objects of the production domain:
// identifiers and physical print dimensions. Every aggregate package depends
// on kernel, and kernel depends on nothing inside the domain.
package kernel
