// Package services provides domain services for work that spans aggregates or
// has no natural single owner on the production floor.
//
// The package includes:
//   - JobFactory: derives printable jobs from an order's line items
//   - GangSheetPacker: composes a gang sheet batch from a chosen job set
//   - KanbanProjector: builds the status-partitioned, priority-ordered board
//
// All three are pure: they take domain objects in and hand domain objects
// back, leaving persistence to the application layer.
package services
