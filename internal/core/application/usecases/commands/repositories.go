// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, then best-effort side effects once the transaction has committed.
package commands

import (
	"context"

	"printfloor/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	PrinterRepoFactory interface {
		PrinterRepository() ports.PrinterRepository
	}

	// JobUoW manages transactions for job-only operations such as status moves.
	JobUoW interface {
		TxManager
		JobRepoFactory
	}

	JobUoWFactory interface {
		Create() JobUoW
	}

	// PrinterUoW manages transactions for the printer registry.
	PrinterUoW interface {
		TxManager
		PrinterRepoFactory
	}

	PrinterUoWFactory interface {
		Create() PrinterUoW
	}

	// UoW spans every aggregate. Used by printer assignment, gang sheets and
	// the pipeline steps.
	UoW interface {
		TxManager
		JobRepoFactory
		PrinterRepoFactory
		GangSheetRepository() ports.GangSheetRepository
		IntakeRepository() ports.IntakeRepository
		SlotRepository() ports.SlotRepository
		DesignRepository() ports.DesignRepository
	}

	UoWFactory interface {
		Create() UoW
	}
)
