package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories obtained
// after Begin share its transaction; before Begin they read straight from the
// database.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	JobRepository() JobRepository
	PrinterRepository() PrinterRepository
	GangSheetRepository() GangSheetRepository
	IntakeRepository() IntakeRepository
	SlotRepository() SlotRepository
	DesignRepository() DesignRepository
}
