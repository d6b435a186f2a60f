package ports

import (
	"context"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/printer"
)

// PrinterRepository defines the persistence contract for printers.
type PrinterRepository interface {
	Add(ctx context.Context, aggregate *printer.Printer) error
	Update(ctx context.Context, aggregate *printer.Printer) error
	Get(ctx context.Context, id kernel.UUID) (*printer.Printer, error)
	List(ctx context.Context) ([]*printer.Printer, error)
}
