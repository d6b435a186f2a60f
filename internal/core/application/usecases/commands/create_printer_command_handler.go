package commands

import (
	"context"
	"time"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/printer"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"
)

var ErrNameIsRequired = errs.NewValueIsRequiredError("name")

type CreatePrinterCommandHandler struct {
	uowFactory PrinterUoWFactory
	publisher  ports.EventPublisher
}

func NewCreatePrinterCommandHandler(uowFactory PrinterUoWFactory, publisher ports.EventPublisher) CreatePrinterCommandHandler {
	return CreatePrinterCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle registers an idle printer and announces it to the floor.
func (h CreatePrinterCommandHandler) Handle(ctx context.Context, cmd CreatePrinterCommand) (*printer.Printer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := printer.NewPrinter(kernel.NewUUID(), cmd.Name(), cmd.MaxWidth(), cmd.SupportedTypes())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PrinterRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(printerStatusEvent(p, time.Now()), ports.FloorTopic, ports.PrinterTopic(p.ID()))
	return p, nil
}
