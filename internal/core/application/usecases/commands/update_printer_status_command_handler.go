package commands

import (
	"context"
	"time"

	"printfloor/internal/core/domain/model/printer"
	"printfloor/internal/core/ports"
)

// UpdatePrinterStatusCommandHandler stores a printer status report and
// broadcasts printer.status_changed, plus one printer.ink_low per channel
// under the warning threshold.
type UpdatePrinterStatusCommandHandler struct {
	uowFactory   PrinterUoWFactory
	publisher    ports.EventPublisher
	inkThreshold int
}

func NewUpdatePrinterStatusCommandHandler(
	uowFactory PrinterUoWFactory,
	publisher ports.EventPublisher,
	inkThreshold int,
) UpdatePrinterStatusCommandHandler {
	return UpdatePrinterStatusCommandHandler{
		uowFactory:   uowFactory,
		publisher:    publisher,
		inkThreshold: inkThreshold,
	}
}

func (h UpdatePrinterStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePrinterStatusCommand) (*printer.Printer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PrinterRepository()
	p, err := repo.Get(ctx, cmd.PrinterID())
	if err != nil {
		return nil, err
	}

	if err = p.UpdateStatus(cmd.Status(), cmd.InkLevels()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	at := time.Now()
	topics := []string{ports.FloorTopic, ports.PrinterTopic(p.ID())}
	h.publisher.Publish(printerStatusEvent(p, at), topics...)

	levels := p.InkLevels()
	for _, channel := range p.LowInkChannels(h.inkThreshold) {
		h.publisher.Publish(ports.Event{Type: ports.EventPrinterInkLow, At: at, Data: InkLowData{
			PrinterID: p.ID().String(),
			Name:      p.Name(),
			Channel:   channel,
			Level:     levels[channel],
			Threshold: h.inkThreshold,
		}}, topics...)
	}

	return p, nil
}
