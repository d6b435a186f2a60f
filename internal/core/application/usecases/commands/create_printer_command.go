package commands

import (
	"errors"
	"strings"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/pkg/guard"
)

var ErrCreatePrinterCommandIsNotConstructed = errors.New(
	"CreatePrinterCommand must be created via NewCreatePrinterCommand constructor",
)

// CreatePrinterCommand registers a printer. Field validation beyond presence
// is left to the printer aggregate.
type CreatePrinterCommand struct { //nolint:recvcheck //using for validation
	name           string
	maxWidth       float64
	supportedTypes []job.ProductType

	guard guard.ConstructorGuard
}

func NewCreatePrinterCommand(name string, maxWidth float64, supportedTypes []job.ProductType) (CreatePrinterCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CreatePrinterCommand{}, ErrNameIsRequired
	}

	return CreatePrinterCommand{
		name:           name,
		maxWidth:       maxWidth,
		supportedTypes: append([]job.ProductType(nil), supportedTypes...),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePrinterCommand) Validate() error {
	return c.guard.Validate(ErrCreatePrinterCommandIsNotConstructed)
}

func (c CreatePrinterCommand) Name() string                      { return c.name }
func (c CreatePrinterCommand) MaxWidth() float64                 { return c.maxWidth }
func (c CreatePrinterCommand) SupportedTypes() []job.ProductType { return c.supportedTypes }
