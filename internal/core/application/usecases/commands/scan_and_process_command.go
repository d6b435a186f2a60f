package commands

import (
	"errors"
	"strings"

	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/pkg/guard"
)

var (
	ErrScanAndProcessCommandIsNotConstructed = errors.New(
		"ScanAndProcessCommand must be created via NewScanAndProcessCommand constructor",
	)
	ErrCodeIsRequired = errors.New("scanned code is required")
)

// ScanAndProcessCommand carries a code read off an intake label.
type ScanAndProcessCommand struct { //nolint:recvcheck //using for validation
	code string

	guard guard.ConstructorGuard
}

func NewScanAndProcessCommand(code string) (ScanAndProcessCommand, error) {
	code = intake.NormalizeCode(code)
	if strings.TrimSpace(code) == "" {
		return ScanAndProcessCommand{}, ErrCodeIsRequired
	}
	return ScanAndProcessCommand{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (c ScanAndProcessCommand) Validate() error {
	return c.guard.Validate(ErrScanAndProcessCommandIsNotConstructed)
}

func (c ScanAndProcessCommand) Code() string { return c.code }
