package printer

import (
	"fmt"
	"strings"

	"printfloor/internal/pkg/errs"
)

// Status is the operational state a printer reports.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusPrinting    Status = "printing"
	StatusMaintenance Status = "maintenance"
	StatusOffline     Status = "offline"
)

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	switch s {
	case StatusIdle, StatusPrinting, StatusMaintenance, StatusOffline:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("printerStatus", fmt.Errorf("%q is not a known printer status", string(s)))
	}
}

// Available reports whether jobs may be assigned to a printer in this state.
func (s Status) Available() bool {
	return s == StatusIdle || s == StatusPrinting
}

func (s Status) String() string {
	return string(s)
}
