package intake

import (
	"fmt"
	"strings"

	"printfloor/internal/pkg/errs"
)

// Status is the intake record lifecycle: pending -> processing -> ready -> completed.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
)

var statusOrder = map[Status]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusReady:      2,
	StatusCompleted:  3,
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if _, ok := statusOrder[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("intakeStatus", fmt.Errorf("%q is not a known intake status", string(s)))
	}
	return nil
}

// Before reports whether s comes earlier in the lifecycle than other.
func (s Status) Before(other Status) bool {
	return statusOrder[s] < statusOrder[other]
}

func (s Status) String() string {
	return string(s)
}
