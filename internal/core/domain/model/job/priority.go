package job

import (
	"fmt"
	"strings"
	"time"

	"printfloor/internal/pkg/errs"
)

// Priority is the service tier of a job. Higher values are more urgent and
// sort first on the board.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityStandard
	PriorityNextDay
	PriorityRush
	PrioritySameDay
)

var priorityNames = map[Priority]string{
	PriorityUnknown:  "unknown",
	PriorityStandard: "standard",
	PriorityNextDay:  "next_day",
	PriorityRush:     "rush",
	PrioritySameDay:  "same_day",
}

// Turnaround targets measured from queue entry. A job still on the floor past
// its target is overdue.
var prioritySLA = map[Priority]time.Duration{
	PriorityStandard: 72 * time.Hour,
	PriorityNextDay:  24 * time.Hour,
	PriorityRush:     8 * time.Hour,
	PrioritySameDay:  4 * time.Hour,
}

// ParsePriority accepts "standard", "rush", "same-day"/"same_day", "next-day"/"next_day".
func ParsePriority(s string) (Priority, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for p, name := range priorityNames {
		if p != PriorityUnknown && name == normalized {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a known tier", s))
}

func (p Priority) Validate() error {
	if p <= PriorityUnknown || p > PrioritySameDay {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid tier", int(p)))
	}
	return nil
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return priorityNames[PriorityUnknown]
}

// SLA returns the turnaround target of the tier, or zero for an invalid tier.
func (p Priority) SLA() time.Duration {
	return prioritySLA[p]
}
