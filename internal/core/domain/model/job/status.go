package job

import (
	"fmt"
	"strings"

	"printfloor/internal/pkg/errs"
)

// Status is a position in the production workflow.
//
//	QUEUED ─> PREPRESS ─> PRINTING ─> CURING ─> CUTTING ─> QC_CHECK ─> PACKAGING ─> READY ─┬─> PICKED_UP ─┬─> COMPLETED
//	   ^          │  ^         │  ^       │  ^       │  ^        │  ^          │            └─> SHIPPED ───┘
//	   └──────────┘  └─────────┘  └───────┘  └───────┘  └────────┘  └──────────┘
//	(QUEUED through READY may also move to CANCELLED)
type Status int

const (
	Unknown Status = iota
	Queued
	Prepress
	Printing
	Curing
	Cutting
	QCCheck
	Packaging
	Ready
	PickedUp
	Shipped
	Completed
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:   "UNKNOWN",
	Queued:    "QUEUED",
	Prepress:  "PREPRESS",
	Printing:  "PRINTING",
	Curing:    "CURING",
	Cutting:   "CUTTING",
	QCCheck:   "QC_CHECK",
	Packaging: "PACKAGING",
	Ready:     "READY",
	PickedUp:  "PICKED_UP",
	Shipped:   "SHIPPED",
	Completed: "COMPLETED",
	Cancelled: "CANCELLED",
}

// transitions is the complete status graph. A status absent from the map has no exits.
var transitions = map[Status][]Status{
	Queued:    {Prepress, Cancelled},
	Prepress:  {Printing, Queued, Cancelled},
	Printing:  {Curing, Prepress, Cancelled},
	Curing:    {Cutting, Printing, Cancelled},
	Cutting:   {QCCheck, Curing, Cancelled},
	QCCheck:   {Packaging, Cutting, Cancelled},
	Packaging: {Ready, QCCheck, Cancelled},
	Ready:     {PickedUp, Shipped, Cancelled},
	PickedUp:  {Completed},
	Shipped:   {Completed},
}

// AllStatuses returns the fixed status set in workflow order.
func AllStatuses() []Status {
	return []Status{
		Queued, Prepress, Printing, Curing, Cutting, QCCheck,
		Packaging, Ready, PickedUp, Shipped, Completed, Cancelled,
	}
}

// ParseStatus accepts the canonical names, case-insensitively, with '-' or ' ' for '_'.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for status, name := range statusNames {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate reports whether s is a member of the fixed status set.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// AllowedTransitions returns a copy of the statuses reachable from s in one move.
func (s Status) AllowedTransitions() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether target is an allowed next status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError unless target is allowed from s.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}

// IsTerminal reports whether no further moves are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsHandedOff reports whether the job has left the production floor:
// READY, PICKED_UP, SHIPPED or COMPLETED.
func (s Status) IsHandedOff() bool {
	switch s {
	case Ready, PickedUp, Shipped, Completed:
		return true
	default:
		return false
	}
}

// HasLeftBuilding reports whether the job has been collected or sent:
// PICKED_UP, SHIPPED or COMPLETED.
func (s Status) HasLeftBuilding() bool {
	return s == PickedUp || s == Shipped || s == Completed
}

// IsActive reports whether the job is somewhere between PREPRESS and PACKAGING.
func (s Status) IsActive() bool {
	return s >= Prepress && s <= Packaging
}

// IsLifecycleMilestone reports whether entering s is announced to the marketing collaborator.
func (s Status) IsLifecycleMilestone() bool {
	switch s {
	case Printing, Ready, Cancelled, PickedUp, Shipped:
		return true
	default:
		return false
	}
}

// HasLeftPrinting reports whether s lies past the print stage on the forward path.
func (s Status) HasLeftPrinting() bool {
	return s > Printing && s != Cancelled
}
