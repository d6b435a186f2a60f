package job

import "time"

// StageTimes records when a job first entered each timed stage.
// PICKED_UP, SHIPPED and CANCELLED are not timed.
type StageTimes struct {
	QueuedAt           *time.Time
	PrepressStartedAt  *time.Time
	PrintStartedAt     *time.Time
	CureStartedAt      *time.Time
	CutStartedAt       *time.Time
	QCStartedAt        *time.Time
	PackagingStartedAt *time.Time
	ReadyAt            *time.Time
	CompletedAt        *time.Time
}

// slot returns the field timing status s, or nil when s is untimed.
func (t *StageTimes) slot(s Status) **time.Time {
	switch s {
	case Queued:
		return &t.QueuedAt
	case Prepress:
		return &t.PrepressStartedAt
	case Printing:
		return &t.PrintStartedAt
	case Curing:
		return &t.CureStartedAt
	case Cutting:
		return &t.CutStartedAt
	case QCCheck:
		return &t.QCStartedAt
	case Packaging:
		return &t.PackagingStartedAt
	case Ready:
		return &t.ReadyAt
	case Completed:
		return &t.CompletedAt
	default:
		return nil
	}
}

// stamp sets the timestamp of s unless it is untimed or already set.
func (t *StageTimes) stamp(s Status, at time.Time) {
	field := t.slot(s)
	if field == nil || *field != nil {
		return
	}
	v := at
	*field = &v
}

// At returns the entry time of s, if recorded.
func (t StageTimes) At(s Status) (time.Time, bool) {
	field := t.slot(s)
	if field == nil || *field == nil {
		return time.Time{}, false
	}
	return **field, true
}

func (t StageTimes) clone() StageTimes {
	out := StageTimes{}
	for _, s := range AllStatuses() {
		if at, ok := t.At(s); ok {
			out.stamp(s, at)
		}
	}
	return out
}
