package pipeline

import (
	"slices"
	"time"

	"printfloor/internal/core/domain/model/design"
	"printfloor/internal/core/domain/model/intake"
	"printfloor/internal/core/domain/model/job"
)

type Phase string

const (
	PhaseIntake     Phase = "INTAKE"
	PhaseDesign     Phase = "DESIGN"
	PhaseProduction Phase = "PRODUCTION"
	PhaseReady      Phase = "READY"
	PhaseCompleted  Phase = "COMPLETED"
)

// AllPhases lists phases in lifecycle order.
func AllPhases() []Phase {
	return []Phase{PhaseIntake, PhaseDesign, PhaseProduction, PhaseReady, PhaseCompleted}
}

// State is everything known about one order across the three subsystems.
// Intake and Design may be nil.
type State struct {
	Intake *intake.Record
	Design *design.Artifact
	Jobs   []*job.Job
}

// Phase derives the order's phase. See the package documentation for the rules.
func (s State) Phase() Phase {
	if s.Intake != nil && s.Intake.Status() == intake.StatusCompleted {
		return PhaseCompleted
	}
	if s.allJobs(func(j *job.Job) bool { return j.Status().IsTerminal() }) &&
		slices.ContainsFunc(s.Jobs, func(j *job.Job) bool { return j.Status() == job.Completed }) {
		return PhaseCompleted
	}
	if s.Intake != nil && s.Intake.Status() == intake.StatusReady {
		return PhaseReady
	}
	if s.allJobs(func(j *job.Job) bool { return j.Status().IsHandedOff() }) {
		return PhaseReady
	}
	if len(s.Jobs) > 0 {
		if s.Design != nil && s.Design.IsApproved() {
			return PhaseProduction
		}
		if slices.ContainsFunc(s.Jobs, func(j *job.Job) bool { return j.Status() != job.Queued }) {
			return PhaseProduction
		}
	}
	if s.Design != nil || len(s.Jobs) > 0 {
		return PhaseDesign
	}
	return PhaseIntake
}

// PendingJobs returns the jobs not yet handed off, in input order.
func (s State) PendingJobs() []*job.Job {
	var pending []*job.Job
	for _, j := range s.Jobs {
		if !j.Status().IsHandedOff() {
			pending = append(pending, j)
		}
	}
	return pending
}

func (s State) allJobs(pred func(*job.Job) bool) bool {
	if len(s.Jobs) == 0 {
		return false
	}
	for _, j := range s.Jobs {
		if !pred(j) {
			return false
		}
	}
	return true
}

// Timeline events.
const (
	EventIntakeCreated     = "intake_created"
	EventDesignCreated     = "design_created"
	EventDesignApproved    = "design_approved"
	EventProductionStarted = "production_started"
	EventReady             = "ready"
	EventCompleted         = "completed"
)

type TimelineEntry struct {
	Event string
	At    time.Time
}

// Timeline lists the milestones the order has reached, oldest first.
// Production starts with the first job entering PREPRESS; ready and completed
// come from the intake record when it has them, else from the last job to get
// there once all jobs have.
func (s State) Timeline() []TimelineEntry {
	var entries []TimelineEntry
	add := func(event string, at *time.Time) {
		if at != nil {
			entries = append(entries, TimelineEntry{Event: event, At: *at})
		}
	}

	if s.Intake != nil {
		created := s.Intake.CreatedAt()
		add(EventIntakeCreated, &created)
	}
	if s.Design != nil {
		created := s.Design.CreatedAt()
		add(EventDesignCreated, &created)
		add(EventDesignApproved, s.Design.ApprovedAt())
	}

	add(EventProductionStarted, s.earliest(job.Prepress))

	ready := s.intakeTime(func(r *intake.Record) *time.Time { return r.ReadyAt() })
	if ready == nil && s.allJobs(func(j *job.Job) bool { return j.Status().IsHandedOff() }) {
		ready = s.latest(job.Ready)
	}
	add(EventReady, ready)

	completed := s.intakeTime(func(r *intake.Record) *time.Time { return r.CompletedAt() })
	if completed == nil && s.Phase() == PhaseCompleted {
		completed = s.latest(job.Completed)
	}
	add(EventCompleted, completed)

	slices.SortStableFunc(entries, func(a, b TimelineEntry) int { return a.At.Compare(b.At) })
	return entries
}

func (s State) intakeTime(get func(*intake.Record) *time.Time) *time.Time {
	if s.Intake == nil {
		return nil
	}
	return get(s.Intake)
}

func (s State) earliest(stage job.Status) *time.Time {
	var found *time.Time
	for _, j := range s.Jobs {
		if at, ok := j.StageTimes().At(stage); ok && (found == nil || at.Before(*found)) {
			found = &at
		}
	}
	return found
}

func (s State) latest(stage job.Status) *time.Time {
	var found *time.Time
	for _, j := range s.Jobs {
		if at, ok := j.StageTimes().At(stage); ok && (found == nil || at.After(*found)) {
			found = &at
		}
	}
	return found
}
