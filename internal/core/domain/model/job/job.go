package job

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

// DefaultDPI is the print resolution used when an order line does not state one.
const DefaultDPI = 300

var (
	// ErrJobIsNotConstructed is returned when a Job was not created through NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
	// ErrJobAlreadyBatched is returned when a job already belongs to a gang sheet.
	ErrJobAlreadyBatched = errors.New("job already belongs to a gang sheet batch")
	// ErrJobIsTerminal is returned when a terminal job is assigned or batched.
	ErrJobIsTerminal = errors.New("job is in a terminal status")
)

// Job is one printable production unit derived from an order line item.
// It is the aggregate root of the production floor.
//
// Job follows these invariants:
//   - status is always a member of the fixed status set
//   - status changes only along the edges of the status graph
//   - a stage timestamp is set once, on first entry to that stage (QC failure
//     clears the QC timestamp, the only exception)
//   - a job sits in at most one gang-sheet batch, at a 1-based position
type Job struct {
	id          kernel.UUID
	orderID     kernel.UUID
	ownerID     string
	title       string
	size        kernel.Dimensions
	productType ProductType
	quantity    int
	dpi         int
	priority    Priority
	status      Status
	stages      StageTimes
	printerID   *kernel.UUID
	batchID     *kernel.UUID
	position    int
	operator    string
	qcResult    QCResult
	qcNotes     string
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// Attributes are the print properties fixed when a job is derived from an order line.
type Attributes struct {
	OrderID     kernel.UUID
	OwnerID     string
	Title       string
	Size        kernel.Dimensions
	ProductType ProductType
	Quantity    int
	DPI         int
	Priority    Priority
}

// NewJob creates a job in QUEUED, stamping the queue entry with at.
//
// Example:
//
//	size, _ := kernel.NewDimensions(12, 18)
//	j, err := job.NewJob(kernel.NewUUID(), job.Attributes{
//	    OrderID:     orderID,
//	    OwnerID:     "cust-1042",
//	    Title:       "Logo transfer",
//	    Size:        size,
//	    ProductType: job.ProductDTF,
//	    Quantity:    3,
//	    DPI:         job.DefaultDPI,
//	    Priority:    job.PriorityStandard,
//	}, time.Now())
func NewJob(id kernel.UUID, attrs Attributes, at time.Time) (*Job, error) {
	j := &Job{
		status:    Queued,
		updatedAt: at,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setAttributes(attrs),
	); err != nil {
		return nil, err
	}

	j.stages.stamp(Queued, at)
	return j, nil
}

// Snapshot is the full persisted state of a job, used to restore it from storage.
type Snapshot struct {
	ID        kernel.UUID
	Attrs     Attributes
	Status    Status
	Stages    StageTimes
	PrinterID *kernel.UUID
	BatchID   *kernel.UUID
	Position  int
	Operator  string
	QCResult  QCResult
	QCNotes   string
	UpdatedAt time.Time
}

// RestoreJob rebuilds a job from storage, revalidating every field.
func RestoreJob(s Snapshot) (*Job, error) {
	j := &Job{
		stages:    s.Stages.clone(),
		operator:  s.Operator,
		qcNotes:   s.QCNotes,
		updatedAt: s.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(s.ID),
		j.setAttributes(s.Attrs),
		j.setStatus(s.Status),
		j.setPrinter(s.PrinterID),
		j.setBatch(s.BatchID, s.Position),
		j.setQCResult(s.QCResult),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Validate ensures the job was created through NewJob or RestoreJob.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

func (j *Job) ID() kernel.UUID          { return j.id }
func (j *Job) OrderID() kernel.UUID     { return j.orderID }
func (j *Job) OwnerID() string          { return j.ownerID }
func (j *Job) Title() string            { return j.title }
func (j *Job) Size() kernel.Dimensions  { return j.size }
func (j *Job) Area() float64            { return j.size.Area() }
func (j *Job) ProductType() ProductType { return j.productType }
func (j *Job) Quantity() int            { return j.quantity }
func (j *Job) DPI() int                 { return j.dpi }
func (j *Job) Priority() Priority       { return j.priority }
func (j *Job) Status() Status           { return j.status }
func (j *Job) Operator() string         { return j.operator }
func (j *Job) QCResult() QCResult       { return j.qcResult }
func (j *Job) QCNotes() string          { return j.qcNotes }
func (j *Job) UpdatedAt() time.Time     { return j.updatedAt }
func (j *Job) Position() int            { return j.position }
func (j *Job) PrinterID() *kernel.UUID  { return j.printerID }
func (j *Job) BatchID() *kernel.UUID    { return j.batchID }
func (j *Job) StageTimes() StageTimes   { return j.stages.clone() }
func (j *Job) Attributes() Attributes {
	return Attributes{
		OrderID:     j.orderID,
		OwnerID:     j.ownerID,
		Title:       j.title,
		Size:        j.size,
		ProductType: j.productType,
		Quantity:    j.quantity,
		DPI:         j.dpi,
		Priority:    j.priority,
	}
}

// QueuedAt returns the queue entry time. Every valid job has one.
func (j *Job) QueuedAt() time.Time {
	at, _ := j.stages.At(Queued)
	return at
}

// MoveTo advances the job to target if the status graph allows it, stamping the
// stage entry time on first entry and recording the operator when given.
// On failure the job is left unchanged.
func (j *Job) MoveTo(target Status, operator string, at time.Time) error {
	if err := j.status.ValidateTransition(target); err != nil {
		return err
	}

	j.status = target
	j.stages.stamp(target, at)
	j.touch(operator, at)
	return nil
}

// RecordQC applies an inspection outcome. It is only legal in QC_CHECK:
// pass and conditional continue to PACKAGING; fail sends the job back to
// CUTTING and clears the QC timestamp so the next inspection is timed afresh.
func (j *Job) RecordQC(result QCResult, notes, operator string, at time.Time) error {
	if err := result.Validate(); err != nil {
		return err
	}

	target := Packaging
	if !result.Passed() {
		target = Cutting
	}

	if j.status != QCCheck {
		return errs.NewInvalidTransitionErrorWithCause(j.status.String(), target.String(), ErrQCRequiresQCCheck)
	}

	j.status = target
	if result.Passed() {
		j.stages.stamp(Packaging, at)
	} else {
		j.stages.QCStartedAt = nil
	}
	j.qcResult = result
	j.qcNotes = strings.TrimSpace(notes)
	j.touch(operator, at)
	return nil
}

// AssignPrinter records the printer a job will run on. Capability checks belong
// to the printer; this only guards the job's own state.
func (j *Job) AssignPrinter(printerID kernel.UUID, at time.Time) error {
	if err := printerID.Validate(); err != nil {
		return err
	}
	if j.status.IsTerminal() {
		return ErrJobIsTerminal
	}

	j.printerID = &printerID
	j.touch("", at)
	return nil
}

// PlaceInBatch puts the job on a gang sheet at a 1-based position. A job joins
// at most one batch.
func (j *Job) PlaceInBatch(batchID kernel.UUID, position int, at time.Time) error {
	if err := batchID.Validate(); err != nil {
		return err
	}
	if j.batchID != nil {
		return ErrJobAlreadyBatched
	}
	if j.status.IsTerminal() {
		return ErrJobIsTerminal
	}
	if position < 1 {
		return errs.NewValueIsOutOfRangeError("position", position, 1, "unbounded")
	}

	j.batchID = &batchID
	j.position = position
	j.touch("", at)
	return nil
}

// Wait returns how long the job has waited since queue entry: until it became
// READY (or COMPLETED) if it has, else until asOf. Never negative.
func (j *Job) Wait(asOf time.Time) time.Duration {
	end := asOf
	if at, ok := j.stages.At(Ready); ok {
		end = at
	} else if at, ok = j.stages.At(Completed); ok {
		end = at
	}

	wait := end.Sub(j.QueuedAt())
	if wait < 0 {
		return 0
	}
	return wait
}

// IsOverdue reports whether a job still on the floor has exceeded its tier's turnaround target.
func (j *Job) IsOverdue(asOf time.Time) bool {
	if j.status.IsHandedOff() || j.status.IsTerminal() {
		return false
	}
	return j.Wait(asOf) > j.priority.SLA()
}

func (j *Job) touch(operator string, at time.Time) {
	if op := strings.TrimSpace(operator); op != "" {
		j.operator = op
	}
	j.updatedAt = at
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setAttributes(a Attributes) error {
	var problems []error

	if err := a.OrderID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := a.Size.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := a.ProductType.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := a.Priority.Validate(); err != nil {
		problems = append(problems, err)
	}
	if a.Quantity <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", a.Quantity)))
	}
	if a.DPI <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"dpi", fmt.Errorf("%d is not greater than 0", a.DPI)))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	j.orderID = a.OrderID
	j.ownerID = strings.TrimSpace(a.OwnerID)
	j.title = strings.TrimSpace(a.Title)
	j.size = a.Size
	j.productType = a.ProductType
	j.quantity = a.Quantity
	j.dpi = a.DPI
	j.priority = a.Priority
	return nil
}

func (j *Job) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, ok := j.stages.At(Queued); !ok {
		return errs.NewValueIsRequiredError("queuedAt")
	}
	j.status = s
	return nil
}

func (j *Job) setPrinter(printerID *kernel.UUID) error {
	if printerID == nil {
		return nil
	}
	if err := printerID.Validate(); err != nil {
		return err
	}
	id := *printerID
	j.printerID = &id
	return nil
}

func (j *Job) setBatch(batchID *kernel.UUID, position int) error {
	if batchID == nil {
		return nil
	}
	if err := batchID.Validate(); err != nil {
		return err
	}
	if position < 1 {
		return errs.NewValueIsOutOfRangeError("position", position, 1, "unbounded")
	}
	id := *batchID
	j.batchID = &id
	j.position = position
	return nil
}

func (j *Job) setQCResult(r QCResult) error {
	if r == "" {
		return nil
	}
	if err := r.Validate(); err != nil {
		return err
	}
	j.qcResult = r
	return nil
}
