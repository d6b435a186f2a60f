package gangsheet

import (
	"errors"
	"slices"
	"time"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

var (
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")
	ErrJobsAreRequired       = errs.NewValueIsRequiredError("jobs")
)

// Batch is a gang sheet composition. Its membership and metrics are fixed at
// creation; only the completion time is recorded later.
type Batch struct {
	id          kernel.UUID
	sheet       kernel.Dimensions
	usedArea    float64
	fillRate    float64
	multiOrder  bool
	orderCount  int
	jobIDs      []kernel.UUID
	createdAt   time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewBatch composes a sheet from jobs, in the given order. Used area is the sum
// of member areas; fill rate is used/total clamped to 1.
func NewBatch(id kernel.UUID, sheet kernel.Dimensions, jobs []*job.Job, at time.Time) (*Batch, error) {
	if err := errors.Join(id.Validate(), sheet.Validate()); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, ErrJobsAreRequired
	}

	b := &Batch{
		id:        id,
		sheet:     sheet,
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}

	orders := make(map[kernel.UUID]struct{})
	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, err
		}
		b.usedArea += j.Area()
		b.jobIDs = append(b.jobIDs, j.ID())
		orders[j.OrderID()] = struct{}{}
	}
	b.orderCount = len(orders)
	b.multiOrder = b.orderCount > 1
	b.fillRate = min(b.usedArea/sheet.Area(), 1)

	return b, nil
}

// Snapshot is the persisted state of a batch.
type Snapshot struct {
	ID          kernel.UUID
	Sheet       kernel.Dimensions
	UsedArea    float64
	FillRate    float64
	MultiOrder  bool
	OrderCount  int
	JobIDs      []kernel.UUID
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// RestoreBatch rebuilds a batch from storage without recomputing its metrics.
func RestoreBatch(s Snapshot) (*Batch, error) {
	if err := errors.Join(s.ID.Validate(), s.Sheet.Validate()); err != nil {
		return nil, err
	}
	if s.FillRate < 0 || s.FillRate > 1 {
		return nil, errs.NewValueIsOutOfRangeError("fillRate", s.FillRate, 0, 1)
	}
	if s.UsedArea < 0 {
		return nil, errs.NewValueIsOutOfRangeError("usedArea", s.UsedArea, 0, "unbounded")
	}

	b := &Batch{
		id:         s.ID,
		sheet:      s.Sheet,
		usedArea:   s.UsedArea,
		fillRate:   s.FillRate,
		multiOrder: s.MultiOrder,
		orderCount: s.OrderCount,
		jobIDs:     slices.Clone(s.JobIDs),
		createdAt:  s.CreatedAt,
		guard:      guard.NewConstructorGuard(),
	}
	if s.CompletedAt != nil {
		at := *s.CompletedAt
		b.completedAt = &at
	}
	return b, nil
}

func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b *Batch) ID() kernel.UUID          { return b.id }
func (b *Batch) Sheet() kernel.Dimensions { return b.sheet }
func (b *Batch) TotalArea() float64       { return b.sheet.Area() }
func (b *Batch) UsedArea() float64        { return b.usedArea }
func (b *Batch) FillRate() float64        { return b.fillRate }
func (b *Batch) MultiOrder() bool         { return b.multiOrder }
func (b *Batch) OrderCount() int          { return b.orderCount }
func (b *Batch) CreatedAt() time.Time     { return b.createdAt }

// JobIDs returns member ids in position order; position i+1 holds JobIDs()[i].
func (b *Batch) JobIDs() []kernel.UUID { return slices.Clone(b.jobIDs) }

// WasteArea is the unused sheet area, never negative.
func (b *Batch) WasteArea() float64 {
	return max(b.TotalArea()-b.usedArea, 0)
}

// CompletedAt is when every member had come off the printer, or nil.
func (b *Batch) CompletedAt() *time.Time {
	if b.completedAt == nil {
		return nil
	}
	at := *b.completedAt
	return &at
}

func (b *Batch) IsComplete() bool { return b.completedAt != nil }

// Complete records that the sheet is done. It reports false when the batch
// was already complete, leaving the first completion time in place.
func (b *Batch) Complete(at time.Time) bool {
	if b.completedAt != nil {
		return false
	}
	b.completedAt = &at
	return true
}
