package intake

import (
	"errors"
	"strings"
	"time"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

// CodePrefix starts every scannable intake code.
const CodePrefix = "PF-"

var (
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")
	ErrCodeIsRequired         = errs.NewValueIsRequiredError("code")
	ErrSlotIsRequired         = errs.NewValueIsRequiredError("slot")
)

// Record is an order's intake record.
type Record struct {
	id          kernel.UUID
	orderID     kernel.UUID
	ownerID     string
	code        string
	status      Status
	slotID      *kernel.UUID
	createdAt   time.Time
	readyAt     *time.Time
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewRecord creates a pending intake record. The scannable code is derived
// from the record id.
func NewRecord(id, orderID kernel.UUID, ownerID string, at time.Time) (*Record, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Record{
		id:        id,
		orderID:   orderID,
		ownerID:   strings.TrimSpace(ownerID),
		code:      CodeFor(id),
		status:    StatusPending,
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// CodeFor returns the scannable code for an intake id, e.g. "PF-3F2A9C1B".
func CodeFor(id kernel.UUID) string {
	return CodePrefix + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// NormalizeCode canonicalises a scanned code so lookups ignore case and padding.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type Snapshot struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	OwnerID     string
	Code        string
	Status      Status
	SlotID      *kernel.UUID
	CreatedAt   time.Time
	ReadyAt     *time.Time
	CompletedAt *time.Time
}

func RestoreRecord(s Snapshot) (*Record, error) {
	if err := errors.Join(s.ID.Validate(), s.OrderID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Code) == "" {
		return nil, ErrCodeIsRequired
	}

	r := &Record{
		id:          s.ID,
		orderID:     s.OrderID,
		ownerID:     s.OwnerID,
		code:        NormalizeCode(s.Code),
		status:      s.Status,
		createdAt:   s.CreatedAt,
		readyAt:     copyTime(s.ReadyAt),
		completedAt: copyTime(s.CompletedAt),
		guard:       guard.NewConstructorGuard(),
	}
	if s.SlotID != nil {
		slotID := *s.SlotID
		r.slotID = &slotID
	}
	return r, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) ID() kernel.UUID         { return r.id }
func (r *Record) OrderID() kernel.UUID    { return r.orderID }
func (r *Record) OwnerID() string         { return r.ownerID }
func (r *Record) Code() string            { return r.code }
func (r *Record) Status() Status          { return r.status }
func (r *Record) SlotID() *kernel.UUID    { return r.slotID }
func (r *Record) CreatedAt() time.Time    { return r.createdAt }
func (r *Record) ReadyAt() *time.Time     { return copyTime(r.readyAt) }
func (r *Record) CompletedAt() *time.Time { return copyTime(r.completedAt) }

// StartProcessing moves a pending record to processing. It reports whether the
// status changed; records already past pending are left alone.
func (r *Record) StartProcessing() bool {
	if r.status != StatusPending {
		return false
	}
	r.status = StatusProcessing
	return true
}

// MarkReady parks the record in slot and advances it to ready.
func (r *Record) MarkReady(slot *Slot, at time.Time) error {
	if err := slot.Validate(); err != nil {
		return ErrSlotIsRequired
	}
	if r.status == StatusCompleted {
		return errs.NewInvalidTransitionError(r.status.String(), StatusReady.String())
	}

	slotID := slot.ID()
	r.slotID = &slotID
	r.status = StatusReady
	if r.readyAt == nil {
		r.readyAt = &at
	}
	return nil
}

// Complete closes the record once the order has left the building, freeing
// its shelf slot. It reports false when the record was already completed.
func (r *Record) Complete(at time.Time) bool {
	if r.status == StatusCompleted {
		return false
	}
	r.status = StatusCompleted
	if r.completedAt == nil {
		r.completedAt = &at
	}
	return true
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
