package intake

import (
	"errors"
	"strings"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

var (
	ErrSlotIsNotConstructed = errors.New("Slot must be created via NewSlot constructor")
	ErrLabelIsRequired      = errs.NewValueIsRequiredError("label")
)

// Slot is a physical shelf position where ready orders wait for pickup.
type Slot struct {
	id     kernel.UUID
	label  string
	active bool

	guard guard.ConstructorGuard
}

func NewSlot(id kernel.UUID, label string, active bool) (*Slot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrLabelIsRequired
	}

	return &Slot{
		id:     id,
		label:  label,
		active: active,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (s *Slot) Validate() error {
	if s == nil {
		return ErrSlotIsNotConstructed
	}
	return s.guard.Validate(ErrSlotIsNotConstructed)
}

func (s *Slot) ID() kernel.UUID { return s.id }
func (s *Slot) Label() string   { return s.label }
func (s *Slot) Active() bool    { return s.active }

// SlotLoad pairs a slot with the number of intake records currently parked in it.
type SlotLoad struct {
	Slot     *Slot
	Assigned int
}

// LeastLoaded picks the active slot holding the fewest records, breaking ties
// by label. It returns nil when no slot is active.
func LeastLoaded(loads []SlotLoad) *Slot {
	var best *SlotLoad
	for i := range loads {
		l := &loads[i]
		if l.Slot == nil || !l.Slot.active {
			continue
		}
		if best == nil ||
			l.Assigned < best.Assigned ||
			(l.Assigned == best.Assigned && l.Slot.label < best.Slot.label) {
			best = l
		}
	}
	if best == nil {
		return nil
	}
	return best.Slot
}
