package printer

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"printfloor/internal/core/domain/model/job"
	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

const (
	// MinInkLevel and MaxInkLevel bound a channel's reported fill percentage.
	MinInkLevel = 0
	MaxInkLevel = 100
)

var (
	ErrNameIsRequired            = errs.NewValueIsRequiredError("name")
	ErrSupportedTypesAreRequired = errs.NewValueIsRequiredError("supportedTypes")
	ErrPrinterIsNotConstructed   = errors.New("Printer must be created via NewPrinter constructor")
	ErrInkChannelNameIsRequired  = errs.NewValueIsRequiredError("inkChannel")
)

// InkLevels maps an ink channel name to its fill percentage.
type InkLevels map[string]int

// Printer is a production printer. It persists across many jobs.
//
// A job may only be assigned when the printer's max width is at least the
// job's width, its supported types include the job's product type, and the
// printer is not offline or in maintenance.
type Printer struct {
	id             kernel.UUID
	name           string
	maxWidth       float64
	supportedTypes []job.ProductType
	status         Status
	inkLevels      InkLevels

	guard guard.ConstructorGuard
}

// NewPrinter registers an idle printer with no ink readings yet.
func NewPrinter(id kernel.UUID, name string, maxWidth float64, supported []job.ProductType) (*Printer, error) {
	p := &Printer{
		status:    StatusIdle,
		inkLevels: InkLevels{},
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setMaxWidth(maxWidth),
		p.setSupportedTypes(supported),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePrinter rebuilds a printer from storage.
func RestorePrinter(
	id kernel.UUID,
	name string,
	maxWidth float64,
	supported []job.ProductType,
	status Status,
	ink InkLevels,
) (*Printer, error) {
	p := &Printer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setMaxWidth(maxWidth),
		p.setSupportedTypes(supported),
		p.setStatus(status),
		p.setInkLevels(ink),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Printer) Validate() error {
	if p == nil {
		return ErrPrinterIsNotConstructed
	}
	return p.guard.Validate(ErrPrinterIsNotConstructed)
}

func (p *Printer) IsEqual(other *Printer) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Printer) ID() kernel.UUID      { return p.id }
func (p *Printer) Name() string         { return p.name }
func (p *Printer) MaxWidth() float64    { return p.maxWidth }
func (p *Printer) Status() Status       { return p.status }
func (p *Printer) InkLevels() InkLevels { return maps.Clone(p.inkLevels) }

func (p *Printer) SupportedTypes() []job.ProductType {
	return slices.Clone(p.supportedTypes)
}

func (p *Printer) Supports(t job.ProductType) bool {
	return slices.Contains(p.supportedTypes, t)
}

// CanPrint checks whether j may be assigned to this printer. It returns a
// *errs.CapabilityMismatchError naming the first failing requirement.
func (p *Printer) CanPrint(j *job.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	if !p.status.Available() {
		return errs.NewCapabilityMismatchError("printer", fmt.Sprintf("%s is %s", p.name, p.status))
	}
	if j.Size().Width() > p.maxWidth {
		return errs.NewCapabilityMismatchError("printer",
			fmt.Sprintf("%s accepts media up to %gin, job is %gin wide", p.name, p.maxWidth, j.Size().Width()))
	}
	if !p.Supports(j.ProductType()) {
		return errs.NewCapabilityMismatchError("printer",
			fmt.Sprintf("%s does not print %s", p.name, j.ProductType()))
	}
	return nil
}

// UpdateStatus records a status report. Ink readings in ink are merged over the
// current ones; channels not mentioned keep their last reading.
func (p *Printer) UpdateStatus(status Status, ink InkLevels) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := validateInk(ink); err != nil {
		return err
	}

	p.status = status
	if p.inkLevels == nil {
		p.inkLevels = InkLevels{}
	}
	for channel, level := range ink {
		p.inkLevels[strings.ToLower(strings.TrimSpace(channel))] = level
	}
	return nil
}

// LowInkChannels returns the channels below threshold, sorted by name.
func (p *Printer) LowInkChannels(threshold int) []string {
	var low []string
	for channel, level := range p.inkLevels {
		if level < threshold {
			low = append(low, channel)
		}
	}
	slices.Sort(low)
	return low
}

func (p *Printer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Printer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Printer) setMaxWidth(w float64) error {
	if w <= 0 || w > kernel.MaxPrintInches {
		return errs.NewValueIsOutOfRangeError("maxWidth", w, 0, kernel.MaxPrintInches)
	}
	p.maxWidth = w
	return nil
}

func (p *Printer) setSupportedTypes(types []job.ProductType) error {
	if len(types) == 0 {
		return ErrSupportedTypesAreRequired
	}
	var unique []job.ProductType
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return err
		}
		if !slices.Contains(unique, t) {
			unique = append(unique, t)
		}
	}
	p.supportedTypes = unique
	return nil
}

func (p *Printer) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.status = s
	return nil
}

func (p *Printer) setInkLevels(ink InkLevels) error {
	if err := validateInk(ink); err != nil {
		return err
	}
	p.inkLevels = InkLevels{}
	for channel, level := range ink {
		p.inkLevels[strings.ToLower(strings.TrimSpace(channel))] = level
	}
	return nil
}

func validateInk(ink InkLevels) error {
	for channel, level := range ink {
		if strings.TrimSpace(channel) == "" {
			return ErrInkChannelNameIsRequired
		}
		if level < MinInkLevel || level > MaxInkLevel {
			return errs.NewValueIsOutOfRangeError("ink."+channel, level, MinInkLevel, MaxInkLevel)
		}
	}
	return nil
}
