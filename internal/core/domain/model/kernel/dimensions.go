package kernel

import (
	"errors"
	"fmt"
	"math"

	"printfloor/internal/pkg/errs"
	"printfloor/internal/pkg/guard"
)

// MaxPrintInches bounds either side of an item or sheet: one full 100 ft roll.
const MaxPrintInches = 1200.0

// ErrDimensionsAreNotConstructed is returned when zero-value Dimensions are used.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions")

// Dimensions is the physical size of a printable item or a print sheet, in inches.
// It is an immutable value object; the zero value is invalid.
//
// Example:
//
//	d, err := kernel.NewDimensions(12, 18)
//	if err != nil {
//	    // width or height out of range
//	}
//	fmt.Println(d.Area()) // 216
type Dimensions struct { //nolint:recvcheck //using for validation
	width  float64
	height float64
	guard  guard.ConstructorGuard
}

// NewDimensions validates that both sides are positive, finite and at most MaxPrintInches.
func NewDimensions(width, height float64) (Dimensions, error) {
	d := Dimensions{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(d.setWidth(width), d.setHeight(height)); err != nil {
		return Dimensions{}, err
	}

	return d, nil
}

// Validate checks that the value was built by NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

func (d Dimensions) Width() float64 {
	return d.width
}

func (d Dimensions) Height() float64 {
	return d.height
}

// Area returns width × height in square inches.
func (d Dimensions) Area() float64 {
	return d.width * d.height
}

// IsEqual compares both sides exactly. Both values must be valid.
func (d Dimensions) IsEqual(other Dimensions) (bool, error) {
	if err := errors.Join(d.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return d.width == other.width && d.height == other.height, nil
}

// String implements fmt.Stringer, e.g. "12x18in".
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gin", d.width, d.height)
}

func (d *Dimensions) setWidth(width float64) error {
	if err := validateSide("width", width); err != nil {
		return err
	}
	d.width = width
	return nil
}

func (d *Dimensions) setHeight(height float64) error {
	if err := validateSide("height", height); err != nil {
		return err
	}
	d.height = height
	return nil
}

func validateSide(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxPrintInches {
		return errs.NewValueIsOutOfRangeError(name, v, 0, MaxPrintInches)
	}
	return nil
}
