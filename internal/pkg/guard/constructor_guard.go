// Package guard provides ConstructorGuard, a marker embedded in aggregates,
// commands and queries so that zero values can be told apart from values
// built by their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set by a constructor and checked by the owner's Validate method.
//
// Example usage:
//
//	var ErrJobNotConstructed = errors.New("Job must be created via NewJob")
//
//	type Job struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (j *Job) Validate() error {
//	    return j.guard.Validate(ErrJobNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}

	if !g.isConstructed {
		return validationError
	}

	return nil
}
