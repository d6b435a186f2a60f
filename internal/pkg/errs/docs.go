// Package errs provides standardized error types for the production pipeline.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when a job, printer, batch or order cannot be found
//   - InvalidTransitionError: For when a job status move is not permitted
//   - CapabilityMismatchError: For when a printer cannot handle a job
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The HTTP adapter classifies errors with errors.Is against the sentinels, so
// every error returned to callers should wrap one of them.
package errs
