// Package errs provides standardized error types for the ordering application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - DomainViolationError: For business-rule and state-machine breaches
//   - PersistenceError: For writes that report no usable result
//   - PublicationError: For committed events that could not be delivered
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrDomainViolation)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The sentinel errors double as the failure taxonomy of the order creation
// workflow: domain violations and not-found errors abort the transaction
// before anything is persisted, persistence errors abort with nothing
// committed, and publication errors occur strictly after commit.
package errs
