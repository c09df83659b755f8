package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each error category. Use errors.Is against these
// to classify a failure without depending on the concrete error type.
var (
	// ErrValueIsRequired indicates a required value was missing.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a value failed validation.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrObjectNotFound indicates a referenced object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrDomainViolation indicates a business rule or state machine breach.
	// Domain violations are never retried automatically: the enclosing
	// transaction is aborted and nothing is persisted or published.
	ErrDomainViolation = errors.New("domain violation")

	// ErrPersistenceFailed indicates a write completed at the transport level
	// but produced no usable result. Nothing was committed, so the whole
	// operation is safe to retry from the caller.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrPublicationFailed indicates a committed event could not be delivered
	// to the outbound channel. The owning record stays committed; the event
	// remains pending for redelivery.
	ErrPublicationFailed = errors.New("publication failed")
)

// sanitize strips newlines from values embedded in error messages so a single
// error always formats as a single log line.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required value
// wrapping the underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value
// wrapping the underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError reports a referenced object that does not exist.
// ParamName identifies the kind of reference (e.g. "customer"), ID the value
// that could not be resolved.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a missing object.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a missing object
// wrapping the underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// DomainViolationError reports a breach of a business rule or of the order
// state machine. Message identifies the violated rule; for item-level rules
// it names the offending entity id.
type DomainViolationError struct {
	Message string
	Cause   error
}

// NewDomainViolationError creates an error for a violated business rule.
func NewDomainViolationError(message string) *DomainViolationError {
	return &DomainViolationError{Message: message}
}

// NewDomainViolationErrorWithCause creates an error for a violated business rule
// wrapping the underlying cause.
func NewDomainViolationErrorWithCause(message string, cause error) *DomainViolationError {
	return &DomainViolationError{Message: message, Cause: cause}
}

func (e *DomainViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrDomainViolation, sanitize(e.Message), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrDomainViolation, sanitize(e.Message))
}

func (e *DomainViolationError) Unwrap() error {
	return ErrDomainViolation
}

// PersistenceError reports a write that returned no usable result.
type PersistenceError struct {
	Operation string
	Cause     error
}

// NewPersistenceError creates an error for a failed persistence operation.
func NewPersistenceError(operation string) *PersistenceError {
	return &PersistenceError{Operation: operation}
}

// NewPersistenceErrorWithCause creates an error for a failed persistence
// operation wrapping the underlying cause.
func NewPersistenceErrorWithCause(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrPersistenceFailed, sanitize(e.Operation), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrPersistenceFailed, sanitize(e.Operation))
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistenceFailed
}

// PublicationError reports a committed event that could not be delivered
// to the outbound channel. MessageID identifies the undelivered message.
type PublicationError struct {
	MessageID string
	Cause     error
}

// NewPublicationError creates an error for an undeliverable event.
func NewPublicationError(messageID string) *PublicationError {
	return &PublicationError{MessageID: messageID}
}

// NewPublicationErrorWithCause creates an error for an undeliverable event
// wrapping the underlying cause.
func NewPublicationErrorWithCause(messageID string, cause error) *PublicationError {
	return &PublicationError{MessageID: messageID, Cause: cause}
}

func (e *PublicationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrPublicationFailed, sanitize(e.MessageID), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrPublicationFailed, sanitize(e.MessageID))
}

func (e *PublicationError) Unwrap() error {
	return ErrPublicationFailed
}
