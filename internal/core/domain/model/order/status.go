package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Paid ──> Approved
//	   │          │
//	   │          └──> Cancelling ──> Cancelled
//	   └──────────────────────────────────^
//
// Approved and Cancelled are terminal. Any other requested transition is
// rejected with a domain violation.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) is what an order carries before initialization.
	Unknown Status = iota

	// Pending is the initial status assigned when an order is initialized.
	// Pending orders await payment.
	Pending

	// Paid indicates the payment subsystem confirmed the payment.
	Paid

	// Approved indicates the restaurant approved the paid order.
	// This is the terminal success state.
	Approved

	// Cancelling indicates a paid order is being compensated
	// (e.g. the restaurant rejected it and the payment must be reversed).
	Cancelling

	// Cancelled indicates the order was cancelled.
	// This is the terminal failure state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Paid:       "Paid",
		Approved:   "Approved",
		Cancelling: "Cancelling",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Paid:       "Paid",
		Approved:   "Approved",
		Cancelling: "Cancelling",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid. This is used to
// reject statuses arriving from external sources such as the database.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// transitionError builds the domain violation for an illegal transition.
func (s Status) transitionError(operation string) error {
	return errs.NewDomainViolationError(
		fmt.Sprintf("order in %s status is not in correct state for %s operation", s, operation))
}

// Pay transitions the status to Paid.
// Only Pending orders can be paid.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return Unknown, s.transitionError("pay")
	}
	return Paid, nil
}

// Approve transitions the status to Approved.
// Only Paid orders can be approved.
func (s Status) Approve() (Status, error) {
	if s != Paid {
		return Unknown, s.transitionError("approve")
	}
	return Approved, nil
}

// InitCancel transitions the status to Cancelling.
// Only Paid orders enter the compensation path; an unpaid order is
// cancelled directly via Cancel.
func (s Status) InitCancel() (Status, error) {
	if s != Paid {
		return Unknown, s.transitionError("initCancel")
	}
	return Cancelling, nil
}

// Cancel transitions the status to Cancelled.
// Allowed from Pending (cancel before payment) and from Cancelling
// (compensation finished).
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Cancelling {
		return Unknown, s.transitionError("cancel")
	}
	return Cancelled, nil
}
