// Package payment derives the payment state of staff assignments.
//
// Everything in here is a pure function of its arguments. Callers must
// re-derive the status every time the due date, the paid date or the
// assignment status changes.
package payment

import (
	"time"

	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/shopspring/decimal"
)

// DeriveStatus computes the payment status for an assignment.
//
// A declined or cancelled assignment owes nothing, whatever the dates say.
// A recorded payment wins over any due date.
func DeriveStatus(due, paid *time.Time, lifecycle models.AssignmentStatus, now time.Time) models.PaymentStatus {
	if lifecycle.Failed() {
		return models.PaymentNotDue
	}

	if paid != nil {
		return models.PaymentPaid
	}

	if due == nil {
		return models.PaymentNotDue
	}

	if due.Before(now) {
		return models.PaymentOverdue
	}

	return models.PaymentPending
}

// TermsOffset returns the number of days after the end of an assignment
// that a payment is due. ok is false for custom and unknown terms.
func TermsOffset(terms models.PaymentTerms) (days int, ok bool) {
	switch terms {
	case models.PaymentTermsImmediate:
		return 0, true
	case models.PaymentTerms30Days:
		return 30, true
	case models.PaymentTerms60Days:
		return 60, true
	case models.PaymentTerms90Days:
		return 90, true
	}

	return 0, false
}

// DueDate returns the due date for a payment.
//
// With custom terms, the supplied date is used verbatim, including nil.
// Otherwise the due date is end + offset when an amount is set, and nil
// when there is nothing to pay. A zero amount counts as nothing to pay.
func DueDate(terms models.PaymentTerms, end time.Time, amount decimal.NullDecimal, custom *time.Time) *time.Time {
	days, ok := TermsOffset(terms)
	if !ok {
		return custom
	}

	if !amount.Valid || amount.Decimal.IsZero() {
		return nil
	}

	due := end.AddDate(0, 0, days)
	return &due
}
