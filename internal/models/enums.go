package models

// AssignmentStatus is the lifecycle of a staff assignment.
//
// requested → confirmed → completed is the success path, declined and
// cancelled are terminal failure states.
type AssignmentStatus string

const (
	AssignmentRequested AssignmentStatus = "requested"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentDeclined  AssignmentStatus = "declined"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// Failed reports whether the assignment ended without the work being done.
func (s AssignmentStatus) Failed() bool {
	return s == AssignmentDeclined || s == AssignmentCancelled
}

// PaymentTerms defines when a staff payment is due relative to the end of the assignment.
type PaymentTerms string

const (
	PaymentTermsCustom    PaymentTerms = "custom"
	PaymentTermsImmediate PaymentTerms = "immediate"
	PaymentTerms30Days    PaymentTerms = "30_days"
	PaymentTerms60Days    PaymentTerms = "60_days"
	PaymentTerms90Days    PaymentTerms = "90_days"
)

// PaymentStatus is derived from due date, paid date and assignment status.
type PaymentStatus string

const (
	PaymentNotDue  PaymentStatus = "not_due"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
	PaymentPaid    PaymentStatus = "paid"
)

// SponsorPaymentStatus is maintained by hand on sponsors.
type SponsorPaymentStatus string

const (
	SponsorPaymentPending SponsorPaymentStatus = "pending"
	SponsorPaymentPartial SponsorPaymentStatus = "partial"
	SponsorPaymentPaid    SponsorPaymentStatus = "paid"
)

// BudgetItemStatus orders from "not yet spent" over "committed" to "paid".
type BudgetItemStatus string

const (
	BudgetItemPlanned   BudgetItemStatus = "planned"
	BudgetItemApproved  BudgetItemStatus = "approved"
	BudgetItemPurchased BudgetItemStatus = "purchased"
	BudgetItemPaid      BudgetItemStatus = "paid"
	BudgetItemCancelled BudgetItemStatus = "cancelled"
)

type SessionType string

const (
	SessionKeynote    SessionType = "keynote"
	SessionTalk       SessionType = "talk"
	SessionWorkshop   SessionType = "workshop"
	SessionPanel      SessionType = "panel"
	SessionBreak      SessionType = "break"
	SessionNetworking SessionType = "networking"
	SessionOther      SessionType = "other"
)

type SessionStatus string

const (
	SessionDraft     SessionStatus = "draft"
	SessionScheduled SessionStatus = "scheduled"
	SessionConfirmed SessionStatus = "confirmed"
	SessionCancelled SessionStatus = "cancelled"
	SessionCompleted SessionStatus = "completed"
)
