package budgetsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nuno80/agenzia-eventi/internal/action"
	"github.com/nuno80/agenzia-eventi/internal/models"
	"github.com/nuno80/agenzia-eventi/internal/payment"
	"github.com/nuno80/agenzia-eventi/internal/revalidate"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentInput is the data of a staff assignment.
//
// BudgetCategoryID selects the category the cost of the assignment is
// booked on. Without it, the assignment has no budget impact.
type AssignmentInput struct {
	EventID          uuid.UUID               `json:"eventId" validate:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
	StaffID          uuid.UUID               `json:"staffId" validate:"required" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`
	StartTime        time.Time               `json:"startTime" validate:"required" example:"2026-05-12T08:00:00Z"`
	EndTime          time.Time               `json:"endTime" validate:"required,gtfield=StartTime" example:"2026-05-12T18:00:00Z"`
	AssignmentStatus models.AssignmentStatus `json:"assignmentStatus" validate:"omitempty,oneof=requested confirmed declined completed cancelled" example:"confirmed"`
	PaymentAmount    decimal.NullDecimal     `json:"paymentAmount" validate:"nonnegative" swaggertype:"primitive,string" example:"500"`
	PaymentTerms     models.PaymentTerms     `json:"paymentTerms" validate:"omitempty,oneof=custom immediate 30_days 60_days 90_days" example:"30_days"`
	PaymentDueDate   *time.Time              `json:"paymentDueDate"` // Only used with custom payment terms
	BudgetCategoryID *uuid.UUID              `json:"budgetCategoryId" example:"8a1bc62c-0bba-4ae2-a4c4-3e0dfe8e1b3e"`
	InvoiceNumber    string                  `json:"invoiceNumber" validate:"max=50"`
	Notes            string                  `json:"notes" validate:"max=2000"`
}

func (in AssignmentInput) apply(a *models.StaffAssignment) {
	a.EventID = in.EventID
	a.StaffID = in.StaffID
	a.StartTime = in.StartTime
	a.EndTime = in.EndTime
	a.AssignmentStatus = in.AssignmentStatus
	a.PaymentAmount = in.PaymentAmount
	a.PaymentTerms = in.PaymentTerms
	a.InvoiceNumber = in.InvoiceNumber
	a.Notes = in.Notes

	if a.AssignmentStatus == "" {
		a.AssignmentStatus = models.AssignmentRequested
	}

	if a.PaymentTerms == "" {
		a.PaymentTerms = models.PaymentTermsCustom
	}
}

// AssignmentPatch is a partial update of a staff assignment. Fields that
// are nil keep their current value.
type AssignmentPatch struct {
	StaffID          *uuid.UUID               `json:"staffId"`
	StartTime        *time.Time               `json:"startTime"`
	EndTime          *time.Time               `json:"endTime"`
	AssignmentStatus *models.AssignmentStatus `json:"assignmentStatus"`
	PaymentAmount    *decimal.NullDecimal     `json:"paymentAmount" swaggertype:"primitive,string"`
	PaymentTerms     *models.PaymentTerms     `json:"paymentTerms"`
	PaymentDueDate   *time.Time               `json:"paymentDueDate"`
	BudgetCategoryID *uuid.UUID               `json:"budgetCategoryId"`
	InvoiceNumber    *string                  `json:"invoiceNumber"`
	Notes            *string                  `json:"notes"`
}

// merge returns the input resulting from applying the patch to a.
func (p AssignmentPatch) merge(a models.StaffAssignment) AssignmentInput {
	in := AssignmentInput{
		EventID:          a.EventID,
		StaffID:          a.StaffID,
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		AssignmentStatus: a.AssignmentStatus,
		PaymentAmount:    a.PaymentAmount,
		PaymentTerms:     a.PaymentTerms,
		PaymentDueDate:   a.PaymentDueDate,
		BudgetCategoryID: p.BudgetCategoryID,
		InvoiceNumber:    a.InvoiceNumber,
		Notes:            a.Notes,
	}

	if p.StaffID != nil {
		in.StaffID = *p.StaffID
	}
	if p.StartTime != nil {
		in.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		in.EndTime = *p.EndTime
	}
	if p.AssignmentStatus != nil {
		in.AssignmentStatus = *p.AssignmentStatus
	}
	if p.PaymentAmount != nil {
		in.PaymentAmount = *p.PaymentAmount
	}
	if p.PaymentTerms != nil {
		in.PaymentTerms = *p.PaymentTerms
	}
	if p.PaymentDueDate != nil {
		in.PaymentDueDate = p.PaymentDueDate
	}
	if p.InvoiceNumber != nil {
		in.InvoiceNumber = *p.InvoiceNumber
	}
	if p.Notes != nil {
		in.Notes = *p.Notes
	}

	return in
}

// reschedules reports whether the patch changes an input of the due date.
func (p AssignmentPatch) reschedules() bool {
	return p.PaymentTerms != nil || p.EndTime != nil || p.PaymentAmount != nil || p.PaymentDueDate != nil
}

// MarkPaidInput records the payment of a staff assignment.
type MarkPaidInput struct {
	AssignmentID  uuid.UUID  `json:"assignmentId" validate:"required"`
	PaymentDate   *time.Time `json:"paymentDate"` // Defaults to now
	InvoiceNumber string     `json:"invoiceNumber" validate:"max=50" example:"2026/0042"`
	InvoiceDate   *time.Time `json:"invoiceDate"`
}

// PostponePaymentInput moves the due date of a staff payment.
type PostponePaymentInput struct {
	AssignmentID uuid.UUID `json:"assignmentId" validate:"required"`
	DueDate      time.Time `json:"dueDate" validate:"required" example:"2026-07-31T00:00:00Z"`
	Reason       string    `json:"reason" validate:"max=500" example:"Invoice not received yet"`
}

// CancelPaymentInput removes a recorded staff payment.
type CancelPaymentInput struct {
	AssignmentID uuid.UUID `json:"assignmentId" validate:"required"`
	Reason       string    `json:"reason" validate:"max=500" example:"Bank transfer was returned"`
}

func assignmentPaths(a models.StaffAssignment) []string {
	return []string{
		revalidate.StaffList(),
		revalidate.StaffDetail(a.StaffID),
		revalidate.EventStaff(a.EventID),
		revalidate.EventBudget(a.EventID),
	}
}

// assignee loads the staff member for an assignment of the event.
func assignee(tx *gorm.DB, eventID, staffID uuid.UUID) (models.Staff, error) {
	err := tx.Select("id").First(&models.Event{}, "id = ?", eventID).Error
	if err != nil {
		return models.Staff{}, err
	}

	var staff models.Staff
	err = tx.First(&staff, "id = ?", staffID).Error
	return staff, err
}

// derive re-derives the payment status of an assignment.
func (s *Synchronizer) derive(a *models.StaffAssignment) {
	a.PaymentStatus = payment.DeriveStatus(a.PaymentDueDate, a.PaymentDate, a.AssignmentStatus, s.now())
}

// Refresh re-derives the payment status of assignments read from the
// database. The stored status is the one of the last write, a pending
// payment becomes overdue without any write.
func (s *Synchronizer) Refresh(assignments ...*models.StaffAssignment) {
	for _, a := range assignments {
		s.derive(a)
	}
}

// syncAssignment mirrors the assignment to its budget item. Failures are
// recovered, see budgetSide.
func (s *Synchronizer) syncAssignment(tx *gorm.DB, a *models.StaffAssignment, staff models.Staff, category *uuid.UUID, operation string) {
	pointer := a.BudgetItemID

	ok := s.budgetSide(tx, ownerAssignment, operation, a.ID, func(tx *gorm.DB) error {
		return s.sync(tx, linked{
			pointer:   &pointer,
			eventID:   a.EventID,
			selected:  category,
			hasAmount: assignmentHasAmount(*a),
			apply: func(item *models.BudgetItem) {
				applyAssignment(item, *a, staff)
			},
		})
	})

	// On failure, only a dropped reference to a missing item is kept
	if ok || pointer == nil {
		a.BudgetItemID = pointer
	}
}

func saveAssignment(tx *gorm.DB, a *models.StaffAssignment) error {
	return tx.Omit(clause.Associations).Save(a).Error
}

// CreateAssignment creates a staff assignment and, if it has a cost and a
// budget category is selected, its budget item.
func (s *Synchronizer) CreateAssignment(ctx context.Context, in AssignmentInput) action.Result {
	if invalid := action.Validate(in); invalid != nil {
		return action.Invalid(invalid)
	}

	a := models.StaffAssignment{DefaultModel: models.DefaultModel{ID: uuid.New()}}
	in.apply(&a)
	a.PaymentDueDate = payment.DueDate(a.PaymentTerms, a.EndTime, a.PaymentAmount, in.PaymentDueDate)
	s.derive(&a)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		staff, err := assignee(tx, a.EventID, a.StaffID)
		if err != nil {
			return err
		}

		s.syncAssignment(tx, &a, staff, in.BudgetCategoryID, "create")
		return tx.Omit(clause.Associations).Create(&a).Error
	})
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, assignmentPaths(a)...)
	return action.Ok("Assignment created", a)
}

// UpdateAssignment applies a patch to a staff assignment and mirrors the
// result to its budget item.
//
// Without a linked item, one is created once the assignment has a cost
// and a budget category is selected. A linked item is never removed here,
// clearing the amount zeroes its cost.
func (s *Synchronizer) UpdateAssignment(ctx context.Context, id uuid.UUID, patch AssignmentPatch) action.Result {
	var a models.StaffAssignment
	var invalid map[string][]string
	var paths []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&a, "id = ?", id).Error
		if err != nil {
			return err
		}

		// The old staff member's views are stale too
		paths = assignmentPaths(a)

		in := patch.merge(a)
		invalid = action.Validate(in)
		if invalid != nil {
			return action.ErrValidation
		}

		in.apply(&a)
		if patch.reschedules() {
			a.PaymentDueDate = payment.DueDate(a.PaymentTerms, a.EndTime, a.PaymentAmount, in.PaymentDueDate)
		}
		s.derive(&a)

		staff, err := assignee(tx, a.EventID, a.StaffID)
		if err != nil {
			return err
		}

		s.syncAssignment(tx, &a, staff, in.BudgetCategoryID, "update")
		return saveAssignment(tx, &a)
	})
	if invalid != nil {
		return action.Invalid(invalid)
	}
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, append(paths, revalidate.StaffDetail(a.StaffID))...)
	return action.Ok("Assignment updated", a)
}

// DeleteAssignment deletes a staff assignment together with its budget
// item. If the item cannot be deleted, the assignment is deleted anyway.
func (s *Synchronizer) DeleteAssignment(ctx context.Context, id uuid.UUID) action.Result {
	var a models.StaffAssignment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&a, "id = ?", id).Error
		if err != nil {
			return err
		}

		if a.BudgetItemID != nil {
			item := *a.BudgetItemID
			s.budgetSide(tx, ownerAssignment, "delete", a.ID, func(tx *gorm.DB) error {
				return s.unlink(tx, item)
			})
		}

		return tx.Delete(&a).Error
	})
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, assignmentPaths(a)...)
	return action.Ok("Assignment deleted", nil)
}

// MarkPaid records the payment of a staff assignment. The linked budget
// item is updated to paid.
func (s *Synchronizer) MarkPaid(ctx context.Context, in MarkPaidInput) action.Result {
	if invalid := action.Validate(in); invalid != nil {
		return action.Invalid(invalid)
	}

	paid := s.now()
	if in.PaymentDate != nil {
		paid = *in.PaymentDate
	}

	var a models.StaffAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&a, "id = ?", in.AssignmentID).Error
		if err != nil {
			return err
		}

		a.PaymentDate = &paid
		if in.InvoiceNumber != "" {
			a.InvoiceNumber = in.InvoiceNumber
		}
		if in.InvoiceDate != nil {
			a.InvoiceDate = in.InvoiceDate
		}
		s.derive(&a)

		staff, err := assignee(tx, a.EventID, a.StaffID)
		if err != nil {
			return err
		}

		s.syncAssignment(tx, &a, staff, nil, "mark_paid")
		return saveAssignment(tx, &a)
	})
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, assignmentPaths(a)...)
	return action.Ok("Payment recorded", a)
}

// PostponePayment moves the due date of a staff payment. The budget item
// is not touched.
func (s *Synchronizer) PostponePayment(ctx context.Context, in PostponePaymentInput) action.Result {
	if invalid := action.Validate(in); invalid != nil {
		return action.Invalid(invalid)
	}

	var a models.StaffAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&a, "id = ?", in.AssignmentID).Error
		if err != nil {
			return err
		}

		due := in.DueDate
		a.PaymentDueDate = &due
		a.Notes = appendNote(a.Notes, s.now(), fmt.Sprintf("Payment postponed to %s", due.Format(time.DateOnly)), in.Reason)
		s.derive(&a)

		return saveAssignment(tx, &a)
	})
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, assignmentPaths(a)[:3]...)
	return action.Ok("Payment postponed", a)
}

// CancelPayment removes a recorded payment and the invoice data. The
// budget item is not touched.
func (s *Synchronizer) CancelPayment(ctx context.Context, in CancelPaymentInput) action.Result {
	if invalid := action.Validate(in); invalid != nil {
		return action.Invalid(invalid)
	}

	var a models.StaffAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&a, "id = ?", in.AssignmentID).Error
		if err != nil {
			return err
		}

		if a.PaymentDate == nil {
			return errNotPaid
		}

		a.PaymentDate = nil
		a.InvoiceNumber = ""
		a.InvoiceDate = nil
		a.Notes = appendNote(a.Notes, s.now(), "Payment cancelled", in.Reason)
		s.derive(&a)

		return saveAssignment(tx, &a)
	})
	if err != nil {
		return action.Fail(err)
	}

	s.revalidate(ctx, assignmentPaths(a)[:3]...)
	return action.Ok("Payment cancelled", a)
}

var errNotPaid = errors.New("there is no recorded payment for this assignment")

// appendNote adds a dated line to free text notes.
func appendNote(notes string, now time.Time, event, reason string) string {
	line := fmt.Sprintf("[%s] %s", now.Format(time.DateOnly), event)
	if reason = strings.TrimSpace(reason); reason != "" {
		line += ": " + reason
	}

	if notes == "" {
		return line
	}
	return notes + "\n" + line
}
